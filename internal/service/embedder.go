package service

import (
	"context"
	"sync"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gctx"
	"github.com/tahaky/uymbot-docservice/core/config"
	"github.com/tahaky/uymbot-docservice/core/embedding"
	"github.com/tahaky/uymbot-docservice/core/errors"
)

var (
	embedderOnce    sync.Once
	embedderClient  embedding.Embedder
	embedderInitErr error
)

// GetEmbedder returns the singleton embedder selected by configuration.
func GetEmbedder() (embedding.Embedder, error) {
	embedderOnce.Do(func() {
		ctx := gctx.New()
		embedderClient, embedderInitErr = initializeEmbedder(ctx)
	})
	return embedderClient, embedderInitErr
}

func initializeEmbedder(ctx context.Context) (embedding.Embedder, error) {
	conf := config.Load(ctx)

	g.Log().Infof(ctx, "Initializing embedder with provider: %s", conf.EmbeddingProvider)

	switch conf.EmbeddingProvider {
	case "hash":
		return embedding.NewHashEmbedder(), nil
	case "openai":
		embedder, err := embedding.NewOpenAIEmbedder(conf)
		if err != nil {
			return nil, err
		}
		return embedder, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidParameter, "unsupported embedding provider: %s. Supported providers: hash, openai", conf.EmbeddingProvider)
	}
}
