package document

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/tahaky/uymbot-docservice/core/config"
	"github.com/tahaky/uymbot-docservice/core/rag_client"
	"github.com/tahaky/uymbot-docservice/internal/service"
)

var svr *Service

// InitDocumentService wires the singleton pipeline from configuration.
func InitDocumentService(ctx context.Context) error {
	store, err := service.GetVectorStore()
	if err != nil {
		return err
	}
	embedder, err := service.GetEmbedder()
	if err != nil {
		return err
	}

	conf := config.Load(ctx)

	var ragClient *rag_client.Client
	if conf.RagBaseURL != "" {
		ragClient, err = rag_client.NewClient(conf.RagBaseURL)
		if err != nil {
			return err
		}
	}

	svr = NewService(store, embedder, ragClient, conf.MaxChunkChars())
	g.Log().Infof(ctx, "Document service initialized, maxChunkChars=%d", conf.MaxChunkChars())
	return nil
}

// GetDocumentSvr returns the singleton document pipeline.
func GetDocumentSvr() *Service {
	return svr
}
