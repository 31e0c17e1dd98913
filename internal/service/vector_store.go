package service

import (
	"context"
	"sync"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gctx"
	"github.com/tahaky/uymbot-docservice/core/config"
	"github.com/tahaky/uymbot-docservice/core/errors"
	"github.com/tahaky/uymbot-docservice/core/vector_store"
)

var (
	storeOnce    sync.Once
	vectorClient vector_store.VectorStore
	storeInitErr error
)

// GetVectorStore returns the singleton vector database client.
func GetVectorStore() (vector_store.VectorStore, error) {
	storeOnce.Do(func() {
		ctx := gctx.New()
		vectorClient, storeInitErr = initializeVectorStore(ctx)
	})
	return vectorClient, storeInitErr
}

// initializeVectorStore builds the client selected by configuration.
func initializeVectorStore(ctx context.Context) (vector_store.VectorStore, error) {
	conf := config.Load(ctx)

	g.Log().Infof(ctx, "Initializing vector store with type: %s", conf.VectorStoreType)

	store, err := vector_store.NewVectorStore(&vector_store.VectorStoreConfig{
		Type:           vector_store.VectorStoreType(conf.VectorStoreType),
		Host:           conf.ChromaHost,
		CollectionName: conf.CollectionName,
	})
	if err != nil {
		return nil, errors.Newf(errors.ErrVectorStoreInit, "failed to initialize %s vector store: %v", conf.VectorStoreType, err)
	}

	g.Log().Infof(ctx, "%s vector store initialized successfully", conf.VectorStoreType)
	return store, nil
}
