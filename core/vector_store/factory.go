package vector_store

import (
	"fmt"
)

// NewVectorStore creates a vector store instance from configuration.
func NewVectorStore(config *VectorStoreConfig) (VectorStore, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	switch config.Type {
	case VectorStoreTypeChroma:
		return NewChromaStore(config)
	case VectorStoreTypeMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported vector store type: %s", config.Type)
	}
}
