package vector_store

import (
	"context"
)

// VectorStoreType is the vector database type.
type VectorStoreType string

const (
	VectorStoreTypeChroma VectorStoreType = "chroma"
	VectorStoreTypeMemory VectorStoreType = "memory"
)

// VectorStoreConfig is the vector database configuration.
type VectorStoreConfig struct {
	Type           VectorStoreType
	Host           string // base URL of the remote store, e.g. http://localhost:8000
	CollectionName string
}

// Record is one stored chunk: id, text and metadata. Embedding is only
// populated on write paths; read responses omit it.
type Record struct {
	ID        string
	Document  string
	Metadata  map[string]interface{}
	Embedding []float32
}

// VectorStore is the vector database interface. Implementations own
// the collection lifecycle: the collection is created lazily on first
// use and its handle is cached for the process lifetime.
type VectorStore interface {
	// EnsureCollection performs the idempotent get-or-create of the
	// configured collection. Safe under concurrent first access; the
	// collection is initialized at most once.
	EnsureCollection(ctx context.Context) error

	// Add appends one record to the collection.
	Add(ctx context.Context, id, document string, metadata map[string]interface{}, embedding []float32) error

	// GetByID returns the record for id, or nil (without error) when
	// the id is absent.
	GetByID(ctx context.Context, id string) (*Record, error)

	// List returns a flat table of records using offset pagination.
	List(ctx context.Context, limit, offset int) (*Table, error)

	// Update replaces document, metadata and embedding for an existing
	// id. Behavior for a non-existent id is undefined at this layer;
	// callers existence-check first.
	Update(ctx context.Context, id, document string, metadata map[string]interface{}, embedding []float32) error

	// Delete removes the record for id. Idempotent at the wire level.
	Delete(ctx context.Context, id string) error

	// Count returns the total number of records in the collection.
	Count(ctx context.Context) (int, error)

	// Query runs a similarity search and returns the ranked result,
	// normalized from the wire shape. Callers clamp topK to Count.
	Query(ctx context.Context, embedding []float32, topK int) (*QueryResult, error)
}
