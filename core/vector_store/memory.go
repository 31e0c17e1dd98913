package vector_store

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryStore is an in-process VectorStore for local/offline use and
// tests. Records are kept in insertion order; queries rank by cosine
// similarity, matching the remote store's configured metric.
type MemoryStore struct {
	mu      sync.RWMutex
	order   []string
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
	}
}

// EnsureCollection is a no-op for the in-memory store.
func (s *MemoryStore) EnsureCollection(ctx context.Context) error {
	return nil
}

// Add appends one record.
func (s *MemoryStore) Add(ctx context.Context, id, document string, metadata map[string]interface{}, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		s.order = append(s.order, id)
	}
	s.records[id] = Record{ID: id, Document: document, Metadata: copyMetadata(metadata), Embedding: embedding}
	return nil
}

// GetByID returns the record for id, or nil when absent.
func (s *MemoryStore) GetByID(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	rec.Metadata = copyMetadata(rec.Metadata)
	return &rec, nil
}

// List returns records in insertion order using offset pagination.
func (s *MemoryStore) List(ctx context.Context, limit, offset int) (*Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table := &Table{}
	if offset >= len(s.order) {
		return table, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(s.order) {
		end = len(s.order)
	}
	for _, id := range s.order[offset:end] {
		rec := s.records[id]
		table.IDs = append(table.IDs, rec.ID)
		table.Documents = append(table.Documents, rec.Document)
		table.Metadatas = append(table.Metadatas, copyMetadata(rec.Metadata))
	}
	return table, nil
}

// Update replaces document, metadata and embedding for id.
func (s *MemoryStore) Update(ctx context.Context, id, document string, metadata map[string]interface{}, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return nil
	}
	s.records[id] = Record{ID: id, Document: document, Metadata: copyMetadata(metadata), Embedding: embedding}
	return nil
}

// Delete removes the record for id. Deleting an absent id is a no-op.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return nil
	}
	delete(s.records, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of stored records.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}

// Query ranks all records by cosine similarity to embedding and
// returns the top topK as a single nested row-group, mirroring the
// remote store's query response shape.
func (s *MemoryStore) Query(ctx context.Context, embedding []float32, topK int) (*QueryResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		rec   Record
		score float64
	}
	ranked := make([]scored, 0, len(s.order))
	for _, id := range s.order {
		rec := s.records[id]
		ranked = append(ranked, scored{rec: rec, score: cosineSimilarity(embedding, rec.Embedding)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if topK < len(ranked) {
		ranked = ranked[:topK]
	}

	table := Table{}
	for _, item := range ranked {
		table.IDs = append(table.IDs, item.rec.ID)
		table.Documents = append(table.Documents, item.rec.Document)
		table.Metadatas = append(table.Metadatas, copyMetadata(item.rec.Metadata))
	}
	return &QueryResult{Groups: []Table{table}}, nil
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func copyMetadata(metadata map[string]interface{}) map[string]interface{} {
	if metadata == nil {
		return nil
	}
	copied := make(map[string]interface{}, len(metadata))
	for k, v := range metadata {
		copied[k] = v
	}
	return copied
}

var _ VectorStore = (*MemoryStore)(nil)
