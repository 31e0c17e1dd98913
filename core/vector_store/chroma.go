package vector_store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/tahaky/uymbot-docservice/core/errors"
)

// ChromaStore is a thin wrapper around the ChromaDB HTTP API (v1). It
// handles collection initialisation and all CRUD / query operations.
type ChromaStore struct {
	host           string
	collectionName string
	httpClient     *http.Client

	mu           sync.RWMutex
	collectionID string
}

// NewChromaStore creates a ChromaDB-backed store from configuration.
// The collection itself is created lazily on first use.
func NewChromaStore(config *VectorStoreConfig) (*ChromaStore, error) {
	if config.Host == "" {
		return nil, errors.Newf(errors.ErrInvalidParameter, "chromadb host is required")
	}
	if config.CollectionName == "" {
		return nil, errors.Newf(errors.ErrInvalidParameter, "chromadb collection name is required")
	}

	httpClient := &http.Client{
		Timeout: 2 * time.Minute,
		Transport: &http.Transport{
			Dial: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).Dial,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &ChromaStore{
		host:           strings.TrimRight(config.Host, "/"),
		collectionName: config.CollectionName,
		httpClient:     httpClient,
	}, nil
}

// EnsureCollection performs the idempotent get-or-create of the
// configured collection.
func (s *ChromaStore) EnsureCollection(ctx context.Context) error {
	_, err := s.getCollectionID(ctx)
	return err
}

// getCollectionID returns the cached collection id, initialising it at
// most once under concurrent first access (double-checked locking).
func (s *ChromaStore) getCollectionID(ctx context.Context) (string, error) {
	s.mu.RLock()
	id := s.collectionID
	s.mu.RUnlock()
	if id != "" {
		return id, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collectionID != "" {
		return s.collectionID, nil
	}

	id, err := s.initCollection(ctx)
	if err != nil {
		return "", err
	}
	s.collectionID = id
	return id, nil
}

func (s *ChromaStore) initCollection(ctx context.Context) (string, error) {
	body := map[string]interface{}{
		"name":          s.collectionName,
		"get_or_create": true,
		"metadata":      map[string]interface{}{"hnsw:space": "cosine"},
	}

	var response struct {
		ID string `json:"id"`
	}
	if err := s.postJSON(ctx, s.host+"/api/v1/collections", body, &response); err != nil {
		return "", errors.Newf(errors.ErrVectorStoreInit, "failed to create collection %s: %v", s.collectionName, err)
	}
	if response.ID == "" {
		return "", errors.Newf(errors.ErrVectorStoreInit, "collection response for %s carries no id", s.collectionName)
	}

	g.Log().Infof(ctx, "ChromaDB collection '%s' ready, id=%s", s.collectionName, response.ID)
	return response.ID, nil
}

// Add appends one record to the collection.
func (s *ChromaStore) Add(ctx context.Context, id, document string, metadata map[string]interface{}, embedding []float32) error {
	collectionID, err := s.getCollectionID(ctx)
	if err != nil {
		return err
	}

	body := map[string]interface{}{
		"ids":        []string{id},
		"documents":  []string{document},
		"metadatas":  []map[string]interface{}{metadata},
		"embeddings": [][]float32{embedding},
	}
	if err := s.postJSON(ctx, s.collectionURL(collectionID, "add"), body, nil); err != nil {
		return errors.Newf(errors.ErrVectorInsert, "failed to add record %s: %v", id, err)
	}
	return nil
}

// GetByID returns the record for id, or nil when the id is absent.
func (s *ChromaStore) GetByID(ctx context.Context, id string) (*Record, error) {
	collectionID, err := s.getCollectionID(ctx)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"ids":     []string{id},
		"include": []string{"documents", "metadatas"},
	}
	var payload tablePayload
	if err := s.postJSON(ctx, s.collectionURL(collectionID, "get"), body, &payload); err != nil {
		return nil, errors.Newf(errors.ErrVectorStoreCall, "failed to get record %s: %v", id, err)
	}

	table, err := payload.flatTable()
	if err != nil {
		return nil, err
	}
	if table.Len() == 0 {
		return nil, nil
	}
	record := table.Row(0)
	return &record, nil
}

// List returns a flat table of records using offset pagination.
func (s *ChromaStore) List(ctx context.Context, limit, offset int) (*Table, error) {
	collectionID, err := s.getCollectionID(ctx)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"include": []string{"documents", "metadatas"},
		"limit":   limit,
		"offset":  offset,
	}
	var payload tablePayload
	if err := s.postJSON(ctx, s.collectionURL(collectionID, "get"), body, &payload); err != nil {
		return nil, errors.Newf(errors.ErrVectorStoreCall, "failed to list records: %v", err)
	}
	return payload.flatTable()
}

// Update replaces document, metadata and embedding for an existing id.
func (s *ChromaStore) Update(ctx context.Context, id, document string, metadata map[string]interface{}, embedding []float32) error {
	collectionID, err := s.getCollectionID(ctx)
	if err != nil {
		return err
	}

	body := map[string]interface{}{
		"ids":        []string{id},
		"documents":  []string{document},
		"metadatas":  []map[string]interface{}{metadata},
		"embeddings": [][]float32{embedding},
	}
	if err := s.postJSON(ctx, s.collectionURL(collectionID, "update"), body, nil); err != nil {
		return errors.Newf(errors.ErrVectorStoreCall, "failed to update record %s: %v", id, err)
	}
	return nil
}

// Delete removes the record for id.
func (s *ChromaStore) Delete(ctx context.Context, id string) error {
	collectionID, err := s.getCollectionID(ctx)
	if err != nil {
		return err
	}

	body := map[string]interface{}{"ids": []string{id}}
	if err := s.postJSON(ctx, s.collectionURL(collectionID, "delete"), body, nil); err != nil {
		return errors.Newf(errors.ErrVectorDelete, "failed to delete record %s: %v", id, err)
	}
	return nil
}

// Count returns the total number of records in the collection.
func (s *ChromaStore) Count(ctx context.Context) (int, error) {
	collectionID, err := s.getCollectionID(ctx)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.collectionURL(collectionID, "count"), nil)
	if err != nil {
		return 0, errors.Newf(errors.ErrVectorStoreCall, "failed to create count request: %v", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, errors.Newf(errors.ErrVectorStoreCall, "count request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, errors.Newf(errors.ErrVectorStoreCall, "failed to read count response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, errors.Newf(errors.ErrVectorStoreCall, "count failed (HTTP %d): %s", resp.StatusCode, string(data))
	}

	count, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, errors.Newf(errors.ErrVectorStoreDecode, "count response is not an integer: %q", string(data))
	}
	return count, nil
}

// Query runs a similarity search for a single query embedding. The
// response arrays may be flat or nested one level; both shapes are
// normalized before returning.
func (s *ChromaStore) Query(ctx context.Context, embedding []float32, topK int) (*QueryResult, error) {
	collectionID, err := s.getCollectionID(ctx)
	if err != nil {
		return nil, err
	}

	body := map[string]interface{}{
		"query_embeddings": [][]float32{embedding},
		"n_results":        topK,
		"include":          []string{"documents", "metadatas"},
	}
	var payload tablePayload
	if err := s.postJSON(ctx, s.collectionURL(collectionID, "query"), body, &payload); err != nil {
		return nil, errors.Newf(errors.ErrVectorSearch, "query failed: %v", err)
	}
	return payload.queryResult()
}

func (s *ChromaStore) collectionURL(collectionID, op string) string {
	return fmt.Sprintf("%s/api/v1/collections/%s/%s", s.host, collectionID, op)
}

// postJSON posts body as JSON and decodes the response into out when
// out is non-nil.
func (s *ChromaStore) postJSON(ctx context.Context, url string, body interface{}, out interface{}) error {
	jsonData, err := sonic.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(data))
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}
	return nil
}

var _ VectorStore = (*ChromaStore)(nil)
