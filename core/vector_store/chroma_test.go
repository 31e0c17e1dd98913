package vector_store

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChroma is a minimal in-process stand-in for the ChromaDB v1 API.
type fakeChroma struct {
	mu          sync.Mutex
	initCalls   int32
	records     map[string]Record
	order       []string
	nestedQuery bool
}

func newFakeChroma() *fakeChroma {
	return &fakeChroma{records: make(map[string]Record), nestedQuery: true}
}

type chromaBatch struct {
	IDs        []string                 `json:"ids"`
	Documents  []string                 `json:"documents"`
	Metadatas  []map[string]interface{} `json:"metadatas"`
	Embeddings [][]float32              `json:"embeddings"`
	Limit      *int                     `json:"limit"`
	Offset     *int                     `json:"offset"`
	NResults   int                      `json:"n_results"`
}

func (f *fakeChroma) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/api/v1/collections" {
			atomic.AddInt32(&f.initCalls, 1)
			_, _ = w.Write([]byte(`{"id": "col-123", "name": "documents"}`))
			return
		}

		var op string
		_, err := fmt.Sscanf(r.URL.Path, "/api/v1/collections/col-123/%s", &op)
		require.NoError(t, err, "unexpected path %s", r.URL.Path)

		if op == "count" {
			f.mu.Lock()
			count := len(f.order)
			f.mu.Unlock()
			_, _ = fmt.Fprintf(w, "%d", count)
			return
		}

		var batch chromaBatch
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&batch))

		f.mu.Lock()
		defer f.mu.Unlock()
		switch op {
		case "add", "update":
			for i, id := range batch.IDs {
				if _, ok := f.records[id]; !ok {
					f.order = append(f.order, id)
				}
				f.records[id] = Record{
					ID:        id,
					Document:  batch.Documents[i],
					Metadata:  batch.Metadatas[i],
					Embedding: batch.Embeddings[i],
				}
			}
			_, _ = w.Write([]byte(`null`))
		case "delete":
			for _, id := range batch.IDs {
				delete(f.records, id)
				for i, existing := range f.order {
					if existing == id {
						f.order = append(f.order[:i], f.order[i+1:]...)
						break
					}
				}
			}
			_, _ = w.Write([]byte(`null`))
		case "get":
			ids := batch.IDs
			if ids == nil {
				offset := 0
				if batch.Offset != nil {
					offset = *batch.Offset
				}
				if offset > len(f.order) {
					offset = len(f.order)
				}
				end := len(f.order)
				if batch.Limit != nil && offset+*batch.Limit < end {
					end = offset + *batch.Limit
				}
				ids = f.order[offset:end]
			}
			rIDs, rDocs := []string{}, []string{}
			rMetas := []map[string]interface{}{}
			for _, id := range ids {
				if rec, ok := f.records[id]; ok {
					rIDs = append(rIDs, rec.ID)
					rDocs = append(rDocs, rec.Document)
					rMetas = append(rMetas, rec.Metadata)
				}
			}
			out := map[string]interface{}{"ids": rIDs, "documents": rDocs, "metadatas": rMetas}
			_ = sonic.ConfigDefault.NewEncoder(w).Encode(out)
		case "query":
			n := batch.NResults
			if n > len(f.order) {
				n = len(f.order)
			}
			rIDs, rDocs := []string{}, []string{}
			rMetas := []map[string]interface{}{}
			for _, id := range f.order[:n] {
				rec := f.records[id]
				rIDs = append(rIDs, rec.ID)
				rDocs = append(rDocs, rec.Document)
				rMetas = append(rMetas, rec.Metadata)
			}
			var out map[string]interface{}
			if f.nestedQuery {
				out = map[string]interface{}{
					"ids":       [][]string{rIDs},
					"documents": [][]string{rDocs},
					"metadatas": [][]map[string]interface{}{rMetas},
				}
			} else {
				out = map[string]interface{}{"ids": rIDs, "documents": rDocs, "metadatas": rMetas}
			}
			_ = sonic.ConfigDefault.NewEncoder(w).Encode(out)
		default:
			t.Errorf("unexpected operation %q", op)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestChromaStore(t *testing.T) (*ChromaStore, *fakeChroma) {
	t.Helper()
	fake := newFakeChroma()
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	store, err := NewChromaStore(&VectorStoreConfig{
		Type:           VectorStoreTypeChroma,
		Host:           server.URL,
		CollectionName: "documents",
	})
	require.NoError(t, err)
	return store, fake
}

func TestChromaStoreLazyInitOnce(t *testing.T) {
	store, fake := newTestChromaStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.EnsureCollection(ctx))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.initCalls), "collection must be initialized exactly once")

	// Subsequent operations reuse the cached collection id.
	_, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.initCalls))
}

func TestChromaStoreAddAndGetByID(t *testing.T) {
	store, _ := newTestChromaStore(t)
	ctx := context.Background()

	meta := map[string]interface{}{"_title": "T", "source": "web"}
	require.NoError(t, store.Add(ctx, "id-1", "some text", meta, []float32{0.1, 0.2}))

	record, err := store.GetByID(ctx, "id-1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "id-1", record.ID)
	assert.Equal(t, "some text", record.Document)
	assert.Equal(t, "T", record.Metadata["_title"])
}

func TestChromaStoreGetByIDMissing(t *testing.T) {
	store, _ := newTestChromaStore(t)

	record, err := store.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestChromaStoreListPagination(t *testing.T) {
	store, _ := newTestChromaStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("id-%d", i)
		require.NoError(t, store.Add(ctx, id, fmt.Sprintf("text %d", i), map[string]interface{}{}, []float32{float32(i)}))
	}

	table, err := store.List(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"id-1", "id-2"}, table.IDs)

	table, err = store.List(ctx, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())
}

func TestChromaStoreUpdateAndDelete(t *testing.T) {
	store, _ := newTestChromaStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "id-1", "before", map[string]interface{}{"_title": "A"}, []float32{1}))
	require.NoError(t, store.Update(ctx, "id-1", "after", map[string]interface{}{"_title": "B"}, []float32{2}))

	record, err := store.GetByID(ctx, "id-1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "after", record.Document)
	assert.Equal(t, "B", record.Metadata["_title"])

	require.NoError(t, store.Delete(ctx, "id-1"))
	record, err = store.GetByID(ctx, "id-1")
	require.NoError(t, err)
	assert.Nil(t, record)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestChromaStoreQueryNestedResponse(t *testing.T) {
	store, _ := newTestChromaStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "id-1", "first", map[string]interface{}{"_title": "A"}, []float32{1, 0}))
	require.NoError(t, store.Add(ctx, "id-2", "second", map[string]interface{}{"_title": "B"}, []float32{0, 1}))

	result, err := store.Query(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)

	table := result.First()
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "id-1", table.Row(0).ID)
	assert.Equal(t, "first", table.Row(0).Document)
}

func TestChromaStoreQueryFlatResponse(t *testing.T) {
	store, fake := newTestChromaStore(t)
	fake.nestedQuery = false
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "id-1", "first", map[string]interface{}{}, []float32{1}))

	result, err := store.Query(ctx, []float32{1}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.First().Len())
	assert.Equal(t, "id-1", result.First().Row(0).ID)
}

func TestChromaStoreUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "boom"}`))
	}))
	t.Cleanup(server.Close)

	store, err := NewChromaStore(&VectorStoreConfig{
		Host:           server.URL,
		CollectionName: "documents",
	})
	require.NoError(t, err)

	err = store.EnsureCollection(context.Background())
	assert.Error(t, err)
}

func TestNewChromaStoreRequiresConfig(t *testing.T) {
	_, err := NewChromaStore(&VectorStoreConfig{CollectionName: "documents"})
	assert.Error(t, err)

	_, err = NewChromaStore(&VectorStoreConfig{Host: "http://localhost:8000"})
	assert.Error(t, err)
}
