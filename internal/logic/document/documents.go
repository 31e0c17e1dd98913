// Package document orchestrates the chunk/embed/store/query pipeline.
//
// Writes flow Chunker -> Embedder -> VectorStore, one store call per
// chunk. There is no transaction across chunks: when embedding or
// storing chunk N fails, chunks 0..N-1 stay persisted and the whole
// operation fails. Reads reassemble the store's tabular responses into
// one Document per chunk.
package document

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/google/uuid"
	"github.com/tahaky/uymbot-docservice/core/chunker"
	"github.com/tahaky/uymbot-docservice/core/embedding"
	"github.com/tahaky/uymbot-docservice/core/errors"
	"github.com/tahaky/uymbot-docservice/core/rag_client"
	"github.com/tahaky/uymbot-docservice/core/vector_store"
	"github.com/tahaky/uymbot-docservice/internal/model/entity"
)

const (
	// titleKey is the reserved metadata key holding the document
	// title inside the vector store. It never reaches API callers.
	titleKey = "_title"

	chunkIndexKey  = "chunkIndex"
	totalChunksKey = "totalChunks"
)

// CreateInput is the input for storing a new document.
type CreateInput struct {
	Title    string
	Content  string
	Metadata map[string]interface{}
}

// UpdateInput is a partial update. Nil fields keep the existing value.
type UpdateInput struct {
	Title    *string
	Content  *string
	Metadata map[string]interface{}
}

// Service is the document pipeline over a vector store, an embedder
// and the RAG import client.
type Service struct {
	store         vector_store.VectorStore
	embedder      embedding.Embedder
	ragClient     *rag_client.Client
	maxChunkChars int
}

// NewService creates a document pipeline. ragClient may be nil when
// RAG import is not configured.
func NewService(store vector_store.VectorStore, embedder embedding.Embedder, ragClient *rag_client.Client, maxChunkChars int) *Service {
	return &Service{
		store:         store,
		embedder:      embedder,
		ragClient:     ragClient,
		maxChunkChars: maxChunkChars,
	}
}

// Create splits the document content into chunks, embeds each chunk
// and stores them all. It returns one Document per chunk, in split
// order; callers must not assume a document maps to a single record.
func (s *Service) Create(ctx context.Context, in CreateInput) ([]entity.Document, error) {
	chunks := chunker.Split(in.Content, s.maxChunkChars)
	totalChunks := len(chunks)
	g.Log().Debugf(ctx, "Creating document '%s' as %d chunk(s)", in.Title, totalChunks)

	responses := make([]entity.Document, 0, totalChunks)
	for i, chunkText := range chunks {
		chunkID := uuid.New().String()

		meta := buildMeta(in.Title, in.Metadata)
		responseMeta := copyMeta(in.Metadata)
		// Positional keys only make sense when the document was
		// actually split; a single-chunk document stays untagged.
		if totalChunks > 1 {
			meta[chunkIndexKey] = i
			meta[totalChunksKey] = totalChunks
			responseMeta[chunkIndexKey] = i
			responseMeta[totalChunksKey] = totalChunks
		}

		vector, err := s.embedder.Embed(ctx, chunkText)
		if err != nil {
			return nil, err
		}
		if err := s.store.Add(ctx, chunkID, chunkText, meta, vector); err != nil {
			return nil, err
		}

		responses = append(responses, entity.Document{
			Id:       chunkID,
			Title:    in.Title,
			Content:  chunkText,
			Metadata: responseMeta,
		})
	}
	return responses, nil
}

// GetByID fetches one chunk record by id.
func (s *Service) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.Newf(errors.ErrDocumentNotFound, "document not found: %s", id)
	}
	doc := toDocument(*record)
	return &doc, nil
}

// ListAll returns stored chunks using offset pagination. An empty
// store yields an empty list, not an error.
func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]entity.Document, error) {
	table, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return tableToDocuments(table), nil
}

// Update applies a partial update to one chunk record. The embedding
// is always recomputed from the merged content, even when only the
// metadata changed: this layer cannot tell whether the content changed
// without recomputing, so it deliberately does not optimize that away.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*entity.Document, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newTitle := existing.Title
	if in.Title != nil {
		newTitle = *in.Title
	}
	newContent := existing.Content
	if in.Content != nil {
		newContent = *in.Content
	}
	newMetadata := existing.Metadata
	if in.Metadata != nil {
		newMetadata = in.Metadata
	}

	vector, err := s.embedder.Embed(ctx, newContent)
	if err != nil {
		return nil, err
	}
	meta := buildMeta(newTitle, newMetadata)
	if err := s.store.Update(ctx, id, newContent, meta, vector); err != nil {
		return nil, err
	}

	return &entity.Document{
		Id:       id,
		Title:    newTitle,
		Content:  newContent,
		Metadata: newMetadata,
	}, nil
}

// Delete removes one chunk record, failing with not-found when the id
// does not exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// Search embeds the query text and returns the most similar chunks.
// An empty collection short-circuits to an empty result without
// calling the embedder or the store's query endpoint.
func (s *Service) Search(ctx context.Context, query string, nResults int) ([]entity.Document, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return []entity.Document{}, nil
	}
	if nResults > count {
		nResults = count
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	result, err := s.store.Query(ctx, vector, nResults)
	if err != nil {
		return nil, err
	}
	// Only the first query's row-group is relevant; the store nests
	// results per query even for a single query.
	return tableToDocuments(result.First()), nil
}

// buildMeta copies extra metadata and stamps the reserved title key.
func buildMeta(title string, extra map[string]interface{}) map[string]interface{} {
	meta := copyMeta(extra)
	meta[titleKey] = title
	return meta
}

func copyMeta(metadata map[string]interface{}) map[string]interface{} {
	meta := make(map[string]interface{}, len(metadata)+2)
	for k, v := range metadata {
		meta[k] = v
	}
	return meta
}

// toDocument reassembles one store record into a Document, stripping
// the reserved title key out of the caller-visible metadata.
func toDocument(record vector_store.Record) entity.Document {
	meta := copyMeta(record.Metadata)
	title, _ := meta[titleKey].(string)
	delete(meta, titleKey)
	return entity.Document{
		Id:       record.ID,
		Title:    title,
		Content:  record.Document,
		Metadata: meta,
	}
}

func tableToDocuments(table *vector_store.Table) []entity.Document {
	docs := make([]entity.Document, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		docs = append(docs, toDocument(table.Row(i)))
	}
	return docs
}
