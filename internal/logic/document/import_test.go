package document

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tahaky/uymbot-docservice/core/embedding"
	"github.com/tahaky/uymbot-docservice/core/errors"
	"github.com/tahaky/uymbot-docservice/core/rag_client"
	"github.com/tahaky/uymbot-docservice/core/vector_store"
)

const testRagDocumentID = "123e4567-e89b-12d3-a456-426614174000"

func newRagServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/documents/" + testRagDocumentID:
			_, _ = w.Write([]byte(`{
				"id": "` + testRagDocumentID + `",
				"filename": "guide.pdf",
				"format": "pdf",
				"status": "PROCESSED",
				"chunkCount": 2,
				"parserVersion": "3.1"
			}`))
		case "/api/documents/" + testRagDocumentID + "/chunks":
			_, _ = w.Write([]byte(`[
				{"chunkId": "c1", "documentId": "` + testRagDocumentID + `", "text": "Alpha part.", "chunkType": "text", "extra": true},
				{"chunkId": "c2", "documentId": "` + testRagDocumentID + `", "text": "Beta part.", "chunkType": "text"}
			]`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": "not found"}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newImportService(t *testing.T, ragBaseURL string) *Service {
	t.Helper()
	client, err := rag_client.NewClient(ragBaseURL)
	require.NoError(t, err)
	// A large budget keeps the joined content in one chunk.
	return NewService(vector_store.NewMemoryStore(), embedding.NewHashEmbedder(), client, 4000)
}

func TestImportFromRag(t *testing.T) {
	server := newRagServer(t)
	svc := newImportService(t, server.URL)
	ctx := context.Background()

	docs, err := svc.ImportFromRag(ctx, testRagDocumentID, ImportInput{})
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "guide.pdf", doc.Title, "title falls back to the upstream filename")
	assert.Equal(t, "Alpha part.\n\nBeta part.", doc.Content)
	assert.Equal(t, testRagDocumentID, doc.Metadata["ragDocumentId"])
	assert.Equal(t, "guide.pdf", doc.Metadata["ragFilename"])
	assert.Equal(t, "rag", doc.Metadata["importedFrom"])

	got, err := svc.GetByID(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, "guide.pdf", got.Title)
	assert.NotContains(t, got.Metadata, titleKey)
}

func TestImportFromRagOverrides(t *testing.T) {
	server := newRagServer(t)
	svc := newImportService(t, server.URL)

	docs, err := svc.ImportFromRag(context.Background(), testRagDocumentID, ImportInput{
		Title:         "Custom title",
		Metadata:      map[string]interface{}{"project": "uymbot"},
		JoinSeparator: " | ",
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "Custom title", doc.Title)
	assert.Equal(t, "Alpha part. | Beta part.", doc.Content)
	assert.Equal(t, "uymbot", doc.Metadata["project"])
	assert.Equal(t, "rag", doc.Metadata["importedFrom"])
}

func TestImportFromRagUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "boom"}`))
	}))
	t.Cleanup(server.Close)
	svc := newImportService(t, server.URL)

	_, err := svc.ImportFromRag(context.Background(), testRagDocumentID, ImportInput{})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrRagServiceCall, appErr.Code)
}

func TestImportFromRagNotConfigured(t *testing.T) {
	svc := NewService(vector_store.NewMemoryStore(), embedding.NewHashEmbedder(), nil, 4000)

	_, err := svc.ImportFromRag(context.Background(), testRagDocumentID, ImportInput{})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidParameter, appErr.Code)
}
