package document

import (
	"context"
	"strings"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/tahaky/uymbot-docservice/core/errors"
	"github.com/tahaky/uymbot-docservice/internal/model/entity"
)

// defaultJoinSeparator joins chunk texts fetched from the RAG service.
const defaultJoinSeparator = "\n\n"

// fallbackImportTitle is used when neither an override title nor the
// RAG document filename is available.
const fallbackImportTitle = "RAG Document"

// ImportInput carries optional overrides for a RAG import.
type ImportInput struct {
	Title         string
	Metadata      map[string]interface{}
	JoinSeparator string
}

// ImportFromRag fetches document metadata and its ordered chunk list
// from the RAG service, joins the chunk texts into one document and
// feeds it through Create. The content is re-chunked by this service's
// own budget, independent of how the RAG service had chunked it.
func (s *Service) ImportFromRag(ctx context.Context, ragDocumentID string, in ImportInput) ([]entity.Document, error) {
	if s.ragClient == nil {
		return nil, errors.Newf(errors.ErrInvalidParameter, "rag import is not configured, set rag.baseURL")
	}

	ragDoc, err := s.ragClient.GetDocument(ctx, ragDocumentID)
	if err != nil {
		return nil, err
	}
	chunks, err := s.ragClient.GetChunks(ctx, ragDocumentID)
	if err != nil {
		return nil, err
	}

	separator := in.JoinSeparator
	if separator == "" {
		separator = defaultJoinSeparator
	}
	texts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		texts = append(texts, chunk.Text)
	}
	content := strings.Join(texts, separator)

	title := in.Title
	if title == "" {
		if ragDoc != nil && ragDoc.Filename != "" {
			title = ragDoc.Filename
		} else {
			title = fallbackImportTitle
		}
	}

	mergedMeta := make(map[string]interface{}, len(in.Metadata)+3)
	for k, v := range in.Metadata {
		mergedMeta[k] = v
	}
	mergedMeta["ragDocumentId"] = ragDocumentID
	if ragDoc != nil && ragDoc.Filename != "" {
		mergedMeta["ragFilename"] = ragDoc.Filename
	}
	mergedMeta["importedFrom"] = "rag"

	g.Log().Infof(ctx, "Importing RAG document %s ('%s', %d upstream chunk(s))", ragDocumentID, title, len(chunks))

	return s.Create(ctx, CreateInput{
		Title:    title,
		Content:  content,
		Metadata: mergedMeta,
	})
}
