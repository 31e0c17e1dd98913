package docservice

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"
	v1 "github.com/tahaky/uymbot-docservice/api/docservice/v1"
	"github.com/tahaky/uymbot-docservice/internal/logic/document"
)

func (c *ControllerV1) DocumentImportRag(ctx context.Context, req *v1.DocumentImportRagReq) (res *v1.DocumentImportRagRes, err error) {
	g.Log().Infof(ctx, "DocumentImportRag request received - RagDocumentId: %s", req.RagDocumentId)

	chunks, err := document.GetDocumentSvr().ImportFromRag(ctx, req.RagDocumentId, document.ImportInput{
		Title:         req.Title,
		Metadata:      req.Metadata,
		JoinSeparator: req.JoinSeparator,
	})
	if err != nil {
		return
	}

	res = &v1.DocumentImportRagRes{Chunks: chunks}
	return
}
