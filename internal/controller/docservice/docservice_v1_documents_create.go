package docservice

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"
	v1 "github.com/tahaky/uymbot-docservice/api/docservice/v1"
	"github.com/tahaky/uymbot-docservice/internal/logic/document"
)

func (c *ControllerV1) DocumentCreate(ctx context.Context, req *v1.DocumentCreateReq) (res *v1.DocumentCreateRes, err error) {
	g.Log().Infof(ctx, "DocumentCreate request received - Title: %s, ContentLength: %d", req.Title, len(req.Content))

	chunks, err := document.GetDocumentSvr().Create(ctx, document.CreateInput{
		Title:    req.Title,
		Content:  req.Content,
		Metadata: req.Metadata,
	})
	if err != nil {
		return
	}

	res = &v1.DocumentCreateRes{Chunks: chunks}
	return
}
