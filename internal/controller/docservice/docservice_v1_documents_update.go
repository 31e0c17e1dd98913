package docservice

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"
	v1 "github.com/tahaky/uymbot-docservice/api/docservice/v1"
	"github.com/tahaky/uymbot-docservice/internal/logic/document"
)

func (c *ControllerV1) DocumentUpdate(ctx context.Context, req *v1.DocumentUpdateReq) (res *v1.DocumentUpdateRes, err error) {
	g.Log().Infof(ctx, "DocumentUpdate request received - Id: %s", req.Id)

	doc, err := document.GetDocumentSvr().Update(ctx, req.Id, document.UpdateInput{
		Title:    req.Title,
		Content:  req.Content,
		Metadata: req.Metadata,
	})
	if err != nil {
		return
	}

	res = &v1.DocumentUpdateRes{Document: doc}
	return
}
