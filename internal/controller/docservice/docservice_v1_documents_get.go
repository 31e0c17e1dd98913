package docservice

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"
	v1 "github.com/tahaky/uymbot-docservice/api/docservice/v1"
	"github.com/tahaky/uymbot-docservice/internal/logic/document"
)

func (c *ControllerV1) DocumentGet(ctx context.Context, req *v1.DocumentGetReq) (res *v1.DocumentGetRes, err error) {
	g.Log().Infof(ctx, "DocumentGet request received - Id: %s", req.Id)

	doc, err := document.GetDocumentSvr().GetByID(ctx, req.Id)
	if err != nil {
		return
	}

	res = &v1.DocumentGetRes{Document: doc}
	return
}
