package docservice

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"
	v1 "github.com/tahaky/uymbot-docservice/api/docservice/v1"
	"github.com/tahaky/uymbot-docservice/internal/logic/document"
)

func (c *ControllerV1) DocumentsList(ctx context.Context, req *v1.DocumentsListReq) (res *v1.DocumentsListRes, err error) {
	g.Log().Infof(ctx, "DocumentsList request received - Limit: %d, Offset: %d", req.Limit, req.Offset)

	docs, err := document.GetDocumentSvr().ListAll(ctx, req.Limit, req.Offset)
	if err != nil {
		return
	}

	res = &v1.DocumentsListRes{Data: docs}
	return
}
