package docservice

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"
	v1 "github.com/tahaky/uymbot-docservice/api/docservice/v1"
	"github.com/tahaky/uymbot-docservice/internal/logic/document"
)

func (c *ControllerV1) DocumentSearch(ctx context.Context, req *v1.DocumentSearchReq) (res *v1.DocumentSearchRes, err error) {
	g.Log().Infof(ctx, "DocumentSearch request received - Query: %s, NResults: %d", req.Query, req.NResults)

	docs, err := document.GetDocumentSvr().Search(ctx, req.Query, req.NResults)
	if err != nil {
		return
	}

	res = &v1.DocumentSearchRes{Data: docs}
	return
}
