package docservice

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"
	v1 "github.com/tahaky/uymbot-docservice/api/docservice/v1"
	"github.com/tahaky/uymbot-docservice/internal/logic/document"
)

func (c *ControllerV1) DocumentDelete(ctx context.Context, req *v1.DocumentDeleteReq) (res *v1.DocumentDeleteRes, err error) {
	g.Log().Infof(ctx, "DocumentDelete request received - Id: %s", req.Id)

	if err = document.GetDocumentSvr().Delete(ctx, req.Id); err != nil {
		return
	}

	res = &v1.DocumentDeleteRes{}
	return
}
