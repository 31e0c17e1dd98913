package cmd

import (
	"net/http"

	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/net/ghttp"
	"github.com/tahaky/uymbot-docservice/core/errors"
)

// MiddlewareHandlerResponse is the default middleware handling handler
// response object and its error. Business errors carry their own code
// and HTTP status; everything else maps to an internal error.
func MiddlewareHandlerResponse(r *ghttp.Request) {
	r.Middleware.Next()

	// There's custom buffer content, it then exits current handler.
	if r.Response.BufferLength() > 0 || r.Response.Writer.BytesWritten() > 0 {
		return
	}

	var (
		msg  string
		code int
		err  = r.GetError()
		res  = r.GetHandlerResponse()
	)
	switch {
	case err != nil:
		if appErr := errors.GetAppError(err); appErr != nil {
			code = int(appErr.Code)
			msg = appErr.Message
			r.Response.WriteHeader(appErr.Code.HTTPStatusCode())
		} else {
			gfCode := gerror.Code(err)
			if gfCode == gcode.CodeNil {
				gfCode = gcode.CodeInternalError
			}
			code = gfCode.Code()
			msg = err.Error()
			r.Response.WriteHeader(statusFromCode(gfCode))
		}
	case r.Response.Status > 0 && r.Response.Status != http.StatusOK:
		switch r.Response.Status {
		case http.StatusNotFound:
			code = gcode.CodeNotFound.Code()
			msg = gcode.CodeNotFound.Message()
		case http.StatusForbidden:
			code = gcode.CodeNotAuthorized.Code()
			msg = gcode.CodeNotAuthorized.Message()
		default:
			code = gcode.CodeUnknown.Code()
			msg = gcode.CodeUnknown.Message()
		}
		// It creates an error as it can be retrieved by other middlewares.
		r.SetError(gerror.NewCode(gcode.New(code, msg, nil), msg))
	default:
		code = gcode.CodeOK.Code()
		msg = gcode.CodeOK.Message()
	}

	r.Response.WriteJson(ghttp.DefaultHandlerResponse{
		Code:    code,
		Message: msg,
		Data:    res,
	})
}

func statusFromCode(code gcode.Code) int {
	switch code {
	case gcode.CodeValidationFailed, gcode.CodeInvalidParameter, gcode.CodeMissingParameter:
		return http.StatusBadRequest
	case gcode.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
