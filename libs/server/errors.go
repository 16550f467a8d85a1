package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stardustagi/NovelServer/libs/errors"
	"github.com/stardustagi/NovelServer/libs/logs"
	"github.com/stardustagi/NovelServer/protocol"
	"go.uber.org/zap"
)

// ErrorHandler 把 StackError 和 echo.HTTPError 统一成 BaseResponse.
// 响应已经开始写入时(流式输出中途失败)只记录日志
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			logger.Warn("error after response committed", logs.RequestID(GetRequestID(c)), logs.ErrorInfo(err))
			return
		}

		if he, ok := err.(*echo.HTTPError); ok {
			msg := http.StatusText(he.Code)
			if s, ok := he.Message.(string); ok {
				msg = s
			}
			_ = protocol.Fail(c, he.Code, he.Code, msg)
			return
		}

		status := errors.HTTPStatus(err)
		code, msg := errors.CodeInternal, http.StatusText(status)
		if se, ok := errors.As(err); ok {
			code, msg = se.Code(), se.Error()
		}
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", logs.RequestID(GetRequestID(c)), logs.String("path", c.Path()), logs.ErrorInfo(err))
		}
		_ = protocol.Fail(c, status, code, msg)
	}
}
