package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stardustagi/NovelServer/utils"
)

type Context struct {
	echo.Context
	RemoteAddr string
	RequestID  string
	Header     http.Header
}

func NewContext(c echo.Context) *Context {
	return &Context{
		Context:    c,
		RemoteAddr: utils.GetRemoteAddr(c.Request()),
		RequestID:  GetRequestID(c),
		Header:     c.Request().Header,
	}
}

// GetRequestID 读取 RequestID 中间件写入的请求 ID
func GetRequestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
