package protocol

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stardustagi/NovelServer/libs/errors"
)

// 返回定义
type BaseResponse struct {
	ErrCode int         `json:"errcode"`
	ErrMsg  string      `json:"errmsg,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func Response(c echo.Context, err *errors.StackError, data any) error {
	if err == nil {
		return c.JSON(http.StatusOK, BaseResponse{
			ErrCode: errors.CodeOK,
			ErrMsg:  "ok",
			Data:    data,
		})
	}
	return Fail(c, err.Status(), err.Code(), err.Error())
}

// Fail 失败响应, status 为 HTTP 状态码
func Fail(c echo.Context, status int, code int, msg string) error {
	if c.Request().Method == http.MethodHead {
		return c.NoContent(status)
	}
	return c.JSON(status, BaseResponse{
		ErrCode: code,
		ErrMsg:  msg,
	})
}
