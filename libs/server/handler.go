package server

import (
	"github.com/labstack/echo/v4"
	"github.com/stardustagi/NovelServer/libs/errors"
)

type Handler[Req any, Resp any] struct {
	Name string
	Tags []string
	Func func(echo.Context, Req, Resp) error
}

// 抽象接口
type IHandler interface {
	GetName() string
	GetTags() []string
	GetFunc() func(echo.Context) error
}

func NewHandler[Req any, Resp any](
	name string,
	tags []string,
	f func(echo.Context, Req, Resp) error,
) *Handler[Req, Resp] {
	return &Handler[Req, Resp]{
		Name: name,
		Tags: tags,
		Func: f,
	}
}

func (h *Handler[Req, Resp]) GetName() string {
	return h.Name
}

func (h *Handler[Req, Resp]) GetTags() []string {
	return h.Tags
}

func (h *Handler[Req, Resp]) GetFunc() func(echo.Context) error {
	return func(c echo.Context) error {
		// 每个请求独立的 req/resp
		var req Req
		var resp Resp
		// 绑定
		if err := c.Bind(&req); err != nil {
			return errors.NewValidationError(err)
		}
		// 验证
		if err := c.Validate(&req); err != nil {
			return errors.NewValidationError(err)
		}
		// 执行体
		return h.Func(c, req, resp)
	}
}
