package server

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/stardustagi/NovelServer/libs/logs"
	"go.uber.org/zap"
)

type Backend struct {
	config     HttpServerConfig
	Logger     *zap.Logger
	httpServer *HttpServer
}

func NewBackend(config HttpServerConfig) (*Backend, error) {
	httpServer, err := NewHttpServer(config)
	if err != nil {
		return nil, err
	}
	return &Backend{
		config:     config,
		Logger:     logs.GetLogger("http_backend"),
		httpServer: httpServer,
	}, nil
}

func (m *Backend) Use(middleware ...echo.MiddlewareFunc) {
	m.httpServer.Use(middleware...)
}

func (m *Backend) AddPostHandler(h IHandler) {
	m.httpServer.Post(h.GetName(), h)
	m.Logger.Info("http handler registered", logs.String("name", h.GetName()), zap.Strings("tags", h.GetTags()))
}

func (m *Backend) AddNativeHandler(method string, path string, handler echo.HandlerFunc) {
	m.httpServer.HandleNative(method, path, handler)
}

func (m *Backend) AddRootHandler(method string, path string, handler echo.HandlerFunc) {
	m.httpServer.HandleRoot(method, path, handler)
}

// Addr 监听地址 host:port
func (m *Backend) Addr() string {
	return m.httpServer.Addr()
}

func (m *Backend) Engine() *echo.Echo {
	return m.httpServer.Engine()
}

func (m *Backend) Start() <-chan error {
	return m.httpServer.Startup()
}

func (m *Backend) Stop(ctx context.Context) {
	m.httpServer.Stop(ctx)
}
