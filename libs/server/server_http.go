package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stardustagi/NovelServer/libs/logs"
	"go.uber.org/zap"
)

type HttpServer struct {
	addr   string
	path   string
	logger *zap.Logger
	engine *echo.Echo
}

func NewHttpServer(config HttpServerConfig) (*HttpServer, error) {
	if config.Path != "" && config.Path[0] != '/' {
		return nil, errors.New("the http.path must start with a /")
	}

	logger := logs.GetLogger("httpServer")
	engine := echo.New()
	engine.HideBanner = true
	engine.HidePort = true
	engine.Validator = NewCustomValidator()
	engine.HTTPErrorHandler = ErrorHandler(logger)

	engine.Use(middleware.Recover())
	engine.Use(RequestID())
	if config.BodyLimit != "" {
		engine.Use(middleware.BodyLimit(config.BodyLimit))
	}
	if config.Cors {
		engine.Use(Cors())
	}
	if config.RequestLog {
		engine.Use(Request(logger))
	}

	return &HttpServer{
		logger: logger,
		engine: engine,
		addr:   fmt.Sprintf("%s:%d", config.Address, config.Port),
		path:   config.Path,
	}, nil
}

func (m *HttpServer) Engine() *echo.Echo {
	return m.engine
}

func (m *HttpServer) Addr() string {
	return m.addr
}

func (m *HttpServer) Use(middleware ...echo.MiddlewareFunc) *HttpServer {
	m.engine.Use(middleware...)
	return m
}

// Startup 在后台监听, 监听失败写入返回的 channel
func (m *HttpServer) Startup() <-chan error {
	m.logger.Info("http server listened on:", zap.String("addr", m.Addr()))
	// 打印路由
	for _, route := range m.engine.Routes() {
		m.logger.Info("http route registered:", logs.String("method", route.Method), logs.String("path", route.Path))
	}
	errCh := make(chan error, 1)
	go func() {
		if err := m.engine.Start(m.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("http server stopped:", zap.Error(err))
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

func (m *HttpServer) Stop(ctx context.Context) {
	if err := m.engine.Shutdown(ctx); err != nil {
		m.logger.Error("shutdown http server:", zap.Error(err))
	}
}

func (m *HttpServer) apiPath(path string) string {
	p, _ := url.JoinPath(m.join("api"), path)
	return p
}

func (m *HttpServer) join(path string) string {
	base := m.path
	if base == "" {
		base = "/"
	}
	p, _ := url.JoinPath(base, path)
	return p
}

// Handle registers a new route under <path>/api.
func (m *HttpServer) Handle(method string, path string, handler IHandler) {
	m.engine.Add(method, m.apiPath(path), handler.GetFunc())
}

// HandleNative registers a raw echo handler under <path>/api, for routes
// that read the body themselves or stream the response.
func (m *HttpServer) HandleNative(method string, path string, handler echo.HandlerFunc) {
	m.engine.Add(method, m.apiPath(path), handler)
}

// HandleRoot registers a handler relative to the server path, outside /api.
func (m *HttpServer) HandleRoot(method string, path string, handler echo.HandlerFunc) {
	m.engine.Add(method, m.join(path), handler)
}

func (m *HttpServer) Post(path string, handler IHandler) {
	m.Handle(http.MethodPost, path, handler)
}
