package services

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stardustagi/NovelServer/libs/server"
	"github.com/stardustagi/NovelServer/protocol"
)

type HealthService struct {
	completion interface{ EnsureConfigured() error }
	upload     interface{ EnsureConfigured() error }
}

func NewHealthService(completion, upload interface{ EnsureConfigured() error }) *HealthService {
	return &HealthService{completion: completion, upload: upload}
}

func (s *HealthService) Name() string {
	return "health"
}

func (s *HealthService) Register(bk *server.Backend) {
	bk.AddNativeHandler(http.MethodGet, "health", s.Health)
}

// Health 报告各端点凭证是否就绪, 不访问上游
func (s *HealthService) Health(c echo.Context) error {
	return protocol.Response(c, nil, map[string]any{
		"status":     "ok",
		"completion": s.completion.EnsureConfigured() == nil,
		"upload":     s.upload.EnsureConfigured() == nil,
	})
}
