package services

import (
	"github.com/stardustagi/NovelServer/libs/metrics"
	"github.com/stardustagi/NovelServer/libs/server"
	"go.uber.org/zap"
)

// Service 注册自己的路由到 backend
type Service interface {
	Name() string
	Register(bk *server.Backend)
}

type BaseService struct {
	logger  *zap.Logger
	metrics *metrics.Collector
}

// RegisterAll 按顺序注册服务
func RegisterAll(bk *server.Backend, services ...Service) {
	for _, s := range services {
		s.Register(bk)
		bk.Logger.Info("service registered", zap.String("service", s.Name()))
	}
}
