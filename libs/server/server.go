package server

import (
	"context"
	"time"

	"github.com/stardustagi/NovelServer/libs/logs"
	"github.com/stardustagi/NovelServer/utils"
	"go.uber.org/zap"
)

// Server 进程生命周期: 等待退出信号后关闭 backend
type Server struct {
	Ctx             context.Context
	cancel          context.CancelFunc
	logger          *zap.Logger
	doneCh          chan struct{}
	shutdownTimeout time.Duration
}

func NewServer(shutdownTimeout time.Duration) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		Ctx:             ctx,
		cancel:          cancel,
		logger:          logs.GetLogger("Server"),
		doneCh:          utils.MakeShutdownCh(),
		shutdownTimeout: shutdownTimeout,
	}
}

// Run 启动 backend, 阻塞到收到信号或监听失败
func (m *Server) Run(backend *Backend) error {
	errCh := backend.Start()
	m.logger.Info("server running", zap.String("addr", backend.Addr()))
	var err error
	select {
	case <-m.doneCh:
	case err = <-errCh:
	}
	m.cancel()
	m.logger.Info("server shutting...")
	ctx, cancel := context.WithTimeout(context.Background(), m.shutdownTimeout)
	defer cancel()
	backend.Stop(ctx)
	m.logger.Info("server shutdown completed")
	return err
}
