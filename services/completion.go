package services

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stardustagi/NovelServer/libs/errors"
	"github.com/stardustagi/NovelServer/libs/logs"
	"github.com/stardustagi/NovelServer/libs/metrics"
	"github.com/stardustagi/NovelServer/libs/server"
	"github.com/stardustagi/NovelServer/llm/clients"
	"github.com/stardustagi/NovelServer/llm/models"
)

type CompletionService struct {
	BaseService
	completer models.Completer
}

func NewCompletionService(completer models.Completer, collector *metrics.Collector) *CompletionService {
	return &CompletionService{
		BaseService: BaseService{
			logger:  logs.GetLogger("completion"),
			metrics: collector,
		},
		completer: completer,
	}
}

func (s *CompletionService) Name() string {
	return "completion"
}

func (s *CompletionService) Register(bk *server.Backend) {
	bk.AddPostHandler(server.NewHandler("generate", []string{"completion"}, s.Generate))
}

// Generate 把上游的增量文本按到达顺序写给调用方.
// 第一段到达前失败返回错误响应; 之后失败只截断输出
func (s *CompletionService) Generate(c echo.Context, req models.CompletionRequest, _ struct{}) error {
	requestID := server.GetRequestID(c)
	start := time.Now()

	stream, err := s.completer.Stream(c.Request().Context(), req)
	if err != nil {
		if errors.IsUpstream(err) {
			s.metrics.UpstreamError(clients.ProviderName)
		}
		return err
	}
	defer stream.Close()

	first, err := stream.Recv()
	if err != nil && err != io.EOF {
		s.metrics.UpstreamError(clients.ProviderName)
		return err
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, echo.MIMETextPlainCharsetUTF8)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	chunks := 0
	for chunk := first; err == nil; chunk, err = stream.Recv() {
		if _, werr := w.Write([]byte(chunk.Text)); werr != nil {
			s.logger.Warn("client went away", logs.RequestID(requestID), logs.Int("chunks", chunks), logs.ErrorInfo(werr))
			return nil
		}
		w.Flush()
		chunks++
		s.metrics.AddChunk()
	}
	if err != io.EOF && c.Request().Context().Err() != nil {
		// 调用方断开, 上游随请求 context 一起取消, 不计入上游错误
		s.logger.Warn("client disconnected", logs.RequestID(requestID), logs.Int("chunks", chunks), logs.ErrorInfo(err))
		return nil
	}
	if err != io.EOF {
		s.metrics.UpstreamError(clients.ProviderName)
		s.logger.Error("completion stream aborted",
			logs.RequestID(requestID),
			logs.Int("chunks", chunks),
			logs.ErrorInfo(err),
		)
		return nil
	}

	s.logger.Info("completion finished",
		logs.RequestID(requestID),
		logs.Int("chunks", chunks),
		logs.Duration("elapsed", time.Since(start)),
	)
	return nil
}
