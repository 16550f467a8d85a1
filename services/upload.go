package services

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stardustagi/NovelServer/libs/blob"
	"github.com/stardustagi/NovelServer/libs/errors"
	"github.com/stardustagi/NovelServer/libs/logs"
	"github.com/stardustagi/NovelServer/libs/metrics"
	"github.com/stardustagi/NovelServer/libs/server"
	"github.com/stardustagi/NovelServer/utils"
)

const (
	HeaderFilename     = "x-vercel-filename"
	DefaultFilename    = "file.txt"
	DefaultContentType = "text/plain"
)

type BlobStore interface {
	EnsureConfigured() error
	Put(ctx context.Context, pathname string, body []byte, opts blob.PutOptions) (*blob.Blob, error)
}

type UploadService struct {
	BaseService
	store BlobStore
}

func NewUploadService(store BlobStore, collector *metrics.Collector) *UploadService {
	return &UploadService{
		BaseService: BaseService{
			logger:  logs.GetLogger("upload"),
			metrics: collector,
		},
		store: store,
	}
}

func (s *UploadService) Name() string {
	return "upload"
}

func (s *UploadService) Register(bk *server.Backend) {
	bk.AddNativeHandler(http.MethodPost, "upload", s.Upload)
}

// Upload 请求体原样转存, 返回存储服务的描述
func (s *UploadService) Upload(c echo.Context) error {
	// 凭证缺失时不读取请求体
	if err := s.store.EnsureConfigured(); err != nil {
		return err
	}

	ctx := server.NewContext(c)
	header := ctx.Header
	filename := utils.HeaderOr(header, HeaderFilename, DefaultFilename)
	contentType := utils.HeaderOr(header, echo.HeaderContentType, DefaultContentType)
	pathname := blob.FinalName(filename, contentType)

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}

	b, err := s.store.Put(c.Request().Context(), pathname, body, blob.PutOptions{
		ContentType: contentType,
		Access:      blob.AccessPublic,
	})
	if err != nil {
		if errors.IsUpstream(err) {
			s.metrics.UpstreamError(blob.ProviderName)
		}
		return err
	}
	s.metrics.AddUploadBytes(int64(len(body)))

	s.logger.Info("file uploaded",
		logs.RequestID(ctx.RequestID),
		logs.String("remote", ctx.RemoteAddr),
		logs.String("pathname", b.Pathname),
		logs.String("content_type", contentType),
		logs.Int("bytes", len(body)),
	)
	return c.JSONBlob(http.StatusOK, b.Raw)
}
