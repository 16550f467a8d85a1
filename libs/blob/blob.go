// Package blob stores uploaded files in Vercel Blob storage.
package blob

import (
	"context"
	"encoding/json"
	"mime"
	"net/url"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/stardustagi/NovelServer/libs/errors"
	"github.com/stardustagi/NovelServer/utils"
	"resty.dev/v3"
)

const (
	DefaultBaseURL    = "https://blob.vercel-storage.com"
	DefaultAPIVersion = "7"
	ProviderName      = "blob"

	AccessPublic = "public"
)

type BlobConfig struct {
	Token      string `json:"token" toml:"token"`
	BaseURL    string `json:"base_url" toml:"base_url"`
	APIVersion string `json:"api_version" toml:"api_version"`
}

// LoadBlobConfig 解析 [blob] 配置段, token 为空时读取 BLOB_READ_WRITE_TOKEN
func LoadBlobConfig(raw []byte) (BlobConfig, error) {
	var cfg BlobConfig
	if len(raw) > 0 {
		var err error
		if cfg, err = utils.Bytes2Struct[BlobConfig](raw); err != nil {
			return cfg, err
		}
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv("BLOB_READ_WRITE_TOKEN")
	}
	return cfg, nil
}

// Blob 存储服务返回的描述, Raw 为原始响应体
type Blob struct {
	URL                string          `json:"url"`
	DownloadURL        string          `json:"downloadUrl"`
	Pathname           string          `json:"pathname"`
	ContentType        string          `json:"contentType"`
	ContentDisposition string          `json:"contentDisposition"`
	Raw                json.RawMessage `json:"-"`
}

type PutOptions struct {
	ContentType string
	Access      string
}

type Client struct {
	config BlobConfig
	once   sync.Once
	http   *resty.Client
}

func NewClient(config BlobConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.APIVersion == "" {
		config.APIVersion = DefaultAPIVersion
	}
	return &Client{config: config}
}

func (m *Client) EnsureConfigured() error {
	if m.config.Token == "" {
		return errors.NewConfigurationError("missing BLOB_READ_WRITE_TOKEN")
	}
	m.once.Do(func() {
		m.http = resty.New().
			SetBaseURL(strings.TrimRight(m.config.BaseURL, "/")).
			SetAuthToken(m.config.Token).
			SetHeader("x-api-version", m.config.APIVersion)
	})
	return nil
}

// Put 上传 body, 不重试
func (m *Client) Put(ctx context.Context, pathname string, body []byte, opts PutOptions) (*Blob, error) {
	if err := m.EnsureConfigured(); err != nil {
		return nil, err
	}
	if pathname == "" {
		return nil, errors.NewValidationError(pkgerrors.New("pathname is required"))
	}
	if opts.Access != AccessPublic {
		return nil, errors.NewValidationError(pkgerrors.Errorf("access must be %q", AccessPublic))
	}

	req := m.http.R().
		SetContext(ctx).
		SetBody(body)
	if opts.ContentType != "" {
		req.SetHeader("x-content-type", opts.ContentType)
	}
	resp, err := req.Put("/" + escapePath(pathname))
	if err != nil {
		return nil, errors.NewUpstreamError(err, ProviderName)
	}
	if resp.IsError() {
		return nil, errors.NewUpstreamError(upstreamStatus(resp.StatusCode(), resp.Bytes()), ProviderName)
	}

	raw := resp.Bytes()
	var out Blob
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.NewUpstreamError(pkgerrors.Wrap(err, "decode blob response"), ProviderName)
	}
	if out.URL == "" {
		return nil, errors.NewUpstreamError(pkgerrors.New("blob response has no url"), ProviderName)
	}
	out.Raw = json.RawMessage(raw)
	return &out, nil
}

// upstreamStatus 提取 {"error":{"code","message"}} 中的信息
func upstreamStatus(status int, body []byte) error {
	var e struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error.Message != "" {
		return pkgerrors.Errorf("status %d: %s (%s)", status, e.Error.Message, e.Error.Code)
	}
	return pkgerrors.Errorf("status %d: %s", status, strings.TrimSpace(string(body)))
}

func escapePath(pathname string) string {
	segments := strings.Split(strings.TrimLeft(pathname, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// FinalName 由 content-type 的子类型得到扩展名, 文件名不以该扩展名结尾时追加.
// "text/plain; charset=utf-8" 的扩展名为 ".plain", 没有子类型时不追加
func FinalName(filename, contentType string) string {
	ext := Extension(contentType)
	if ext == "" || strings.HasSuffix(filename, ext) {
		return filename
	}
	return filename + ext
}

func Extension(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	}
	_, subtype, ok := strings.Cut(mediaType, "/")
	if !ok || subtype == "" {
		return ""
	}
	return "." + strings.ToLower(subtype)
}
