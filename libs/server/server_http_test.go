package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stardustagi/NovelServer/libs/errors"
	"github.com/stardustagi/NovelServer/libs/logs"
	"github.com/stardustagi/NovelServer/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type HelloReq struct {
	Name string `json:"name" validate:"required"`
}

type HelloResp struct {
	Message string `json:"message"`
}

func newTestBackend(t *testing.T, path string) *Backend {
	logs.SetLogger(zaptest.NewLogger(t))
	bk, err := NewBackend(HttpServerConfig{Port: 8080, Path: path, RequestLog: true, Cors: true})
	require.NoError(t, err)

	bk.AddPostHandler(NewHandler(
		"hello",
		[]string{"greet"},
		func(ctx echo.Context, req HelloReq, resp HelloResp) error {
			resp.Message = "Hello " + req.Name
			return protocol.Response(ctx, nil, resp)
		},
	))
	bk.AddNativeHandler(http.MethodGet, "config", func(c echo.Context) error {
		return errors.NewConfigurationError("missing credential")
	})
	bk.AddRootHandler(http.MethodGet, "ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	return bk
}

func serve(bk *Backend, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	bk.Engine().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) protocol.BaseResponse {
	var body protocol.BaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestNewHttpRejectsRelativePath(t *testing.T) {
	_, err := NewHttpServer(HttpServerConfig{Path: "novel"})
	assert.Error(t, err)
}

func TestHandlerBindAndValidate(t *testing.T) {
	bk := newTestBackend(t, "")

	rec := serve(bk, http.MethodPost, "/api/hello", `{"name":"novel"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	body := decode(t, rec)
	assert.Equal(t, map[string]interface{}{"message": "Hello novel"}, body.Data)

	rec = serve(bk, http.MethodPost, "/api/hello", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, errors.CodeValidation, body.ErrCode)
	assert.Contains(t, body.ErrMsg, "name")

	rec = serve(bk, http.MethodPost, "/api/hello", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorHandlerMapsStackError(t *testing.T) {
	bk := newTestBackend(t, "")
	rec := serve(bk, http.MethodGet, "/api/config", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, errors.CodeConfiguration, body.ErrCode)
	assert.Equal(t, "missing credential", body.ErrMsg)
}

func TestErrorHandlerNotFound(t *testing.T) {
	bk := newTestBackend(t, "")
	rec := serve(bk, http.MethodGet, "/api/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decode(t, rec).ErrCode)
}

func TestServerPathPrefix(t *testing.T) {
	bk := newTestBackend(t, "/novel")
	assert.Equal(t, http.StatusOK, serve(bk, http.MethodPost, "/novel/api/hello", `{"name":"x"}`).Code)
	rec := serve(bk, http.MethodGet, "/novel/ping", "")
	assert.Equal(t, "pong", rec.Body.String())
}

func TestRequestIDPropagated(t *testing.T) {
	bk := newTestBackend(t, "")
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	bk.Engine().ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))
}

func TestAddPostHandlerLogsTags(t *testing.T) {
	logs.SetLogger(zaptest.NewLogger(t))
	bk, err := NewBackend(HttpServerConfig{Address: "127.0.0.1", Port: 9090})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", bk.Addr())

	core, recorded := observer.New(zap.InfoLevel)
	bk.Logger = zap.New(core)
	bk.AddPostHandler(NewHandler("hello", []string{"greet", "demo"},
		func(ctx echo.Context, req HelloReq, resp HelloResp) error { return nil }))

	entries := recorded.FilterMessage("http handler registered").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "hello", fields["name"])
	assert.Equal(t, []interface{}{"greet", "demo"}, fields["tags"])
}
