package protocol

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stardustagi/NovelServer/libs/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestResponseOK(t *testing.T) {
	c, rec := newContext(http.MethodGet)
	require.NoError(t, Response(c, nil, map[string]string{"status": "ok"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body BaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errors.CodeOK, body.ErrCode)
	assert.Equal(t, map[string]interface{}{"status": "ok"}, body.Data)
}

func TestResponseError(t *testing.T) {
	c, rec := newContext(http.MethodPost)
	require.NoError(t, Response(c, errors.NewConfigurationError("missing BLOB_READ_WRITE_TOKEN"), nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body BaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errors.CodeConfiguration, body.ErrCode)
	assert.Equal(t, "missing BLOB_READ_WRITE_TOKEN", body.ErrMsg)
	assert.Nil(t, body.Data)
}

func TestFailHead(t *testing.T) {
	c, rec := newContext(http.MethodHead)
	require.NoError(t, Fail(c, http.StatusBadGateway, errors.CodeUpstream, "boom"))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Zero(t, rec.Body.Len())
}
