package errors

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("missing OpenAI API key")
	assert.Equal(t, CodeConfiguration, err.Code())
	assert.Equal(t, "missing OpenAI API key", err.Msg())
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	assert.True(t, IsConfiguration(err))
	assert.False(t, IsUpstream(err))
}

func TestUpstreamErrorWrapsCause(t *testing.T) {
	err := NewUpstreamError(io.ErrUnexpectedEOF, "openai")
	assert.True(t, IsUpstream(err))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(err))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "openai request failed")
}

func TestAsThroughWrapping(t *testing.T) {
	wrapped := pkgerrors.Wrap(NewValidationError(fmt.Errorf("prompt is required")), "bind")
	se, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeValidation, se.Code())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(wrapped))
}

func TestHTTPStatusPlainError(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(io.EOF))
}

func TestFormatStack(t *testing.T) {
	err := NewConfigurationError("missing token")
	assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")
}
