package errors

import (
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// 错误码
const (
	CodeOK            = 0
	CodeValidation    = 40001
	CodeConfiguration = 50001
	CodeUpstream      = 50201
	CodeInternal      = 50000
)

// StackError 带错误码和调用栈的错误
type StackError struct {
	code   int
	msg    string
	status int
	cause  error
}

func New(code int, status int, msg string) *StackError {
	return &StackError{
		code:   code,
		msg:    msg,
		status: status,
		cause:  pkgerrors.New(msg),
	}
}

func Wrap(err error, code int, status int, msg string) *StackError {
	if err == nil {
		return New(code, status, msg)
	}
	return &StackError{
		code:   code,
		msg:    msg,
		status: status,
		cause:  pkgerrors.Wrap(err, msg),
	}
}

func (e *StackError) Error() string {
	return e.cause.Error()
}

func (e *StackError) Code() int {
	return e.code
}

func (e *StackError) Msg() string {
	return e.msg
}

func (e *StackError) Status() int {
	return e.status
}

func (e *StackError) Unwrap() error {
	return e.cause
}

// Format 支持 %+v 输出调用栈
func (e *StackError) Format(s fmt.State, verb rune) {
	if f, ok := e.cause.(fmt.Formatter); ok {
		f.Format(s, verb)
		return
	}
	fmt.Fprint(s, e.Error())
}

// NewConfigurationError 缺少凭证等配置错误, 在首次调用时返回
func NewConfigurationError(msg string) *StackError {
	return New(CodeConfiguration, http.StatusInternalServerError, msg)
}

// NewUpstreamError 第三方服务调用失败
func NewUpstreamError(err error, provider string) *StackError {
	return Wrap(err, CodeUpstream, http.StatusBadGateway, provider+" request failed")
}

func NewValidationError(err error) *StackError {
	return Wrap(err, CodeValidation, http.StatusBadRequest, "invalid request")
}

func As(err error) (*StackError, bool) {
	var se *StackError
	if pkgerrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func IsConfiguration(err error) bool {
	se, ok := As(err)
	return ok && se.code == CodeConfiguration
}

func IsUpstream(err error) bool {
	se, ok := As(err)
	return ok && se.code == CodeUpstream
}

// HTTPStatus 错误对应的 HTTP 状态码, 未知错误为 500
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if se, ok := As(err); ok && se.status != 0 {
		return se.status
	}
	return http.StatusInternalServerError
}
