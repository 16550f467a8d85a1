package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Prompt string `json:"prompt"`
}

func TestBytes2Struct(t *testing.T) {
	v, err := Bytes2Struct[sample]([]byte(`{"prompt":"once upon"}`))
	require.NoError(t, err)
	assert.Equal(t, "once upon", v.Prompt)

	_, err = Bytes2Struct[sample]([]byte(`{`))
	assert.Error(t, err)

}

type layered struct {
	Port      int    `json:"port"`
	Cors      bool   `json:"cors"`
	BodyLimit string `json:"body_limit"`
}

func TestMergeStructKeepsBase(t *testing.T) {
	base := layered{Port: 8080, BodyLimit: "10M"}
	v, err := MergeStruct(base, []byte(`{"cors":true}`))
	require.NoError(t, err)
	assert.Equal(t, layered{Port: 8080, Cors: true, BodyLimit: "10M"}, v)

	v, err = MergeStruct(base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, v)

	_, err = MergeStruct(base, []byte(`{`))
	assert.Error(t, err)
}

func TestGetRemoteAddr(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1:1234", GetRemoteAddr(r))

	r.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "10.0.0.2", GetRemoteAddr(r))

	r.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.3")
	assert.Equal(t, "1.2.3.4", GetRemoteAddr(r))
}

func TestHeaderOr(t *testing.T) {
	h := http.Header{}
	assert.Equal(t, "file.txt", HeaderOr(h, "x-vercel-filename", "file.txt"))
	h.Set("x-vercel-filename", " notes ")
	assert.Equal(t, "notes", HeaderOr(h, "x-vercel-filename", "file.txt"))
}
