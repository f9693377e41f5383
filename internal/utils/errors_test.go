package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidArgument: http.StatusBadRequest,
		CodeUnauthorized:    http.StatusUnauthorized,
		CodeForbidden:       http.StatusForbidden,
		CodeNotFound:        http.StatusNotFound,
		CodeConflict:        http.StatusConflict,
		CodeUnavailable:     http.StatusServiceUnavailable,
		CodeTimeout:         http.StatusGatewayTimeout,
		CodeInternal:        http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(E(code, "Op", "msg", nil)), "code %s", code)
	}

	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrNotFound))
}

func TestIsCodeUnwraps(t *testing.T) {
	inner := E(CodeNotFound, "Repo.Get", "missing", ErrSessionNotFound)
	wrapped := E(CodeNotFound, "Service.Get", "session not found", inner)

	assert.True(t, IsCode(wrapped, CodeNotFound))
	assert.False(t, IsCode(wrapped, CodeInternal))
	assert.True(t, errors.Is(wrapped, ErrSessionNotFound))
}

func TestAppErrorMessage(t *testing.T) {
	err := E(CodeInternal, "Pipeline.Process", "failed to upload audio", errors.New("disk full"))
	assert.Equal(t, "Pipeline.Process: failed to upload audio: disk full", err.Error())

	assert.Equal(t, "just a message", E(CodeInternal, "", "just a message", nil).Error())
}
