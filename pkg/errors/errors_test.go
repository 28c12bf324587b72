package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToInternal(t *testing.T) {
	err := New("test.New", "boom", nil)
	assert.Equal(t, http.StatusInternalServerError, err.GetCode())
	assert.Equal(t, "boom", err.Message())
	assert.False(t, IsClientError(err))
}

func TestCodeAndClientError(t *testing.T) {
	err := New("test.Code", "bad input", nil).Code(http.StatusBadRequest)
	assert.True(t, IsClientError(err))
	assert.True(t, IsClientError(fmt.Errorf("wrapped: %w", err)))
}

func TestMessageFallsBackToCause(t *testing.T) {
	err := New("test.Cause", "", stderrors.New("node unavailable"))
	assert.Equal(t, "node unavailable", err.Message())
}

func TestTraceKeepsCode(t *testing.T) {
	base := New("inner", "bad input", nil).Code(http.StatusBadRequest)
	traced := Trace("outer", base)
	require.Same(t, base, traced)
	assert.Contains(t, traced.Error(), "inner->outer")

	wrapped := Wrap(base, "wrap", "still bad")
	assert.Equal(t, http.StatusBadRequest, wrapped.GetCode())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestTracePlainError(t *testing.T) {
	traced := Trace("outer", stderrors.New("plain"))
	assert.Equal(t, "plain", traced.Message())
	assert.Equal(t, http.StatusInternalServerError, traced.GetCode())
}
