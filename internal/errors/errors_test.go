package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidParameterError_Message(t *testing.T) {
	err := NewInvalidParameter("lambda", 1.0, "must be in the open interval (0, 1)")
	assert.Equal(t, "invalid parameter lambda=1: must be in the open interval (0, 1)", err.Error())
}

func TestInsufficientDataError_Message(t *testing.T) {
	err := NewInsufficientData("EWMA estimation", 2, 1)
	assert.Equal(t, "insufficient data for EWMA estimation: need at least 2 observations, got 1", err.Error())
}

func TestInvalidInputError_Message(t *testing.T) {
	err := NewInvalidInput("price series", 3, "prices must be positive")
	assert.Equal(t, "invalid input price series at index 3: prices must be positive", err.Error())

	err = NewInvalidInput("price series", -1, "timestamps must be strictly increasing")
	assert.Equal(t, "invalid input price series: timestamps must be strictly increasing", err.Error())
}

func TestMatchers_SeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewInvalidParameter("x", 2, "bad"))
	assert.True(t, IsInvalidParameter(wrapped))
	assert.False(t, IsInsufficientData(wrapped))
	assert.False(t, IsInvalidInput(wrapped))
}

func TestAgentError_WrapAndUnwrap(t *testing.T) {
	underlying := NewInsufficientData("comparison", 2, 1)
	err := Wrap(underlying, ErrorCategoryAnalysis, "agent", "compare")

	assert.Contains(t, err.Error(), "ANALYSIS")
	assert.Contains(t, err.Error(), "compare")
	assert.True(t, IsInsufficientData(err), "matchers must see through AgentError")
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorCategoryProvider, "provider", "fetch"))
}
