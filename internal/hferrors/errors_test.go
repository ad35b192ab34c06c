package hferrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_humanAndTechnicalMessagesDiffer(t *testing.T) {
	err := New(CodeUnknownCommand, "unknown command 'frobnicate'", "")
	assert.Equal(t, "unknown command 'frobnicate'", HumanMessage(err))
	assert.Contains(t, err.Error(), "unknown-command")
}

func TestWrap_unwraps(t *testing.T) {
	inner := errors.New("boom")
	err := Wrap(inner, CodeCompileError, "compile failed", "")
	assert.Equal(t, inner, errors.Unwrap(err))
}

func TestHumanMessage_plainErrorFallsBackToError(t *testing.T) {
	assert.Equal(t, "boom", HumanMessage(errors.New("boom")))
}

func TestCodeOf(t *testing.T) {
	err := New(CodeUnknownBlock, "x", "")
	assert.Equal(t, CodeUnknownBlock, CodeOf(err))
	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
}
