package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Replace(zap.New(core))
	defer Init("")

	Info("catalog loaded: %d products", 3)
	Warn("fallback rates in use")
	Error("provider failed", errors.New("timeout"), nil)

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, "catalog loaded: 3 products", entries[0].Message)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, "provider failed", entries[2].Message)
		assert.Equal(t, "timeout", entries[2].ContextMap()["error"])
	}
}

func TestCompact(t *testing.T) {
	assert.Empty(t, compact([]interface{}{nil}))
	assert.Equal(t, []interface{}{"a", nil, 1}, compact([]interface{}{"a", nil, 1}))
	assert.Equal(t, []interface{}{"a"}, compact([]interface{}{"a", nil}))
}

func TestLogger_NilArgumentKeepsPosition(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Replace(zap.New(core))
	defer Init("")

	Warn("ignoring invalid quantity %v for cart %s", nil, "cart-1")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "ignoring invalid quantity <nil> for cart cart-1", entries[0].Message)
	}
}
