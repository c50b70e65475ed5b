package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestZapLoggerWritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var l Logger = FromZap(zap.New(core))

	l.Warn("access denied", "capability", "disable_device", "role", "viewer")
	l.Debug("classified", "category", "DEVICE")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "access denied", entries[0].Message)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
		assert.Equal(t, "disable_device", entries[0].ContextMap()["capability"])
		assert.Equal(t, "DEVICE", entries[1].ContextMap()["category"])
	}
}

func TestWithAddsFixedFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := FromZap(zap.New(core)).With("session_id", "s-1")
	l.Info("processed")
	assert.Equal(t, "s-1", logs.All()[0].ContextMap()["session_id"])
}
