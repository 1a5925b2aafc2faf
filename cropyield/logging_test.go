package cropyield

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerMirrorsToSinks(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("warn", zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("catalog issue")
	_ = logger.Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "catalog issue")
	assert.Contains(t, out, "warn")
}

func TestNewLoggerRejectsLevel(t *testing.T) {
	_, err := NewLogger("chatty")
	assert.Error(t, err)
}
