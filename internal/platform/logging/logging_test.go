package logging

import (
	"bytes"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := NewWithWriter(&buf, true, zapcore.InfoLevel)

	logger.Info("book created", zap.Int64("book.id", 7))
	logger.Debug("dropped")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "book created", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, float64(7), entry["book.id"])
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry, "caller")
}

func TestNew_DevelopmentWritesConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := NewWithWriter(&buf, false, zapcore.DebugLevel)

	logger.Debug("listing books")

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "listing books")
	assert.False(t, strings.HasPrefix(strings.TrimSpace(out), "{"))
}
