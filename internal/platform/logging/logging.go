// Package logging builds the service's zap logger.
package logging

import (
	"io"
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func encoderConfig(production bool) zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	if production {
		cfg = zap.NewProductionEncoderConfig()
	}
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.LevelKey = "level"
	cfg.NameKey = "name"
	cfg.MessageKey = "msg"
	cfg.CallerKey = "caller"
	cfg.StacktraceKey = "stacktrace"
	return cfg
}

// New returns a logger writing to stdout. Production uses the JSON encoder,
// anything else the console encoder. The returned func flushes buffered
// entries.
func New(production bool, level zapcore.Level) (*zap.Logger, func()) {
	return NewWithWriter(os.Stdout, production, level)
}

func NewWithWriter(w io.Writer, production bool, level zapcore.Level) (*zap.Logger, func()) {
	var encoder zapcore.Encoder
	if production {
		encoder = zapcore.NewJSONEncoder(encoderConfig(true))
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig(false))
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	flusher := func() {
		if err := logger.Sync(); err != nil {
			log.Println("error during flushing any buffered log entries:", err)
		}
	}
	return logger, flusher
}
