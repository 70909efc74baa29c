package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger. Messages follow "[area][layer] event key=value".
type Logger struct {
	*zap.SugaredLogger
}

// L is the process-wide logger, for code that is not wired through constructors.
var L = NewNop()

// New builds a production JSON logger at the given level ("debug", "info", ...).
func New(level string) (*Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// OrDefault returns l, or L when l is nil.
func OrDefault(l *Logger) *Logger {
	if l == nil {
		return L
	}
	return l
}
