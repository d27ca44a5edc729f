package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rhanlin/graphql-demo/internal/config"
)

// NewLogger builds the server logger from the log configuration.
func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var zc zap.Config
	switch cfg.Format {
	case "json":
		zc = zap.NewProductionConfig()
	case "console", "":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true

	return zc.Build()
}

// PanicLogger reports resolver panics recovered by the GraphQL engine.
type PanicLogger struct {
	Log *zap.Logger
}

func (l *PanicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.Log.Error("graphql resolver panic",
		zap.String("request_id", requestIDFrom(ctx)),
		zap.Any("panic", value),
	)
}
