package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	runIDKey  contextKey = "run_id"
	stageKey  contextKey = "stage"
	loggerKey contextKey = "logger"
)

// WithRunID adds the crawl run ID to context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithStage adds the pipeline stage name to context
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey, stage)
}

// WithLogger adds logger to context
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// RunID returns the run ID stored in ctx, if any
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// FromContext returns a logger carrying the run and stage fields found in ctx
func FromContext(ctx context.Context) *zap.Logger {
	l, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok || l == nil {
		// the global logger skips one frame for the package-level wrappers
		l = Logger.WithOptions(zap.AddCallerSkip(-1))
	}

	var fields []zap.Field
	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, zap.String("run_id", runID))
	}
	if stage, ok := ctx.Value(stageKey).(string); ok && stage != "" {
		fields = append(fields, zap.String("stage", stage))
	}

	if len(fields) > 0 {
		l = l.With(fields...)
	}
	return l
}

// CountField returns a zap field for record counts
func CountField(count int) zap.Field {
	return zap.Int("count", count)
}

// DurationField returns a zap field for duration in milliseconds
func DurationField(durationMs int64) zap.Field {
	return zap.Int64("duration_ms", durationMs)
}
