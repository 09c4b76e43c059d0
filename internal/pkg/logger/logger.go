// Package logger keeps a request-scoped zap logger in the context so every
// layer of a flow logs with the same fields.
package logger

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Into makes l the context logger.
func Into(ctx context.Context, l *zap.Logger) context.Context {
	return ctxzap.ToContext(ctx, l)
}

// AddFields extends the context logger with fields.
func AddFields(ctx context.Context, fields ...zap.Field) context.Context {
	return Into(ctx, ctxzap.Extract(ctx).With(fields...))
}

// WithAction tags the context logger with the flow being served.
func WithAction(ctx context.Context, action string) context.Context {
	return AddFields(ctx, zap.String("action", action))
}
