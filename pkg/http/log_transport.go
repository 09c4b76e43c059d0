package http

import (
	"net/http"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// context keys for attaching request metadata
type payloadContextKey struct{}
type bodySizeContextKey struct{}

type logTransport struct {
	transport http.RoundTripper
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", redactQuery(req)),
	}

	if payload, ok := ctx.Value(payloadContextKey{}).([]byte); ok && len(payload) > 0 {
		fields = append(fields, zap.ByteString("payload", payload))
	}
	if size, ok := ctx.Value(bodySizeContextKey{}).(int); ok {
		fields = append(fields, zap.Int("body_size", size))
	}

	ctxzap.Debug(ctx, "HTTP outbound request", fields...)

	resp, err := t.transport.RoundTrip(req)
	if err != nil {
		ctxzap.Debug(ctx, "HTTP outbound request failed",
			append(fields, zap.Error(err), zap.Duration("duration", time.Since(start)))...,
		)
		return nil, err
	}

	ctxzap.Debug(ctx, "HTTP outbound response",
		append(fields, zap.Int("status", resp.StatusCode), zap.Duration("duration", time.Since(start)))...,
	)

	return resp, nil
}

// redactQuery drops query strings from PUT targets, which hold presigned signatures.
func redactQuery(req *http.Request) string {
	if req.Method != http.MethodPut || req.URL.RawQuery == "" {
		return req.URL.String()
	}
	u := *req.URL
	u.RawQuery = "REDACTED"
	return u.String()
}

// WithRequestLogging wraps the HTTP transport with logging of method, URL, payload and response status.
func WithRequestLogging() HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &logTransport{
			transport: rt,
		}
	})
}
