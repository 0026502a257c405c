// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: the Logger middleware stores a
// request-scoped logger (already tagged with request_id) in the context, so
// every line logged while serving a request is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order created", "id", order.ID)
//	// → time=... level=INFO msg="order created" request_id=5c0f... id=50
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/offerdesk/config"
)

var L *slog.Logger

func init() {
	L = slog.New(newBaseHandler(os.Stdout))
	slog.SetDefault(L)
}

func newBaseHandler(w io.Writer) slog.Handler {
	if config.IsProduction() {
		// structured JSON for log aggregators
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
}

// SetOutput rebuilds the base logger on w. Tests use it to silence or
// capture output.
func SetOutput(w io.Writer) {
	L = slog.New(newBaseHandler(w))
	slog.SetDefault(L)
}

// AttachMongo fans every log record out to MongoDB in addition to stdout.
// The returned func flushes pending records and must be called on shutdown.
func AttachMongo(uri, db, collection string) (func(), error) {
	mh, err := NewMongoHandler(uri, db, collection)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	L = slog.New(NewMultiHandler(L.Handler(), mh))
	slog.SetDefault(L)
	return mh.Close, nil
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx by InjectLogger,
// or the base logger when there is none.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx. Called by the Logger middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
