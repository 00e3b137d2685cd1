package redis

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FItraRizky/fro/internal/storage"
	"github.com/FItraRizky/fro/pkg/logger"
)

const tracerName = "github.com/FItraRizky/fro/internal/storage/redis"

// DefaultSlowThreshold is the duration above which an operation is logged as
// slow.
const DefaultSlowThreshold = 50 * time.Millisecond

// trace starts a client span for one Redis command. The returned function
// must be called with the outcome when the command completes. A missing key
// is not recorded as an error.
func (s *Store) trace(ctx context.Context, op, key string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "redis."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", op),
			attribute.String("fro.storage.key", key),
		),
	)

	return ctx, func(err error) {
		if err != nil && !storage.IsNotFound(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		if s.slow <= 0 {
			return
		}
		if elapsed := time.Since(start); elapsed >= s.slow {
			attrs := []slog.Attr{
				slog.String("operation", op),
				slog.String("key", key),
				slog.Duration("duration", elapsed),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}
			logger.WithContext(ctx, s.logger).LogAttrs(ctx, slog.LevelWarn, "slow redis operation", attrs...)
		}
	}
}
