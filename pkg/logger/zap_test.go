package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
	"github.com/Gunvolt24/storefront/pkg/logger"
)

func observed() (*logger.ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.New(zap.New(core)), logs
}

func TestZapLogger_EnrichesFromContext(t *testing.T) {
	log, logs := observed()

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	ctx = ctxmeta.WithRequestID(ctx, "req-7")
	ctx = ctxmeta.WithUser(ctx, "u-1", "customer")

	log.Warnf(ctx, "stock low product=%s", "p-1")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, zapcore.WarnLevel, entry.Level)
	require.Equal(t, "stock low product=p-1", entry.Message)

	fields := entry.ContextMap()
	require.Equal(t, "req-7", fields["request_id"])
	require.Equal(t, "u-1", fields["user_id"])
	require.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
}

func TestZapLogger_NoMetadata_NoFields(t *testing.T) {
	log, logs := observed()

	log.Infof(context.Background(), "started")
	log.Errorf(context.TODO(), "boom")

	require.Equal(t, 2, logs.Len())
	for _, e := range logs.All() {
		require.Empty(t, e.Context)
	}
}
