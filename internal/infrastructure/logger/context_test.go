package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext_FromContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)

	assert.Equal(t, logger, FromContext(ctx))
}

func TestFromContext_ReturnsNopWhenMissing(t *testing.T) {
	logger := FromContext(context.Background())
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	newCtx, newLogger := WithRequestID(ctx, logger, "req-123")

	assert.NotNil(t, newLogger)
	assert.Equal(t, "req-123", GetRequestID(newCtx))
	assert.Empty(t, GetRequestID(ctx))
}

func TestWithUserID(t *testing.T) {
	logger := zap.NewNop()

	newCtx, newLogger := WithUserID(context.Background(), logger, "user-456")

	assert.NotNil(t, newLogger)
	assert.Equal(t, "user-456", GetUserID(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestGetUserID_NotFound(t *testing.T) {
	assert.Empty(t, GetUserID(context.Background()))
}

func TestContextKeys_AreDistinct(t *testing.T) {
	assert.NotEqual(t, RequestIDKey, UserIDKey)
	assert.NotEqual(t, LoggerKey, RequestIDKey)
}

func TestContextLogger_InjectsContextFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	ctx := WithContext(context.Background(), logger)
	ctx = context.WithValue(ctx, RequestIDKey, "req-789")
	ctx = context.WithValue(ctx, UserIDKey, "user-abc")

	L(ctx).Info("checkout started")

	entries := logs.All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-789", fields["request_id"])
	assert.Equal(t, "user-abc", fields["user_id"])
}

func TestContextLogger_With(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	cl := WithLogger(context.Background(), logger).With(zap.String("component", "cart"))
	cl.Info("reconciled")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "cart", entries[0].ContextMap()["component"])
}

func TestContextLogger_NilLoggerIsSafe(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}
	assert.NotPanics(t, func() {
		cl.Info("should not panic")
	})
}
