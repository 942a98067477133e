package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)

	retrieved := FromContext(ctx)
	assert.Equal(t, logger, retrieved)
}

func TestFromContext_NotFound(t *testing.T) {
	retrieved := FromContext(context.Background())
	assert.NotNil(t, retrieved) // no-op logger, never nil
}

func TestWithRequestID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	newCtx, newLogger := WithRequestID(ctx, logger, "req-123")

	assert.NotNil(t, newLogger)
	assert.Equal(t, "req-123", GetRequestID(newCtx))
}

func TestWithUserID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	newCtx, newLogger := WithUserID(ctx, logger, "user-456")

	assert.NotNil(t, newLogger)
	assert.Equal(t, "user-456", GetUserID(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestGetUserID_NotFound(t *testing.T) {
	assert.Empty(t, GetUserID(context.Background()))
}

func TestContextKeysAreDistinct(t *testing.T) {
	assert.NotEqual(t, RequestIDKey, UserIDKey)
	assert.NotEqual(t, LoggerKey, RequestIDKey)
}

func TestContextLogger_InjectsContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	baseLogger := zap.New(core)

	ctx := context.Background()
	ctx, _ = WithRequestID(ctx, baseLogger, "req-aaa")
	ctx = context.WithValue(ctx, UserIDKey, "user-bbb")

	WithLogger(ctx, baseLogger).Info("something happened")

	entries := logs.All()
	assert.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "req-aaa", fields["request_id"])
	assert.Equal(t, "user-bbb", fields["user_id"])
}

func TestContextLogger_OmitsEmptyFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	baseLogger := zap.New(core)

	WithLogger(context.Background(), baseLogger).Info("bare entry")

	entries := logs.All()
	assert.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.NotContains(t, fields, "request_id")
	assert.NotContains(t, fields, "user_id")
}

func TestContextLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	baseLogger := zap.New(core)

	WithLogger(context.Background(), baseLogger).
		With(zap.String("component", "ledger")).
		Info("entry")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "ledger", entries[0].ContextMap()["component"])
}

func TestL_NilLoggerSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		L(context.Background()).Info("no logger in context")
	})
}
