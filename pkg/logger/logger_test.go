package logger

import (
	"context"
	"errors"
	"testing"

	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(level)
	previous := GetLogger()
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(previous) })
	return logs
}

func TestContextLogBuilder_AttachesRequestFields(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)

	ctx := ctxutil.NewRequestContext(context.Background(), "req-1", "10.0.0.1", "curl/8")
	ctx = ctxutil.WithUserID(ctx, 42)
	ctx = ctxutil.WithFunction(ctx, "service", "Login")

	WarnWithContext(ctx, "Login failed").
		String("email", "jane@example.com").
		Err(errors.New("bad password")).
		Log()

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "Login failed", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "10.0.0.1", fields["client_ip"])
	assert.Equal(t, uint64(42), fields["user_id"])
	assert.Equal(t, "service", fields["module"])
	assert.Equal(t, "Login", fields["function"])
	assert.Equal(t, "jane@example.com", fields["email"])
	assert.Equal(t, "bad password", fields["error"])
}

func TestContextLogBuilder_SkipsDisabledLevels(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel)

	DebugWithContext(context.Background(), "noisy").String("k", "v").Log()
	InfoWithContext(context.Background(), "kept").Log()

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
}

func TestGetLogger_FallsBackToNop(t *testing.T) {
	previous := GetLogger()
	SetLogger(nil)
	t.Cleanup(func() { SetLogger(previous) })

	assert.NotNil(t, GetLogger())
}
