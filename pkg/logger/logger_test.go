package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"albuhara/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range []string{"debug", "info", "warn", "warning", "error", "invalid", ""} {
			t.Run(string(env)+"/"+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)
			})
		}
	}
}

func TestFromContext(t *testing.T) {
	t.Run("logger in context", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)

		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, got)
	})

	t.Run("no logger in context", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLog_Precedence(t *testing.T) {
	ctxLogger := logger.NewFromZap(zap.NewNop())
	globalLogger := logger.NewFromZap(zap.NewNop())

	logger.SetGlobalLogger(globalLogger)
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	assert.Same(t, ctxLogger, logger.Log(logger.NewContext(context.Background(), ctxLogger)))
	assert.Same(t, globalLogger, logger.Log(context.Background()))

	logger.SetGlobalLogger(nil)
	assert.NotNil(t, logger.Log(context.Background()), "fallback logger expected")
}

func TestRequestIDIsAttached(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewFromZap(zap.New(core))

	ctx := logger.NewRequestIDContext(context.Background(), "req-42")
	log.Info(ctx, "hello", zap.String("k", "v"))
	log.Debug(context.Background(), "no id")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-42", entries[0].ContextMap()[logger.RequestID])
	assert.NotContains(t, entries[1].ContextMap(), logger.RequestID)
}

func TestNewRequestIDContext_GeneratesID(t *testing.T) {
	ctx := logger.NewRequestIDContext(context.Background(), "")

	id, ok := logger.GetRequestID(ctx)
	require.True(t, ok)
	assert.Len(t, id, 36)

	_, ok = logger.GetRequestID(context.Background())
	assert.False(t, ok)
}

func TestWith_AddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := logger.NewFromZap(zap.New(core)).With(zap.String("component", "test"))

	log.Warn(context.Background(), "careful")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "test", logs.All()[0].ContextMap()["component"])
}
