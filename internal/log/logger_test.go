package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func installLogger(t *testing.T) *observer.ObservedLogs {
	c, o := observer.New(zapcore.DebugLevel)
	setLogger(zap.New(c))
	t.Cleanup(resetLogger)
	return o
}

func TestLoggerContextFields(t *testing.T) {
	o := installLogger(t)

	ctx := With(context.Background(), "job", "a")
	ctx = WithFields(ctx, zap.Int("width", 64))
	Logger(ctx).Info("warped")
	Logger(context.Background()).Info("bare")

	entries := o.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "warped", entries[0].Message)
	assert.Equal(t, map[string]interface{}{"job": "a", "width": int64(64)}, entries[0].ContextMap())
	assert.Empty(t, entries[1].Context)
}

func TestWithFieldsDoesNotShareParent(t *testing.T) {
	o := installLogger(t)

	parent := With(context.Background(), "job", "a")
	left := With(parent, "side", "left")
	right := With(parent, "side", "right")
	Logger(left).Info("l")
	Logger(right).Info("r")

	entries := o.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "left", entries[0].ContextMap()["side"])
	assert.Equal(t, "right", entries[1].ContextMap()["side"])
}

func TestPrintf(t *testing.T) {
	o := installLogger(t)
	Printf("%d items", 3)
	require.Equal(t, 1, o.Len())
	assert.Equal(t, "3 items", o.All()[0].Message)
	assert.Equal(t, zapcore.InfoLevel, o.All()[0].Level)
}
