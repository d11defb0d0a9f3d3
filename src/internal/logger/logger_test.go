package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizePayloadMasksSensitiveKeys(t *testing.T) {
	payload := map[string]any{
		"databaseDsn": "host=db password=secret",
		"nested": map[string]any{
			"redis-password": "hunter2",
			"addr":           "localhost:6379",
		},
	}

	got, ok := SanitizePayload(payload).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "******", got["databaseDsn"])

	nested, ok := got["nested"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "******", nested["redis-password"])
	assert.Equal(t, "localhost:6379", nested["addr"])
}

func TestSanitizePayloadUnmarshalableValue(t *testing.T) {
	assert.Equal(t, "<unavailable>", SanitizePayload(make(chan int)))
}

func TestErrorAddsErrorField(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Use(zap.New(core))
	t.Cleanup(func() { Use(nil) })

	Error("store failed", errors.New("boom"), Fields{"accountId": "123", "password": "x"})

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "123", ctx["accountId"])
	assert.Equal(t, "******", ctx["password"])
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Init("chatty"))
}
