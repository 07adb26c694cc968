package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFromContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	Setup("debug", false)
	SetOutput(&buf)
	t.Cleanup(func() { Setup("info", false) })

	ctx := WithRequestID(context.Background(), "req-123")
	LoggerFromContext(ctx).Info().Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-123", line["request_id"])
	assert.Equal(t, "hello", line["message"])
}

func TestLoggerFromContextWithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	Setup("info", false)
	SetOutput(&buf)
	t.Cleanup(func() { Setup("info", false) })

	LoggerFromContext(context.Background()).Info().Msg("plain")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.NotContains(t, line, "request_id")
}

func TestSetupUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Setup("loud", false)
	SetOutput(&buf)
	t.Cleanup(func() { Setup("info", false) })

	Logger().Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	Logger().Info().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
