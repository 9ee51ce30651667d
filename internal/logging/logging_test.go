package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent_EmitsJSON(t *testing.T) {
	Configure("debug", false)
	defer Configure("warn", false)
	var buf bytes.Buffer
	SetOutput(&buf)

	Component("arena").Info().Int("pages", 3).Msg("page acquired")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "arena", event["component"])
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, "page acquired", event["message"])
	assert.EqualValues(t, 3, event["pages"])
	assert.Contains(t, event, "time")
}

func TestComponent_LevelMethods(t *testing.T) {
	Configure("trace", false)
	defer Configure("warn", false)
	var buf bytes.Buffer
	SetOutput(&buf)

	// One logger reused across every level the library emits at.
	logger := Component("arena")
	logger.Debug().Msg("debug event")
	logger.Info().Msg("info event")
	logger.Warn().Msg("warn event")
	logger.Error().Msg("error event")

	for _, level := range []string{"debug", "info", "warn", "error"} {
		assert.Contains(t, buf.String(), `"level":"`+level+`"`)
	}
}

func TestConfigure_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Configure("error", false)
	defer Configure("warn", false)
	SetOutput(&buf)

	Component("pool").Info().Msg("suppressed")
	assert.Zero(t, buf.Len())

	Component("pool").Error().Msg("surfaced")
	assert.Contains(t, buf.String(), "surfaced")
}

func TestConfigure_UnknownLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	Configure("chatty", false)
	defer Configure("warn", false)
	SetOutput(&buf)

	Component("pool").Info().Msg("suppressed")
	assert.Zero(t, buf.Len())

	Component("pool").Warn().Msg("surfaced")
	assert.Contains(t, buf.String(), "surfaced")
}
