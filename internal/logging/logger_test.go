package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := build(&buf, "mathquest", "production", "warn")

	logger.Info().Msg("hidden")
	logger.Warn().Str("component", "bank").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "mathquest", line["app"])
	assert.Equal(t, "production", line["env"])
	assert.Equal(t, "bank", line["component"])
}

func TestBuildDefaultsToInfo(t *testing.T) {
	for _, level := range []string{"", "loud"} {
		logger := build(&bytes.Buffer{}, "mathquest", "test", level)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel(), "level %q", level)
	}
}
