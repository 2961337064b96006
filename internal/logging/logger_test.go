package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_JSONOutputCarriesComponentAndSetID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Format: "json", Output: &buf})
	logger = WithSetID(logger.With().Str("component", "timeline").Logger(), "radar")

	logger.Debug().Msg("time set replaced")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "timeline", entry["component"])
	require.Equal(t, "radar", entry["set_id"])
	require.Equal(t, "time set replaced", entry["message"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "json", Output: &buf})
	logger.Info().Msg("hidden")
	require.Zero(t, buf.Len())
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json", Output: &buf})

	ctx := WithContext(context.Background(), logger)
	fromCtx := FromContext(ctx)
	fromCtx.Info().Msg("from ctx")
	require.Contains(t, buf.String(), "from ctx")

	// Without an attached logger the global one is returned.
	require.Equal(t, Logger, FromContext(context.Background()))
}
