package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/timesync/internal/testutil"
	"github.com/tOgg1/timesync/internal/timeline"
)

const sampleSources = `
sources:
  - id: radar
    name: Radar composite
    times:
      - 2024-05-01T00:00:00Z
      - 2024-05-01T06:00:00Z
      - 2024-05-01T09:00:00Z
      - 2024-05-01T21:00:00Z
  - id: model
    start: 2024-05-01T03:00:00Z
    end: 2024-05-01T21:00:00Z
    step: 9h
    enabled:
      - 2024-05-01T21:00:00Z
`

func TestParseSources(t *testing.T) {
	doc, err := ParseSources([]byte(sampleSources))
	require.NoError(t, err)
	require.Len(t, doc.Sources, 2)

	radar := doc.Sources[0]
	require.Equal(t, "Radar composite", radar.Label())
	require.Len(t, radar.Times, 4)
	require.Nil(t, radar.Enabled)

	model := doc.Sources[1]
	require.Equal(t, "model", model.Label())
	require.Equal(t, 9*time.Hour, model.Step)
	times, err := model.AllTimes()
	require.NoError(t, err)
	require.Len(t, times, 3)
	require.True(t, times[1].Equal(testutil.At(12)))
}

func TestSourceDocument_Apply(t *testing.T) {
	doc, err := ParseSources([]byte(sampleSources))
	require.NoError(t, err)

	tl := testutil.NewTimeline(t, timeline.Options{})
	ids, err := doc.Apply(tl)
	require.NoError(t, err)
	require.Equal(t, []string{"radar", "model"}, ids)

	require.Equal(t, testutil.Hours(0, 3, 6, 9, 12, 21), tl.Times())
	require.Equal(t, testutil.Hours(0, 6, 9, 21), tl.EnabledTimes())
}

func TestSourceDocument_ApplyGeneratesIDs(t *testing.T) {
	doc, err := ParseSources([]byte("sources:\n  - times: [2024-05-01T00:00:00Z]\n"))
	require.NoError(t, err)

	tl := testutil.NewTimeline(t, timeline.Options{})
	ids, err := doc.Apply(tl)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	require.True(t, strings.HasPrefix(ids[0], "source-"))
	require.Equal(t, ids[0], doc.Sources[0].ID)
	require.Equal(t, ids, tl.SetIDs())

	out, err := doc.Marshal()
	require.NoError(t, err)
	require.Contains(t, string(out), ids[0])
}

func TestSourceDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"duplicate id", "sources:\n  - id: a\n  - id: a\n"},
		{"start without end", "sources:\n  - id: a\n    start: 2024-05-01T00:00:00Z\n    step: 1h\n"},
		{"zero step", "sources:\n  - id: a\n    start: 2024-05-01T00:00:00Z\n    end: 2024-05-02T00:00:00Z\n"},
		{"end before start", "sources:\n  - id: a\n    start: 2024-05-02T00:00:00Z\n    end: 2024-05-01T00:00:00Z\n    step: 1h\n"},
		{"series too long", "sources:\n  - id: a\n    start: 2024-05-01T00:00:00Z\n    end: 2034-05-01T00:00:00Z\n    step: 1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSources([]byte(tt.body))
			require.ErrorIs(t, err, ErrInvalidSource)
		})
	}
}

func TestParseSources_Malformed(t *testing.T) {
	_, err := ParseSources([]byte("sources: [\n"))
	require.Error(t, err)
}

func TestLoadSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSources), 0o644))

	doc, err := LoadSources(path)
	require.NoError(t, err)
	require.Len(t, doc.Sources, 2)

	_, err = LoadSources(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
