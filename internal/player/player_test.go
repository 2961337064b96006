package player

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/timesync/internal/testutil"
	"github.com/tOgg1/timesync/internal/timeline"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestModel_NavigationKeys(t *testing.T) {
	tl := testutil.NewTimeline(t, timeline.Options{AnimationInterval: time.Hour})
	tl.SetTimesBySetID("A", testutil.Hours(0, 6, 21))
	m := NewModel(tl, Config{})

	m = press(t, m, "home")
	require.True(t, m.selected.Equal(testutil.At(0)))

	m = press(t, m, "right", "right", "right")
	require.True(t, m.selected.Equal(testutil.At(21)), "manual next stops at the end")

	m = press(t, m, "left")
	require.True(t, m.selected.Equal(testutil.At(6)))

	m = press(t, m, "end")
	require.True(t, m.selected.Equal(testutil.At(21)))

	m = press(t, m, "-")
	require.True(t, m.selected.Equal(testutil.At(6)), "sub 1h snaps back to the previous enabled time")

	m = press(t, m, "+")
	require.True(t, m.selected.Equal(testutil.At(21)))
}

func TestModel_ToggleAnimation(t *testing.T) {
	tl := testutil.NewTimeline(t, timeline.Options{AnimationInterval: time.Hour})
	tl.SetTimesBySetID("A", testutil.Hours(0, 6))
	m := NewModel(tl, Config{})
	rec := testutil.Record(tl)

	m = press(t, m, " ")
	require.True(t, m.animating)
	require.True(t, tl.IsAnimating())
	require.Contains(t, m.View(), "playing")

	m = press(t, m, "p")
	require.False(t, m.animating)
	require.Contains(t, m.View(), "stopped")
	require.Equal(t, []timeline.EventType{
		timeline.EventStartAnimation,
		timeline.EventStopAnimation,
	}, rec.Types())
}

func TestModel_QuitStopsAnimation(t *testing.T) {
	tl := testutil.NewTimeline(t, timeline.Options{AnimationInterval: time.Hour})
	m := NewModel(tl, Config{})
	tl.Start()

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.False(t, tl.IsAnimating())
}

func TestModel_EventRefreshesState(t *testing.T) {
	tl := testutil.NewTimeline(t, timeline.Options{})
	m := NewModel(tl, Config{})
	require.Contains(t, m.View(), "no times yet")

	tl.SetTimesBySetID("A", testutil.Hours(0, 6))
	next, _ := m.Update(eventMsg(timeline.Event{Type: timeline.EventChangeTimes}))
	m = next.(Model)
	require.Len(t, m.times, 2)
	require.Contains(t, m.View(), "2 times, 2 enabled")
}

func TestModel_ViewMarksInvalidSelectionAndGaps(t *testing.T) {
	tl := testutil.NewTimeline(t, timeline.Options{MaxTimeGap: time.Hour})
	tl.SetTimesBySetID("A", testutil.Hours(0, 1, 9))
	tl.SetSelectedTime(testutil.At(5))
	m := NewModel(tl, Config{ShowGaps: true})

	view := m.View()
	require.Contains(t, view, "not an enabled time")
	require.Contains(t, view, "┊")
	require.True(t, m.gapAfter[testutil.At(1)])
	require.False(t, m.gapAfter[testutil.At(0)])
}

func TestModel_WindowResizeWrapsStrip(t *testing.T) {
	tl := testutil.NewTimeline(t, timeline.Options{})
	tl.SetTimesBySetID("A", testutil.Hours(0, 1, 2, 3, 4, 5, 6, 7, 8, 9))
	m := NewModel(tl, Config{})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 8, Height: 10})
	m = next.(Model)
	require.Equal(t, 2, strings.Count(m.renderStrip(), "\n"))
}

func TestForwardUnsubscribes(t *testing.T) {
	tl := testutil.NewTimeline(t, timeline.Options{})
	var got []timeline.EventType
	undo := forward(tl, func(ev timeline.Event) { got = append(got, ev.Type) })

	tl.SetTimesBySetID("A", testutil.Hours(0))
	tl.First()
	require.Equal(t, []timeline.EventType{
		timeline.EventChangeTimes,
		timeline.EventChangeEnabledTimes,
		timeline.EventChangeTime,
	}, got)

	undo()
	require.False(t, tl.HasListener(""))
}

func TestRunPlain(t *testing.T) {
	testutil.SkipIfNoTiming(t)
	tl := testutil.NewTimeline(t, timeline.Options{AnimationInterval: 5 * time.Millisecond})
	tl.SetTimesBySetID("A", testutil.Hours(0, 6))

	var buf bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, RunPlain(ctx, tl, &buf, Config{}, 3))
	require.False(t, tl.IsAnimating())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, []string{
		"2024-05-01 00:00Z\t1/2",
		"2024-05-01 06:00Z\t2/2",
		"2024-05-01 00:00Z\t1/2",
	}, lines)
}

func TestWriteSelection(t *testing.T) {
	tl := testutil.NewTimeline(t, timeline.Options{})
	var buf bytes.Buffer
	require.NoError(t, WriteSelection(&buf, tl, ""))
	require.Equal(t, "(none)\n", buf.String())

	tl.SetTimesBySetID("A", testutil.Hours(0, 6))
	tl.SetSelectedTime(testutil.At(3))
	buf.Reset()
	require.NoError(t, WriteSelection(&buf, tl, time.RFC3339))
	require.Equal(t, "2024-05-01T03:00:00Z\t-/2\n", buf.String())
}
