// Package testutil provides shared fixtures for tests that drive a Timeline
// from outside the timeline package.
package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tOgg1/timesync/internal/timeline"
)

// Base is the reference instant used by fixtures.
var Base = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

// At returns Base shifted by n hours.
func At(n int) time.Time {
	return Base.Add(time.Duration(n) * time.Hour)
}

// Hours returns At(n) for every n.
func Hours(ns ...int) []time.Time {
	out := make([]time.Time, len(ns))
	for i, n := range ns {
		out[i] = At(n)
	}
	return out
}

// NewTimeline creates a silent timeline that is closed when the test ends.
func NewTimeline(t *testing.T, opts timeline.Options, extra ...timeline.Option) *timeline.Timeline {
	t.Helper()
	extra = append([]timeline.Option{timeline.WithLogger(zerolog.Nop())}, extra...)
	tl := timeline.New(opts, extra...)
	t.Cleanup(tl.Close)
	return tl
}

// Recorder collects every event a timeline emits.
type Recorder struct {
	mu     sync.Mutex
	events []timeline.Event
}

// Record subscribes a new Recorder to all event types of tl.
func Record(tl *timeline.Timeline) *Recorder {
	r := &Recorder{}
	for _, et := range []timeline.EventType{
		timeline.EventChangeTime,
		timeline.EventChangeTimes,
		timeline.EventChangeEnabledTimes,
		timeline.EventStartAnimation,
		timeline.EventStopAnimation,
	} {
		tl.On(et, r.add)
	}
	return r
}

func (r *Recorder) add(ev timeline.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []timeline.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]timeline.Event(nil), r.events...)
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []timeline.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]timeline.EventType, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
