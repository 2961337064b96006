package timeline

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var t0 = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

// h returns t0 shifted by n hours.
func h(n int) time.Time {
	return t0.Add(time.Duration(n) * time.Hour)
}

func hours(ns ...int) []time.Time {
	out := make([]time.Time, len(ns))
	for i, n := range ns {
		out[i] = h(n)
	}
	return out
}

func newTestTimeline(t *testing.T, opts Options, extra ...Option) *Timeline {
	t.Helper()
	extra = append([]Option{WithLogger(zerolog.Nop())}, extra...)
	tl := New(opts, extra...)
	t.Cleanup(tl.Close)
	return tl
}

// recorder collects events in the order they were emitted.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func record(tl *Timeline, types ...EventType) *recorder {
	r := &recorder{}
	for _, et := range types {
		tl.On(et, func(ev Event) {
			r.mu.Lock()
			r.events = append(r.events, ev)
			r.mu.Unlock()
		})
	}
	return r
}

func (r *recorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

func (r *recorder) count(et EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Type == et {
			n++
		}
	}
	return n
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
