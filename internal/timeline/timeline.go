// Package timeline keeps several independently updated sets of timestamps in
// sync and drives a single selected time over their merged sequence.
//
// Each data source registers one TimeSet under its own set ID and replaces it
// wholesale whenever its times change. The Timeline merges all sets into a
// sorted, duplicate-free sequence, derives which of those timestamps are
// selectable under its Policy, and exposes a cursor with manual stepping and
// timer-driven animation. Changes are announced synchronously through named
// events.
//
// All methods are safe for concurrent use. Events are dispatched on the
// goroutine that caused them, after the Timeline lock has been released, so
// handlers may call back into the Timeline.
package timeline

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tOgg1/timesync/internal/emitter"
	"github.com/tOgg1/timesync/internal/logging"
)

// EventType names an event emitted by a Timeline.
type EventType string

const (
	// EventChangeTime fires when the selected time changes.
	EventChangeTime EventType = "change:time"
	// EventChangeTimes fires when the merged time sequence changes.
	EventChangeTimes EventType = "change:times"
	// EventChangeEnabledTimes fires when the enabled time sequence changes.
	EventChangeEnabledTimes EventType = "change:enabledTimes"
	// EventStartAnimation fires when animation goes from stopped to running.
	EventStartAnimation EventType = "start:animation"
	// EventStopAnimation fires when animation goes from running to stopped.
	EventStopAnimation EventType = "stop:animation"
)

// Event is the payload delivered to listeners.
type Event struct {
	Type EventType

	// Time is the newly selected time for EventChangeTime.
	Time time.Time

	// Times is a copy of the new sequence for EventChangeTimes and
	// EventChangeEnabledTimes.
	Times []time.Time
}

// Handler receives timeline events.
type Handler func(Event)

// DefaultAnimationInterval is the animation period used when none is configured.
const DefaultAnimationInterval = time.Second

// Options configures a Timeline at construction.
type Options struct {
	// MaxTimeGap is the largest distance between consecutive times that still
	// counts as contiguous. Zero or negative disables gap classification.
	MaxTimeGap time.Duration

	// AllEnabledStepsOnly selects the AllEnabledStepsOnly policy instead of
	// AnyEnabled.
	AllEnabledStepsOnly bool

	// AnimationInterval is the period between animation ticks.
	// Default: 1s
	AnimationInterval time.Duration
}

// Option customizes a Timeline beyond Options.
type Option func(*Timeline)

// WithLogger replaces the default component logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Timeline) {
		t.logger = logger
	}
}

// WithPolicy overrides the policy chosen by Options.AllEnabledStepsOnly.
func WithPolicy(p Policy) Option {
	return func(t *Timeline) {
		if p != nil {
			t.policy = p
		}
	}
}

// Timeline merges time sets and tracks the selected time.
type Timeline struct {
	mu     sync.Mutex
	events emitter.Emitter[Event]
	logger zerolog.Logger
	policy Policy

	maxTimeGap time.Duration

	sets         map[string]*timeSet
	allTimes     []time.Time
	enabledTimes []time.Time

	selected    time.Time
	hasSelected bool

	anim animation
}

// New creates an empty Timeline.
func New(opts Options, extra ...Option) *Timeline {
	if opts.AnimationInterval <= 0 {
		opts.AnimationInterval = DefaultAnimationInterval
	}

	t := &Timeline{
		logger:     logging.Component("timeline"),
		policy:     AnyEnabled,
		maxTimeGap: opts.MaxTimeGap,
		sets:       make(map[string]*timeSet),
		anim:       animation{interval: opts.AnimationInterval},
	}
	if opts.AllEnabledStepsOnly {
		t.policy = AllEnabledStepsOnly
	}
	for _, opt := range extra {
		opt(t)
	}
	return t
}

// Policy returns the aggregation policy fixed at construction.
func (t *Timeline) Policy() Policy {
	return t.policy
}

// On registers h for every future event of the given type.
func (t *Timeline) On(eventType EventType, h Handler) emitter.ListenerID {
	if h == nil {
		return 0
	}
	return t.events.On(string(eventType), emitter.Handler[Event](h))
}

// Once registers h for the next event of the given type.
func (t *Timeline) Once(eventType EventType, h Handler) emitter.ListenerID {
	if h == nil {
		return 0
	}
	return t.events.Once(string(eventType), emitter.Handler[Event](h))
}

// Un removes a listener registered with On or Once.
func (t *Timeline) Un(eventType EventType, id emitter.ListenerID) bool {
	return t.events.Un(string(eventType), id)
}

// HasListener reports whether a listener is registered for eventType.
// An empty eventType asks about any event.
func (t *Timeline) HasListener(eventType EventType) bool {
	return t.events.HasListener(string(eventType))
}

// Close stops animation and drops every listener.
func (t *Timeline) Close() {
	t.Stop()
	t.events.Clear()
}

// Times returns the merged, sorted, duplicate-free time sequence.
func (t *Timeline) Times() []time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneTimes(t.allTimes)
}

// EnabledTimes returns the selectable subset of Times.
func (t *Timeline) EnabledTimes() []time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneTimes(t.enabledTimes)
}

// emit dispatches events collected under the lock. Must be called without t.mu held.
func (t *Timeline) emit(events []Event) {
	for _, ev := range events {
		t.events.Trigger(string(ev.Type), ev)
	}
}

func cloneTimes(in []time.Time) []time.Time {
	if in == nil {
		return nil
	}
	out := make([]time.Time, len(in))
	copy(out, in)
	return out
}
