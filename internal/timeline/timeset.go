package timeline

import (
	"slices"
	"sort"
	"time"

	"github.com/tOgg1/timesync/internal/logging"
)

// TimeSet is a snapshot of one source's registered times.
type TimeSet struct {
	ID      string
	Times   []time.Time
	Enabled []time.Time
}

// SetView is the read-only view of a registered time set handed to policies.
// Slices returned by a SetView are sorted ascending and must not be modified.
type SetView interface {
	ID() string
	Times() []time.Time
	EnabledTimes() []time.Time
	Contains(ts time.Time) bool
	IsEnabled(ts time.Time) bool
}

type timeSet struct {
	id      string
	times   []time.Time
	enabled []time.Time
	// members maps each time to whether it is enabled.
	members map[time.Time]bool
}

func newTimeSet(id string, times []time.Time) *timeSet {
	ts := &timeSet{id: id, times: normalizeTimes(times)}
	ts.members = make(map[time.Time]bool, len(ts.times))
	for _, v := range ts.times {
		ts.members[v] = true
	}
	ts.enabled = ts.times
	return ts
}

// setEnabled replaces the enabled subset. Values not in times are ignored.
func (s *timeSet) setEnabled(enabled []time.Time) {
	for k := range s.members {
		s.members[k] = false
	}
	for _, v := range enabled {
		v = normalize(v)
		if _, ok := s.members[v]; ok {
			s.members[v] = true
		}
	}
	s.enabled = make([]time.Time, 0, len(s.times))
	for _, v := range s.times {
		if s.members[v] {
			s.enabled = append(s.enabled, v)
		}
	}
}

func (s *timeSet) ID() string                { return s.id }
func (s *timeSet) Times() []time.Time        { return s.times }
func (s *timeSet) EnabledTimes() []time.Time { return s.enabled }

func (s *timeSet) Contains(ts time.Time) bool {
	_, ok := s.members[normalize(ts)]
	return ok
}

func (s *timeSet) IsEnabled(ts time.Time) bool {
	return s.members[normalize(ts)]
}

func (s *timeSet) snapshot() TimeSet {
	return TimeSet{
		ID:      s.id,
		Times:   cloneTimes(s.times),
		Enabled: cloneTimes(s.enabled),
	}
}

// SetTimesBySetID registers or replaces the time set for id. Times are sorted
// and deduplicated. When enabled is omitted every time is enabled; otherwise
// only the given times that are also in times are enabled.
func (t *Timeline) SetTimesBySetID(id string, times []time.Time, enabled ...[]time.Time) {
	set := newTimeSet(id, times)
	if len(enabled) > 0 && enabled[0] != nil {
		set.setEnabled(enabled[0])
	}

	t.mu.Lock()
	t.sets[id] = set
	nTimes, nEnabled := len(set.times), len(set.enabled)
	events := t.recomputeLocked()
	t.mu.Unlock()

	log := logging.WithSetID(t.logger, id)
	log.Debug().
		Int("times", nTimes).
		Int("enabled", nEnabled).
		Msg("time set replaced")

	t.emit(events)
}

// SetEnabledTimesBySetID replaces the enabled subset of an existing set.
// Times not already in the set are ignored. Unknown ids are a no-op.
func (t *Timeline) SetEnabledTimesBySetID(id string, enabled []time.Time) {
	t.mu.Lock()
	set, ok := t.sets[id]
	if !ok {
		t.mu.Unlock()
		t.logger.Debug().Str("set_id", id).Msg("enable update for unknown time set ignored")
		return
	}
	set.setEnabled(enabled)
	nEnabled := len(set.enabled)
	events := t.recomputeLocked()
	t.mu.Unlock()

	t.logger.Debug().
		Str("set_id", id).
		Int("enabled", nEnabled).
		Msg("time set enabled times updated")

	t.emit(events)
}

// DeleteSetID removes the time set for id. Unknown ids are a no-op.
func (t *Timeline) DeleteSetID(id string) {
	t.mu.Lock()
	if _, ok := t.sets[id]; !ok {
		t.mu.Unlock()
		return
	}
	delete(t.sets, id)
	events := t.recomputeLocked()
	t.mu.Unlock()

	t.logger.Debug().Str("set_id", id).Msg("time set deleted")
	t.emit(events)
}

// SetIDs returns the registered set ids in ascending order.
func (t *Timeline) SetIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]string, 0, len(t.sets))
	for id := range t.sets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TimeSet returns a copy of the set registered under id.
func (t *Timeline) TimeSet(id string) (TimeSet, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	set, ok := t.sets[id]
	if !ok {
		return TimeSet{}, false
	}
	return set.snapshot(), true
}

// recomputeLocked rebuilds allTimes and enabledTimes and returns the change
// events to emit once the lock is released.
func (t *Timeline) recomputeLocked() []Event {
	views := make([]SetView, 0, len(t.sets))
	ids := make([]string, 0, len(t.sets))
	for id := range t.sets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	total := 0
	for _, id := range ids {
		views = append(views, t.sets[id])
		total += len(t.sets[id].times)
	}

	merged := make([]time.Time, 0, total)
	for _, v := range views {
		merged = append(merged, v.Times()...)
	}
	allTimes := sortUnique(merged)

	var enabledTimes []time.Time
	if len(views) > 0 {
		enabledTimes = t.policy.Enabled(allTimes, views)
	}

	var events []Event
	if !equalTimes(t.allTimes, allTimes) {
		t.allTimes = allTimes
		events = append(events, Event{Type: EventChangeTimes, Times: cloneTimes(allTimes)})
	}
	if !equalTimes(t.enabledTimes, enabledTimes) {
		t.enabledTimes = enabledTimes
		events = append(events, Event{Type: EventChangeEnabledTimes, Times: cloneTimes(enabledTimes)})
	}
	return events
}

// normalize drops the monotonic reading and location so that equal instants
// compare equal with == and can be used as map keys.
func normalize(ts time.Time) time.Time {
	return ts.Round(0).UTC()
}

func normalizeTimes(in []time.Time) []time.Time {
	out := make([]time.Time, len(in))
	for i, v := range in {
		out[i] = normalize(v)
	}
	return sortUnique(out)
}

// sortUnique sorts in place and removes duplicates. Values must be normalized.
func sortUnique(in []time.Time) []time.Time {
	slices.SortFunc(in, func(a, b time.Time) int { return a.Compare(b) })
	return slices.Compact(in)
}

func equalTimes(a, b []time.Time) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
