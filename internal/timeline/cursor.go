package timeline

import (
	"math"
	"sort"
	"time"
)

// SelectedTime returns the selected time and whether one was ever set.
// The returned time may not be an enabled time; see IsTimeValid.
func (t *Timeline) SelectedTime() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected, t.hasSelected
}

// IsTimeValid reports whether the selected time is one of the enabled times.
func (t *Timeline) IsTimeValid() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.validLocked()
}

// SetSelectedTime selects ts as is, without snapping to an enabled time.
func (t *Timeline) SetSelectedTime(ts time.Time) {
	t.mu.Lock()
	events := t.selectLocked(normalize(ts))
	t.mu.Unlock()
	t.emit(events)
}

// First selects the earliest enabled time. No-op when nothing is enabled.
func (t *Timeline) First() {
	t.navigate((*Timeline).firstLocked)
}

// Last selects the latest enabled time. No-op when nothing is enabled.
func (t *Timeline) Last() {
	t.navigate((*Timeline).lastLocked)
}

// Next selects the enabled time after the selected one. An invalid selection
// behaves like First. At the last enabled time it does nothing.
func (t *Timeline) Next() {
	t.navigate((*Timeline).nextLocked)
}

// Prev selects the enabled time before the selected one. An invalid selection
// behaves like Last. At the first enabled time it does nothing.
func (t *Timeline) Prev() {
	t.navigate((*Timeline).prevLocked)
}

// Add shifts the selected time forward by amount units and snaps to the
// nearest enabled time at or after the result, or to the last enabled time if
// there is none. Without any selection it behaves like First.
func (t *Timeline) Add(amount int, unit Unit) {
	t.navigate(func(tl *Timeline) []Event {
		if !tl.hasSelected {
			return tl.firstLocked()
		}
		return tl.snapForwardLocked(unit.Shift(tl.selected, amount))
	})
}

// Sub shifts the selected time back by amount units and snaps to the nearest
// enabled time at or before the result, or to the first enabled time if there
// is none. Without any selection it behaves like Last.
func (t *Timeline) Sub(amount int, unit Unit) {
	t.navigate(func(tl *Timeline) []Event {
		if !tl.hasSelected {
			return tl.lastLocked()
		}
		return tl.snapBackwardLocked(unit.Shift(tl.selected, -amount))
	})
}

// Step applies a signed amount: positive amounts use Add, negative use Sub.
// math.MinInt is treated as -math.MaxInt.
func (t *Timeline) Step(amount int, unit Unit) {
	if amount < 0 {
		if amount == math.MinInt {
			amount++
		}
		t.Sub(-amount, unit)
		return
	}
	t.Add(amount, unit)
}

// IsFirstEnabledTime reports whether the selection is the earliest enabled time.
func (t *Timeline) IsFirstEnabledTime() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(t.enabledTimes)
	return t.hasSelected && n > 0 && t.selected.Equal(t.enabledTimes[0])
}

// IsLastEnabledTime reports whether the selection is the latest enabled time.
func (t *Timeline) IsLastEnabledTime() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(t.enabledTimes)
	return t.hasSelected && n > 0 && t.selected.Equal(t.enabledTimes[n-1])
}

func (t *Timeline) navigate(step func(*Timeline) []Event) {
	t.mu.Lock()
	if len(t.enabledTimes) == 0 {
		t.mu.Unlock()
		return
	}
	events := step(t)
	t.mu.Unlock()
	t.emit(events)
}

// enabledIndexLocked returns the index of the selection in enabledTimes, or -1.
func (t *Timeline) enabledIndexLocked() int {
	if !t.hasSelected {
		return -1
	}
	i := sort.Search(len(t.enabledTimes), func(i int) bool {
		return !t.enabledTimes[i].Before(t.selected)
	})
	if i < len(t.enabledTimes) && t.enabledTimes[i].Equal(t.selected) {
		return i
	}
	return -1
}

func (t *Timeline) validLocked() bool {
	return t.enabledIndexLocked() >= 0
}

func (t *Timeline) firstLocked() []Event {
	return t.selectLocked(t.enabledTimes[0])
}

func (t *Timeline) lastLocked() []Event {
	return t.selectLocked(t.enabledTimes[len(t.enabledTimes)-1])
}

func (t *Timeline) nextLocked() []Event {
	i := t.enabledIndexLocked()
	if i < 0 {
		return t.firstLocked()
	}
	if i+1 >= len(t.enabledTimes) {
		return nil
	}
	return t.selectLocked(t.enabledTimes[i+1])
}

func (t *Timeline) prevLocked() []Event {
	i := t.enabledIndexLocked()
	if i < 0 {
		return t.lastLocked()
	}
	if i == 0 {
		return nil
	}
	return t.selectLocked(t.enabledTimes[i-1])
}

// nextWrapLocked is nextLocked with wraparound from the last to the first time.
func (t *Timeline) nextWrapLocked() []Event {
	i := t.enabledIndexLocked()
	if i >= 0 && i == len(t.enabledTimes)-1 {
		return t.firstLocked()
	}
	return t.nextLocked()
}

func (t *Timeline) snapForwardLocked(target time.Time) []Event {
	i := sort.Search(len(t.enabledTimes), func(i int) bool {
		return !t.enabledTimes[i].Before(target)
	})
	if i >= len(t.enabledTimes) {
		return t.lastLocked()
	}
	return t.selectLocked(t.enabledTimes[i])
}

func (t *Timeline) snapBackwardLocked(target time.Time) []Event {
	i := sort.Search(len(t.enabledTimes), func(i int) bool {
		return t.enabledTimes[i].After(target)
	})
	if i == 0 {
		return t.firstLocked()
	}
	return t.selectLocked(t.enabledTimes[i-1])
}

// selectLocked sets the selection and returns a change event if it moved.
func (t *Timeline) selectLocked(ts time.Time) []Event {
	if t.hasSelected && t.selected.Equal(ts) {
		return nil
	}
	t.selected = ts
	t.hasSelected = true
	return []Event{{Type: EventChangeTime, Time: ts}}
}
