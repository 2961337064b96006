package timeline

import "time"

// Interval is a pair of consecutive merged times and its gap classification.
type Interval struct {
	From time.Time
	To   time.Time
	// Gap is true when To-From exceeds the configured maximum time gap.
	Gap bool
}

// Duration returns the distance between the two times.
func (i Interval) Duration() time.Duration {
	return i.To.Sub(i.From)
}

// MaxTimeGap returns the configured gap threshold.
func (t *Timeline) MaxTimeGap() time.Duration {
	return t.maxTimeGap
}

// IsContiguous reports whether a and b are close enough to be presented as one
// group. Order of the arguments does not matter.
func (t *Timeline) IsContiguous(a, b time.Time) bool {
	return contiguous(a, b, t.maxTimeGap)
}

// Intervals classifies every consecutive pair of merged times.
func (t *Timeline) Intervals() []Interval {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.allTimes) < 2 {
		return nil
	}
	out := make([]Interval, 0, len(t.allTimes)-1)
	for i := 1; i < len(t.allTimes); i++ {
		a, b := t.allTimes[i-1], t.allTimes[i]
		out = append(out, Interval{From: a, To: b, Gap: !contiguous(a, b, t.maxTimeGap)})
	}
	return out
}

// Groups splits the merged times into maximal contiguous runs.
func (t *Timeline) Groups() [][]time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.allTimes) == 0 {
		return nil
	}
	var groups [][]time.Time
	current := []time.Time{t.allTimes[0]}
	for i := 1; i < len(t.allTimes); i++ {
		a, b := t.allTimes[i-1], t.allTimes[i]
		if !contiguous(a, b, t.maxTimeGap) {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, b)
	}
	return append(groups, current)
}

func contiguous(a, b time.Time, maxGap time.Duration) bool {
	if maxGap <= 0 {
		return true
	}
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return d <= maxGap
}
