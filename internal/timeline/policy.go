package timeline

import "time"

// Policy decides which merged times are selectable.
type Policy interface {
	// Name identifies the policy in logs and CLI output.
	Name() string

	// Enabled returns the enabled subset of all, in ascending order. all is the
	// sorted union of every set's times and sets is never empty.
	Enabled(all []time.Time, sets []SetView) []time.Time
}

var (
	// AnyEnabled enables a time if at least one set containing it has it enabled.
	AnyEnabled Policy = anyEnabled{}

	// AllEnabledStepsOnly enables a time only if every registered set contains
	// it and has it enabled.
	AllEnabledStepsOnly Policy = allEnabledStepsOnly{}
)

type anyEnabled struct{}

func (anyEnabled) Name() string { return "any" }

func (anyEnabled) Enabled(all []time.Time, sets []SetView) []time.Time {
	enabled := make(map[time.Time]struct{}, len(all))
	for _, s := range sets {
		for _, ts := range s.EnabledTimes() {
			enabled[ts] = struct{}{}
		}
	}
	out := make([]time.Time, 0, len(enabled))
	for _, ts := range all {
		if _, ok := enabled[ts]; ok {
			out = append(out, ts)
		}
	}
	return out
}

type allEnabledStepsOnly struct{}

func (allEnabledStepsOnly) Name() string { return "allEnabledStepsOnly" }

func (allEnabledStepsOnly) Enabled(all []time.Time, sets []SetView) []time.Time {
	// Each set lists a time at most once, so a count equal to len(sets) means
	// present and enabled everywhere.
	counts := make(map[time.Time]int, len(all))
	for _, s := range sets {
		for _, ts := range s.EnabledTimes() {
			counts[ts]++
		}
	}
	out := make([]time.Time, 0)
	for _, ts := range all {
		if counts[ts] == len(sets) {
			out = append(out, ts)
		}
	}
	return out
}
