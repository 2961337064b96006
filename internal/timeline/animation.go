package timeline

import (
	"context"
	"time"
)

// animation is the scheduler state. It is guarded by Timeline.mu.
type animation struct {
	interval time.Duration
	running  bool
	// gen increases on every start, stop and restart. A tick only acts if it
	// still carries the current generation.
	gen    uint64
	cancel context.CancelFunc
}

// Start begins animation. Each tick advances the selection to the next enabled
// time, wrapping from the last to the first. Emits EventStartAnimation if
// animation was stopped; otherwise does nothing.
func (t *Timeline) Start() {
	t.mu.Lock()
	if t.anim.running {
		t.mu.Unlock()
		return
	}
	t.anim.running = true
	t.launchLocked()
	interval := t.anim.interval
	t.mu.Unlock()

	t.logger.Info().Dur("interval", interval).Msg("animation starting")
	t.emit([]Event{{Type: EventStartAnimation}})
}

// Stop halts animation. Once Stop returns no further tick advances the
// selection. Emits EventStopAnimation if animation was running; otherwise does
// nothing.
func (t *Timeline) Stop() {
	t.mu.Lock()
	if !t.anim.running {
		t.mu.Unlock()
		return
	}
	t.anim.running = false
	t.anim.gen++
	t.anim.cancel()
	t.anim.cancel = nil
	t.mu.Unlock()

	t.logger.Info().Msg("animation stopped")
	t.emit([]Event{{Type: EventStopAnimation}})
}

// Toggle starts a stopped animation or stops a running one.
func (t *Timeline) Toggle() {
	if t.IsAnimating() {
		t.Stop()
		return
	}
	t.Start()
}

// IsAnimating reports whether animation is running.
func (t *Timeline) IsAnimating() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.anim.running
}

// AnimationInterval returns the period between ticks.
func (t *Timeline) AnimationInterval() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.anim.interval
}

// SetAnimationInterval changes the tick period. A running animation restarts
// its timer with the new period without emitting stop or start events.
// Non-positive values are ignored.
func (t *Timeline) SetAnimationInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.anim.interval = d
	if t.anim.running {
		t.anim.cancel()
		t.launchLocked()
	}
}

// launchLocked starts a tick loop for a new generation.
func (t *Timeline) launchLocked() {
	t.anim.gen++
	ctx, cancel := context.WithCancel(context.Background())
	t.anim.cancel = cancel
	go t.runAnimation(ctx, t.anim.gen, t.anim.interval)
}

func (t *Timeline) runAnimation(ctx context.Context, gen uint64, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.tick(gen)
		}
	}
}

// tick performs one animation step for generation gen. Ticks from a stopped or
// restarted loop are dropped. With no enabled times the tick is skipped and
// animation keeps running.
func (t *Timeline) tick(gen uint64) {
	t.mu.Lock()
	if !t.anim.running || t.anim.gen != gen {
		t.mu.Unlock()
		return
	}
	if len(t.enabledTimes) == 0 {
		t.mu.Unlock()
		t.logger.Debug().Msg("animation tick skipped: no enabled times")
		return
	}
	events := t.nextWrapLocked()
	t.mu.Unlock()
	t.emit(events)
}
