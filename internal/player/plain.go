package player

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tOgg1/timesync/internal/timeline"
)

// RunPlain animates tl and writes one line per selected time to out until
// ticks selections have been printed or ctx is done. It is used when stdout
// is not a terminal.
func RunPlain(ctx context.Context, tl *timeline.Timeline, out io.Writer, cfg Config, ticks int) error {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	changes := make(chan timeline.Event, 16)

	id := tl.On(timeline.EventChangeTime, func(ev timeline.Event) {
		select {
		case changes <- ev:
		case <-ctx.Done():
		}
	})
	defer tl.Un(timeline.EventChangeTime, id)

	tl.Start()
	defer tl.Stop()

	for printed := 0; ticks <= 0 || printed < ticks; printed++ {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-changes:
			if err := writeLine(out, tl, ev.Time, cfg.TimeFormat); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteSelection writes the current selection as a single line.
func WriteSelection(out io.Writer, tl *timeline.Timeline, format string) error {
	if format == "" {
		format = defaultTimeFormat
	}
	sel, ok := tl.SelectedTime()
	if !ok {
		_, err := fmt.Fprintln(out, "(none)")
		return err
	}
	return writeLine(out, tl, sel, format)
}

func writeLine(out io.Writer, tl *timeline.Timeline, ts time.Time, format string) error {
	enabled := tl.EnabledTimes()
	pos := "-"
	for i, e := range enabled {
		if e.Equal(ts) {
			pos = fmt.Sprintf("%d", i+1)
			break
		}
	}
	_, err := fmt.Fprintf(out, "%s\t%s/%d\n", ts.Format(format), pos, len(enabled))
	return err
}
