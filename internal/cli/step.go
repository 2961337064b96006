package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/cobra"

	"github.com/tOgg1/timesync/internal/player"
	"github.com/tOgg1/timesync/internal/timeline"
)

func newStepCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "step [--] OP...",
		Short: "Apply navigation operations and print the selection after each",
		Long: `Apply navigation operations in order and print the selected time after each.

Operations:
  first, last, next, prev   move between enabled times
  +3h, 2d, -15m             step by a signed amount of a unit, snapping to enabled times
  at:<RFC3339>              select an exact instant without snapping

Put -- before the operations when the first one starts with a minus sign.`,
		Example: "  timesync step -f sources.yaml -- first +6h next -1d at:2024-05-01T12:00:00Z",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops := make([]func(*timeline.Timeline), len(args))
			for i, arg := range args {
				op, err := parseOp(arg)
				if err != nil {
					return err
				}
				ops[i] = op
			}

			tl, _, err := opts.buildTimeline(cmd)
			if err != nil {
				return err
			}
			defer tl.Close()

			out := cmd.OutOrStdout()
			for i, op := range ops {
				op(tl)
				if _, err := fmt.Fprintf(out, "%s\t", args[i]); err != nil {
					return err
				}
				if err := player.WriteSelection(out, tl, opts.cfg.Player.TimeFormat); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// namedOps are the operations that take no argument.
var namedOps = []string{"first", "last", "next", "prev"}

// maxSuggestDistance is the largest edit distance still offered as a suggestion.
const maxSuggestDistance = 2

// parseOp turns one operation argument into a timeline action.
func parseOp(arg string) (func(*timeline.Timeline), error) {
	switch strings.ToLower(arg) {
	case "first":
		return (*timeline.Timeline).First, nil
	case "last":
		return (*timeline.Timeline).Last, nil
	case "next":
		return (*timeline.Timeline).Next, nil
	case "prev", "previous":
		return (*timeline.Timeline).Prev, nil
	}

	if value, ok := strings.CutPrefix(arg, "at:"); ok {
		ts, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, fmt.Errorf("invalid operation %q: %w", arg, err)
		}
		return func(tl *timeline.Timeline) { tl.SetSelectedTime(ts) }, nil
	}

	amount, unit, err := timeline.ParseStep(arg)
	if err != nil {
		if suggestion := suggestOp(arg); suggestion != "" {
			return nil, fmt.Errorf("invalid operation: %w (did you mean %q?)", err, suggestion)
		}
		return nil, fmt.Errorf("invalid operation: %w", err)
	}
	return func(tl *timeline.Timeline) { tl.Step(amount, unit) }, nil
}

// suggestOp returns the named operation closest to arg, or "" if none is close.
func suggestOp(arg string) string {
	arg = strings.ToLower(arg)
	best, bestDist := "", maxSuggestDistance+1
	for _, op := range namedOps {
		if d := levenshtein.ComputeDistance(arg, op); d < bestDist {
			best, bestDist = op, d
		}
	}
	return best
}
