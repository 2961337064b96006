package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tOgg1/timesync/internal/timeline"
)

var gapStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))

func newTimesCmd(opts *rootOptions) *cobra.Command {
	var enabledOnly bool
	cmd := &cobra.Command{
		Use:   "times",
		Short: "List the merged times and which are enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, _, err := opts.buildTimeline(cmd)
			if err != nil {
				return err
			}
			defer tl.Close()
			return writeTimes(cmd, tl, opts.cfg.Player.TimeFormat, opts.cfg.Player.ShowGaps, enabledOnly)
		},
	}
	cmd.Flags().BoolVar(&enabledOnly, "enabled", false, "list enabled times only")
	return cmd
}

func writeTimes(cmd *cobra.Command, tl *timeline.Timeline, format string, showGaps, enabledOnly bool) error {
	times := tl.Times()
	if enabledOnly {
		times = tl.EnabledTimes()
	}
	if len(times) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "no times")
		return err
	}

	enabled := make(map[time.Time]bool)
	for _, ts := range tl.EnabledTimes() {
		enabled[ts] = true
	}
	members := setMembership(tl)

	tbl := &table{headers: []string{"TIME", "ENABLED", "SETS"}}
	for i, ts := range times {
		if showGaps && i > 0 && !tl.IsContiguous(times[i-1], ts) {
			tbl.separate(gapStyle.Render(fmt.Sprintf("┊ gap %s", ts.Sub(times[i-1]))))
		}
		tbl.addRow(ts.Format(format), formatYesNo(enabled[ts]), strings.Join(members[ts], ","))
	}
	return tbl.write(cmd.OutOrStdout())
}

// setMembership maps each time to the ids of the sets containing it.
func setMembership(tl *timeline.Timeline) map[time.Time][]string {
	out := make(map[time.Time][]string)
	for _, id := range tl.SetIDs() {
		set, ok := tl.TimeSet(id)
		if !ok {
			continue
		}
		for _, ts := range set.Times {
			out[ts] = append(out[ts], id)
		}
	}
	return out
}

func newGapsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gaps",
		Short: "List contiguous groups of merged times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tl, _, err := opts.buildTimeline(cmd)
			if err != nil {
				return err
			}
			defer tl.Close()

			groups := tl.Groups()
			if len(groups) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no times")
				return err
			}

			format := opts.cfg.Player.TimeFormat
			tbl := &table{headers: []string{"GROUP", "FROM", "TO", "TIMES"}}
			for i, group := range groups {
				tbl.addRow(
					fmt.Sprintf("%d", i+1),
					group[0].Format(format),
					group[len(group)-1].Format(format),
					fmt.Sprintf("%d", len(group)),
				)
			}
			return tbl.write(cmd.OutOrStdout())
		},
	}
}
