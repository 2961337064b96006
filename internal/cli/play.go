package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tOgg1/timesync/internal/player"
	"github.com/tOgg1/timesync/internal/timeline"
)

func newPlayCmd(opts *rootOptions) *cobra.Command {
	var (
		ticks     int
		autostart bool
		theme     string
		stepFlag  string
		plain     bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Animate the timeline",
		Long: `Animate the timeline.

On a terminal this opens the interactive player. Otherwise, or with --plain,
it prints one line per selected time until --ticks lines have been written
or the process is interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, unit, err := timeline.ParseStep(stepFlag)
			if err != nil {
				return err
			}

			tl, doc, err := opts.buildTimeline(cmd)
			if err != nil {
				return err
			}
			defer tl.Close()

			cfg := player.Config{
				Theme:      opts.cfg.Player.Theme,
				ShowGaps:   opts.cfg.Player.ShowGaps,
				TimeFormat: opts.cfg.Player.TimeFormat,
				Autostart:  opts.cfg.Animation.Autostart,
				StepAmount: amount,
				StepUnit:   unit,
			}
			if len(doc.Sources) == 1 {
				cfg.Title = doc.Sources[0].Label()
			}
			if cmd.Flags().Changed("autostart") {
				cfg.Autostart = autostart
			}
			if cmd.Flags().Changed("theme") {
				cfg.Theme = theme
			}

			out := cmd.OutOrStdout()
			if plain || !isTerminal(cmd.InOrStdin(), out) {
				return player.RunPlain(cmd.Context(), tl, out, cfg, ticks)
			}
			return player.Run(tl, cfg)
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 0, "stop after this many selections in plain mode (0 = until interrupted)")
	cmd.Flags().BoolVar(&autostart, "autostart", false, "start animating when the player opens")
	cmd.Flags().StringVar(&theme, "theme", "", "theme: default|high-contrast")
	cmd.Flags().StringVar(&stepFlag, "step", "1h", "amount moved by the +/- keys")
	cmd.Flags().BoolVar(&plain, "plain", false, "print selections instead of opening the player")
	return cmd
}

// isTerminal reports whether both ends are attached to a TTY.
func isTerminal(in io.Reader, out io.Writer) bool {
	inFile, ok := in.(*os.File)
	if !ok {
		return false
	}
	outFile, ok := out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(inFile.Fd())) && term.IsTerminal(int(outFile.Fd()))
}
