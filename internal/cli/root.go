// Package cli implements the timesync command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tOgg1/timesync/internal/config"
	"github.com/tOgg1/timesync/internal/logging"
	"github.com/tOgg1/timesync/internal/timeline"
)

// Execute runs the root command until it finishes or the process is interrupted.
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd(version).ExecuteContext(ctx)
}

// rootOptions holds the persistent flag values and the loaded config shared by
// every subcommand.
type rootOptions struct {
	configFile string
	sourceFile string
	logLevel   string
	logFormat  string

	cfg *config.Config
}

// flagBindings maps persistent flags onto config keys.
var flagBindings = map[string]string{
	"log-level":              "logging.level",
	"log-format":             "logging.format",
	"max-gap":                "timeline.max_time_gap",
	"all-enabled-steps-only": "timeline.all_enabled_steps_only",
	"interval":               "animation.interval",
}

func newRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "timesync",
		Short:         "Merge time series and step through them in sync",
		Long:          "timesync merges the time steps of several sources into one timeline you can step through and animate.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/timesync/config.yaml)")
	flags.StringVarP(&opts.sourceFile, "file", "f", "", "source document (YAML), - for stdin")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace|debug|info|warn|error|disabled")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: console|json")
	flags.Duration("max-gap", 0, "largest step between times still treated as contiguous")
	flags.Bool("all-enabled-steps-only", false, "enable only times enabled in every source")
	flags.Duration("interval", 0, "animation step interval")

	cmd.AddCommand(
		newTimesCmd(opts),
		newGapsCmd(opts),
		newStepCmd(opts),
		newPlayCmd(opts),
		newSourcesCmd(opts),
	)

	return cmd
}

// load resolves configuration with flags taking precedence, then initializes
// logging.
func (o *rootOptions) load(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if o.configFile != "" {
		loader.SetConfigFile(o.configFile)
	}

	for name, key := range flagBindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		switch name {
		case "log-level", "log-format":
			loader.Set(key, strings.TrimSpace(flag.Value.String()))
		case "all-enabled-steps-only":
			value, _ := cmd.Flags().GetBool(name)
			loader.Set(key, value)
		default:
			value, _ := cmd.Flags().GetDuration(name)
			loader.Set(key, value)
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	o.cfg = cfg

	logCfg := cfg.LoggingOptions()
	logCfg.Output = cmd.ErrOrStderr()
	logging.Init(logCfg)

	if used := loader.ConfigFileUsed(); used != "" {
		log := logging.Component("cli")
		log.Debug().Str("path", used).Msg("loaded config file")
	}
	return nil
}

// buildTimeline creates a timeline from the loaded config and fills it from
// the source document.
func (o *rootOptions) buildTimeline(cmd *cobra.Command) (*timeline.Timeline, *config.SourceDocument, error) {
	doc, err := o.loadSources(cmd)
	if err != nil {
		return nil, nil, err
	}

	tl := timeline.New(o.cfg.TimelineOptions())
	if _, err := doc.Apply(tl); err != nil {
		tl.Close()
		return nil, nil, err
	}
	return tl, doc, nil
}

func (o *rootOptions) loadSources(cmd *cobra.Command) (*config.SourceDocument, error) {
	switch o.sourceFile {
	case "":
		return nil, fmt.Errorf("no source document: pass --file")
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return config.ParseSources(data)
	default:
		return config.LoadSources(o.sourceFile)
	}
}
