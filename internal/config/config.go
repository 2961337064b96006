// Package config handles timesync configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/tOgg1/timesync/internal/logging"
	"github.com/tOgg1/timesync/internal/timeline"
)

// Config is the root configuration structure for timesync.
type Config struct {
	// Timeline settings
	Timeline TimelineConfig `yaml:"timeline" mapstructure:"timeline"`

	// Animation settings
	Animation AnimationConfig `yaml:"animation" mapstructure:"animation"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// Player settings
	Player PlayerConfig `yaml:"player" mapstructure:"player"`
}

// TimelineConfig contains construction-time timeline settings.
type TimelineConfig struct {
	// MaxTimeGap is the largest step still shown as contiguous (0 = never a gap).
	MaxTimeGap time.Duration `yaml:"max_time_gap" mapstructure:"max_time_gap"`

	// AllEnabledStepsOnly enables only times present and enabled in every source.
	AllEnabledStepsOnly bool `yaml:"all_enabled_steps_only" mapstructure:"all_enabled_steps_only"`
}

// AnimationConfig contains animation settings.
type AnimationConfig struct {
	// Interval is the period between animation steps.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Autostart starts animation as soon as the player opens.
	Autostart bool `yaml:"autostart" mapstructure:"autostart"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// PlayerConfig contains terminal player settings.
type PlayerConfig struct {
	// Theme is the color theme (default, high-contrast).
	Theme string `yaml:"theme" mapstructure:"theme"`

	// ShowGaps draws separators between non-contiguous groups.
	ShowGaps bool `yaml:"show_gaps" mapstructure:"show_gaps"`

	// TimeFormat is the Go layout used to print times.
	TimeFormat string `yaml:"time_format" mapstructure:"time_format"`
}

// minAnimationInterval keeps the player from spinning.
const minAnimationInterval = 10 * time.Millisecond

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timeline: TimelineConfig{
			MaxTimeGap:          0,
			AllEnabledStepsOnly: false,
		},
		Animation: AnimationConfig{
			Interval:  timeline.DefaultAnimationInterval,
			Autostart: false,
		},
		Logging: LoggingConfig{
			Level:        "warn",
			Format:       "console",
			EnableCaller: false,
		},
		Player: PlayerConfig{
			Theme:      "default",
			ShowGaps:   true,
			TimeFormat: "2006-01-02 15:04Z07:00",
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeline.MaxTimeGap < 0 {
		return fmt.Errorf("timeline.max_time_gap must not be negative")
	}

	if c.Animation.Interval < minAnimationInterval {
		return fmt.Errorf("animation.interval must be at least %s", minAnimationInterval)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be one of console, json")
	}

	switch c.Player.Theme {
	case "default", "high-contrast":
	default:
		return fmt.Errorf("player.theme must be one of default, high-contrast")
	}

	if c.Player.TimeFormat == "" {
		return fmt.Errorf("player.time_format is required")
	}

	return nil
}

// TimelineOptions converts the config into timeline construction options.
func (c *Config) TimelineOptions() timeline.Options {
	return timeline.Options{
		MaxTimeGap:          c.Timeline.MaxTimeGap,
		AllEnabledStepsOnly: c.Timeline.AllEnabledStepsOnly,
		AnimationInterval:   c.Animation.Interval,
	}
}

// LoggingOptions converts the config into logging options.
func (c *Config) LoggingOptions() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.EnableCaller = c.Logging.EnableCaller
	return cfg
}
