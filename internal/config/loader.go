package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. TIMESYNC_LOGGING_LEVEL.
const EnvPrefix = "TIMESYNC"

// Loader handles configuration loading with Viper.
type Loader struct {
	v          *viper.Viper
	configFile string
	searchDirs []string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
	}
}

// SetConfigFile sets an explicit config file path.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
}

// SetSearchDirs replaces the default config search directories.
func (l *Loader) SetSearchDirs(dirs ...string) {
	l.searchDirs = dirs
}

// Load loads configuration with proper precedence:
// defaults < config file < env vars < CLI flags
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	l.setupViper(cfg)

	if err := l.loadConfigFile(); err != nil {
		// Config file is optional, only error if explicitly specified
		if l.configFile != "" {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// setupViper configures Viper with defaults and environment bindings.
func (l *Loader) setupViper(cfg *Config) {
	v := l.v

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	for _, dir := range l.configDirs() {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	l.setDefaults(cfg)

	// Explicitly bind environment variables (Viper's Unmarshal has issues without this)
	bindEnvVars(v)

	v.AutomaticEnv()
}

func (l *Loader) configDirs() []string {
	if l.searchDirs != nil {
		return l.searchDirs
	}

	var dirs []string
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		dirs = append(dirs, filepath.Join(xdgConfig, "timesync"))
	}
	if homeDir, _ := os.UserHomeDir(); homeDir != "" {
		dirs = append(dirs, filepath.Join(homeDir, ".config", "timesync"))
	}
	return append(dirs, ".")
}

// setDefaults sets all default values in Viper.
func (l *Loader) setDefaults(cfg *Config) {
	v := l.v

	// Timeline
	v.SetDefault("timeline.max_time_gap", cfg.Timeline.MaxTimeGap)
	v.SetDefault("timeline.all_enabled_steps_only", cfg.Timeline.AllEnabledStepsOnly)

	// Animation
	v.SetDefault("animation.interval", cfg.Animation.Interval)
	v.SetDefault("animation.autostart", cfg.Animation.Autostart)

	// Logging
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.enable_caller", cfg.Logging.EnableCaller)

	// Player
	v.SetDefault("player.theme", cfg.Player.Theme)
	v.SetDefault("player.show_gaps", cfg.Player.ShowGaps)
	v.SetDefault("player.time_format", cfg.Player.TimeFormat)
}

// loadConfigFile attempts to load the configuration file.
func (l *Loader) loadConfigFile() error {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	}

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// ConfigFileUsed returns the config file that was loaded.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Set overrides a value by key, taking precedence over file and env.
func (l *Loader) Set(key string, value interface{}) {
	l.v.Set(key, value)
}

// LoadFromFile loads configuration from a specific file.
func LoadFromFile(path string) (*Config, error) {
	loader := NewLoader()
	loader.SetConfigFile(path)
	return loader.Load()
}

// bindEnvVars binds TIMESYNC_* environment variables for every config key.
func bindEnvVars(v *viper.Viper) {
	envBindings := []string{
		"timeline.max_time_gap",
		"timeline.all_enabled_steps_only",
		"animation.interval",
		"animation.autostart",
		"logging.level",
		"logging.format",
		"logging.enable_caller",
		"player.theme",
		"player.show_gaps",
		"player.time_format",
	}

	for _, key := range envBindings {
		envVar := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(key, envVar)
	}
}
