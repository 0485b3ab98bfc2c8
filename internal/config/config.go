// Package config provides configuration management for Tempo.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dvidx/tempo/internal/domain"
)

// Config holds all configuration for the Tempo application.
type Config struct {
	Timer         TimerConfig        `mapstructure:"timer"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Theme         ThemeConfig        `mapstructure:"theme"`
	Log           LogConfig          `mapstructure:"log"`
}

// TimerConfig holds the phase durations and cadence settings.
type TimerConfig struct {
	WorkDuration      Duration `mapstructure:"work_duration"`
	ShortBreak        Duration `mapstructure:"short_break"`
	LongBreak         Duration `mapstructure:"long_break"`
	LongBreakInterval int      `mapstructure:"long_break_interval"`
	AutoStartDelay    Duration `mapstructure:"auto_start_delay"`
	TickInterval      Duration `mapstructure:"tick_interval"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorWork          string `mapstructure:"color_work"`
	ColorBreak         string `mapstructure:"color_break"`
	ColorPaused        string `mapstructure:"color_paused"`
	ColorTitle         string `mapstructure:"color_title"`
	ColorHelp          string `mapstructure:"color_help"`
	WorkGradientStart  string `mapstructure:"work_gradient_start"`
	WorkGradientEnd    string `mapstructure:"work_gradient_end"`
	BreakGradientStart string `mapstructure:"break_gradient_start"`
	BreakGradientEnd   string `mapstructure:"break_gradient_end"`
	IconApp            string `mapstructure:"icon_app"`
	IconPaused         string `mapstructure:"icon_paused"`
	IconStats          string `mapstructure:"icon_stats"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorWork:          "#7C6FE0",
		ColorBreak:         "#4ECDC4",
		ColorPaused:        "#6B7280",
		ColorTitle:         "#6B7280",
		ColorHelp:          "#95A5A6",
		WorkGradientStart:  "#7C6FE0",
		WorkGradientEnd:    "#A78BFA",
		BreakGradientStart: "#4ECDC4",
		BreakGradientEnd:   "#2ECC71",
		IconApp:            "🍅",
		IconPaused:         "⏸",
		IconStats:          "📊",
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			WorkDuration:      Duration(domain.DefaultWorkDuration),
			ShortBreak:        Duration(domain.DefaultShortBreakDuration),
			LongBreak:         Duration(domain.DefaultLongBreakDuration),
			LongBreakInterval: domain.DefaultLongBreakInterval,
			AutoStartDelay:    Duration(3 * time.Second),
			TickInterval:      Duration(time.Minute),
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Storage: StorageConfig{
			DataDir: "~/.tempo",
		},
		Theme: DefaultThemeConfig(),
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.tempo" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".tempo")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("timer.work_duration", cfg.Timer.WorkDuration.String())
	viper.Set("timer.short_break", cfg.Timer.ShortBreak.String())
	viper.Set("timer.long_break", cfg.Timer.LongBreak.String())
	viper.Set("timer.long_break_interval", cfg.Timer.LongBreakInterval)
	viper.Set("timer.auto_start_delay", cfg.Timer.AutoStartDelay.String())
	viper.Set("timer.tick_interval", cfg.Timer.TickInterval.String())
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("log.level", cfg.Log.Level)
	viper.Set("theme.color_work", cfg.Theme.ColorWork)
	viper.Set("theme.color_break", cfg.Theme.ColorBreak)
	viper.Set("theme.color_paused", cfg.Theme.ColorPaused)
	viper.Set("theme.color_title", cfg.Theme.ColorTitle)
	viper.Set("theme.color_help", cfg.Theme.ColorHelp)
	viper.Set("theme.work_gradient_start", cfg.Theme.WorkGradientStart)
	viper.Set("theme.work_gradient_end", cfg.Theme.WorkGradientEnd)
	viper.Set("theme.break_gradient_start", cfg.Theme.BreakGradientStart)
	viper.Set("theme.break_gradient_end", cfg.Theme.BreakGradientEnd)
	viper.Set("theme.icon_app", cfg.Theme.IconApp)
	viper.Set("theme.icon_paused", cfg.Theme.IconPaused)
	viper.Set("theme.icon_stats", cfg.Theme.IconStats)

	return viper.WriteConfig()
}

// SetValue updates a single configuration key and writes the file back,
// leaving every other key untouched.
func SetValue(key, value string) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")
	setDefaults()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
	}
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	viper.Set(key, value)
	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".tempo", "config.toml"), nil
}

// GetDBPath returns the path to the database file, expanding a leading ~
// in the configured data directory.
func GetDBPath(cfg *Config) string {
	dir := cfg.Storage.DataDir
	if strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	return filepath.Join(dir, "tempo.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("timer.work_duration", "25m0s")
	viper.SetDefault("timer.short_break", "5m0s")
	viper.SetDefault("timer.long_break", "15m0s")
	viper.SetDefault("timer.long_break_interval", domain.DefaultLongBreakInterval)
	viper.SetDefault("timer.auto_start_delay", "3s")
	viper.SetDefault("timer.tick_interval", "1m0s")
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", true)
	viper.SetDefault("storage.data_dir", "~/.tempo")
	viper.SetDefault("log.level", "warn")

	defaults := DefaultThemeConfig()
	viper.SetDefault("theme.color_work", defaults.ColorWork)
	viper.SetDefault("theme.color_break", defaults.ColorBreak)
	viper.SetDefault("theme.color_paused", defaults.ColorPaused)
	viper.SetDefault("theme.color_title", defaults.ColorTitle)
	viper.SetDefault("theme.color_help", defaults.ColorHelp)
	viper.SetDefault("theme.work_gradient_start", defaults.WorkGradientStart)
	viper.SetDefault("theme.work_gradient_end", defaults.WorkGradientEnd)
	viper.SetDefault("theme.break_gradient_start", defaults.BreakGradientStart)
	viper.SetDefault("theme.break_gradient_end", defaults.BreakGradientEnd)
	viper.SetDefault("theme.icon_app", defaults.IconApp)
	viper.SetDefault("theme.icon_paused", defaults.IconPaused)
	viper.SetDefault("theme.icon_stats", defaults.IconStats)
}

// ToSettings converts the timer section to the domain settings snapshot.
func (c *Config) ToSettings() domain.Settings {
	return domain.Settings{
		WorkDuration:       time.Duration(c.Timer.WorkDuration),
		ShortBreakDuration: time.Duration(c.Timer.ShortBreak),
		LongBreakDuration:  time.Duration(c.Timer.LongBreak),
		LongBreakInterval:  c.Timer.LongBreakInterval,
	}.Normalize()
}
