package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/tambola/internal/game"
	"github.com/Iron-Ham/tambola/internal/logging"
)

// Config represents the complete tambola configuration
type Config struct {
	Game    GameConfig    `mapstructure:"game" yaml:"game"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	TUI     TUIConfig     `mapstructure:"tui" yaml:"tui"`
}

// GameConfig controls how a game is played
type GameConfig struct {
	// Players is the number of players, each holding one ticket (default: 2)
	Players int `mapstructure:"players" yaml:"players"`
	// DrawsAllowed reports every player who reached the threshold instead of
	// only the first one
	DrawsAllowed bool `mapstructure:"draws_allowed" yaml:"draws_allowed"`
	// MatchThreshold is the number of matched slots needed to win (default: 10)
	MatchThreshold int `mapstructure:"match_threshold" yaml:"match_threshold"`
	// TicketSize is the number of slots on each ticket (default: 10)
	TicketSize int `mapstructure:"ticket_size" yaml:"ticket_size"`
	// TicketWidth is the width of each slot's number range (default: 5)
	TicketWidth int `mapstructure:"ticket_width" yaml:"ticket_width"`
	// NumberRange bounds announcements to 1..NumberRange (default: 50)
	NumberRange int `mapstructure:"number_range" yaml:"number_range"`
	// RoundIntervalMs is the pause after each announcement in milliseconds (default: 500)
	RoundIntervalMs int `mapstructure:"round_interval_ms" yaml:"round_interval_ms"`
	// MaxRounds ends the game without a winner after this many rounds (0 = unlimited)
	MaxRounds int `mapstructure:"max_rounds" yaml:"max_rounds"`
	// StopPolicy is "round" (finish the winning round) or "first" (stop at the first winner)
	StopPolicy string `mapstructure:"stop_policy" yaml:"stop_policy"`
	// Seed makes a game reproducible; 0 seeds from the clock
	Seed uint64 `mapstructure:"seed" yaml:"seed"`
}

// LoggingConfig controls game logging
type LoggingConfig struct {
	// Enabled turns on the JSON game log (default: true)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is the directory for game.log (default: "" uses <config dir>/logs)
	// Use "-" to log to stderr instead of a file
	Dir string `mapstructure:"dir" yaml:"dir"`
	// MaxSizeMB is the size at which game.log is rotated (default: 10).
	// 0 turns rotation off.
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of rotated logs to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
	// Compress gzips rotated logs
	Compress bool `mapstructure:"compress" yaml:"compress"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// Enabled shows the live board instead of the plain report
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Theme is the color theme: "default" or "mono"
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	g := game.DefaultConfig()
	rotation := logging.DefaultRotationConfig()
	return &Config{
		Game: GameConfig{
			Players:         g.Players,
			DrawsAllowed:    g.DrawsAllowed,
			MatchThreshold:  g.MatchThreshold,
			TicketSize:      g.TicketSize,
			TicketWidth:     g.TicketWidth,
			NumberRange:     g.NumberRange,
			RoundIntervalMs: int(g.RoundInterval / time.Millisecond),
			MaxRounds:       0, // Play until somebody wins
			StopPolicy:      string(g.StopPolicy),
			Seed:            0,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			Dir:        "", // Empty means use default: <config dir>/logs
			MaxSizeMB:  rotation.MaxSizeMB,
			MaxBackups: rotation.MaxBackups,
			Compress:   rotation.Compress,
		},
		TUI: TUIConfig{
			Enabled: false,
			Theme:   "default",
		},
	}
}

// StderrDir is the logging.dir value that sends logs to stderr.
const StderrDir = "-"

// ResolveDir returns the directory game.log is written to, or "" for
// stderr. A leading ~ is expanded to the user's home directory.
func (c *LoggingConfig) ResolveDir() string {
	if c.Dir == StderrDir {
		return ""
	}
	if c.Dir == "" {
		return filepath.Join(ConfigDir(), "logs")
	}

	path := c.Dir
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}
	return path
}

// RoundInterval returns the round interval as a time.Duration
func (c *GameConfig) RoundInterval() time.Duration {
	return time.Duration(c.RoundIntervalMs) * time.Millisecond
}

// ToGame converts the file-level settings into a game.Config
func (c *GameConfig) ToGame() game.Config {
	return game.Config{
		Players:        c.Players,
		DrawsAllowed:   c.DrawsAllowed,
		MatchThreshold: c.MatchThreshold,
		TicketSize:     c.TicketSize,
		TicketWidth:    c.TicketWidth,
		NumberRange:    c.NumberRange,
		RoundInterval:  c.RoundInterval(),
		MaxRounds:      c.MaxRounds,
		StopPolicy:     game.StopPolicy(c.StopPolicy),
		Seed:           c.Seed,
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("game.players", defaults.Game.Players)
	viper.SetDefault("game.draws_allowed", defaults.Game.DrawsAllowed)
	viper.SetDefault("game.match_threshold", defaults.Game.MatchThreshold)
	viper.SetDefault("game.ticket_size", defaults.Game.TicketSize)
	viper.SetDefault("game.ticket_width", defaults.Game.TicketWidth)
	viper.SetDefault("game.number_range", defaults.Game.NumberRange)
	viper.SetDefault("game.round_interval_ms", defaults.Game.RoundIntervalMs)
	viper.SetDefault("game.max_rounds", defaults.Game.MaxRounds)
	viper.SetDefault("game.stop_policy", defaults.Game.StopPolicy)
	viper.SetDefault("game.seed", defaults.Game.Seed)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.compress", defaults.Logging.Compress)

	viper.SetDefault("tui.enabled", defaults.TUI.Enabled)
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
}

// Load reads the configuration from viper and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Watch calls onChange whenever the loaded config file changes on disk.
// It does nothing useful when no config file was read.
func Watch(onChange func(fsnotify.Event)) {
	viper.OnConfigChange(onChange)
	viper.WatchConfig()
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tambola")
	}
	// Fall back to ~/.config/tambola
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tambola"
	}
	return filepath.Join(home, ".config", "tambola")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
