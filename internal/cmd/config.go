package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/tambola/internal/config"
	"github.com/Iron-Ham/tambola/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify tambola configuration",
	Long: `View or modify tambola configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  tambola config set game.players 4
  tambola config set game.draws_allowed true
  tambola config set logging.level debug

Valid keys:
  game.players            - Number of players
  game.draws_allowed      - Report every winner of the final round (true/false)
  game.match_threshold    - Matched numbers needed to win
  game.ticket_size        - Numbers per ticket
  game.ticket_width       - Width of each ticket slot's range
  game.number_range       - Announcements are drawn from 1..number_range
  game.round_interval_ms  - Pause after each announcement in milliseconds
  game.max_rounds         - Round limit (0 = unlimited)
  game.stop_policy        - round or first
  game.seed               - Random seed (0 = random)
  logging.enabled         - Write game.log (true/false)
  logging.level           - debug, info, warn or error
  logging.dir             - Log directory ("-" for stderr)
  logging.max_size_mb     - Rotate game.log at this size
  logging.max_backups     - Rotated logs to keep
  logging.compress        - Gzip rotated logs (true/false)
  tui.enabled             - Show the live board (true/false)
  tui.theme               - default or mono`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/tambola/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

// settableKeys maps each key accepted by "config set" to its value type.
var settableKeys = map[string]string{
	"game.players":           "int",
	"game.draws_allowed":     "bool",
	"game.match_threshold":   "int",
	"game.ticket_size":       "int",
	"game.ticket_width":      "int",
	"game.number_range":      "int",
	"game.round_interval_ms": "int",
	"game.max_rounds":        "int",
	"game.stop_policy":       "string",
	"game.seed":              "uint",
	"logging.enabled":        "bool",
	"logging.level":          "string",
	"logging.dir":            "string",
	"logging.max_size_mb":    "int",
	"logging.max_backups":    "int",
	"logging.compress":       "bool",
	"tui.enabled":            "bool",
	"tui.theme":              "string",
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(out, "Warning: %v\nShowing defaults instead.\n\n", err)
		cfg = config.Default()
	}

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "# Config file: (none - using defaults)\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	keyType, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'tambola config set --help' to see valid keys", key)
	}

	typedValue, err := parseConfigValue(key, keyType, value)
	if err != nil {
		return err
	}

	viper.Set(key, typedValue)
	if _, err := config.Load(); err != nil {
		return fmt.Errorf("refusing to save an invalid configuration:\n%w", err)
	}

	// Ensure config directory exists
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = config.ConfigFile()
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

func parseConfigValue(key, keyType, value string) (any, error) {
	switch keyType {
	case "bool":
		if value != "true" && value != "false" {
			return nil, errors.NewValidationError("expected true or false").WithField(key).WithValue(value)
		}
		return value == "true", nil
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, errors.NewValidationError("expected integer").
				WithField(key).WithValue(value).WithCause(err)
		}
		return n, nil
	case "uint":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, errors.NewValidationError("expected non-negative integer").
				WithField(key).WithValue(value).WithCause(err)
		}
		return n, nil
	default:
		if key == "logging.level" && !slices.Contains(config.ValidLogLevels(), strings.ToLower(value)) {
			return nil, errors.NewValidationError("Valid options: " + strings.Join(config.ValidLogLevels(), ", ")).
				WithField(key).WithValue(value)
		}
		return value, nil
	}
}

const configTemplate = `# Tambola Configuration

# Game rules
game:
  # Number of players, each holding one ticket
  players: 2
  # Report every player who reached the threshold in the winning round,
  # instead of only the first one
  draws_allowed: false
  # Matched numbers needed to win (at most ticket_size)
  match_threshold: 10
  # Ticket layout: slot i holds a number from i*ticket_width+1 to (i+1)*ticket_width
  ticket_size: 10
  ticket_width: 5
  # Announcements are drawn from 1..number_range
  number_range: 50
  # Pause after each announcement in milliseconds
  round_interval_ms: 500
  # End the game without a winner after this many rounds (0 = unlimited)
  max_rounds: 0
  # "round" lets every player check the winning number; "first" stops at the first winner
  stop_policy: round
  # Random seed for reproducible games (0 = random)
  seed: 0

# JSON game log
logging:
  enabled: true
  # Options: debug, info, warn, error
  level: info
  # Empty uses ~/.config/tambola/logs; "-" logs to stderr
  dir: ""
  # 0 keeps a single game.log without rotation
  max_size_mb: 10
  max_backups: 3
  compress: false

# Terminal UI
tui:
  # Show the live board instead of the plain report
  enabled: false
  # Options: default, mono
  theme: default
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'tambola config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configFile, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize your games.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", config.ConfigFile())
	fmt.Fprintf(out, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: TAMBOLA_* (e.g., TAMBOLA_GAME_PLAYERS)")
	return nil
}
