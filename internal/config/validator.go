package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/tambola/internal/game"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "game.players")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// MaxPlayers bounds game.players, and with it the number of player
// goroutines.
const MaxPlayers = 1000

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidThemes returns the list of valid TUI themes
func ValidThemes() []string {
	return []string{"default", "mono"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateGame()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateTUI()...)

	return errors
}

// validateGame validates the GameConfig. Unlike game.Config.Validate it
// reports every problem at once.
func (c *Config) validateGame() []ValidationError {
	var errors []ValidationError
	g := c.Game

	if g.Players < 1 || g.Players > MaxPlayers {
		errors = append(errors, ValidationError{
			Field:   "game.players",
			Value:   g.Players,
			Message: fmt.Sprintf("must be between 1 and %d", MaxPlayers),
		})
	}

	if g.TicketSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "game.ticket_size",
			Value:   g.TicketSize,
			Message: "must be at least 1",
		})
	}
	if g.TicketWidth < 1 {
		errors = append(errors, ValidationError{
			Field:   "game.ticket_width",
			Value:   g.TicketWidth,
			Message: "must be at least 1",
		})
	}

	if g.MatchThreshold < 1 || (g.TicketSize >= 1 && g.MatchThreshold > g.TicketSize) {
		errors = append(errors, ValidationError{
			Field:   "game.match_threshold",
			Value:   g.MatchThreshold,
			Message: fmt.Sprintf("must be between 1 and ticket_size (%d)", g.TicketSize),
		})
	}

	if g.TicketSize >= 1 && g.TicketWidth >= 1 && g.NumberRange < g.TicketSize*g.TicketWidth {
		errors = append(errors, ValidationError{
			Field:   "game.number_range",
			Value:   g.NumberRange,
			Message: fmt.Sprintf("must be at least ticket_size * ticket_width (%d)", g.TicketSize*g.TicketWidth),
		})
	}

	const maxRoundInterval = 60_000 // one minute
	if g.RoundIntervalMs < 0 || g.RoundIntervalMs > maxRoundInterval {
		errors = append(errors, ValidationError{
			Field:   "game.round_interval_ms",
			Value:   g.RoundIntervalMs,
			Message: fmt.Sprintf("must be between 0 and %dms", maxRoundInterval),
		})
	}

	if g.MaxRounds < 0 {
		errors = append(errors, ValidationError{
			Field:   "game.max_rounds",
			Value:   g.MaxRounds,
			Message: "must be non-negative (0 means unlimited)",
		})
	}

	if !slices.Contains(game.ValidStopPolicies(), g.StopPolicy) {
		errors = append(errors, ValidationError{
			Field:   "game.stop_policy",
			Value:   g.StopPolicy,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(game.ValidStopPolicies(), ", ")),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative (0 disables rotation)",
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	return errors
}
