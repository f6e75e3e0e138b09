// Package errors provides the error definitions shared by the tambola
// packages: sentinel errors, the GameError domain error, the ValidationError
// semantic error and a few classification helpers.
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewGameError("moderator stopped", errors.ErrCanceled).WithRound(12)
//	err := errors.NewValidationError("must be at least 1").WithField("players").WithValue(0)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrInvalidConfig) { ... }
//
//	var gameErr *errors.GameError
//	if errors.As(err, &gameErr) { ... }
//
// Only two kinds of error leave the game core: a misconfiguration rejected
// before any goroutine starts, and a context cancellation observed between
// rounds. Everything else inside a round (spurious wakeups, an empty
// announcement sequence) is absorbed by the protocol.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrInvalidConfig indicates a game configuration that cannot be played.
	ErrInvalidConfig = New("invalid game configuration")
	// ErrAlreadyPlayed indicates Play was called twice on the same game.
	ErrAlreadyPlayed = New("game already played")
	// ErrGameOver indicates an operation attempted after the game finished.
	ErrGameOver = New("game is over")
	// ErrRoundLimit indicates the round limit was reached with no winner.
	ErrRoundLimit = New("round limit reached")
	// ErrCanceled indicates that the game was canceled between rounds.
	ErrCanceled = New("game canceled")
)

// -----------------------------------------------------------------------------
// Base Error
// -----------------------------------------------------------------------------

// TambolaError is implemented by every error type in this package.
type TambolaError interface {
	error
	Unwrap() error
	Severity() Severity
	IsUserFacing() bool
}

type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error { return e.cause }

func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

func (e *baseError) Severity() Severity { return e.severity }

func (e *baseError) IsUserFacing() bool { return e.userFacing }

// -----------------------------------------------------------------------------
// GameError
// -----------------------------------------------------------------------------

// GameError represents a failure while running a game.
//
// Example:
//
//	err := errors.NewGameError("moderator stopped", errors.ErrCanceled).WithRound(4)
//	fmt.Println(err) // "game error [round=4]: moderator stopped: game canceled"
type GameError struct {
	baseError
	GameID string
	Round  int // 0 when the error is not tied to a round
}

// NewGameError creates a new GameError.
func NewGameError(message string, cause error) *GameError {
	return &GameError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithGameID adds the game identifier to the error context.
func (e *GameError) WithGameID(id string) *GameError {
	e.GameID = id
	return e
}

// WithRound adds a round number to the error context.
func (e *GameError) WithRound(round int) *GameError {
	e.Round = round
	return e
}

// WithSeverity sets the error severity.
func (e *GameError) WithSeverity(s Severity) *GameError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *GameError) Error() string {
	var parts []string
	if e.GameID != "" {
		parts = append(parts, fmt.Sprintf("game=%s", e.GameID))
	}
	if e.Round > 0 {
		parts = append(parts, fmt.Sprintf("round=%d", e.Round))
	}

	prefix := "game error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("game error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *GameError) Is(target error) bool {
	if _, ok := target.(*GameError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// ValidationError
// -----------------------------------------------------------------------------

// ValidationError represents invalid input, typically a configuration value.
// It always matches ErrInvalidConfig.
//
// Example:
//
//	err := errors.NewValidationError("must be at least 1").WithField("players").WithValue(0)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if target == ErrInvalidConfig {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to print as-is.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	var te TambolaError
	if As(err, &te) {
		return te.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement TambolaError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var te TambolaError
	if As(err, &te) {
		return te.Severity()
	}
	return SeverityError
}

// IsCanceled reports whether err stems from a canceled game, either through
// ErrCanceled or a context error.
func IsCanceled(err error) bool {
	return Is(err, ErrCanceled) || Is(err, context.Canceled) || Is(err, context.DeadlineExceeded)
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
