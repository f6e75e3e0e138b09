package game

import (
	"fmt"
	"time"

	"github.com/Iron-Ham/tambola/internal/errors"
)

// StopPolicy decides when the moderator's barrier releases once a player has
// won.
type StopPolicy string

const (
	// StopAtRoundEnd lets every player process the winning round, so players
	// who cross the threshold on the same number are all recorded.
	StopAtRoundEnd StopPolicy = "round"
	// StopOnFirstWinner releases the barrier as soon as any player wins.
	// Players who had not yet checked the winning number never see it.
	StopOnFirstWinner StopPolicy = "first"
)

// ValidStopPolicies returns the accepted stop policy names.
func ValidStopPolicies() []string {
	return []string{string(StopAtRoundEnd), string(StopOnFirstWinner)}
}

// Reason records why a game ended.
type Reason string

const (
	ReasonWinner     Reason = "winner"
	ReasonRoundLimit Reason = "round_limit"
	ReasonCanceled   Reason = "canceled"
)

// Defaults match the classic ten-slot ticket over 1..50.
const (
	DefaultTicketSize    = 10
	DefaultTicketWidth   = 5
	DefaultNumberRange   = 50
	DefaultRoundInterval = 500 * time.Millisecond
)

// Config is the immutable configuration of one game.
type Config struct {
	Players        int
	DrawsAllowed   bool
	MatchThreshold int

	TicketSize  int // slots per ticket
	TicketWidth int // width of each slot's sub-range

	NumberRange   int           // announcements are drawn from 1..NumberRange
	RoundInterval time.Duration // pause between announcement and barrier
	MaxRounds     int           // 0 means unlimited
	StopPolicy    StopPolicy

	// Seed seeds the default random source; 0 seeds from the clock.
	Seed uint64
}

// DefaultConfig returns a two-player game with the classic ticket layout.
func DefaultConfig() Config {
	return Config{
		Players:        2,
		MatchThreshold: DefaultTicketSize,
		TicketSize:     DefaultTicketSize,
		TicketWidth:    DefaultTicketWidth,
		NumberRange:    DefaultNumberRange,
		RoundInterval:  DefaultRoundInterval,
		StopPolicy:     StopAtRoundEnd,
	}
}

// Validate returns a *errors.ValidationError describing the first invalid
// field, or nil. The returned error matches errors.ErrInvalidConfig.
func (c Config) Validate() error {
	invalid := func(field string, value any, format string, args ...any) error {
		return errors.NewValidationError(fmt.Sprintf(format, args...)).WithField(field).WithValue(value)
	}

	if c.Players < 1 {
		return invalid("players", c.Players, "must be at least 1")
	}
	if c.TicketSize < 1 {
		return invalid("ticket_size", c.TicketSize, "must be at least 1")
	}
	if c.TicketWidth < 1 {
		return invalid("ticket_width", c.TicketWidth, "must be at least 1")
	}
	if c.MatchThreshold < 1 || c.MatchThreshold > c.TicketSize {
		return invalid("match_threshold", c.MatchThreshold, "must be between 1 and %d", c.TicketSize)
	}
	if c.NumberRange < c.TicketSize*c.TicketWidth {
		return invalid("number_range", c.NumberRange, "must cover every ticket slot (at least %d)", c.TicketSize*c.TicketWidth)
	}
	if c.RoundInterval < 0 {
		return invalid("round_interval", c.RoundInterval, "must not be negative")
	}
	if c.MaxRounds < 0 {
		return invalid("max_rounds", c.MaxRounds, "must not be negative")
	}
	switch c.StopPolicy {
	case StopAtRoundEnd, StopOnFirstWinner:
	default:
		return invalid("stop_policy", c.StopPolicy, "must be one of %v", ValidStopPolicies())
	}
	return nil
}
