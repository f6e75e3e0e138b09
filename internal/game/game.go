package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/sourcegraph/conc"

	"github.com/Iron-Ham/tambola/internal/errors"
	"github.com/Iron-Ham/tambola/internal/event"
	"github.com/Iron-Ham/tambola/internal/logging"
)

// Game owns one RoundState, its players and its single moderator.
type Game struct {
	id        string
	cfg       Config
	state     *RoundState
	players   []*Player
	moderator *Moderator
	logger    *logging.Logger
	played    atomic.Bool
}

type gameOptions struct {
	src      Source
	reporter Reporter
	logger   *logging.Logger
	tickets  []Ticket
}

// Option configures a Game.
type Option func(*gameOptions)

// WithSource sets the random source used for tickets and announcements.
// By default a PCG source seeded from Config.Seed is used.
func WithSource(src Source) Option {
	return func(o *gameOptions) { o.src = src }
}

// WithReporter sets the reporter that receives game progress.
func WithReporter(r Reporter) Option {
	return func(o *gameOptions) { o.reporter = r }
}

// WithLogger sets the logger. Defaults to logging.NopLogger.
func WithLogger(l *logging.Logger) Option {
	return func(o *gameOptions) { o.logger = l }
}

// WithTickets gives every player a fixed ticket instead of a drawn one.
// len(tickets) must equal Config.Players, every value must lie in
// 1..Config.NumberRange and every ticket needs at least MatchThreshold
// distinct values. The game copies the tickets.
func WithTickets(tickets ...Ticket) Option {
	return func(o *gameOptions) { o.tickets = tickets }
}

// New validates cfg and builds the game. A misconfiguration is reported as
// an error matching errors.ErrInvalidConfig before anything runs.
func New(cfg Config, opts ...Option) (*Game, error) {
	o := gameOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.tickets != nil {
		if len(o.tickets) == 0 || len(o.tickets) != cfg.Players {
			return nil, errors.NewValidationError("one ticket per player is required").
				WithField("tickets").WithValue(len(o.tickets))
		}
		size := len(o.tickets[0])
		for _, t := range o.tickets {
			size = min(size, len(t))
		}
		cfg.TicketSize = size
		if cfg.TicketWidth == 0 {
			cfg.TicketWidth = 1
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateTickets(o.tickets, cfg); err != nil {
		return nil, err
	}

	if o.src == nil {
		o.src = NewSource(cfg.Seed)
	}
	if o.reporter == nil {
		o.reporter = NopReporter{}
	}
	if o.logger == nil {
		o.logger = logging.NopLogger()
	}

	id := newGameID()
	logger := o.logger.WithGame(id)
	state := NewRoundState(cfg.Players, cfg.MatchThreshold, cfg.DrawsAllowed, cfg.StopPolicy)

	players := make([]*Player, cfg.Players)
	for i := range players {
		var ticket Ticket
		if o.tickets != nil {
			ticket = slices.Clone(o.tickets[i])
		} else {
			ticket = NewTicket(o.src, cfg.TicketSize, cfg.TicketWidth)
		}
		players[i] = NewPlayer(i, ticket, state, o.reporter, logger)
	}

	moderator := NewModerator(state, o.src, o.reporter, logger,
		WithNumberRange(cfg.NumberRange),
		WithRoundInterval(cfg.RoundInterval),
		WithMaxRounds(cfg.MaxRounds))

	return &Game{
		id:        id,
		cfg:       cfg,
		state:     state,
		players:   players,
		moderator: moderator,
		logger:    logger,
	}, nil
}

// validateTickets rejects fixed tickets that can never reach the threshold.
func validateTickets(tickets []Ticket, cfg Config) error {
	for i, t := range tickets {
		for _, v := range t {
			if v < 1 || v > cfg.NumberRange {
				return errors.NewValidationError(
					fmt.Sprintf("ticket %d holds %d, which is never announced (range 1..%d)", i, v, cfg.NumberRange)).
					WithField("tickets").WithValue(v)
			}
		}
		if n := t.Distinct(); n < cfg.MatchThreshold {
			return errors.NewValidationError(
				fmt.Sprintf("ticket %d has %d distinct numbers, fewer than the threshold %d", i, n, cfg.MatchThreshold)).
				WithField("tickets").WithValue(t.String())
		}
	}
	return nil
}

func newGameID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ID returns the game's random identifier.
func (g *Game) ID() string { return g.id }

// Config returns the effective configuration.
func (g *Game) Config() Config { return g.cfg }

// Players returns the players in id order.
func (g *Game) Players() []*Player { return slices.Clone(g.players) }

// Moderator returns the game's moderator.
func (g *Game) Moderator() *Moderator { return g.moderator }

// State returns a snapshot of the shared round state.
func (g *Game) State() Snapshot { return g.state.Snapshot() }

// Tickets returns a copy of every player's ticket, indexed by player id.
func (g *Game) Tickets() [][]int {
	tickets := make([][]int, len(g.players))
	for i, p := range g.players {
		tickets[i] = slices.Clone(p.ticket)
	}
	return tickets
}

// StartedEvent describes the game before its first round: the moderator's
// and every player's details plus the tickets.
func (g *Game) StartedEvent() event.GameStartedEvent {
	details := make([]string, len(g.players))
	for i, p := range g.players {
		details[i] = p.Describe()
	}
	return event.NewGameStartedEvent(g.id, g.cfg.DrawsAllowed, g.cfg.MatchThreshold, g.Tickets()).
		WithDetails(g.moderator.Describe(), details)
}

// Play runs the moderator and every player on their own goroutines and
// waits for all of them to return. A game can be played once.
//
// ctx is observed before each round and during the pause after each
// announcement. A canceled game reports no winner and returns an error
// matching errors.ErrCanceled alongside the partial Result.
func (g *Game) Play(ctx context.Context) (Result, error) {
	if !g.played.CompareAndSwap(false, true) {
		return Result{}, errors.NewGameError("cannot replay", errors.ErrAlreadyPlayed).WithGameID(g.id)
	}

	var (
		wg     conc.WaitGroup
		result Result
		err    error
	)
	wg.Go(func() {
		result, err = g.moderator.Run(ctx)
	})
	for _, p := range g.players {
		wg.Go(p.Run)
	}
	wg.Wait()

	result.Matches = make([]int, len(g.players))
	for i, p := range g.players {
		result.Matches[i] = p.MatchCount()
	}

	var gameErr *errors.GameError
	if errors.As(err, &gameErr) {
		gameErr.WithGameID(g.id)
	}
	return result, err
}
