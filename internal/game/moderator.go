package game

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Iron-Ham/tambola/internal/errors"
	"github.com/Iron-Ham/tambola/internal/logging"
)

// Result is the outcome of a finished game.
type Result struct {
	// Winners lists the reported winners in ascending order: only WinnerID
	// when draws are disallowed, every player with a victory flag otherwise.
	// Empty when the game ended without a winner.
	Winners []int
	// WinnerID is the first player to cross the threshold, or -1.
	WinnerID  int
	Rounds    int
	Announced []int
	// Matches[i] is player i's final match count. Filled in by Game.Play.
	Matches []int
	Reason  Reason
}

// Err describes a game that ended without a winner. It returns nil when
// somebody won. A round-limit ending is a warning since the game itself
// ran to completion.
func (r Result) Err() error {
	switch r.Reason {
	case ReasonRoundLimit:
		return errors.NewGameError("no winner", errors.ErrRoundLimit).
			WithRound(r.Rounds).
			WithSeverity(errors.SeverityWarning)
	case ReasonCanceled:
		return errors.NewGameError("no winner", errors.ErrCanceled).WithRound(r.Rounds)
	default:
		return nil
	}
}

// Moderator drives the rounds: it announces numbers, waits for every player
// to react, and finalizes the game once somebody has won.
type Moderator struct {
	state    *RoundState
	src      Source
	reporter Reporter
	logger   *logging.Logger

	numberRange int
	interval    time.Duration
	maxRounds   int

	hooks moderatorHooks
}

// moderatorHooks run with the round lock held; tests use them to observe
// the protocol at its transition points.
type moderatorHooks struct {
	roundStarted    func(*RoundState)
	barrierReleased func(*RoundState)
}

// ModeratorOption configures a Moderator.
type ModeratorOption func(*Moderator)

// WithNumberRange sets the announcement range to 1..n.
func WithNumberRange(n int) ModeratorOption {
	return func(m *Moderator) { m.numberRange = n }
}

// WithRoundInterval sets the pause between an announcement and the barrier.
func WithRoundInterval(d time.Duration) ModeratorOption {
	return func(m *Moderator) { m.interval = d }
}

// WithMaxRounds ends the game without a winner after n rounds. Zero means
// unlimited.
func WithMaxRounds(n int) ModeratorOption {
	return func(m *Moderator) { m.maxRounds = n }
}

// NewModerator creates the moderator for state.
func NewModerator(state *RoundState, src Source, reporter Reporter, logger *logging.Logger, opts ...ModeratorOption) *Moderator {
	if reporter == nil {
		reporter = NopReporter{}
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	m := &Moderator{
		state:       state,
		src:         src,
		reporter:    reporter,
		logger:      logger.WithComponent("moderator"),
		numberRange: DefaultNumberRange,
		interval:    DefaultRoundInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Describe implements Describer. It takes the round lock, so it must not be
// called from a Reporter.
func (m *Moderator) Describe() string {
	snap := m.state.Snapshot()
	return fmt.Sprintf("Numbers announced as of now: %v", snap.Announced)
}

// Run plays rounds until a player wins, the round limit is hit or ctx is
// canceled between rounds, then finalizes the game. It returns an error
// wrapping errors.ErrCanceled and ctx.Err() when canceled, and one wrapping
// errors.ErrGameOver when the state has already been finalized.
func (m *Moderator) Run(ctx context.Context) (Result, error) {
	s := m.state
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameOver {
		return Result{WinnerID: s.winnerID, Rounds: s.round()},
			errors.NewGameError("moderator already ran", errors.ErrGameOver).WithRound(s.round())
	}

	m.logger.Info("game started",
		"players", s.players,
		"threshold", s.threshold,
		"draws_allowed", s.drawsAllowed,
		"stop_policy", string(s.stopPolicy))

	reason := ReasonWinner
	var ctxErr error
	for !s.anyVictory() {
		if m.maxRounds > 0 && s.round() >= m.maxRounds {
			reason = ReasonRoundLimit
			break
		}
		if ctxErr = ctx.Err(); ctxErr != nil {
			reason = ReasonCanceled
			break
		}

		m.startRound()
		m.announce()
		if ctxErr = m.pace(ctx); ctxErr != nil {
			reason = ReasonCanceled
			break
		}
		m.awaitPlayers()
	}

	// A player may have won while the lock was released for pacing.
	if s.anyVictory() {
		reason, ctxErr = ReasonWinner, nil
	}

	result := m.finalize(reason)
	if ctxErr != nil {
		return result, errors.NewGameError("game stopped before a winner",
			errors.Join(errors.ErrCanceled, ctxErr)).WithRound(result.Rounds)
	}
	return result, nil
}

// startRound clears the per-round flags. Caller holds the lock.
func (m *Moderator) startRound() {
	s := m.state
	s.roundOpen = false
	for i := range s.done {
		s.done[i] = false
	}

	m.reporter.RoundStarted(s.round() + 1)
	if m.hooks.roundStarted != nil {
		m.hooks.roundStarted(s)
	}
}

// announce appends a number, then opens the round and wakes the players.
// The value is in the sequence before roundOpen is set, and both happen
// under the lock, so no player can see an open round without its number.
func (m *Moderator) announce() {
	s := m.state
	value := drawBetween(m.src, 1, m.numberRange)
	s.announced = append(s.announced, value)
	s.roundOpen = true

	m.logger.Debug("number announced", "round", s.round(), "value", value)
	m.reporter.NumberAnnounced(s.round(), value)
	s.cond.Broadcast()
}

// pace sleeps for the round interval with the lock released, so players can
// react during the pause. roundOpen stays set. Caller holds the lock; it is
// held again on return.
func (m *Moderator) pace(ctx context.Context) error {
	if m.interval <= 0 {
		return nil
	}

	m.state.mu.Unlock()
	defer m.state.mu.Lock()

	timer := time.NewTimer(m.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// awaitPlayers blocks until every player is done with the round, or until
// any player has won under StopOnFirstWinner. Caller holds the lock.
func (m *Moderator) awaitPlayers() {
	s := m.state
	for !m.barrierOpen() {
		s.cond.Wait()
	}
	if m.hooks.barrierReleased != nil {
		m.hooks.barrierReleased(s)
	}
}

func (m *Moderator) barrierOpen() bool {
	s := m.state
	if s.allDone() {
		return true
	}
	return s.stopPolicy == StopOnFirstWinner && s.anyVictory()
}

// finalize records the winners, ends the game and wakes everyone still
// parked. Caller holds the lock.
func (m *Moderator) finalize(reason Reason) Result {
	s := m.state
	winners := s.winners()

	s.gameOver = true
	s.cond.Broadcast()

	m.logger.Info("game finished",
		"reason", string(reason),
		"rounds", s.round(),
		"winners", winners,
		"winner_id", s.winnerID)
	m.reporter.GameFinished(winners, s.round(), reason)

	return Result{
		Winners:   winners,
		WinnerID:  s.winnerID,
		Rounds:    s.round(),
		Announced: slices.Clone(s.announced),
		Reason:    reason,
	}
}
