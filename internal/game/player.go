package game

import (
	"fmt"

	"github.com/Iron-Ham/tambola/internal/logging"
)

// Player checks each announcement against its ticket. Everything except the
// ticket is touched only while holding the round lock.
type Player struct {
	id     int
	ticket Ticket

	state    *RoundState
	reporter Reporter
	logger   *logging.Logger

	matched   []bool // matched[i] is true once ticket slot i has matched
	matches   int
	lastRound int // last round this player processed; 0 before the first
}

// NewPlayer creates player id holding ticket. The player takes ownership of
// ticket; callers must not modify it afterwards.
func NewPlayer(id int, ticket Ticket, state *RoundState, reporter Reporter, logger *logging.Logger) *Player {
	if reporter == nil {
		reporter = NopReporter{}
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Player{
		id:       id,
		ticket:   ticket,
		state:    state,
		reporter: reporter,
		logger:   logger.WithPlayer(id),
		matched:  make([]bool, len(ticket)),
	}
}

// ID returns the player's zero-based id.
func (p *Player) ID() int { return p.id }

// Ticket returns the player's ticket. It must not be modified.
func (p *Player) Ticket() Ticket { return p.ticket }

// MatchCount returns the number of ticket slots matched so far.
func (p *Player) MatchCount() int {
	p.state.mu.Lock()
	defer p.state.mu.Unlock()
	return p.matches
}

// Describe implements Describer.
func (p *Player) Describe() string {
	return fmt.Sprintf("Player-%d\nTicket: %s", p.id+1, p.ticket)
}

// Run takes part in rounds until the moderator ends the game. It returns
// once gameOver is observed.
func (p *Player) Run() {
	s := p.state
	s.mu.Lock()
	defer s.mu.Unlock()

	p.logger.Debug("player ready", "ticket", p.ticket.String())

	for {
		for !s.gameOver && (!s.roundOpen || s.done[p.id]) {
			s.cond.Wait()
		}
		if s.gameOver {
			p.logger.Debug("player leaving", "matches", p.matches)
			return
		}

		p.checkRound()

		s.done[p.id] = true
		s.cond.Broadcast()
	}
}

// checkRound processes the current round at most once. Caller holds the lock.
func (p *Player) checkRound() {
	s := p.state

	round := s.round()
	if round == p.lastRound {
		return
	}
	p.lastRound = round

	value, ok := s.latest()
	if ok && !s.repeated() {
		if slot := p.matchSlot(value); slot >= 0 {
			p.matched[slot] = true
			p.matches++
			p.logger.Info("number matched", "round", round, "value", value, "matches", p.matches)
			p.reporter.NumberMatched(p.id, value, p.matches)
		}
	}

	if p.matches >= s.threshold && !s.victory[p.id] {
		s.victory[p.id] = true
		first := s.winnerID == noWinner
		if first {
			s.winnerID = p.id
		}
		p.logger.Info("threshold reached", "round", round, "matches", p.matches, "first", first)
		p.reporter.PlayerWon(p.id, round, first)
	}
}

// matchSlot returns the first unmatched slot holding value, or -1.
func (p *Player) matchSlot(value int) int {
	for i, v := range p.ticket {
		if v == value && !p.matched[i] {
			return i
		}
	}
	return -1
}
