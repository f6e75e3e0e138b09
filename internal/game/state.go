package game

import (
	"slices"
	"sync"
)

// noWinner is the winner id before any player crosses the threshold.
const noWinner = -1

// RoundState is the record shared by the moderator and every player. All
// fields are guarded by mu; waiters park on cond.
type RoundState struct {
	mu   sync.Mutex
	cond *sync.Cond

	announced []int
	roundOpen bool
	done      []bool
	victory   []bool
	winnerID  int
	gameOver  bool

	players      int
	threshold    int
	drawsAllowed bool
	stopPolicy   StopPolicy
}

// NewRoundState creates the shared state for a game with the given fixed
// configuration.
func NewRoundState(players, threshold int, drawsAllowed bool, policy StopPolicy) *RoundState {
	s := &RoundState{
		done:         make([]bool, players),
		victory:      make([]bool, players),
		winnerID:     noWinner,
		players:      players,
		threshold:    threshold,
		drawsAllowed: drawsAllowed,
		stopPolicy:   policy,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// The helpers below must be called with mu held.

func (s *RoundState) round() int {
	return len(s.announced)
}

// latest returns the most recent announcement, or false if none exists yet.
func (s *RoundState) latest() (int, bool) {
	if len(s.announced) == 0 {
		return 0, false
	}
	return s.announced[len(s.announced)-1], true
}

// repeated reports whether the latest announcement already appeared in an
// earlier round.
func (s *RoundState) repeated() bool {
	n := len(s.announced)
	if n < 2 {
		return false
	}
	return slices.Index(s.announced[:n-1], s.announced[n-1]) >= 0
}

func (s *RoundState) anyVictory() bool {
	return slices.Contains(s.victory, true)
}

func (s *RoundState) allDone() bool {
	return !slices.Contains(s.done, false)
}

// winners returns the ids to report at finalize, in ascending order.
func (s *RoundState) winners() []int {
	if !s.anyVictory() {
		return []int{}
	}
	if !s.drawsAllowed {
		return []int{s.winnerID}
	}
	ids := make([]int, 0, 1)
	for id, won := range s.victory {
		if won {
			ids = append(ids, id)
		}
	}
	return ids
}

// Snapshot is a point-in-time copy of RoundState.
type Snapshot struct {
	Announced    []int
	Round        int
	RoundOpen    bool
	Done         []bool
	Victory      []bool
	WinnerID     int
	GameOver     bool
	Players      int
	Threshold    int
	DrawsAllowed bool
}

// Snapshot copies the current state under the lock.
func (s *RoundState) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *RoundState) snapshotLocked() Snapshot {
	return Snapshot{
		Announced:    slices.Clone(s.announced),
		Round:        s.round(),
		RoundOpen:    s.roundOpen,
		Done:         slices.Clone(s.done),
		Victory:      slices.Clone(s.victory),
		WinnerID:     s.winnerID,
		GameOver:     s.gameOver,
		Players:      s.players,
		Threshold:    s.threshold,
		DrawsAllowed: s.drawsAllowed,
	}
}
