package game

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"
)

// recorder is a Reporter that keeps every report for later inspection.
type recorder struct {
	mu        sync.Mutex
	rounds    []int
	announced []int
	matches   map[int][]int // player -> matched values, in order
	won       []wonReport
	finished  []finishedReport
}

type wonReport struct {
	player, round int
	first         bool
}

type finishedReport struct {
	winners []int
	rounds  int
	reason  Reason
}

func newRecorder() *recorder {
	return &recorder{matches: make(map[int][]int)}
}

func (r *recorder) RoundStarted(round int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rounds = append(r.rounds, round)
}

func (r *recorder) NumberAnnounced(_, value int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.announced = append(r.announced, value)
}

func (r *recorder) NumberMatched(player, value, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches[player] = append(r.matches[player], value)
}

func (r *recorder) PlayerWon(player, round int, first bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.won = append(r.won, wonReport{player, round, first})
}

func (r *recorder) GameFinished(winners []int, rounds int, reason Reason) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, finishedReport{slices.Clone(winners), rounds, reason})
}

// scriptedConfig returns a config suitable for fixed tickets and a scripted
// source: no pacing, classic range.
func scriptedConfig(players, threshold int) Config {
	cfg := DefaultConfig()
	cfg.Players = players
	cfg.MatchThreshold = threshold
	cfg.RoundInterval = 0
	return cfg
}

// playWithTimeout fails the test instead of hanging if the game deadlocks.
func playWithTimeout(t *testing.T, ctx context.Context, g *Game) (Result, error) {
	t.Helper()

	type outcome struct {
		res Result
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		res, err := g.Play(ctx)
		ch <- outcome{res, err}
	}()

	select {
	case o := <-ch:
		return o.res, o.err
	case <-time.After(10 * time.Second):
		t.Fatal("game did not finish; protocol deadlocked")
		return Result{}, nil
	}
}
