package game

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source draws bounded random integers. IntN returns a value in [0, n).
type Source interface {
	IntN(n int) int
}

// NewSource returns a PCG-backed Source. A zero seed seeds from the clock.
// The returned Source is not safe for concurrent use; the game draws from it
// on one goroutine at a time.
func NewSource(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// drawBetween returns a value uniformly drawn from [lo, hi].
func drawBetween(src Source, lo, hi int) int {
	return lo + src.IntN(hi-lo+1)
}

// ScriptedSource replays a fixed list of announcements, cycling when it runs
// out. Values are written the way the moderator announces them (1-based),
// so a script of 4, 17, 9 announces exactly 4, 17, 9 whatever the range,
// as long as each value is within it.
type ScriptedSource struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewScriptedSource creates a ScriptedSource. It panics if values is empty.
func NewScriptedSource(values ...int) *ScriptedSource {
	if len(values) == 0 {
		panic("game: scripted source needs at least one value")
	}
	return &ScriptedSource{values: values}
}

// IntN implements Source.
func (s *ScriptedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.values[s.next%len(s.values)]
	s.next++
	return ((v-1)%n + n) % n
}
