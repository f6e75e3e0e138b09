package game

import (
	"slices"
	"testing"
)

func TestRoundState_Latest(t *testing.T) {
	s := NewRoundState(1, 1, false, StopAtRoundEnd)

	if _, ok := s.latest(); ok {
		t.Error("latest() on an empty sequence should report no value")
	}
	if s.repeated() {
		t.Error("repeated() on an empty sequence = true")
	}

	s.announced = []int{4, 9, 4}
	if v, ok := s.latest(); !ok || v != 4 {
		t.Errorf("latest() = %d, %v, want 4, true", v, ok)
	}
	if !s.repeated() {
		t.Error("repeated() = false for [4 9 4]")
	}

	s.announced = []int{4, 9}
	if s.repeated() {
		t.Error("repeated() = true for [4 9]")
	}
}

func TestRoundState_Winners(t *testing.T) {
	tests := []struct {
		name         string
		drawsAllowed bool
		victory      []bool
		winnerID     int
		want         []int
	}{
		{"no victory", false, []bool{false, false, false}, noWinner, []int{}},
		{"no victory with draws", true, []bool{false, false, false}, noWinner, []int{}},
		{"single winner", false, []bool{false, true, false}, 1, []int{1}},
		{"draws disallowed reports only the claimant", false, []bool{true, false, true}, 2, []int{2}},
		{"draws allowed reports all ascending", true, []bool{true, false, true}, 2, []int{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewRoundState(len(tt.victory), 1, tt.drawsAllowed, StopAtRoundEnd)
			copy(s.victory, tt.victory)
			s.winnerID = tt.winnerID

			if got := s.winners(); !slices.Equal(got, tt.want) {
				t.Errorf("winners() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoundState_Snapshot(t *testing.T) {
	s := NewRoundState(2, 3, true, StopOnFirstWinner)
	s.announced = []int{5, 6}
	s.done[0] = true

	snap := s.Snapshot()
	s.announced[0] = 99
	s.done[1] = true

	if !slices.Equal(snap.Announced, []int{5, 6}) {
		t.Errorf("Announced = %v, want [5 6]", snap.Announced)
	}
	if !slices.Equal(snap.Done, []bool{true, false}) {
		t.Errorf("Done = %v, want [true false]", snap.Done)
	}
	if snap.Round != 2 || snap.WinnerID != noWinner || snap.Players != 2 || snap.Threshold != 3 || !snap.DrawsAllowed {
		t.Errorf("Snapshot = %+v", snap)
	}
}
