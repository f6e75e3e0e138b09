package game

import (
	"testing"
)

func TestNewTicket_SlotRanges(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		ticket := NewTicket(NewSource(seed), DefaultTicketSize, DefaultTicketWidth)
		if len(ticket) != DefaultTicketSize {
			t.Fatalf("len = %d, want %d", len(ticket), DefaultTicketSize)
		}
		for i, v := range ticket {
			lo, hi := i*DefaultTicketWidth+1, (i+1)*DefaultTicketWidth
			if v < lo || v > hi {
				t.Errorf("seed %d: slot %d = %d, want in [%d, %d]", seed, i, v, lo, hi)
			}
		}
	}
}

func TestNewTicket_Scripted(t *testing.T) {
	// 1-based script values map onto each slot's range in order.
	ticket := NewTicket(NewScriptedSource(1, 2, 3), 3, 5)
	want := Ticket{1, 7, 13}
	if ticket.String() != want.String() {
		t.Errorf("NewTicket() = %v, want %v", ticket, want)
	}
}

func TestTicket_String(t *testing.T) {
	tests := []struct {
		ticket Ticket
		want   string
	}{
		{Ticket{}, "[]"},
		{Ticket{7}, "[7]"},
		{Ticket{3, 7, 12}, "[3 7 12]"},
	}
	for _, tt := range tests {
		if got := tt.ticket.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTicket_Contains(t *testing.T) {
	ticket := Ticket{3, 7, 12}
	if !ticket.Contains(7) {
		t.Error("Contains(7) = false")
	}
	if ticket.Contains(8) {
		t.Error("Contains(8) = true")
	}
}

func TestTicket_Distinct(t *testing.T) {
	tests := []struct {
		ticket Ticket
		want   int
	}{
		{Ticket{}, 0},
		{Ticket{5, 5}, 1},
		{Ticket{3, 7, 3, 12}, 3},
	}
	for _, tt := range tests {
		if got := tt.ticket.Distinct(); got != tt.want {
			t.Errorf("%v.Distinct() = %d, want %d", tt.ticket, got, tt.want)
		}
	}
}
