package game

import (
	"fmt"
	"slices"
	"strings"
)

// Ticket is a player's fixed set of numbers. It is built once and never
// modified, so players read it without synchronization.
type Ticket []int

// NewTicket draws a ticket of size slots. Slot i is drawn from
// [i*width+1, (i+1)*width], so slots never collide and the ticket covers
// 1..size*width.
func NewTicket(src Source, size, width int) Ticket {
	t := make(Ticket, size)
	for i := range t {
		t[i] = drawBetween(src, i*width+1, (i+1)*width)
	}
	return t
}

// Contains reports whether v is on the ticket.
func (t Ticket) Contains(v int) bool {
	return slices.Contains(t, v)
}

// Distinct returns the number of different values on the ticket. A value
// held by two slots can still match only once.
func (t Ticket) Distinct() int {
	n := 0
	for i, v := range t {
		if !t[:i].Contains(v) {
			n++
		}
	}
	return n
}

// String formats the ticket as "[3 7 12]".
func (t Ticket) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
