package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Iron-Ham/tambola/internal/event"
	"github.com/Iron-Ham/tambola/internal/tui/styles"
)

const reportRule = "____________________________________________________"

// Report prints a game as plain lines: tickets, every announcement, every
// match and the winners.
type Report struct {
	mu sync.Mutex
	w  io.Writer
}

// NewReport creates a Report writing to w.
func NewReport(w io.Writer) *Report {
	return &Report{w: w}
}

// Handle is an event.Handler.
func (r *Report) Handle(e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := e.(type) {
	case event.GameStartedEvent:
		if e.ModeratorDetails != "" {
			r.header("MODERATOR")
			r.printf("%s\n%s\n", e.ModeratorDetails, reportRule)
		}
		r.header("PLAYERS")
		if len(e.PlayerDetails) > 0 {
			for _, d := range e.PlayerDetails {
				r.printf("%s\n%s\n", d, reportRule)
			}
		} else {
			for i, t := range e.Tickets {
				r.printf("Player-%d\nTicket: %v\n%s\n", i+1, t, reportRule)
			}
		}
		r.header("GAME STARTED")

	case event.NumberAnnouncedEvent:
		r.printf("%s\n", styles.Primary.Render(fmt.Sprintf("Moderator Generated: %d", e.Value)))

	case event.NumberMatchedEvent:
		r.printf("%s\n", styles.Secondary.Render(
			fmt.Sprintf("Player-%d got %d matched. Total Matches: %d", e.PlayerID+1, e.Value, e.Matches)))

	case event.GameFinishedEvent:
		r.printf("\n")
		if len(e.Winners) == 0 {
			r.printf("%s\n", styles.Warning.Render(noWinnerMessage(e.Reason, e.Rounds)))
		}
		for _, id := range e.Winners {
			r.printf("%s\n", styles.Winner.Render(fmt.Sprintf("PLAYER-%d HAS WON THE GAME!", id+1)))
		}
		r.printf("%s\n", reportRule)
	}
}

func (r *Report) header(s string) {
	r.printf("\n%s%s%s\n\n", strings.Repeat("-", 15), s, strings.Repeat("-", 15))
}

func (r *Report) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func noWinnerMessage(reason string, rounds int) string {
	switch reason {
	case "round_limit":
		return fmt.Sprintf("NO WINNER AFTER %d ROUNDS", rounds)
	case "canceled":
		return fmt.Sprintf("GAME STOPPED AFTER %d ROUNDS", rounds)
	default:
		return "NO WINNER"
	}
}
