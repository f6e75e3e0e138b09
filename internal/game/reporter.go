package game

import "github.com/Iron-Ham/tambola/internal/event"

// Reporter receives game progress. Every method is called with the round
// lock held, so implementations must return quickly and must not call back
// into the game.
type Reporter interface {
	RoundStarted(round int)
	NumberAnnounced(round, value int)
	NumberMatched(player, value, matches int)
	PlayerWon(player, round int, first bool)
	GameFinished(winners []int, rounds int, reason Reason)
}

// Describer is implemented by participants that can summarize themselves
// for display. It never affects game logic.
type Describer interface {
	Describe() string
}

// NopReporter discards every report.
type NopReporter struct{}

func (NopReporter) RoundStarted(int) {}
func (NopReporter) NumberAnnounced(int, int) {}
func (NopReporter) NumberMatched(int, int, int) {}
func (NopReporter) PlayerWon(int, int, bool) {}
func (NopReporter) GameFinished([]int, int, Reason) {}

// BusReporter publishes every report as an event on a bus.
type BusReporter struct {
	bus *event.Bus
}

// NewBusReporter creates a BusReporter.
func NewBusReporter(bus *event.Bus) *BusReporter {
	return &BusReporter{bus: bus}
}

func (b *BusReporter) RoundStarted(round int) {
	b.bus.Publish(event.NewRoundStartedEvent(round))
}

func (b *BusReporter) NumberAnnounced(round, value int) {
	b.bus.Publish(event.NewNumberAnnouncedEvent(round, value))
}

func (b *BusReporter) NumberMatched(player, value, matches int) {
	b.bus.Publish(event.NewNumberMatchedEvent(player, value, matches))
}

func (b *BusReporter) PlayerWon(player, round int, first bool) {
	b.bus.Publish(event.NewPlayerWonEvent(player, round, first))
}

func (b *BusReporter) GameFinished(winners []int, rounds int, reason Reason) {
	b.bus.Publish(event.NewGameFinishedEvent(winners, rounds, string(reason)))
}
