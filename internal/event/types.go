package event

import (
	"slices"
	"time"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "number.announced").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeGameStarted     = "game.started"
	TypeRoundStarted    = "round.started"
	TypeNumberAnnounced = "number.announced"
	TypeNumberMatched   = "number.matched"
	TypePlayerWon       = "player.won"
	TypeGameFinished    = "game.finished"
)

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// GameStartedEvent is emitted once, before the first round.
type GameStartedEvent struct {
	baseEvent
	GameID         string
	Players        int
	DrawsAllowed   bool
	MatchThreshold int
	Tickets        [][]int // Tickets[i] is player i's ticket

	ModeratorDetails string   // what the moderator has announced so far
	PlayerDetails    []string // PlayerDetails[i] describes player i and its ticket
}

// NewGameStartedEvent creates a GameStartedEvent. Tickets are copied.
func NewGameStartedEvent(gameID string, drawsAllowed bool, threshold int, tickets [][]int) GameStartedEvent {
	copied := make([][]int, len(tickets))
	for i, t := range tickets {
		copied[i] = slices.Clone(t)
	}
	return GameStartedEvent{
		baseEvent:      newBaseEvent(TypeGameStarted),
		GameID:         gameID,
		Players:        len(tickets),
		DrawsAllowed:   drawsAllowed,
		MatchThreshold: threshold,
		Tickets:        copied,
	}
}

// WithDetails returns a copy of e carrying the participants' descriptions.
func (e GameStartedEvent) WithDetails(moderator string, players []string) GameStartedEvent {
	e.ModeratorDetails = moderator
	e.PlayerDetails = slices.Clone(players)
	return e
}

// RoundStartedEvent is emitted when the moderator resets the round flags.
type RoundStartedEvent struct {
	baseEvent
	Round int // 1-based number of the round about to be announced
}

// NewRoundStartedEvent creates a RoundStartedEvent.
func NewRoundStartedEvent(round int) RoundStartedEvent {
	return RoundStartedEvent{baseEvent: newBaseEvent(TypeRoundStarted), Round: round}
}

// NumberAnnouncedEvent is emitted when the moderator publishes a number.
type NumberAnnouncedEvent struct {
	baseEvent
	Round int
	Value int
}

// NewNumberAnnouncedEvent creates a NumberAnnouncedEvent.
func NewNumberAnnouncedEvent(round, value int) NumberAnnouncedEvent {
	return NumberAnnouncedEvent{
		baseEvent: newBaseEvent(TypeNumberAnnounced),
		Round:     round,
		Value:     value,
	}
}

// NumberMatchedEvent is emitted when a player matches the announced number.
type NumberMatchedEvent struct {
	baseEvent
	PlayerID int
	Value    int
	Matches  int // running match count after this match
}

// NewNumberMatchedEvent creates a NumberMatchedEvent.
func NewNumberMatchedEvent(playerID, value, matches int) NumberMatchedEvent {
	return NumberMatchedEvent{
		baseEvent: newBaseEvent(TypeNumberMatched),
		PlayerID:  playerID,
		Value:     value,
		Matches:   matches,
	}
}

// PlayerWonEvent is emitted when a player reaches the match threshold.
type PlayerWonEvent struct {
	baseEvent
	PlayerID int
	Round    int
	First    bool // true if this player claimed the winner id
}

// NewPlayerWonEvent creates a PlayerWonEvent.
func NewPlayerWonEvent(playerID, round int, first bool) PlayerWonEvent {
	return PlayerWonEvent{
		baseEvent: newBaseEvent(TypePlayerWon),
		PlayerID:  playerID,
		Round:     round,
		First:     first,
	}
}

// GameFinishedEvent is emitted once when the moderator finalizes the game.
type GameFinishedEvent struct {
	baseEvent
	Winners []int  // ascending player ids; empty if the game ended without a winner
	Rounds  int    // rounds announced
	Reason  string // why the game ended, e.g. "winner", "round_limit", "canceled"
}

// NewGameFinishedEvent creates a GameFinishedEvent. Winners are copied.
func NewGameFinishedEvent(winners []int, rounds int, reason string) GameFinishedEvent {
	return GameFinishedEvent{
		baseEvent: newBaseEvent(TypeGameFinished),
		Winners:   slices.Clone(winners),
		Rounds:    rounds,
		Reason:    reason,
	}
}
