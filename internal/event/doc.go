// Package event provides a synchronous pub-sub bus and the events a tambola
// game emits.
//
// The game core reports through a narrow reporter interface; the bus
// adapter turns those calls into events so that the plain-text report, the
// live board and the logs can all follow one game without the core knowing
// about any of them.
//
// # Event Types
//
//   - [GameStartedEvent]: configuration and tickets, before round 1
//   - [RoundStartedEvent]: the moderator reset the per-round flags
//   - [NumberAnnouncedEvent]: a number was published
//   - [NumberMatchedEvent]: a player matched the current number
//   - [PlayerWonEvent]: a player reached the match threshold
//   - [GameFinishedEvent]: the winners, or why there are none
//
// # Thread Safety
//
// [Bus] is safe for concurrent use. Handlers run synchronously on the
// publishing goroutine.
package event
