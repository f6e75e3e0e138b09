// Package game implements a tambola (housie) round: one moderator announces
// random numbers, N players check them against their tickets, and the first
// player to reach the match threshold wins.
//
// # Round Protocol
//
// All shared state lives in [RoundState] and is guarded by one mutex and one
// condition variable. Every round:
//
//  1. The moderator clears roundOpen and every player's done flag.
//  2. It appends a number to the announced sequence, sets roundOpen and
//     broadcasts.
//  3. It paces for the configured interval with the lock released.
//  4. It waits until every player has set its done flag.
//
// Each player waits until the round is open and it has not processed it yet,
// checks the latest number once, sets its done flag and broadcasts. Every
// wait is a loop that re-checks its condition, so spurious wakeups and
// broadcasts meant for another waiter are harmless.
//
// When a player's victory flag is observed at a round boundary the moderator
// finalizes: it picks the winners, sets gameOver and broadcasts, and every
// parked player exits.
//
// # Usage
//
//	g, err := game.New(game.Config{Players: 4, MatchThreshold: 3, ...},
//	    game.WithReporter(game.NewBusReporter(bus)))
//	if err != nil {
//	    return err
//	}
//	result, err := g.Play(ctx)
package game
