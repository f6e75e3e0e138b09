// Package tui implements the terminal front ends of a game: the bubbletea
// setup form that asks for the player count and draw policy, the live
// board that follows a running game through the event bus, and the plain
// line-by-line report used when no terminal UI is wanted.
//
// None of these touch the game directly. They consume event.Event values,
// so they work the same whether the game is live or replayed from tests.
package tui
