// Package logging provides structured logging for tambola games.
//
// This package wraps Go's log/slog to write JSON lines that can be filtered
// after the fact, e.g. to follow a single player through a game.
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. Child loggers
// created via the With* methods share the parent's writer and level, so
// [Logger.SetLevel] on any of them affects the whole tree.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(".tambola/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	playerLog := logger.WithGame(gameID).WithPlayer(3)
//	playerLog.Info("number matched", "value", 17, "matches", 2)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"number matched","game_id":"...","player_id":3,"value":17,"matches":2}
//
// # Log Rotation
//
// [NewLoggerWithRotation] rotates game.log by size into game.log.1 ...
// game.log.N, optionally gzip compressed.
//
// # Reading Logs
//
// [ReadLogs] parses game.log and its rotated backups, [FilterLogs] narrows
// them with a [LogFilter], and [WriteEntries] exports them as text, JSON or
// CSV:
//
//	entries, err := logging.ReadLogs(dir)
//	if err != nil {
//	    return err
//	}
//	player := 3
//	entries = logging.FilterLogs(entries, logging.LogFilter{GameID: gameID, PlayerID: &player})
//	err = logging.WriteEntries(os.Stdout, entries, logging.FormatText)
//
// # Testing
//
// Use [NopLogger] to discard all output.
package logging
