package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/tambola/internal/config"
	"github.com/Iron-Ham/tambola/internal/errors"
	"github.com/Iron-Ham/tambola/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show and filter game logs",
	Long: `Show entries from game.log and its rotated backups.

The log directory comes from logging.dir unless --dir is given.

Examples:
  tambola logs --game 3f2a9c01
  tambola logs --player 1 --level debug -n 0
  tambola logs --since 1h --format csv --output games.csv`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsDir       string
	logsGame      string
	logsPlayer    int
	logsTail      int
	logsLevel     string
	logsComponent string
	logsGrep      string
	logsSince     time.Duration
	logsFormat    string
	logsOutput    string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	flags := logsCmd.Flags()
	flags.StringVar(&logsDir, "dir", "", "log directory (default: logging.dir)")
	flags.StringVar(&logsGame, "game", "", "only entries from this game id")
	flags.IntVar(&logsPlayer, "player", 0, "only entries logged by this player")
	flags.IntVarP(&logsTail, "tail", "n", 50, "number of entries to show (0 for all)")
	flags.StringVar(&logsLevel, "level", "", "minimum level: debug, info, warn or error")
	flags.StringVar(&logsComponent, "component", "", "only entries from this component, e.g. moderator")
	flags.StringVar(&logsGrep, "grep", "", "only entries whose message contains this text")
	flags.DurationVar(&logsSince, "since", 0, "only entries newer than this, e.g. 30m")
	flags.StringVarP(&logsFormat, "format", "f", logging.FormatText, "output format: text, json or csv")
	flags.StringVarP(&logsOutput, "output", "o", "", "write to this file instead of stdout")
}

func runLogs(cmd *cobra.Command, args []string) error {
	dir := logsDir
	if dir == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dir = cfg.Logging.ResolveDir()
		if dir == "" {
			return fmt.Errorf("logging.dir is %q, so there is no game.log to read; pass --dir", config.StderrDir)
		}
	}

	entries, err := logging.ReadLogs(dir)
	if err != nil {
		return err
	}

	filter := logging.LogFilter{
		Level:           logsLevel,
		GameID:          logsGame,
		Component:       logsComponent,
		MessageContains: logsGrep,
	}
	if cmd.Flags().Changed("player") {
		player := logsPlayer
		filter.PlayerID = &player
	}
	if logsSince > 0 {
		filter.StartTime = time.Now().Add(-logsSince)
	}
	entries = logging.FilterLogs(entries, filter)
	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}

	var out io.Writer = cmd.OutOrStdout()
	if logsOutput != "" {
		file, err := os.Create(logsOutput)
		if err != nil {
			return errors.Wrapf(err, "failed to create output file %s", logsOutput)
		}
		defer func() { _ = file.Close() }()
		out = file
	}

	if err := logging.WriteEntries(out, entries, logsFormat); err != nil {
		return err
	}
	if logsOutput != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", len(entries), logsOutput)
	}
	return nil
}
