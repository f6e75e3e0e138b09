package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Iron-Ham/tambola/internal/config"
	"github.com/Iron-Ham/tambola/internal/errors"
	"github.com/Iron-Ham/tambola/internal/event"
	"github.com/Iron-Ham/tambola/internal/game"
	"github.com/Iron-Ham/tambola/internal/logging"
	"github.com/Iron-Ham/tambola/internal/tui"
	"github.com/Iron-Ham/tambola/internal/tui/styles"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Play a game of tambola.

Every player gets a ticket of distinct numbers. The moderator announces one
number per round and waits until every player has checked it. A player wins
once enough numbers on the ticket have been announced.

Settings come from the config file and TAMBOLA_* environment variables;
flags override both.

Examples:
  tambola play --players 4
  tambola play --players 3 --draws --threshold 5 --interval 0
  tambola play --interactive --tui`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var playInteractive bool

func init() {
	rootCmd.AddCommand(playCmd)

	flags := playCmd.Flags()
	flags.Int("players", 0, "number of players")
	flags.Bool("draws", false, "report every player who reaches the threshold in the winning round")
	flags.Int("threshold", 0, "matched numbers needed to win")
	flags.Int("interval", 0, "pause after each announcement in milliseconds")
	flags.Int("max-rounds", 0, "end the game without a winner after this many rounds (0 = unlimited)")
	flags.Uint64("seed", 0, "random seed for a reproducible game (0 = random)")
	flags.String("stop-policy", "", "when to stop once somebody wins: round or first")
	flags.Bool("tui", false, "show the live board instead of the plain report")
	flags.BoolVarP(&playInteractive, "interactive", "i", false, "ask for the player count and draw policy before playing")

	bindPlayFlags()
}

// bindPlayFlags lets play's flags override the matching config keys.
func bindPlayFlags() {
	flags := playCmd.Flags()
	bindings := map[string]string{
		"game.players":           "players",
		"game.draws_allowed":     "draws",
		"game.match_threshold":   "threshold",
		"game.round_interval_ms": "interval",
		"game.max_rounds":        "max-rounds",
		"game.seed":              "seed",
		"game.stop_policy":       "stop-policy",
		"tui.enabled":            "tui",
	}
	for key, flag := range bindings {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if playInteractive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("--interactive needs a terminal on stdin")
		}
		answers, err := tui.RunSetup(os.Stdin, out, tui.SetupResult{
			Players:      cfg.Game.Players,
			DrawsAllowed: cfg.Game.DrawsAllowed,
		})
		if err != nil {
			return err
		}
		if answers.Canceled {
			return nil
		}
		cfg.Game.Players = answers.Players
		cfg.Game.DrawsAllowed = answers.DrawsAllowed
		if errs := cfg.Validate(); len(errs) > 0 {
			return config.ValidationErrors(errs)
		}
	}

	styles.ApplyTheme(styles.ThemeName(cfg.TUI.Theme))

	logger, err := newGameLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()
	watchLogLevel(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := event.NewBus(logger)
	g, err := game.New(cfg.Game.ToGame(),
		game.WithLogger(logger),
		game.WithReporter(game.NewBusReporter(bus)))
	if err != nil {
		return err
	}
	gameLog := logger.WithGame(g.ID()).With("seed", cfg.Game.Seed, "players", cfg.Game.Players)
	started := g.StartedEvent()

	var result game.Result
	if cfg.TUI.Enabled && isTerminal(out) {
		result, err = playWithBoard(ctx, stop, g, bus, started, out, gameLog)
	} else {
		if cfg.TUI.Enabled {
			gameLog.Warn("output is not a terminal, falling back to the plain report")
		}
		bus.SubscribeAll(tui.NewReport(out).Handle)
		gameLog.Debug("publishing game events", "subscribers", bus.SubscriptionCount())
		bus.Publish(started)
		result, err = g.Play(ctx)
	}

	gameLog.Info("game result",
		"winners", result.Winners,
		"rounds", result.Rounds,
		"reason", string(result.Reason))
	if endErr := result.Err(); endErr != nil {
		gameLog.Warn("game ended without a winner",
			"error", endErr.Error(),
			"severity", errors.GetSeverity(endErr).String())
	}

	if errors.IsCanceled(err) {
		fmt.Fprintln(out, styles.Muted.Render("Game canceled."))
		return nil
	}
	return err
}

// playWithBoard runs the game behind the live board. The board stays up
// after the game ends until the user quits it.
func playWithBoard(ctx context.Context, stop context.CancelFunc, g *game.Game, bus *event.Bus, started event.Event, out io.Writer, logger *logging.Logger) (game.Result, error) {
	board := tui.NewBoardProgram(stop, tea.WithOutput(out), tea.WithContext(ctx))
	boardSub := bus.SubscribeAll(board.Handle)

	var (
		result  game.Result
		playErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		bus.Publish(started)
		result, playErr = g.Play(ctx)
	}()

	finished, boardErr := board.Run()
	// Events published after this point have nobody left to draw them.
	bus.Unsubscribe(boardSub)
	if !finished {
		logger.Info("board closed before the game finished")
	}
	stop()
	<-done

	if boardErr != nil && !errors.Is(boardErr, tea.ErrProgramKilled) {
		return result, fmt.Errorf("board failed: %w", boardErr)
	}
	return result, playErr
}

// newGameLogger builds the logger described by cfg. A max_size_mb of 0
// turns rotation off.
func newGameLogger(cfg config.LoggingConfig) (*logging.Logger, error) {
	if !cfg.Enabled {
		return logging.NopLogger(), nil
	}

	var (
		logger *logging.Logger
		err    error
	)
	level := strings.ToUpper(cfg.Level)
	if cfg.MaxSizeMB == 0 {
		logger, err = logging.NewLogger(cfg.ResolveDir(), level)
	} else {
		logger, err = logging.NewLoggerWithRotation(cfg.ResolveDir(), level, logging.RotationConfig{
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.Compress,
		})
	}
	return logger, errors.Wrap(err, "opening the game log")
}

// watchLogLevel applies logging.level changes from the config file while
// a game is running.
func watchLogLevel(logger *logging.Logger) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	config.Watch(func(e fsnotify.Event) {
		level := logging.ParseLevel(viper.GetString("logging.level"))
		if level == logger.Level() {
			return
		}
		logger.SetLevel(level)
		logger.Info("log level changed", "level", level, "file", e.Name)
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
