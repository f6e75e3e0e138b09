package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/tambola/internal/event"
	"github.com/Iron-Ham/tambola/internal/tui/styles"
)

// EventMsg carries a game event into the board's update loop.
type EventMsg struct {
	Event event.Event
}

// playerView is the board's copy of one player's progress.
type playerView struct {
	ticket  []int
	matched map[int]bool // ticket values matched so far
	matches int
	won     bool
}

// Board is the bubbletea model of a running game. It is built purely from
// events and never reads game state.
type Board struct {
	gameID       string
	threshold    int
	drawsAllowed bool

	players   []playerView
	announced []int
	round     int

	finished bool
	winners  []int
	reason   string

	width int
	// stop is called when the user quits before the game has finished.
	stop func()
}

// NewBoard creates an empty board. stop may be nil.
func NewBoard(stop func()) Board {
	return Board{stop: stop}
}

func (m Board) Init() tea.Cmd {
	return nil
}

func (m Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if !m.finished && m.stop != nil {
				m.stop()
			}
			return m, tea.Quit
		}

	case EventMsg:
		m.apply(msg.Event)
	}
	return m, nil
}

// apply folds one event into the board.
func (m *Board) apply(e event.Event) {
	switch e := e.(type) {
	case event.GameStartedEvent:
		m.gameID = e.GameID
		m.threshold = e.MatchThreshold
		m.drawsAllowed = e.DrawsAllowed
		m.players = make([]playerView, len(e.Tickets))
		for i, t := range e.Tickets {
			m.players[i] = playerView{ticket: t, matched: make(map[int]bool)}
		}

	case event.RoundStartedEvent:
		m.round = e.Round

	case event.NumberAnnouncedEvent:
		m.round = e.Round
		m.announced = append(m.announced, e.Value)

	case event.NumberMatchedEvent:
		p := m.player(e.PlayerID)
		p.matched[e.Value] = true
		p.matches = e.Matches

	case event.PlayerWonEvent:
		m.player(e.PlayerID).won = true

	case event.GameFinishedEvent:
		m.finished = true
		m.winners = e.Winners
		m.reason = e.Reason
	}
}

// player returns the view for id, growing the board if the game-started
// event was missed.
func (m *Board) player(id int) *playerView {
	for len(m.players) <= id {
		m.players = append(m.players, playerView{matched: make(map[int]bool)})
	}
	return &m.players[id]
}

// Finished reports whether the game-finished event has arrived.
func (m Board) Finished() bool { return m.finished }

func (m Board) View() string {
	var b strings.Builder

	title := styles.Title.Render("Tambola")
	if m.gameID != "" {
		title += " " + styles.Subtitle.Render("game "+m.gameID)
	}
	b.WriteString(m.fit(title) + "\n")

	latest := styles.Muted.Render("waiting for the first number")
	if n := len(m.announced); n > 0 {
		latest = "Latest " + styles.Announcement.Render(strconv.Itoa(m.announced[n-1]))
	}
	b.WriteString(m.fit(fmt.Sprintf("Round %d  %s", m.round, latest)) + "\n")

	nums := make([]string, len(m.announced))
	for i, v := range m.announced {
		nums[i] = strconv.Itoa(v)
	}
	b.WriteString(m.fit(styles.Muted.Render("Announced: "+strings.Join(nums, " "))) + "\n\n")

	for id, p := range m.players {
		b.WriteString(m.renderPlayer(id, p) + "\n")
	}

	b.WriteString("\n" + m.fit(m.renderOutcome()) + "\n")
	b.WriteString(styles.HelpText.Render("q: quit"))
	return b.String()
}

func (m Board) renderPlayer(id int, p playerView) string {
	header := fmt.Sprintf("Player-%d  %d/%d", id+1, p.matches, m.threshold)
	if p.won {
		header = styles.Winner.Render(header + "  WINNER")
	}

	slots := make([]string, len(p.ticket))
	for i, v := range p.ticket {
		s := fmt.Sprintf("%2d", v)
		if p.matched[v] {
			slots[i] = styles.Matched.Render(s)
		} else {
			slots[i] = styles.Unmatched.Render(s)
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(slots, " "))
	box := styles.PlayerBox.Render(body)
	if m.width <= 0 {
		return box
	}
	lines := strings.Split(box, "\n")
	for i, line := range lines {
		lines[i] = m.fit(line)
	}
	return strings.Join(lines, "\n")
}

func (m Board) renderOutcome() string {
	if !m.finished {
		return styles.Muted.Render("playing...")
	}
	if len(m.winners) == 0 {
		return styles.Warning.Render(fmt.Sprintf("No winner (%s)", m.reason))
	}

	names := make([]string, len(m.winners))
	for i, id := range m.winners {
		names[i] = fmt.Sprintf("Player-%d", id+1)
	}
	label := "Winner"
	if len(names) > 1 {
		label = "Winners"
	}
	return styles.Winner.Render(fmt.Sprintf("%s: %s", label, strings.Join(names, ", ")))
}

// fit truncates a styled line to the terminal width, keeping escape codes
// intact.
func (m Board) fit(s string) string {
	if m.width <= 3 || lipgloss.Width(s) <= m.width {
		return s
	}
	return ansi.Truncate(s, m.width, "...")
}

// BoardProgram runs a Board and feeds it events from the bus.
type BoardProgram struct {
	program *tea.Program
}

// NewBoardProgram creates the board program. stop is called if the user
// quits while the game is still running.
func NewBoardProgram(stop func(), opts ...tea.ProgramOption) *BoardProgram {
	return &BoardProgram{program: tea.NewProgram(NewBoard(stop), opts...)}
}

// Handle is an event.Handler that forwards events to the board. It blocks
// until the board accepts the event, or returns at once if the board has
// exited.
func (b *BoardProgram) Handle(e event.Event) {
	b.program.Send(EventMsg{Event: e})
}

// Run blocks until the user quits the board. finished reports whether the
// board had seen the end of the game by then.
func (b *BoardProgram) Run() (finished bool, err error) {
	model, err := b.program.Run()
	return boardFinished(model), err
}

func boardFinished(model tea.Model) bool {
	board, ok := model.(Board)
	return ok && board.Finished()
}
