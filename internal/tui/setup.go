package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/tambola/internal/config"
	"github.com/Iron-Ham/tambola/internal/tui/styles"
)

// SetupResult is what the setup form collected.
type SetupResult struct {
	Players      int
	DrawsAllowed bool
	// Canceled is set when the user left the form with esc or ctrl+c.
	Canceled bool
}

const (
	fieldPlayers = iota
	fieldDraws
)

// SetupModel is the bubbletea model for the pre-game form.
type SetupModel struct {
	inputs   []textinput.Model
	focus    int
	errorMsg string
	result   SetupResult
	done     bool
}

// NewSetupModel creates the form, prefilled from defaults.
func NewSetupModel(defaults SetupResult) SetupModel {
	players := textinput.New()
	players.Placeholder = "2"
	players.CharLimit = 4
	players.Width = 10
	if defaults.Players > 0 {
		players.SetValue(strconv.Itoa(defaults.Players))
	}
	players.Focus()

	draws := textinput.New()
	draws.Placeholder = "n"
	draws.CharLimit = 3
	draws.Width = 10
	if defaults.DrawsAllowed {
		draws.SetValue("y")
	}

	return SetupModel{
		inputs: []textinput.Model{players, draws},
		result: defaults,
	}
}

// Result returns the collected answers. Only meaningful once the program
// has exited.
func (m SetupModel) Result() SetupResult { return m.result }

func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		m.errorMsg = ""

		switch msg.String() {
		case "esc", "ctrl+c":
			m.result.Canceled = true
			m.done = true
			return m, tea.Quit

		case "tab", "shift+tab", "up", "down":
			return m, m.setFocus(1 - m.focus)

		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit validates the focused field and moves on, quitting after the last.
func (m SetupModel) submit() (tea.Model, tea.Cmd) {
	switch m.focus {
	case fieldPlayers:
		n, err := parsePlayers(m.inputs[fieldPlayers].Value())
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.result.Players = n
		return m, m.setFocus(fieldDraws)

	default:
		n, err := parsePlayers(m.inputs[fieldPlayers].Value())
		if err != nil {
			m.errorMsg = err.Error()
			return m, m.setFocus(fieldPlayers)
		}
		m.result.Players = n
		m.result.DrawsAllowed = parseYes(m.inputs[fieldDraws].Value())
		m.done = true
		return m, tea.Quit
	}
}

func (m *SetupModel) setFocus(field int) tea.Cmd {
	m.focus = field
	for i := range m.inputs {
		if i != field {
			m.inputs[i].Blur()
		}
	}
	return m.inputs[field].Focus()
}

// parsePlayers accepts an integer in 1..config.MaxPlayers, or an empty
// string meaning the placeholder value.
func parsePlayers(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 2, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > config.MaxPlayers {
		return 0, fmt.Errorf("enter a whole number of players from 1 to %d", config.MaxPlayers)
	}
	return n, nil
}

// parseYes treats any answer starting with y or Y as yes.
func parseYes(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "y") || strings.HasPrefix(s, "Y")
}

func (m SetupModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Tambola"))
	b.WriteString("\n")

	prompts := []string{
		"Enter the number of players:",
		"Allow multiple winners? (y/n)",
	}
	for i, prompt := range prompts {
		label := styles.Muted.Render(prompt)
		if i == m.focus {
			label = styles.Primary.Render(prompt)
		}
		b.WriteString(fmt.Sprintf("%s %s\n", label, m.inputs[i].View()))
	}

	if m.errorMsg != "" {
		b.WriteString("\n" + styles.Warning.Render(m.errorMsg) + "\n")
	}
	b.WriteString("\n" + styles.HelpText.Render("enter: next  tab: switch field  esc: cancel"))
	return b.String()
}

// RunSetup shows the setup form on in/out and returns the answers.
func RunSetup(in io.Reader, out io.Writer, defaults SetupResult) (SetupResult, error) {
	p := tea.NewProgram(NewSetupModel(defaults), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return SetupResult{}, fmt.Errorf("setup form failed: %w", err)
	}
	return final.(SetupModel).Result(), nil
}
