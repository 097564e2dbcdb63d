package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultHeight is the number of option rows shown at once
const DefaultHeight = 10

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	filterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Choose    key.Binding
	Cancel    key.Binding
	Backspace key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		Choose:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
		Backspace: key.NewBinding(key.WithKeys("backspace")),
	}
}

type model struct {
	title  string
	state  *state
	keys   keyMap
	height int
	chosen string
	ok     bool
	done   bool
}

func newModel(title string, options []string, height int) model {
	if height <= 0 {
		height = DefaultHeight
	}
	return model{
		title:  title,
		state:  newState(options),
		keys:   newKeyMap(),
		height: height,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Choose):
		if label, ok := m.state.current(); ok {
			m.chosen = label
			m.ok = true
			m.done = true
			return m, tea.Quit
		}
	case key.Matches(keyMsg, m.keys.Up):
		m.state.cursorUp()
	case key.Matches(keyMsg, m.keys.Down):
		m.state.cursorDown()
	case key.Matches(keyMsg, m.keys.Backspace):
		m.state.backspace()
	case keyMsg.Type == tea.KeyRunes:
		m.state.setQuery(m.state.query + string(keyMsg.Runes))
	case keyMsg.Type == tea.KeySpace:
		m.state.setQuery(m.state.query + " ")
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	if m.state.query == "" {
		b.WriteString(hintStyle.Render("(type to filter)"))
	} else {
		b.WriteString("Filter: " + filterStyle.Render(m.state.query))
	}
	b.WriteString("\n")

	if len(m.state.filtered) == 0 {
		b.WriteString(hintStyle.Render("  no matches"))
		b.WriteString("\n")
	}

	start, end := m.window()
	for i := start; i < end; i++ {
		label := m.state.filtered[i]
		if i == m.state.cursor {
			b.WriteString(cursorStyle.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render(fmt.Sprintf("%d/%d  ↑/↓ move  enter choose  esc cancel",
		len(m.state.filtered), len(m.state.options))))
	b.WriteString("\n")
	return b.String()
}

// window returns the visible slice of filtered rows, keeping the cursor in view
func (m model) window() (int, int) {
	n := len(m.state.filtered)
	if n <= m.height {
		return 0, n
	}
	start := m.state.cursor - m.height/2
	if start < 0 {
		start = 0
	}
	if start+m.height > n {
		start = n - m.height
	}
	return start, start + m.height
}

// Terminal is a single-choice picker drawn inline in the terminal
type Terminal struct {
	In     io.Reader
	Out    io.Writer
	Height int
}

// Choose shows options under title and blocks until the user chooses one
// or cancels. A cancelled picker returns ok == false and no error.
func (t Terminal) Choose(ctx context.Context, title string, options []string) (string, bool, error) {
	if len(options) == 0 {
		return "", false, nil
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if t.In != nil {
		opts = append(opts, tea.WithInput(t.In))
	}
	if t.Out != nil {
		opts = append(opts, tea.WithOutput(t.Out))
	}

	final, err := tea.NewProgram(newModel(title, options, t.Height), opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", false, fmt.Errorf("picker failed: %w", err)
	}

	m, ok := final.(model)
	if !ok {
		return "", false, fmt.Errorf("picker returned unexpected model %T", final)
	}
	return m.chosen, m.ok, nil
}
