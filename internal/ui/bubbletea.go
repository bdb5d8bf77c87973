package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type chooserModel struct {
	session Session
	input   textinput.Model
	lines   int

	command   string
	err       error
	cancelled bool
}

func newChooserModel(session Session, opts Options) (chooserModel, error) {
	input := textinput.New()
	input.Prompt = "nmenu> "
	input.Placeholder = "type to filter"
	input.CharLimit = 512
	input.SetValue(opts.Query)
	input.CursorEnd()
	input.Focus()

	if err := session.OnInput(opts.Query); err != nil {
		return chooserModel{}, sessionError{err}
	}
	return chooserModel{session: session, input: input, lines: opts.Lines}, nil
}

func (m chooserModel) Init() tea.Cmd { return textinput.Blink }

func (m chooserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			command, err := m.session.Choose()
			if err != nil {
				m.err = sessionError{err}
			}
			m.command = command
			return m, tea.Quit
		case "up", "ctrl+p", "shift+tab":
			m.session.Move(-1)
			return m, nil
		case "down", "ctrl+n", "tab":
			m.session.Move(1)
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		if err := m.session.OnInput(value); err != nil {
			m.err = sessionError{err}
			return m, tea.Quit
		}
	}
	return m, cmd
}

func (m chooserModel) View() string {
	labels := m.session.Labels()
	selected := m.session.Selected()
	start, end := visibleWindow(selected, len(labels), m.lines)

	rows := []string{m.input.View(), ""}
	if len(labels) == 0 {
		rows = append(rows, chooserHintStyle.Render("no suggestions"))
	}
	for i := start; i < end; i++ {
		if i == selected {
			rows = append(rows, chooserSelectedStyle.Render("> "+labels[i]))
			continue
		}
		rows = append(rows, chooserItemStyle.Render("  "+labels[i]))
	}
	if hidden := len(labels) - (end - start); hidden > 0 {
		rows = append(rows, chooserHintStyle.Render(fmt.Sprintf("  +%d more", hidden)))
	}
	rows = append(rows, "", chooserHintStyle.Render("[tab/up/down] move  [enter] run  [esc] cancel"))
	return chooserCardStyle.Render(strings.Join(rows, "\n"))
}

func chooseWithBubbleTea(session Session, opts Options) (string, error) {
	model, err := newChooserModel(session, opts)
	if err != nil {
		return "", err
	}
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return "", err
	}
	out, ok := final.(chooserModel)
	if !ok || out.cancelled {
		return "", ErrCancelled
	}
	if out.err != nil {
		return "", out.err
	}
	return out.command, nil
}

var (
	chooserCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")).
				Padding(0, 1)

	chooserSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("87"))

	chooserItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	chooserHintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("109"))
)
