package output

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// isTerminal is swapped in tests.
var isTerminal = func() bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// RunWithSpinner runs fn while showing a spinner with message. When output is
// not a terminal, fn runs without animation and a single result line is printed.
func RunWithSpinner(message string, fn func() error) error {
	if !isTerminal() {
		err := fn()
		if err != nil {
			Error(message)
		} else {
			Success(message)
		}
		return err
	}

	model := newSpinnerModel(message)
	p := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))

	go func() {
		p.Send(spinnerDoneMsg{err: fn()})
	}()

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("spinner: %w", err)
	}
	return final.(*spinnerModel).err
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type spinnerDoneMsg struct {
	err error
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return errorStyle.Render("✗ "+m.message) + "\n"
		}
		return successStyle.Render("✓ "+m.message) + "\n"
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}
