// Package menu is the interactive setup screen. It only orchestrates: every
// action is an injected closure over the same functions the non-interactive
// subcommands call, and destructive actions are gated behind a confirm step
// here because the reconciliation core performs no confirmation itself.
package menu

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mizutanik/promptpulse/internal/detector"
)

// Action is one menu entry. Destructive actions require confirmation.
type Action struct {
	Label       string
	Destructive bool
	Run         func() (string, error)
}

// Options configures the menu.
type Options struct {
	DetectState func() detector.Result
	Actions     []Action
}

// Run starts the menu and blocks until the user quits.
func Run(opts Options) error {
	_, err := tea.NewProgram(newModel(opts)).Run()
	return err
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	stateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	messageStyle = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// actionDoneMsg carries the outcome of an action run off the update loop.
type actionDoneMsg struct {
	result string
	err    error
}

type model struct {
	opts       Options
	state      detector.Result
	spin       spinner.Model
	cursor     int
	confirming bool
	running    bool
	message    string
	failed     bool
}

func newModel(opts Options) model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = spinnerStyle

	return model{
		opts:  opts,
		state: opts.DetectState(),
		spin:  spin,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionDoneMsg:
		m.running = false
		if msg.err != nil {
			m.message = msg.err.Error()
			m.failed = true
		} else {
			m.message = msg.result
			m.failed = false
		}
		m.state = m.opts.DetectState()
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.running {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.confirming {
		m.confirming = false
		switch msg.String() {
		case "y", "Y":
			return m.runSelected()
		default:
			m.message = "cancelled"
			m.failed = false
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.opts.Actions)-1 {
			m.cursor++
		}

	case "enter":
		if m.opts.Actions[m.cursor].Destructive {
			m.confirming = true
			return m, nil
		}
		return m.runSelected()
	}
	return m, nil
}

func (m model) runSelected() (tea.Model, tea.Cmd) {
	action := m.opts.Actions[m.cursor]
	m.running = true
	m.message = ""

	run := func() tea.Msg {
		result, err := action.Run()
		return actionDoneMsg{result: result, err: err}
	}
	return m, tea.Batch(m.spin.Tick, run)
}

func (m model) View() string {
	s := titleStyle.Render("promptpulse setup") + "\n"

	if m.state.State == detector.StateError {
		s += errorStyle.Render("state: ERROR: "+m.state.Err) + "\n\n"
	} else {
		s += "state: " + stateStyle.Render(string(m.state.State)) + "\n\n"
	}

	for i, action := range m.opts.Actions {
		cursor := "  "
		label := action.Label
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
			label = cursorStyle.Render(label)
		}
		s += cursor + label + "\n"
	}

	s += "\n"
	switch {
	case m.running:
		s += m.spin.View() + messageStyle.Render(" working...") + "\n"
	case m.confirming:
		s += confirmStyle.Render(fmt.Sprintf("%s: are you sure? (y/N)", m.opts.Actions[m.cursor].Label)) + "\n"
	case m.message != "":
		if m.failed {
			s += errorStyle.Render(m.message) + "\n"
		} else {
			s += messageStyle.Render(m.message) + "\n"
		}
	}
	s += messageStyle.Render("up/down move · enter select · q quit") + "\n"
	return s
}
