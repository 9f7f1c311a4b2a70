package ui

import (
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/drake/wristwatch/event"
	"github.com/drake/wristwatch/ui/style"
)

// Model is the Bubble Tea model of the simulator. It only shows frames and
// forwards button presses; all widget logic runs on the session loop.
type Model struct {
	input  chan<- event.Event
	keys   KeyMap
	help   help.Model
	styles style.Styles

	frame event.Frame
	width int
}

// NewModel creates a model that forwards input to the given channel.
func NewModel(input chan<- event.Event) Model {
	return Model{
		input:  input,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		styles: style.DefaultStyles(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.frame = event.Frame(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.send(event.Quit)
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Press):
			m.send(event.Press)
		case key.Matches(msg, m.keys.Up):
			m.send(event.Prev)
		case key.Matches(msg, m.keys.Down):
			m.send(event.Next)
		case key.Matches(msg, m.keys.Fullscreen):
			m.send(event.Fullscreen)
		case key.Matches(msg, m.keys.Back):
			m.send(event.Back)
		case key.Matches(msg, m.keys.Demo):
			m.send(event.Demo)
		case key.Matches(msg, m.keys.Reload):
			m.send(event.Reload)
		}
	}
	return m, nil
}

// send forwards a button to the session without blocking the UI.
func (m Model) send(t event.Type) {
	select {
	case m.input <- event.Event{Type: t}:
	default:
		log.Printf("[UI] input queue full, dropped %d", t)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	bezel := m.styles.Bezel
	if m.frame.Fullscreen {
		bezel = m.styles.BezelFullscreen
	}

	status := m.frame.Status
	if m.width > 0 {
		status = runewidth.Truncate(status, m.width-4, "…")
	}

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("wristwatch"),
		bezel.Render(m.styles.Pixels.Render(m.frame.Pixels)),
		m.styles.StatusBar.Render(status),
		m.help.View(m.keys),
	))
}
