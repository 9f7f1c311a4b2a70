// Package ui is the terminal simulator for the watch display.
package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/wristwatch/event"
)

// BubbleTeaUI implements session.UI using Bubble Tea.
type BubbleTeaUI struct {
	mu      sync.Mutex
	program *tea.Program
	pending event.Frame // Last frame shown before the program started

	input chan event.Event

	done     chan struct{}
	doneOnce sync.Once

	opts []tea.ProgramOption
}

// NewBubbleTeaUI creates a Bubble Tea frontend. Options are passed to
// tea.NewProgram.
func NewBubbleTeaUI(opts ...tea.ProgramOption) *BubbleTeaUI {
	return &BubbleTeaUI{
		input: make(chan event.Event, 64),
		done:  make(chan struct{}),
		opts:  opts,
	}
}

// Input returns the button events typed by the user.
func (b *BubbleTeaUI) Input() <-chan event.Event {
	return b.input
}

// ShowFrame displays a rendered frame. Called from the session goroutine.
func (b *BubbleTeaUI) ShowFrame(f event.Frame) {
	b.mu.Lock()
	p := b.program
	if p == nil {
		b.pending = f
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()

	select {
	case <-b.done:
	default:
		p.Send(FrameMsg(f))
	}
}

// Run starts the TUI and blocks until exit.
func (b *BubbleTeaUI) Run() error {
	b.mu.Lock()
	select {
	case <-b.done:
		b.mu.Unlock()
		return nil // Quit before start
	default:
	}
	model := NewModel(b.input)
	model.frame = b.pending
	b.program = tea.NewProgram(model, b.opts...)
	p := b.program
	b.mu.Unlock()

	_, err := p.Run()

	b.doneOnce.Do(func() { close(b.done) })
	return err
}

// Done returns a channel that closes when the UI exits.
func (b *BubbleTeaUI) Done() <-chan struct{} {
	return b.done
}

// Quit asks the TUI to exit.
func (b *BubbleTeaUI) Quit() {
	b.mu.Lock()
	p := b.program
	if p == nil {
		b.doneOnce.Do(func() { close(b.done) })
	}
	b.mu.Unlock()

	if p != nil {
		p.Quit()
	}
}
