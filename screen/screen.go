// Package screen owns the ordered widget list shown on the watch and turns
// presses into list changes.
package screen

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/drake/wristwatch/widget"
)

type entry struct {
	id string
	w  widget.Widget
}

// Stats is a snapshot of screen activity.
type Stats struct {
	Widgets    int
	Height     int
	Selected   int
	Fullscreen bool
	Renders    int
	Presses    int
	Destroyed  int
}

// Screen exclusively owns its widgets: removing one closes it when it
// implements io.Closer. Not safe for concurrent use.
type Screen struct {
	entries    []entry
	selected   int    // -1 when empty
	fullscreen string // ID of the fullscreen widget, "" in list view
	scroll     int    // list offset in pixels
	dirty      bool

	renders   int
	presses   int
	destroyed int
}

// New creates an empty screen.
func New() *Screen {
	return &Screen{selected: -1, dirty: true}
}

// Add appends w to the bottom of the list and returns its ID.
func (s *Screen) Add(w widget.Widget) string {
	id := uuid.NewString()
	s.entries = append(s.entries, entry{id: id, w: w})
	if s.selected < 0 {
		s.selected = 0
	}
	s.dirty = true
	return id
}

// Remove closes and removes the widget with the given ID.
func (s *Screen) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	if err := s.removeAt(i); err != nil {
		log.Printf("[Screen] %v", err)
	}
	return true
}

// removeAt drops entry i and closes its widget. The widget is gone even
// when Close fails.
func (s *Screen) removeAt(i int) error {
	e := s.entries[i]
	s.entries = append(s.entries[:i], s.entries[i+1:]...)

	if e.id == s.fullscreen {
		s.fullscreen = ""
	}
	switch {
	case len(s.entries) == 0:
		s.selected = -1
	case s.selected > i || s.selected >= len(s.entries):
		s.selected--
	}
	s.dirty = true

	if c, ok := e.w.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close widget %s: %w", e.id, err)
		}
	}
	return nil
}

// Clear closes and removes every widget, returning any Close errors.
func (s *Screen) Clear() error {
	var errs []error
	for len(s.entries) > 0 {
		if err := s.removeAt(len(s.entries) - 1); err != nil {
			errs = append(errs, err)
		}
	}
	s.scroll = 0
	return errors.Join(errs...)
}

// Close releases every widget. The screen is empty afterwards.
func (s *Screen) Close() error {
	return s.Clear()
}

// Len returns the number of widgets.
func (s *Screen) Len() int {
	return len(s.entries)
}

// IDs returns widget IDs from top to bottom.
func (s *Screen) IDs() []string {
	ids := make([]string, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.id
	}
	return ids
}

// Widget returns the widget with the given ID.
func (s *Screen) Widget(id string) (widget.Widget, bool) {
	i := s.index(id)
	if i < 0 {
		return nil, false
	}
	return s.entries[i].w, true
}

func (s *Screen) index(id string) int {
	for i, e := range s.entries {
		if e.id == id {
			return i
		}
	}
	return -1
}

// Height returns the total height of the stacked list.
func (s *Screen) Height() int {
	h := 0
	for _, e := range s.entries {
		h += int(e.w.Height())
	}
	return h
}

// Selected returns the index of the selected widget, or -1.
func (s *Screen) Selected() int {
	return s.selected
}

// Select moves the selection to index i.
func (s *Screen) Select(i int) bool {
	if i < 0 || i >= len(s.entries) {
		return false
	}
	if i != s.selected {
		s.selected = i
		s.dirty = true
	}
	return true
}

// Next selects the widget below the current one.
func (s *Screen) Next() bool {
	return s.Select(s.selected + 1)
}

// Prev selects the widget above the current one.
func (s *Screen) Prev() bool {
	return s.Select(s.selected - 1)
}

// InFullscreen reports whether a widget is shown fullscreen.
func (s *Screen) InFullscreen() bool {
	return s.fullscreen != ""
}

// Fullscreen switches to the fullscreen view of the widget at index i.
func (s *Screen) Fullscreen(i int) bool {
	if i < 0 || i >= len(s.entries) {
		return false
	}
	s.selected = i
	s.fullscreen = s.entries[i].id
	s.dirty = true
	return true
}

// Back returns from fullscreen to the list.
func (s *Screen) Back() bool {
	if s.fullscreen == "" {
		return false
	}
	s.fullscreen = ""
	s.dirty = true
	return true
}

// Press delivers a press to the fullscreen widget, or to the selected one
// in list view, and applies the returned action.
func (s *Screen) Press() widget.PressAction {
	i := s.selected
	if s.fullscreen != "" {
		i = s.index(s.fullscreen)
	}
	if i < 0 || i >= len(s.entries) {
		return widget.Nothing
	}

	s.presses++
	e := s.entries[i]
	action := e.w.OnPress()

	switch action {
	case widget.Destroy:
		if err := s.removeAt(i); err != nil {
			log.Printf("[Screen] %v", err)
		}
		s.destroyed++
	case widget.Fullscreen:
		if s.fullscreen == e.id {
			s.Back()
		} else {
			s.Fullscreen(i)
		}
	}
	return action
}

// Dirty reports whether the next Render would draw something different.
func (s *Screen) Dirty() bool {
	if s.dirty {
		return true
	}
	for _, e := range s.visible() {
		if a, ok := e.w.(widget.Animator); ok && a.NeedsRedraw() {
			return true
		}
	}
	return false
}

func (s *Screen) visible() []entry {
	if s.fullscreen != "" {
		if i := s.index(s.fullscreen); i >= 0 {
			return s.entries[i : i+1]
		}
		return nil
	}
	return s.entries
}

// Stats returns counters describing the screen.
func (s *Screen) Stats() Stats {
	return Stats{
		Widgets:    len(s.entries),
		Height:     s.Height(),
		Selected:   s.selected,
		Fullscreen: s.fullscreen != "",
		Renders:    s.renders,
		Presses:    s.presses,
		Destroyed:  s.destroyed,
	}
}
