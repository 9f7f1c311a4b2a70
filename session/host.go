package session

import (
	"strings"
	"time"

	"github.com/drake/wristwatch/event"
	"github.com/drake/wristwatch/text"
	"github.com/drake/wristwatch/timer"
	"github.com/drake/wristwatch/widget"
)

// --- lua.ScreenHost ---

// Print logs script output.
func (s *Session) Print(msg string) {
	s.log.Printf("[Lua] %s", msg)
}

// Notify posts a notification and returns its widget ID.
func (s *Session) Notify(msg string) string {
	// Notifications are drawn as one run of characters
	msg = strings.ReplaceAll(text.Printable(text.StripANSI(msg)), "\n", " ")
	return s.screen.Add(widget.NewNotificationWidget(msg))
}

// Note adds a note holding a copy of body.
func (s *Session) Note(body string) (string, error) {
	body = text.Printable(text.StripANSI(body))
	w, err := widget.NewNoteWidget([]byte(body), len(body))
	if err != nil {
		return "", err
	}
	return s.screen.Add(w), nil
}

// Remove removes and releases a widget.
func (s *Session) Remove(id string) bool {
	return s.screen.Remove(id)
}

// Press presses the current widget and fires the "press" hook.
func (s *Session) Press() string {
	action := s.screen.Press().String()
	s.engine.CallHook("press", action)
	return action
}

// Select selects the widget at index i.
func (s *Session) Select(i int) bool {
	return s.screen.Select(i)
}

// Count returns the number of widgets.
func (s *Session) Count() int {
	return s.screen.Len()
}

// --- lua.TimerHost ---

// TimerAfter schedules a one-shot script timer.
func (s *Session) TimerAfter(d time.Duration) int {
	return s.timer.Once(timer.Script, d)
}

// TimerEvery schedules a repeating script timer.
func (s *Session) TimerEvery(d time.Duration) int {
	return s.timer.Repeat(timer.Script, d)
}

// TimerCancel cancels a script timer. Session timers are out of reach.
func (s *Session) TimerCancel(id int) {
	s.timer.Stop(timer.Script, id)
}

// TimerCancelAll cancels every script timer. The refresh tick keeps running.
func (s *Session) TimerCancelAll() {
	if n := s.timer.StopAll(timer.Script); n > 0 {
		s.log.Printf("[Session] cancelled %d script timers", n)
	}
}

// Defer runs fn on the session loop after the current event.
func (s *Session) Defer(fn func()) {
	s.Post(event.Event{Type: event.Deferred, Callback: fn})
}
