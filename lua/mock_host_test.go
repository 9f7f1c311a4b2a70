package lua

import (
	"errors"
	"fmt"
	"time"
)

// MockHost implements Host for testing.
type MockHost struct {
	// Captured calls
	PrintCalls  []string
	NotifyCalls []string
	NoteCalls   []string
	RemoveCalls []string
	SelectCalls []int
	PressCalls  int

	// Canned results
	PressResult string
	NoteErr     error

	ScheduledTimers []struct {
		ID       int
		Duration time.Duration
		Repeat   bool
	}
	CancelledTimers []int
	CancelAllCalls  int
	Deferred        []func()

	widgets     map[string]bool
	nextID      int
	nextTimerID int
}

func NewMockHost() *MockHost {
	return &MockHost{
		PressResult: "nothing",
		widgets:     make(map[string]bool),
	}
}

func (m *MockHost) Print(text string) {
	m.PrintCalls = append(m.PrintCalls, text)
}

func (m *MockHost) add() string {
	m.nextID++
	id := fmt.Sprintf("w%d", m.nextID)
	m.widgets[id] = true
	return id
}

func (m *MockHost) Notify(msg string) string {
	m.NotifyCalls = append(m.NotifyCalls, msg)
	return m.add()
}

func (m *MockHost) Note(text string) (string, error) {
	m.NoteCalls = append(m.NoteCalls, text)
	if m.NoteErr != nil {
		return "", m.NoteErr
	}
	return m.add(), nil
}

func (m *MockHost) Remove(id string) bool {
	m.RemoveCalls = append(m.RemoveCalls, id)
	if !m.widgets[id] {
		return false
	}
	delete(m.widgets, id)
	return true
}

func (m *MockHost) Press() string {
	m.PressCalls++
	return m.PressResult
}

func (m *MockHost) Select(i int) bool {
	m.SelectCalls = append(m.SelectCalls, i)
	return i >= 0 && i < len(m.widgets)
}

func (m *MockHost) Count() int {
	return len(m.widgets)
}

func (m *MockHost) TimerAfter(d time.Duration) int {
	return m.schedule(d, false)
}

func (m *MockHost) TimerEvery(d time.Duration) int {
	return m.schedule(d, true)
}

func (m *MockHost) schedule(d time.Duration, repeat bool) int {
	m.nextTimerID++
	m.ScheduledTimers = append(m.ScheduledTimers, struct {
		ID       int
		Duration time.Duration
		Repeat   bool
	}{m.nextTimerID, d, repeat})
	return m.nextTimerID
}

func (m *MockHost) TimerCancel(id int) {
	m.CancelledTimers = append(m.CancelledTimers, id)
}

func (m *MockHost) TimerCancelAll() {
	m.CancelAllCalls++
}

func (m *MockHost) Defer(fn func()) {
	m.Deferred = append(m.Deferred, fn)
}

// RunDeferred runs and forgets the queued deferred calls.
func (m *MockHost) RunDeferred() {
	queued := m.Deferred
	m.Deferred = nil
	for _, fn := range queued {
		fn()
	}
}

var errNoteTooBig = errors.New("note too big")
