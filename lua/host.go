package lua

import "time"

// ScreenHost is the part of the session scripts can change.
type ScreenHost interface {
	Print(text string)
	Notify(msg string) string
	Note(text string) (string, error)
	Remove(id string) bool
	Press() string
	Select(i int) bool
	Count() int
}

// TimerHost schedules script wake-ups. The host owns IDs; the engine owns
// the callbacks bound to them. TimerCancelAll only reaches script timers.
type TimerHost interface {
	TimerAfter(d time.Duration) int
	TimerEvery(d time.Duration) int
	TimerCancel(id int)
	TimerCancelAll()
	// Defer queues fn to run on the session loop after the current event.
	Defer(fn func())
}

// Host is everything the engine needs from the session.
type Host interface {
	ScreenHost
	TimerHost
}
