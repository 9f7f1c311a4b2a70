// Package event holds the messages exchanged between the session loop and
// the user interface.
package event

// Type identifies what the user or system asked for.
type Type int

const (
	Press      Type = iota // Button press on the selected widget
	Next                   // Move selection down
	Prev                   // Move selection up
	Fullscreen             // Open the selected widget fullscreen
	Back                   // Leave fullscreen
	Demo                   // Post a sample notification
	Reload                 // Re-run all scripts
	Quit
	Deferred // Run Callback on the loop, queued by a script or off-loop work
)

// Event is the packet sent to the session loop.
type Event struct {
	Type     Type
	Callback func() // For Deferred
}

// Frame is one rendered display, ready for the terminal.
type Frame struct {
	Pixels     string // Braille rendering of the framebuffer
	Status     string
	Widgets    int
	Fullscreen bool
}
