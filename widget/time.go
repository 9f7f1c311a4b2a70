package widget

import "time"

// TimeHeight is the fixed height of the clock row.
const TimeHeight = 30

// Clock supplies the current time to a TimeWidget.
type Clock interface {
	Now() time.Time
}

// Compile-time checks
var (
	_ Widget   = (*TimeWidget)(nil)
	_ Animator = (*TimeWidget)(nil)
)

// TimeWidget shows the current time of day.
type TimeWidget struct {
	Base
	clock     Clock
	prevTicks int64 // Unix seconds last drawn
}

// NewTimeWidget creates a clock row reading from clock.
func NewTimeWidget(clock Clock) *TimeWidget {
	return &TimeWidget{
		Base:  Base{height: TimeHeight},
		clock: clock,
	}
}

// Render draws HH:MM:SS vertically centered in the row.
func (w *TimeWidget) Render(d Display, ypos int) {
	now := w.clock.Now()
	s := now.Format("15:04:05")

	_, th := d.TextBounds(s, 2)
	d.Text(Gutter, ypos+(TimeHeight-th)/2, s, 2)

	w.prevTicks = now.Unix()
}

// RenderFullscreen draws a large HH:MM with the date underneath.
func (w *TimeWidget) RenderFullscreen(d Display, ypos int) {
	now := w.clock.Now()
	dw, dh := d.Size()

	clock := now.Format("15:04")
	cw, ch := d.TextBounds(clock, 3)
	date := now.Format("Mon Jan 2")
	ew, eh := d.TextBounds(date, 1)

	top := ypos + (dh-ypos-ch-eh-4)/2
	d.Text((dw-cw)/2, top, clock, 3)
	d.Text((dw-ew)/2, top+ch+4, date, 1)

	w.prevTicks = now.Unix()
}

// OnPress does nothing; the owner decides how to reach the fullscreen view.
func (w *TimeWidget) OnPress() PressAction {
	return Nothing
}

// NeedsRedraw reports whether the displayed second is out of date.
func (w *TimeWidget) NeedsRedraw() bool {
	return w.clock.Now().Unix() != w.prevTicks
}
