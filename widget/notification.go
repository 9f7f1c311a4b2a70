package widget

import "bytes"

const (
	// NotificationCapacity is the size of the inline message buffer,
	// terminator included.
	NotificationCapacity = 36
	// NotificationMaxLen is the longest message kept; the rest is dropped.
	NotificationMaxLen = NotificationCapacity - 1

	notificationRowChars  = 12
	notificationRowHeight = 16
)

// Compile-time check
var _ Widget = (*NotificationWidget)(nil)

// NotificationWidget is a short banner dismissed by a single press.
type NotificationWidget struct {
	Base
	message [NotificationCapacity]byte
}

// NewNotificationWidget copies msg up to the first NUL byte or
// NotificationMaxLen bytes, whichever comes first. Longer messages are
// truncated silently.
func NewNotificationWidget(msg string) *NotificationWidget {
	w := &NotificationWidget{}

	var i int
	for i = 0; i < len(msg) && msg[i] != 0 && i < NotificationMaxLen; i++ {
		w.message[i] = msg[i]
	}
	w.message[i] = 0

	w.setHeight(notificationHeight(i))
	return w
}

// notificationHeight gives one 16px row per started group of 12 characters.
// A length that is an exact multiple of 12 still gets the extra row.
func notificationHeight(n int) uint {
	return uint(notificationRowHeight * (n/notificationRowChars + 1))
}

// Text returns the stored message, up to the terminator.
func (w *NotificationWidget) Text() string {
	n := bytes.IndexByte(w.message[:], 0)
	return string(w.message[:n])
}

// Render draws the message twelve characters per row with a rule below.
func (w *NotificationWidget) Render(d Display, ypos int) {
	msg := w.Text()
	_, gh := glyphSize(d, 1)
	pad := (notificationRowHeight - gh) / 2

	for row := 0; row*notificationRowChars < len(msg); row++ {
		end := min((row+1)*notificationRowChars, len(msg))
		y := ypos + row*notificationRowHeight + pad
		d.Text(Gutter, y, msg[row*notificationRowChars:end], 1)
	}

	dw, _ := d.Size()
	d.HLine(Gutter, ypos+int(w.Height())-1, dw-Gutter, White)
}

// RenderFullscreen is a no-op: notifications have no expanded view.
func (w *NotificationWidget) RenderFullscreen(d Display, ypos int) {}

// OnPress always dismisses the notification.
func (w *NotificationWidget) OnPress() PressAction {
	return Destroy
}
