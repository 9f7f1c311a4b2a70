package widget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/drake/wristwatch/text"
)

// NoteHeight is the fixed height of a note row.
const NoteHeight = 24

var (
	// ErrNoteSize is returned when size does not describe a valid prefix of
	// the supplied text.
	ErrNoteSize = errors.New("note size out of range")
	// ErrNoteAlloc is returned when the allocator cannot provide the buffer.
	ErrNoteAlloc = errors.New("note buffer allocation failed")
)

const noteLineSpacing = 1

// Compile-time check
var _ Widget = (*NoteWidget)(nil)

// NoteWidget shows a persistent note. It owns a private copy of the text
// for its whole lifetime; Close releases it.
type NoteWidget struct {
	Base
	text  []byte
	alloc Allocator
}

// NewNoteWidget copies exactly size bytes of t into a new buffer.
// size must satisfy 0 <= size <= len(t).
func NewNoteWidget(t []byte, size int) (*NoteWidget, error) {
	return NewNoteWidgetAlloc(HeapAllocator, t, size)
}

// NewNoteWidgetAlloc is NewNoteWidget with the buffer taken from alloc.
func NewNoteWidgetAlloc(alloc Allocator, t []byte, size int) (*NoteWidget, error) {
	if size < 0 || size > len(t) {
		return nil, fmt.Errorf("%w: size %d, text length %d", ErrNoteSize, size, len(t))
	}

	buf := alloc.Alloc(size)
	if len(buf) < size {
		if buf != nil {
			alloc.Free(buf)
		}
		return nil, fmt.Errorf("%w: wanted %d bytes", ErrNoteAlloc, size)
	}
	buf = buf[:size]
	copy(buf, t[:size])

	return &NoteWidget{
		Base:  Base{height: NoteHeight},
		text:  buf,
		alloc: alloc,
	}, nil
}

// Text returns a copy of the note contents.
func (w *NoteWidget) Text() string {
	return string(w.text)
}

// Len returns the number of bytes held.
func (w *NoteWidget) Len() int {
	return len(w.text)
}

// Close releases the buffer. Calls after the first are no-ops.
func (w *NoteWidget) Close() error {
	if w.text == nil {
		return nil
	}
	w.alloc.Free(w.text)
	w.text = nil
	return nil
}

// Render draws the first line of the note, shortened to fit the row.
func (w *NoteWidget) Render(d Display, ypos int) {
	if w.text == nil {
		return
	}

	line, _, more := strings.Cut(string(w.text), "\n")
	line = ellipsize(line, fitColumns(d, 1), more)

	_, gh := glyphSize(d, 1)
	d.Text(Gutter, ypos+(NoteHeight-gh)/2, line, 1)

	dw, _ := d.Size()
	d.HLine(Gutter, ypos+NoteHeight-1, dw-Gutter, White)
}

// RenderFullscreen draws the whole note word-wrapped, as far as it fits.
func (w *NoteWidget) RenderFullscreen(d Display, ypos int) {
	if w.text == nil {
		return
	}

	_, dh := d.Size()
	_, gh := glyphSize(d, 1)
	step := gh + noteLineSpacing

	y := ypos
	for _, line := range text.Wrap(string(w.text), fitColumns(d, 1)) {
		if y+gh > dh {
			break
		}
		d.Text(Gutter, y, line, 1)
		y += step
	}
}

// OnPress opens the note fullscreen.
func (w *NoteWidget) OnPress() PressAction {
	return Fullscreen
}

// ellipsize shortens s to cols characters, marking cut or continued text
// with a trailing "...".
func ellipsize(s string, cols int, more bool) string {
	if len(s) <= cols && !more {
		return s
	}
	if cols < 3 {
		return s[:min(len(s), cols)]
	}
	if len(s)+3 > cols {
		s = s[:cols-3]
	}
	return s + "..."
}
