package display

import (
	"image"

	"github.com/drake/wristwatch/widget"
)

// OpKind identifies a recorded draw call.
type OpKind int

const (
	OpText OpKind = iota
	OpFill
	OpHLine
)

// Op is one recorded draw call and the area it covers.
type Op struct {
	Kind  OpKind
	Rect  image.Rectangle
	Text  string
	Scale int
	Color widget.Color
}

// Compile-time check that Recorder implements widget.Display
var _ widget.Display = (*Recorder)(nil)

// Recorder is a Display that remembers draw calls instead of drawing.
// It uses the same font metrics as Canvas.
type Recorder struct {
	Width  int
	Height int
	Ops    []Op
}

// NewRecorder creates a recorder reporting the given surface size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

// Size implements widget.Display.
func (r *Recorder) Size() (int, int) {
	return r.Width, r.Height
}

// Text implements widget.Display.
func (r *Recorder) Text(x, y int, s string, scale int) {
	w, h := textBounds(s, scale)
	r.Ops = append(r.Ops, Op{
		Kind:  OpText,
		Rect:  image.Rect(x, y, x+w, y+h),
		Text:  s,
		Scale: scale,
		Color: widget.White,
	})
}

// TextBounds implements widget.Display.
func (r *Recorder) TextBounds(s string, scale int) (int, int) {
	return textBounds(s, scale)
}

// FillRect implements widget.Display.
func (r *Recorder) FillRect(x, y, w, h int, c widget.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Rect: image.Rect(x, y, x+w, y+h), Color: c})
}

// HLine implements widget.Display.
func (r *Recorder) HLine(x, y, w int, c widget.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpHLine, Rect: image.Rect(x, y, x+w, y+1), Color: c})
}

// Texts returns the strings drawn, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Bounds returns the union of all recorded areas.
func (r *Recorder) Bounds() image.Rectangle {
	var u image.Rectangle
	for _, op := range r.Ops {
		u = u.Union(op.Rect)
	}
	return u
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
