// Package widget defines the display elements that can be stacked on the
// watch screen: a clock, transient notifications and persistent notes.
//
// Widgets never hold a reference to the display they are drawn on. The owning
// screen passes a Display into every Render call and guarantees exclusive
// access to it for the duration of that call.
package widget

// PressAction is what a widget asks its owner to do after a press.
type PressAction int

const (
	// Nothing leaves the screen unchanged.
	Nothing PressAction = iota
	// Destroy asks the owner to remove the widget from its collection.
	Destroy
	// Fullscreen asks the owner to switch to the widget's fullscreen view.
	Fullscreen
)

// String returns the lowercase name of the action.
func (a PressAction) String() string {
	switch a {
	case Nothing:
		return "nothing"
	case Destroy:
		return "destroy"
	case Fullscreen:
		return "fullscreen"
	default:
		return "unknown"
	}
}

// Color is a monochrome pixel value.
type Color uint8

const (
	Black Color = iota
	White
)

// Display is the drawing surface a widget renders onto. Coordinates are in
// pixels with the origin at the top left corner. Text is drawn in White.
type Display interface {
	Size() (width, height int)
	Text(x, y int, s string, scale int)
	TextBounds(s string, scale int) (w, h int)
	FillRect(x, y, w, h int, c Color)
	HLine(x, y, w int, c Color)
}

// Widget is the capability set shared by every display element.
//
// Render draws the compact list row at vertical offset ypos and must stay
// within [ypos, ypos+Height()). RenderFullscreen draws the expanded view;
// variants without one implement it as a no-op.
type Widget interface {
	Height() uint
	Render(d Display, ypos int)
	RenderFullscreen(d Display, ypos int)
	OnPress() PressAction
}

// Animator is implemented by widgets whose content changes without any
// interaction. NeedsRedraw is a hint; it never affects what Render draws.
type Animator interface {
	NeedsRedraw() bool
}

// Gutter is the horizontal space on the left reserved for the owner's
// selection marker.
const Gutter = 4

// Base carries the height shared by all variants. Only the variants in this
// package can change it.
type Base struct {
	height uint
}

// Height returns the current height in pixels.
func (b *Base) Height() uint {
	return b.height
}

func (b *Base) setHeight(h uint) {
	b.height = h
}

// glyphSize returns the size of a single character cell at the given scale.
func glyphSize(d Display, scale int) (int, int) {
	return d.TextBounds("M", scale)
}

// fitColumns returns how many characters of the given scale fit between the
// gutter and the right edge of the display.
func fitColumns(d Display, scale int) int {
	w, _ := d.Size()
	gw, _ := glyphSize(d, scale)
	if gw <= 0 {
		return 0
	}
	cols := (w - Gutter) / gw
	if cols < 0 {
		return 0
	}
	return cols
}
