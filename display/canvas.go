// Package display provides drawing surfaces for widgets: an in-memory
// monochrome framebuffer used by the simulator and a recording surface used
// by tests.
package display

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/drake/wristwatch/widget"
)

// Glyph metrics of the built-in font at scale 1.
const (
	GlyphWidth  = 7
	GlyphHeight = 13
)

// Compile-time check that Canvas implements widget.Display
var _ widget.Display = (*Canvas)(nil)

// Canvas is a monochrome framebuffer.
type Canvas struct {
	img  *image.Gray
	clip image.Rectangle
	face *basicfont.Face
}

// NewCanvas creates a blank canvas of the given size in pixels.
func NewCanvas(width, height int) *Canvas {
	img := image.NewGray(image.Rect(0, 0, width, height))
	return &Canvas{
		img:  img,
		clip: img.Bounds(),
		face: basicfont.Face7x13,
	}
}

// Image returns the backing framebuffer.
func (c *Canvas) Image() *image.Gray {
	return c.img
}

// Size implements widget.Display.
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// SetClip restricts all drawing to r. Pixels outside are left untouched.
// The screen uses it to hold each widget to its own rows.
func (c *Canvas) SetClip(r image.Rectangle) {
	c.clip = r.Intersect(c.img.Bounds())
}

// ResetClip allows drawing on the whole canvas again.
func (c *Canvas) ResetClip() {
	c.clip = c.img.Bounds()
}

// At reports the color of a single pixel.
func (c *Canvas) At(x, y int) widget.Color {
	if c.img.GrayAt(x, y).Y >= 0x80 {
		return widget.White
	}
	return widget.Black
}

// Text implements widget.Display. (x, y) is the top left corner of the
// first glyph cell.
func (c *Canvas) Text(x, y int, s string, scale int) {
	if s == "" {
		return
	}
	if scale < 1 {
		scale = 1
	}

	w, h := c.TextBounds(s, 1)
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: c.face,
		Dot:  fixed.P(0, c.face.Ascent),
	}
	d.DrawString(s)

	dst := image.Rect(x, y, x+w*scale, y+h*scale)
	if scale > 1 {
		scaled := image.NewAlpha(image.Rect(0, 0, w*scale, h*scale))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), mask, mask.Bounds(), xdraw.Src, nil)
		mask = scaled
	}

	c.drawMask(dst, mask)
}

func (c *Canvas) drawMask(dst image.Rectangle, mask *image.Alpha) {
	r := dst.Intersect(c.clip)
	if r.Empty() {
		return
	}
	mp := mask.Bounds().Min.Add(r.Min.Sub(dst.Min))
	draw.DrawMask(c.img, r, image.White, image.Point{}, mask, mp, draw.Over)
}

// TextBounds implements widget.Display. The font is monospaced.
func (c *Canvas) TextBounds(s string, scale int) (int, int) {
	return textBounds(s, scale)
}

// FillRect implements widget.Display.
func (c *Canvas) FillRect(x, y, w, h int, col widget.Color) {
	r := image.Rect(x, y, x+w, y+h).Intersect(c.clip)
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(gray(col)), image.Point{}, draw.Src)
}

// HLine implements widget.Display.
func (c *Canvas) HLine(x, y, w int, col widget.Color) {
	c.FillRect(x, y, w, 1, col)
}

func gray(col widget.Color) color.Gray {
	if col == widget.White {
		return color.Gray{Y: 0xff}
	}
	return color.Gray{Y: 0}
}

func textBounds(s string, scale int) (int, int) {
	if scale < 1 {
		scale = 1
	}
	return len(s) * GlyphWidth * scale, GlyphHeight * scale
}
