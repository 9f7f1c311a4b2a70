package screen

import (
	"image"

	"github.com/drake/wristwatch/widget"
)

// markerWidth is the width of the selection bar drawn in the gutter.
const markerWidth = 2

// clipper is implemented by displays that can restrict drawing to a band.
type clipper interface {
	SetClip(r image.Rectangle)
	ResetClip()
}

// Render redraws the whole display: the fullscreen widget if one is open,
// otherwise the list stacked top to bottom.
func (s *Screen) Render(d widget.Display) {
	dw, dh := d.Size()
	clip, _ := d.(clipper)
	if clip != nil {
		clip.ResetClip()
	}
	d.FillRect(0, 0, dw, dh, widget.Black)

	s.renders++
	s.dirty = false

	if s.fullscreen != "" {
		if i := s.index(s.fullscreen); i >= 0 {
			s.entries[i].w.RenderFullscreen(d, 0)
			return
		}
		s.fullscreen = ""
	}

	s.scrollToSelected(dh)

	y := -s.scroll
	for i, e := range s.entries {
		if y >= dh {
			break
		}
		h := int(e.w.Height())
		if y+h > 0 {
			// A widget only ever draws inside [y, y+h)
			if clip != nil {
				clip.SetClip(image.Rect(0, y, dw, y+h))
			}
			e.w.Render(d, y)
			if clip != nil {
				clip.ResetClip()
			}
			if i == s.selected && h > 2 {
				d.FillRect(0, y+1, markerWidth, h-2, widget.White)
			}
		}
		y += h
	}
}

// scrollToSelected adjusts the list offset so the selected widget is in
// view, preferring its top edge when it is taller than the display.
func (s *Screen) scrollToSelected(dh int) {
	if s.selected < 0 {
		s.scroll = 0
		return
	}

	top := 0
	for _, e := range s.entries[:s.selected] {
		top += int(e.w.Height())
	}
	bottom := top + int(s.entries[s.selected].w.Height())

	if bottom > s.scroll+dh {
		s.scroll = bottom - dh
	}
	if top < s.scroll {
		s.scroll = top
	}

	if maxScroll := s.Height() - dh; s.scroll > maxScroll {
		s.scroll = max(maxScroll, 0)
	}
}
