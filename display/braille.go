package display

import (
	"image"
	"strings"
)

// Dot bits of a braille cell, indexed by [y][x] within the 2x4 block.
var brailleBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Braille renders img as lines of braille characters, each covering a 2x4
// block of pixels. Pixels at half intensity or brighter are set.
func Braille(img *image.Gray) string {
	b := img.Bounds()
	var sb strings.Builder

	for y := b.Min.Y; y < b.Max.Y; y += 4 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x += 2 {
			var bits rune
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					p := image.Pt(x+dx, y+dy)
					if p.In(b) && img.GrayAt(p.X, p.Y).Y >= 0x80 {
						bits |= brailleBits[dy][dx]
					}
				}
			}
			sb.WriteRune(0x2800 + bits)
		}
	}
	return sb.String()
}
