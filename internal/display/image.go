// Package display presents playback surfaces on hosts: ANSI terminals, BMP
// frame dumps, and (in package window) a desktop window.
package display

import (
	"image"
	"image/color"

	"github.com/svanichkin/flick/internal/sink"
)

// ToImage returns s as an image an encoder can consume. Indexed surfaces are
// returned as-is; packed bitmaps are expanded to 8-bit grey.
func ToImage(s sink.Surface) image.Image {
	if p, ok := s.(*sink.Indexed); ok {
		return p.Paletted
	}
	b := s.Bounds()
	g := image.NewGray(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if sink.IsForeground(s, x, y) {
				g.Pix[y*g.Stride+x] = 0xff
			}
		}
	}
	return g
}

// ExpandRGBA writes s into dst as RGBA, 4 bytes per pixel, rows packed. dst
// must hold at least 4*width*height bytes.
func ExpandRGBA(s sink.Surface, dst []byte) {
	b := s.Bounds()
	pal := sink.PebblePalette()
	i := 0
	for y := 0; y < b.Dy(); y++ {
		row := s.Row(y)
		for x := 0; x < b.Dx(); x++ {
			var c color.RGBA
			switch s.Format() {
			case sink.FormatPacked1:
				if row[x/8]&(1<<(7-uint(x)%8)) != 0 {
					c = color.RGBA{0xff, 0xff, 0xff, 0xff}
				} else {
					c = color.RGBA{A: 0xff}
				}
			case sink.FormatIndexed8:
				c = pal[row[x]].(color.RGBA)
			}
			dst[i], dst[i+1], dst[i+2], dst[i+3] = c.R, c.G, c.B, c.A
			i += 4
		}
	}
}
