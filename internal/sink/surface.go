// Package sink commits decoded pixel decisions into a row-addressable
// display surface.
package sink

import (
	"fmt"
	"image"
	"image/color"
)

// Format is the native pixel layout of a surface row.
type Format uint8

const (
	// FormatPacked1 stores 8 pixels per byte, leftmost pixel in the high bit.
	FormatPacked1 Format = iota
	// FormatIndexed8 stores one palette index per pixel.
	FormatIndexed8
)

func (f Format) String() string {
	switch f {
	case FormatPacked1:
		return "packed-1bit"
	case FormatIndexed8:
		return "indexed-8bit"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Palette indices written by the indexed backend, in Pebble 2-bit ARGB.
const (
	ForegroundIndex = 0xff // opaque white
	BackgroundIndex = 0xc0 // opaque black
)

// Surface is a row-addressable pixel buffer. Bounds must start at (0,0);
// Row returns the mutable bytes of row y.
type Surface interface {
	Bounds() image.Rectangle
	Format() Format
	Row(y int) []byte
}

// Bitmap is an in-memory packed 1-bit surface. It is also an image.Image so
// frames can be handed to image encoders.
type Bitmap struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

// NewBitmap allocates a cleared w×h bitmap.
func NewBitmap(w, h int) *Bitmap {
	stride := (w + 7) / 8
	return &Bitmap{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   image.Rect(0, 0, w, h),
	}
}

func (b *Bitmap) Bounds() image.Rectangle { return b.Rect }
func (b *Bitmap) Format() Format          { return FormatPacked1 }
func (b *Bitmap) ColorModel() color.Model { return color.GrayModel }

func (b *Bitmap) Row(y int) []byte {
	return b.Pix[y*b.Stride : (y+1)*b.Stride]
}

// Lit reports whether pixel (x, y) holds the foreground colour.
func (b *Bitmap) Lit(x, y int) bool {
	return IsForeground(b, x, y)
}

func (b *Bitmap) At(x, y int) color.Color {
	if b.Lit(x, y) {
		return color.Gray{Y: 0xff}
	}
	return color.Gray{}
}

// Indexed is an in-memory 8-bit surface over the Pebble palette.
type Indexed struct {
	*image.Paletted
}

// NewIndexed allocates a w×h indexed surface filled with the background index.
func NewIndexed(w, h int) *Indexed {
	p := image.NewPaletted(image.Rect(0, 0, w, h), PebblePalette())
	for i := range p.Pix {
		p.Pix[i] = BackgroundIndex
	}
	return &Indexed{Paletted: p}
}

func (p *Indexed) Format() Format { return FormatIndexed8 }

func (p *Indexed) Row(y int) []byte {
	off := y * p.Stride
	return p.Pix[off : off+p.Rect.Dx()]
}

// PebblePalette returns the 256-entry palette of 8-bit ARGB colours with two
// bits per channel. Alpha is ignored; every entry is opaque.
func PebblePalette() color.Palette {
	pal := make(color.Palette, 256)
	for i := range pal {
		pal[i] = color.RGBA{
			R: uint8(i>>4&3) * 0x55,
			G: uint8(i>>2&3) * 0x55,
			B: uint8(i&3) * 0x55,
			A: 0xff,
		}
	}
	return pal
}

// IsForeground reports whether pixel (x, y) of s holds the foreground colour.
func IsForeground(s Surface, x, y int) bool {
	if !(image.Point{x, y}.In(s.Bounds())) {
		return false
	}
	row := s.Row(y)
	if s.Format() == FormatPacked1 {
		return row[x/8]&(1<<(7-uint(x)%8)) != 0
	}
	return row[x] == ForegroundIndex
}
