package decode

import (
	"image"

	"github.com/svanichkin/flick/internal/bitstream"
)

// Quadtree decodes self-contained frames encoded as a quadtree over the
// canvas. Each node starts with a split bit. A set bit splits the node into
// four quadrants, visited top-left, top-right, bottom-left, bottom-right. A
// clear bit makes the node a leaf and is followed by its colour bit: 1 fills
// it with the foreground, 0 leaves the background.
type Quadtree struct {
	w, h  int
	stack []image.Rectangle
}

// NewQuadtree returns a decoder for a w×h canvas. Its work stack is sized
// once for the deepest possible tree.
func NewQuadtree(w, h int) *Quadtree {
	return &Quadtree{
		w:     w,
		h:     h,
		stack: make([]image.Rectangle, 0, 3*Depth(w, h)+1),
	}
}

func (d *Quadtree) Unit() bitstream.Unit { return bitstream.UnitBit }

// Reset is a no-op; quadtree frames carry no state.
func (d *Quadtree) Reset() {}

// Depth returns ceil(log2(max(w, h))), the deepest split a w×h canvas allows.
func Depth(w, h int) int {
	n := max(w, h)
	d := 0
	for s := 1; s < n; s <<= 1 {
		d++
	}
	return d
}

// Quadrants splits r into top-left, top-right, bottom-left and bottom-right.
// The left column and top row take the odd pixel, so the quadrants tile r
// exactly. Some quadrants are empty when r is one pixel wide or tall.
func Quadrants(r image.Rectangle) [4]image.Rectangle {
	mx := r.Min.X + (r.Dx()+1)/2
	my := r.Min.Y + (r.Dy()+1)/2
	return [4]image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, mx, my),
		image.Rect(mx, r.Min.Y, r.Max.X, my),
		image.Rect(r.Min.X, my, mx, r.Max.Y),
		image.Rect(mx, my, r.Max.X, r.Max.Y),
	}
}

// Decode reads one frame and fills its foreground leaves.
func (d *Quadtree) Decode(c *bitstream.Cursor, dst Plotter) Frame {
	var f Frame

	stack := append(d.stack[:0], image.Rect(0, 0, d.w, d.h))
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f.Tokens++

		// A single pixel cannot split further; its split bit is ignored.
		if c.Bit() == 1 && (r.Dx() > 1 || r.Dy() > 1) {
			q := Quadrants(r)
			for i := len(q) - 1; i >= 0; i-- {
				if !q[i].Empty() {
					stack = append(stack, q[i])
				}
			}
			continue
		}
		if c.Bit() == 1 {
			dst.Fill(r)
		}
		f.Pixels += r.Dx() * r.Dy()
	}
	d.stack = stack

	f.Truncated = c.Overrun()
	return f
}
