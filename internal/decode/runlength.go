package decode

import "github.com/svanichkin/flick/internal/bitstream"

// RunLength decodes delta frames made of alternating run-length tokens.
//
// The first token of a frame counts "unchanged" pixels and every following
// token flips the class. Pixels covered by a "changed" run have their state
// inverted; every pixel whose state is set is painted. Runs walk the canvas
// as one row-major sequence and need not end at row boundaries.
type RunLength struct {
	w, h  int
	codec bitstream.IntCodec
	state []bool
}

// NewRunLength returns a w×h delta decoder reading run lengths with codec.
func NewRunLength(w, h int, codec bitstream.IntCodec) *RunLength {
	return &RunLength{
		w:     w,
		h:     h,
		codec: codec,
		state: make([]bool, w*h),
	}
}

func (d *RunLength) Unit() bitstream.Unit { return d.codec.Unit() }

// Reset clears the pixel state back to all background.
func (d *RunLength) Reset() {
	clear(d.state)
}

// State exposes the persistent pixel state, row-major.
func (d *RunLength) State() []bool {
	return d.state
}

// Decode applies one frame of runs to the pixel state and paints the result.
// If the chunk runs out mid-frame the remaining pixels keep their previous
// state.
func (d *RunLength) Decode(c *bitstream.Cursor, dst Plotter) Frame {
	var f Frame

	changed := false
	run := int(d.codec.Next(c))
	live := !c.Overrun()
	if live {
		f.Tokens, f.RunTotal = 1, run
	}
	count := 0

	i := 0
	for y := 0; y < d.h; y++ {
		for x := 0; x < d.w; x++ {
			for live && count >= run {
				count = 0
				changed = !changed
				run = int(d.codec.Next(c))
				if c.Overrun() {
					live = false
					break
				}
				f.Tokens++
				f.RunTotal += run
			}
			if live {
				// Toggle the state array, never the packed surface bytes.
				if changed {
					d.state[i] = !d.state[i]
				}
				count++
			}
			if d.state[i] {
				dst.SetForeground(x, y)
			}
			i++
		}
	}

	f.Pixels = i
	f.Truncated = !live
	return f
}
