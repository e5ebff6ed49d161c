// Package decode turns flick stream chunks into pixel decisions.
//
// Two frame schemes exist: RunLength, a delta scheme that toggles persistent
// per-pixel state, and Quadtree, which encodes every frame on its own as a
// recursive partition of the canvas.
package decode

import (
	"image"

	"github.com/svanichkin/flick/internal/bitstream"
)

// Plotter receives foreground decisions in canvas coordinates.
// *sink.Sink implements it.
type Plotter interface {
	SetForeground(x, y int)
	Fill(r image.Rectangle)
}

// Frame summarises one decode pass.
type Frame struct {
	Pixels    int  // canvas pixels covered
	Tokens    int  // run tokens or quadtree nodes read
	RunTotal  int  // sum of run lengths read
	Truncated bool // the chunk ended before the frame did
}

// Decoder decodes one frame per call, reading from a cursor positioned at
// the start of the frame.
type Decoder interface {
	Decode(c *bitstream.Cursor, dst Plotter) Frame
	// Unit is the addressing unit of the stream positions the decoder consumes.
	Unit() bitstream.Unit
	// Reset drops any state carried between frames.
	Reset()
}
