// Package stream pulls frame-sized chunks of an asset and hands them to a
// decoder, carrying the sub-byte read position from one chunk to the next.
package stream

import (
	"fmt"
	"io"
	"sync"

	"github.com/svanichkin/flick/internal/asset"
	"github.com/svanichkin/flick/internal/bitstream"
	"k8s.io/klog/v2"
)

// Chunk describes one pull from the asset.
type Chunk struct {
	Offset  int64 // first asset byte loaded
	Length  int   // bytes loaded
	Start   uint  // units skipped in the first byte
	Advance uint  // units the decoder consumed
}

// Clamped reports whether the chunk was cut short by the end of the asset.
func (c Chunk) Clamped(window int) bool {
	return c.Length < window
}

// Streamer tracks the absolute stream position, in units, of a decoder
// working through an asset one chunk at a time.
type Streamer struct {
	src    asset.Source
	unit   bitstream.Unit
	window int
	cursor uint
	bufs   sync.Pool
}

// New returns a streamer over src that loads window bytes per chunk and
// positions cursors in unit.
func New(src asset.Source, unit bitstream.Unit, window int) *Streamer {
	s := &Streamer{src: src, unit: unit, window: window}
	s.bufs.New = func() any {
		b := make([]byte, window)
		return &b
	}
	return s
}

// Pos returns the absolute stream position in units.
func (s *Streamer) Pos() uint {
	return s.cursor
}

// Unit returns the addressing unit of the stream position.
func (s *Streamer) Unit() bitstream.Unit {
	return s.unit
}

// Window returns the nominal chunk length in bytes.
func (s *Streamer) Window() int {
	return s.window
}

// Reset rewinds to the start of the asset.
func (s *Streamer) Reset() {
	s.cursor = 0
}

// span returns the byte range of the next chunk. A window that would run
// past the asset is clamped to size-offset-1 bytes.
func (s *Streamer) span() (off int64, n int) {
	off = int64(s.cursor / s.unit.PerByte())
	size := s.src.Size()
	length := int64(s.window)
	if off+length > size {
		length = size - off - 1
	}
	return off, int(max(length, 0))
}

// Next loads the next chunk and calls decode with a cursor over it. The
// cursor starts at the fractional unit the previous chunk stopped at; once
// decode returns, the stream position advances by the units it consumed.
// The chunk buffer is only valid during decode.
func (s *Streamer) Next(decode func(c *bitstream.Cursor) error) (Chunk, error) {
	off, n := s.span()
	ch := Chunk{Offset: off, Length: n, Start: s.cursor % s.unit.PerByte()}

	bp := s.bufs.Get().(*[]byte)
	defer s.bufs.Put(bp)
	if cap(*bp) < n {
		*bp = make([]byte, n)
	}
	buf := (*bp)[:n]

	if n > 0 {
		read, err := s.src.ReadAt(buf, off)
		if read < n {
			if err == nil {
				err = io.ErrUnexpectedEOF
			}
			return ch, fmt.Errorf("stream: load %d bytes at %d: %w", n, off, err)
		}
	}
	if n < s.window {
		klog.V(3).Infof("stream: chunk at %d clamped to %d of %d bytes", off, n, s.window)
	}

	c := bitstream.NewCursor(buf, s.unit, ch.Start)
	if err := decode(c); err != nil {
		return ch, err
	}
	ch.Advance = c.Pos(s.unit) - ch.Start
	s.cursor += ch.Advance
	return ch, nil
}
