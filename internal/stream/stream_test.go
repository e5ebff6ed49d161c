package stream

import (
	"bytes"
	"errors"
	"testing"

	"github.com/svanichkin/flick/internal/bitstream"
)

func TestStreamer_CarriesFractionalPosition(t *testing.T) {
	var w bitstream.Writer
	values := []uint16{3, 9, 200, 1, 4000, 0, 15, 16}
	for _, v := range values {
		bitstream.PutTagged(&w, v)
	}
	data := append(w.Bytes(), 0) // spare byte, the clamp never loads the last one

	s := New(bytes.NewReader(data), bitstream.UnitHalfNybble, 4)
	for i, want := range values {
		var got uint16
		ch, err := s.Next(func(c *bitstream.Cursor) error {
			got = bitstream.Tagged{}.Next(c)
			return nil
		})
		if err != nil {
			t.Fatalf("value %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("value %d: got %d want %d (chunk %+v)", i, got, want, ch)
		}
		if ch.Start >= bitstream.UnitHalfNybble.PerByte() {
			t.Fatalf("start offset %d out of range", ch.Start)
		}
	}
	if got, want := s.Pos(), uint(w.Bits()/2); got != want {
		t.Fatalf("stream position %d, want %d half-nybbles", got, want)
	}

	s.Reset()
	if s.Pos() != 0 {
		t.Fatalf("Reset kept position %d", s.Pos())
	}
}

func TestStreamer_ClampsAtAssetEnd(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	s := New(bytes.NewReader(data), bitstream.UnitByte, 8)

	var seen [][]byte
	consume := func(k int) func(c *bitstream.Cursor) error {
		return func(c *bitstream.Cursor) error {
			var got []byte
			for i := 0; i < k; i++ {
				got = append(got, c.Byte())
			}
			seen = append(seen, got)
			return nil
		}
	}

	ch, err := s.Next(consume(8))
	if err != nil || ch.Length != 8 || ch.Offset != 0 {
		t.Fatalf("first chunk %+v, err %v", ch, err)
	}
	ch, err = s.Next(consume(1))
	if err != nil {
		t.Fatal(err)
	}
	if ch.Offset != 8 || ch.Length != 1 || !ch.Clamped(s.Window()) {
		t.Fatalf("second chunk %+v, want offset 8 length 1", ch)
	}
	if !bytes.Equal(seen[1], []byte{9}) {
		t.Fatalf("second chunk bytes %v", seen[1])
	}

	// Past the clamp: nothing left to load, decoders see an empty cursor.
	ch, err = s.Next(func(c *bitstream.Cursor) error {
		if c.Len() != 0 {
			t.Fatalf("expected empty chunk, got %d bytes", c.Len())
		}
		return nil
	})
	if err != nil || ch.Length != 0 {
		t.Fatalf("third chunk %+v, err %v", ch, err)
	}
}

type failingSource struct{ size int64 }

func (f failingSource) Size() int64 { return f.size }
func (f failingSource) ReadAt(p []byte, off int64) (int, error) {
	return 0, errors.New("device gone")
}

func TestStreamer_Errors(t *testing.T) {
	s := New(failingSource{size: 100}, bitstream.UnitByte, 10)
	if _, err := s.Next(func(*bitstream.Cursor) error { return nil }); err == nil {
		t.Fatalf("expected read error")
	}

	s = New(bytes.NewReader(make([]byte, 100)), bitstream.UnitByte, 10)
	boom := errors.New("boom")
	_, err := s.Next(func(c *bitstream.Cursor) error {
		c.Byte()
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want decode error", err)
	}
	if s.Pos() != 0 {
		t.Fatalf("failed decode advanced position to %d", s.Pos())
	}
}
