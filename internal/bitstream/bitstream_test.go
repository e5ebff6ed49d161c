package bitstream

import (
	"testing"
)

func TestCursor_Primitives(t *testing.T) {
	data := []byte{0b1011_0110, 0b0100_1111, 0xAB, 0xCD}

	c := NewCursor(data, UnitBit, 0)
	for i, want := range []uint8{1, 0, 1, 1, 0, 1, 1, 0} {
		if got := c.Bit(); got != want {
			t.Fatalf("bit %d: got %d want %d", i, got, want)
		}
	}

	c = NewCursor(data, UnitBit, 0)
	if got := c.HalfNybble(); got != 0b10 {
		t.Fatalf("HalfNybble: got %b", got)
	}
	if got := c.Nybble(); got != 0b1101 {
		t.Fatalf("Nybble: got %b", got)
	}
	// Unaligned byte straddles bytes 0 and 1.
	if got := c.Byte(); got != 0b1001_0011 {
		t.Fatalf("unaligned Byte: got %08b", got)
	}
	if got := c.Pos(UnitBit); got != 14 {
		t.Fatalf("Pos: got %d want 14", got)
	}

	c = NewCursor(data, UnitByte, 2)
	if got := c.Short(); got != 0xABCD {
		t.Fatalf("Short: got %#x", got)
	}
	if c.Overrun() {
		t.Fatalf("unexpected overrun")
	}
}

func TestCursor_StartOffsetUnits(t *testing.T) {
	data := []byte{0b0001_1011}
	for _, tc := range []struct {
		unit  Unit
		start uint
		want  uint8
	}{
		{UnitHalfNybble, 0, 0b00},
		{UnitHalfNybble, 1, 0b01},
		{UnitHalfNybble, 2, 0b10},
		{UnitHalfNybble, 3, 0b11},
	} {
		c := NewCursor(data, tc.unit, tc.start)
		if got := c.HalfNybble(); got != tc.want {
			t.Fatalf("start %d: got %b want %b", tc.start, got, tc.want)
		}
		if got := c.Pos(tc.unit); got != tc.start+1 {
			t.Fatalf("start %d: pos %d", tc.start, got)
		}
	}
}

func TestCursor_Overrun(t *testing.T) {
	c := NewCursor([]byte{0xff}, UnitByte, 0)
	if got := c.Byte(); got != 0xff {
		t.Fatalf("got %#x", got)
	}
	if c.Overrun() {
		t.Fatalf("overrun after reading exactly the buffer")
	}
	if got := c.Short(); got != 0 {
		t.Fatalf("read past end returned %#x, want 0", got)
	}
	if !c.Overrun() {
		t.Fatalf("expected overrun")
	}

	var empty Cursor
	if empty.Bit() != 0 || !empty.Overrun() {
		t.Fatalf("zero cursor must overrun on first read")
	}
}

func TestByteEscape_ScenarioA(t *testing.T) {
	c := NewCursor([]byte{3, 2, 255, 1, 0}, UnitByte, 0)
	var codec ByteEscape
	for _, want := range []uint16{3, 2, 256} {
		if got := codec.Next(c); got != want {
			t.Fatalf("got %d want %d", got, want)
		}
	}
	if got := c.Pos(UnitByte); got != 5 {
		t.Fatalf("consumed %d bytes, want 5", got)
	}
}

func TestTagged_ScenarioB(t *testing.T) {
	// tag 00, value 11
	c := NewCursor([]byte{0b0011_0000}, UnitHalfNybble, 0)
	if got := (Tagged{}).Next(c); got != 3 {
		t.Fatalf("got %d want 3", got)
	}
	if got := c.Pos(UnitBit); got != 4 {
		t.Fatalf("consumed %d bits, want 4", got)
	}
}

func TestIntCodec_RoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name  string
		codec IntCodec
	}{
		{name: "byte_escape", codec: ByteEscape{}},
		{name: "tagged", codec: Tagged{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var w Writer
			for v := 0; v <= 0xffff; v++ {
				Put(tc.codec, &w, uint16(v))
			}
			c := NewCursor(w.Bytes(), tc.codec.Unit(), 0)
			for v := 0; v <= 0xffff; v++ {
				if got := tc.codec.Next(c); got != uint16(v) {
					t.Fatalf("value %d decoded as %d", v, got)
				}
			}
			if c.Overrun() {
				t.Fatalf("cursor overran a complete stream")
			}
			if got, want := c.Pos(UnitBit), uint(w.Bits()); got != want {
				t.Fatalf("consumed %d bits, wrote %d", got, want)
			}
		})
	}
}

func TestTagged_EncodedWidths(t *testing.T) {
	for _, tc := range []struct {
		v    uint16
		bits int
	}{
		{0, 4}, {3, 4}, {4, 6}, {15, 6}, {16, 10}, {255, 10}, {256, 18}, {65535, 18},
	} {
		var w Writer
		PutTagged(&w, tc.v)
		if w.Bits() != tc.bits {
			t.Fatalf("value %d: %d bits, want %d", tc.v, w.Bits(), tc.bits)
		}
	}
}

func TestWriter_BytesPadsPartial(t *testing.T) {
	var w Writer
	w.WriteBits(0b101, 3)
	got := w.Bytes()
	if len(got) != 1 || got[0] != 0b1010_0000 {
		t.Fatalf("got %08b", got)
	}
	w.WriteBits(0b11111, 5)
	if got := w.Bytes(); len(got) != 1 || got[0] != 0b1011_1111 {
		t.Fatalf("after fill: got %08b", got)
	}
}

func BenchmarkByteEscapeNext(b *testing.B) {
	var w Writer
	for v := 0; v < 4096; v++ {
		PutByteEscape(&w, uint16(v*7))
	}
	data := w.Bytes()
	var codec ByteEscape
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := NewCursor(data, UnitByte, 0)
		for j := 0; j < 4096; j++ {
			codec.Next(c)
		}
	}
}
