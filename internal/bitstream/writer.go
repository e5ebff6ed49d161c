package bitstream

import "fmt"

// Writer writes bits msb-first into a growing byte slice.
// It builds fixture streams for tools and tests; playback never encodes.
type Writer struct {
	buf []byte
	cur byte
	n   uint8 // number of bits pending in cur (0..7)
}

// WriteBit writes a single bit.
func (w *Writer) WriteBit(bit bool) {
	w.cur <<= 1
	if bit {
		w.cur |= 1
	}
	w.n++
	if w.n == 8 {
		w.buf = append(w.buf, w.cur)
		w.cur = 0
		w.n = 0
	}
}

// WriteBits writes the low n bits of v, most significant first.
// For example, n=4 and v=0b1011 writes 1,0,1,1.
func (w *Writer) WriteBits(v uint64, n uint8) {
	for n > 0 {
		n--
		w.WriteBit(v>>n&1 == 1)
	}
}

// Bits returns how many bits have been written.
func (w *Writer) Bits() int {
	return len(w.buf)*8 + int(w.n)
}

// Bytes returns the written stream, with a pending partial byte padded with
// zero bits. The writer stays usable afterwards.
func (w *Writer) Bytes() []byte {
	out := make([]byte, len(w.buf), len(w.buf)+1)
	copy(out, w.buf)
	if w.n > 0 {
		out = append(out, w.cur<<(8-w.n))
	}
	return out
}

// PutByteEscape appends v in the byte-escape encoding.
func PutByteEscape(w *Writer, v uint16) {
	if v < escapeByte {
		w.WriteBits(uint64(v), 8)
		return
	}
	w.WriteBits(escapeByte, 8)
	w.WriteBits(uint64(v), 16)
}

// PutTagged appends v in the tagged encoding using the shortest form.
func PutTagged(w *Writer, v uint16) {
	switch {
	case v <= 0x3:
		w.WriteBits(0, 2)
		w.WriteBits(uint64(v), 2)
	case v <= 0xf:
		w.WriteBits(1, 2)
		w.WriteBits(uint64(v), 4)
	case v <= 0xff:
		w.WriteBits(2, 2)
		w.WriteBits(uint64(v), 8)
	default:
		w.WriteBits(3, 2)
		w.WriteBits(uint64(v), 16)
	}
}

// Put appends v using the encoding of codec. Unknown codecs panic.
func Put(codec IntCodec, w *Writer, v uint16) {
	switch codec.(type) {
	case ByteEscape, *ByteEscape:
		PutByteEscape(w, v)
	case Tagged, *Tagged:
		PutTagged(w, v)
	default:
		panic(fmt.Sprintf("bitstream: no writer for %T", codec))
	}
}
