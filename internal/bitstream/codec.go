package bitstream

// escapeByte marks a byte-escape value that continues as a 16-bit short.
const escapeByte = 0xff

// IntCodec decodes one variable-width unsigned integer per call.
// Decoders depend on this interface only, so the run-length decoder does not
// care which encoding a stream uses.
type IntCodec interface {
	// Next decodes the next value and advances c past it.
	Next(c *Cursor) uint16
	// Unit is the addressing unit streams of this encoding are positioned in.
	Unit() Unit
}

// ByteEscape is the byte-oriented encoding: values below 255 take one byte,
// anything else is 0xff followed by a big-endian short.
type ByteEscape struct{}

func (ByteEscape) Unit() Unit { return UnitByte }

func (ByteEscape) Next(c *Cursor) uint16 {
	v := c.Byte()
	if v < escapeByte {
		return uint16(v)
	}
	return c.Short()
}

// Tagged is the nybble-oriented encoding: a 2-bit tag selects whether a
// half-nybble, nybble, byte or short follows.
type Tagged struct{}

func (Tagged) Unit() Unit { return UnitHalfNybble }

func (Tagged) Next(c *Cursor) uint16 {
	switch c.HalfNybble() {
	case 0:
		return uint16(c.HalfNybble())
	case 1:
		return uint16(c.Nybble())
	case 2:
		return uint16(c.Byte())
	default:
		return c.Short()
	}
}
