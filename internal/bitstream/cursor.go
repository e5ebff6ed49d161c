// Package bitstream implements the msb-first cursor and the variable-width
// integer encodings used by flick animation streams.
package bitstream

import "fmt"

// Unit is the elementary addressing unit of a stream, measured in bits.
// Stream positions persisted between chunk reads are expressed in units.
type Unit uint8

const (
	UnitBit        Unit = 1
	UnitHalfNybble Unit = 2
	UnitByte       Unit = 8
)

// PerByte returns how many units one byte holds.
func (u Unit) PerByte() uint {
	return 8 / uint(u)
}

func (u Unit) String() string {
	switch u {
	case UnitBit:
		return "bit"
	case UnitHalfNybble:
		return "half-nybble"
	case UnitByte:
		return "byte"
	}
	return fmt.Sprintf("Unit(%d)", uint8(u))
}

// Cursor reads bits from a byte slice (msb-first in each byte).
//
// The position is kept in bits. Reads past the end of the data return zero
// bits and mark the cursor as overrun instead of failing, so a decoder fed
// a truncated chunk always terminates.
type Cursor struct {
	data    []byte
	bit     uint
	overrun bool
}

// NewCursor returns a cursor over data positioned start units into it.
func NewCursor(data []byte, unit Unit, start uint) *Cursor {
	return &Cursor{data: data, bit: start * uint(unit)}
}

// Pos returns the read position in units of u, rounded down.
func (c *Cursor) Pos(u Unit) uint {
	return c.bit / uint(u)
}

// Len returns the number of bytes backing the cursor.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Overrun reports whether any read went past the end of the data.
func (c *Cursor) Overrun() bool {
	return c.overrun
}

// Bit reads one bit.
func (c *Cursor) Bit() uint8 {
	idx := c.bit >> 3
	shift := 7 - c.bit&7
	c.bit++
	if idx >= uint(len(c.data)) {
		c.overrun = true
		return 0
	}
	return (c.data[idx] >> shift) & 1
}

// HalfNybble reads two bits, high bit first.
func (c *Cursor) HalfNybble() uint8 {
	hi := c.Bit()
	return hi<<1 | c.Bit()
}

// Nybble reads two half-nybbles, high part first.
func (c *Cursor) Nybble() uint8 {
	hi := c.HalfNybble()
	return hi<<2 | c.HalfNybble()
}

// Byte reads two nybbles, high part first.
func (c *Cursor) Byte() uint8 {
	// Aligned fast path; same result as composing nybbles.
	if c.bit&7 == 0 {
		idx := c.bit >> 3
		if idx < uint(len(c.data)) {
			c.bit += 8
			return c.data[idx]
		}
	}
	hi := c.Nybble()
	return hi<<4 | c.Nybble()
}

// Short reads two bytes, big-endian.
func (c *Cursor) Short() uint16 {
	hi := uint16(c.Byte())
	return hi<<8 | uint16(c.Byte())
}
