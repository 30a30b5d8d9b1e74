// Package wire implements the length-prefixed binary request format: a
// stateful byte cursor, the seven typed Operation variants it decodes into,
// and the eager validation spec.md §4.F requires before an Operation is
// ever handed to the dispatcher.
package wire

import (
	"fmt"

	"github.com/HarryR/go-eip1962/bigint"
	"github.com/HarryR/go-eip1962/errs"
)

// Cursor is a stateful reader over a byte buffer, mirroring the single
// "remaining" field the source's StreamParser carries. Every Consume*
// method advances the cursor and returns errs.ParseTruncated, wrapped with
// the offending byte offset, when fewer bytes remain than requested.
type Cursor struct {
	data   []byte
	offset int
}

// NewCursor wraps data for sequential consumption from the front.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns how many bytes have been consumed so far.
func (c *Cursor) Offset() int { return c.offset }

// Remaining reports how many bytes are left unconsumed.
func (c *Cursor) Remaining() int { return len(c.data) }

func (c *Cursor) take(n int) ([]byte, error) {
	if n > len(c.data) {
		return nil, fmt.Errorf("%w: at offset %d, need %d bytes, have %d", errs.ParseTruncated, c.offset, n, len(c.data))
	}
	out := c.data[:n]
	c.data = c.data[n:]
	c.offset += n
	return out, nil
}

// ConsumeByte reads a single byte.
func (c *Cursor) ConsumeByte() (byte, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ConsumeUint reads an n-byte big-endian unsigned integer into a uint64.
// n must be <= 8; the wire format never declares a length field that wide.
func (c *Cursor) ConsumeUint(n int) (uint64, error) {
	if n > 8 {
		return 0, fmt.Errorf("%w: length field %d exceeds 8 bytes", errs.ParseBadEnum, n)
	}
	b, err := c.take(n)
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, x := range b {
		v = (v << 8) | uint64(x)
	}
	return v, nil
}

// ConsumeBigInt reads n bytes as a big-endian bigint.Int of the given limb
// count.
func (c *Cursor) ConsumeBigInt(n, limbs int) (bigint.Int, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	return bigint.FromBytes(b, limbs), nil
}

// ConsumeBytes reads n raw bytes.
func (c *Cursor) ConsumeBytes(n int) ([]byte, error) {
	return c.take(n)
}
