// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/xpress

package xpress

import "encoding/binary"

// outputBitstream packs variable-width codes into 16-bit little-endian words
// while raw bytes are emitted directly at the cursor. Two 16-bit slots are
// always reserved ahead of the cursor; a completed word lands in the older
// slot and a fresh slot is reserved at the cursor. Raw bytes therefore sit
// between the pending bit words and the words that follow them, which is the
// exact interleaving the decoder expects.
type outputBitstream struct {
	out    []byte
	cursor int    // next raw write position, past both reserved slots
	pntr   [2]int // pending and next-pending 16-bit slot positions
	mask   uint32 // accumulated bits, left-aligned
	bits   uint   // number of valid bits in mask
}

// newOutputBitstream reserves the first two 16-bit slots at the start of out.
func newOutputBitstream(out []byte) *outputBitstream {
	return &outputBitstream{out: out, cursor: 4, pntr: [2]int{0, 2}}
}

// writeBits appends v as an n-bit value (n <= 16); v is not masked, so it has
// no bits set at or above bit n. Once more than 16 bits are
// accumulated the top 16 are flushed to the pending slot and a new slot is
// reserved at the cursor.
func (b *outputBitstream) writeBits(v uint32, n uint) {
	b.bits += n
	b.mask |= v << (32 - b.bits)
	if b.bits > 16 {
		binary.LittleEndian.PutUint16(b.out[b.pntr[0]:], uint16(b.mask>>16))
		b.mask <<= 16
		b.bits -= 16
		b.pntr[0] = b.pntr[1]
		b.pntr[1] = b.cursor
		b.cursor += 2
	}
}

// writeRawByte emits one byte at the cursor, bypassing the bit accumulator.
func (b *outputBitstream) writeRawByte(x byte) {
	b.out[b.cursor] = x
	b.cursor++
}

// writeRawUint16 emits a little-endian uint16 at the cursor.
func (b *outputBitstream) writeRawUint16(x uint16) {
	binary.LittleEndian.PutUint16(b.out[b.cursor:], x)
	b.cursor += 2
}

// writeRawUint32 emits a little-endian uint32 at the cursor.
func (b *outputBitstream) writeRawUint32(x uint32) {
	binary.LittleEndian.PutUint32(b.out[b.cursor:], x)
	b.cursor += 4
}

// finish flushes the remaining accumulated bits into the pending slot and
// writes a zero word into the next-pending slot, the end-of-chunk marker.
func (b *outputBitstream) finish() {
	binary.LittleEndian.PutUint16(b.out[b.pntr[0]:], uint16(b.mask>>16))
	binary.LittleEndian.PutUint16(b.out[b.pntr[1]:], 0)
}
