// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/xpress

package xpress

import (
	"encoding/binary"
	"math/bits"
)

// compressChunkLZ77 writes the intermediate form of one chunk into buf and
// fills counts. Groups of up to 32 items are led by a little-endian 32-bit
// mask whose bit k is 0 for a literal (one byte follows) and 1 for a match
// (symbol byte, 16-bit offset with its top set bit cleared, then length
// extension bytes when the symbol's length nibble is 15). Match lengths are
// clamped to the chunk. When the chunk covers the final input byte the
// end-of-stream record is appended after the main loop. Returns the number
// of bytes written to buf.
func compressChunkLZ77(d *xpressDict, start, chunkLen int, buf []byte, counts *[symbols]uint32) int {
	src := d.src
	clear(counts[:])
	d.fill(start)

	pos := start
	rem := chunkLen
	o := 0
	maskOut := 0
	var mask uint32
	var i uint
	for rem > 0 {
		mask = 0
		maskOut = o
		o += 4

		for i = 0; i < 32 && rem > 0; i++ {
			mask >>= 1
			if rem >= minMatch {
				if length, off := d.find(pos); length >= minMatch {
					if length > rem {
						length = rem
					}
					pos += length
					rem -= length

					length -= minMatch
					mask |= 1 << 31
					offBits := uint(bits.Len32(uint32(off|1))) - 1
					sym := byte(offBits<<4) | byte(min(0xF, length))
					counts[streamEnd|int(sym)]++
					off ^= 1 << offBits // cleared bit is restored from the symbol's high nibble

					buf[o] = sym
					binary.LittleEndian.PutUint16(buf[o+1:], uint16(off))
					o += 3
					switch {
					case length > 0xFFFF:
						buf[o] = 0xFF
						binary.LittleEndian.PutUint16(buf[o+1:], 0)
						binary.LittleEndian.PutUint32(buf[o+3:], uint32(length))
						o += 7
					case length >= 0xFF+0xF:
						buf[o] = 0xFF
						binary.LittleEndian.PutUint16(buf[o+1:], uint16(length))
						o += 3
					case length >= 0xF:
						buf[o] = byte(length - 0xF)
						o++
					}
					continue
				}
			}
			b := src[pos]
			buf[o] = b
			o++
			counts[b]++
			pos++
			rem--
		}

		binary.LittleEndian.PutUint32(buf[maskOut:], mask)
	}

	// A partial last group leaves its bits at the top of the accumulator.
	mask >>= 32 - i
	if start+chunkLen == len(src) {
		if i == 32 {
			// The old mask is full; the end-of-stream record opens a new one.
			binary.LittleEndian.PutUint32(buf[o:], 1)
			o += 4
		} else {
			mask |= 1 << i
		}
		buf[o] = 0
		buf[o+1] = 0
		buf[o+2] = 0
		o += 3
		counts[streamEnd]++
	}
	binary.LittleEndian.PutUint32(buf[maskOut:], mask)

	return o
}

// compressChunkNoMatching re-encodes a chunk as literals only: every mask is
// zero and the bytes pass through unchanged. Used when the matched encoding
// of nearly incompressible data would overflow the maximum output bound.
func compressChunkNoMatching(src []byte, start, chunkLen int, isEnd bool, buf []byte, counts *[symbols]uint32) int {
	clear(counts[:])

	pos := start
	end := start + chunkLen
	o := 0
	for pos+32 < end {
		binary.LittleEndian.PutUint32(buf[o:], 0)
		o += 4
		copy(buf[o:], src[pos:pos+32])
		o += 32
		for _, b := range src[pos : pos+32] {
			counts[b]++
		}
		pos += 32
	}

	rem := end - pos // 1 to 32
	binary.LittleEndian.PutUint32(buf[o:], 0)
	o += 4
	copy(buf[o:], src[pos:end])
	o += rem
	for _, b := range src[pos:end] {
		counts[b]++
	}

	if isEnd {
		if rem == 32 {
			binary.LittleEndian.PutUint32(buf[o:], 1)
			o += 4
		} else {
			binary.LittleEndian.PutUint32(buf[o-rem-4:], 1<<uint(rem))
		}
		buf[o] = 0
		buf[o+1] = 0
		buf[o+2] = 0
		o += 3
		counts[streamEnd]++
	}
	return o
}
