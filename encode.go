// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/xpress

package xpress

import "encoding/binary"

// calcCompressedLen returns the byte size of the encoded chunk body: the
// bit-packed symbol and offset stream rounded up to 16-bit words, plus the
// raw length-extension bytes, which pass through the intermediate buffer
// unchanged. bufLen is the intermediate length from compressChunkLZ77.
func calcCompressedLen(lens []uint8, counts *[symbols]uint32, bufLen int) int {
	symBits := 16 // the zero word ending the chunk
	litSyms, matchSyms := 0, 0
	for i := 0; i < halfSymbols; i++ {
		symBits += int(lens[i]) * int(counts[i])
		litSyms += int(counts[i])
	}
	for i := halfSymbols; i < symbols; i++ {
		symBits += (int(lens[i]) + (i>>4)&0xF) * int(counts[i])
		matchSyms += int(counts[i])
	}
	ext := bufLen - (litSyms + matchSyms*3 + (litSyms+matchSyms+31)/32*4)
	return (symBits+15)/16*2 + ext
}

// calcCompressedLenNoMatching is calcCompressedLen for the literals-only
// path, where no offsets and no extension bytes exist.
func calcCompressedLenNoMatching(lens []uint8, counts *[symbols]uint32) int {
	symBits := 16
	for i := 0; i <= streamEnd; i++ {
		symBits += int(lens[i]) * int(counts[i])
	}
	return (symBits + 15) / 16 * 2
}

// encodeChunk walks the intermediate buffer and emits the final bitstream:
// the Huffman code for each literal or match symbol, the raw length-extension
// bytes, and the offset's low bits. Once a group's mask runs out of set bits
// the remaining items are all literals and are drained directly.
func encodeChunk(buf []byte, out []byte, e *huffmanEncoder) {
	bs := newOutputBitstream(out)
	i := 0
	for i < len(buf) {
		mask := binary.LittleEndian.Uint32(buf[i:])
		i += 4
		n := 32
		for mask != 0 && i < len(buf) {
			if mask&1 != 0 {
				sym := buf[i]
				off := binary.LittleEndian.Uint16(buf[i+1:])
				i += 3

				e.encodeSymbol(streamEnd|int(sym), bs)
				if sym&0xF == 0xF {
					len8 := buf[i]
					i++
					bs.writeRawByte(len8)
					if len8 == 0xFF {
						len16 := binary.LittleEndian.Uint16(buf[i:])
						i += 2
						bs.writeRawUint16(len16)
						if len16 == 0 {
							bs.writeRawUint32(binary.LittleEndian.Uint32(buf[i:]))
							i += 4
						}
					}
				}
				// off already has the high bit cleared.
				bs.writeBits(uint32(off), uint(sym>>4))
			} else {
				e.encodeSymbol(int(buf[i]), bs)
				i++
			}
			n--
			mask >>= 1
		}
		for end := min(i+n, len(buf)); i < end; i++ {
			e.encodeSymbol(int(buf[i]), bs)
		}
	}
	bs.finish()
}
