// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/xpress

package xpress

// MaxCompressedSize returns the worst-case compressed size for n input
// bytes. Destinations of at least this size never fail with
// ErrOutputOverrun.
func MaxCompressedSize(n int) int {
	return n + 34 + (halfSymbols + 2) + (halfSymbols+2)*(n/chunkSize)
}

// Compress compresses src as an Xpress-Huffman stream into a freshly
// allocated buffer.
func Compress(src []byte) ([]byte, error) {
	dst := make([]byte, MaxCompressedSize(len(src)))
	n, err := CompressInto(src, dst)
	if err != nil {
		return nil, err
	}
	return dst[:n:n], nil
}

// CompressInto compresses src into dst and returns the number of bytes
// written. It returns ErrOutputOverrun if dst is too small; sizing dst with
// MaxCompressedSize guarantees success. On error the contents of dst are
// undefined.
func CompressInto(src, dst []byte) (int, error) {
	if len(src) == 0 {
		// Zero-packed code lengths with length 1 for the end-of-stream
		// symbol, then an empty bitstream.
		if len(dst) < minData {
			return 0, ErrOutputOverrun
		}
		clear(dst[:minData])
		dst[streamEnd>>1] = 1
		return minData, nil
	}

	d := acquireDict(src)
	defer releaseDict(d)

	buf := make([]byte, scratchLen(len(src)))
	var (
		counts  [symbols]uint32
		encoder huffmanEncoder
	)

	o := 0
	pos := 0
	for {
		chunkLen := len(src) - pos
		final := chunkLen <= chunkSize
		if !final {
			chunkLen = chunkSize
		}

		bufLen := compressChunkLZ77(d, pos, chunkLen, buf, &counts)
		lens := encoder.createCodes(&counts)
		compLen := calcCompressedLen(lens, &counts, bufLen)

		// Nearly incompressible data can expand past the output bound. Redo
		// the chunk as literals with an optimal code in that case; rare in
		// practice outside medium-to-high entropy input.
		limit := chunkSize + 2
		if final {
			limit = chunkLen + 36
		}
		if compLen > limit {
			bufLen = compressChunkNoMatching(src, pos, chunkLen, final, buf, &counts)
			lens = encoder.createCodesSlow(&counts)
			compLen = calcCompressedLenNoMatching(lens, &counts)
		}

		if len(dst)-o < halfSymbols+compLen {
			return 0, ErrOutputOverrun
		}
		for i := 0; i < symbols; i += 2 {
			dst[o] = lens[i] | lens[i+1]<<4
			o++
		}
		encodeChunk(buf[:bufLen], dst[o:], &encoder)
		o += compLen

		pos += chunkLen
		if final {
			return o, nil
		}
	}
}

// scratchLen sizes the intermediate buffer: every 32 input bytes need at
// most 36 bytes (mask word plus items), plus room for an extra mask word and
// the end-of-stream record.
func scratchLen(n int) int {
	if n >= chunkSize {
		return 0x1200C
	}
	return (n+31)/32*36 + 4 + 8
}
