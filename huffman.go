// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/xpress

package xpress

// huffmanEncoder holds the canonical code table for one chunk. Lengths are
// limited to huffBitsMax bits; within one length, codes ascend with the
// symbol index, and each code is the previous one plus one, left-shifted by
// the length difference.
type huffmanEncoder struct {
	codes [symbols]uint16
	lens  [symbols]uint8
}

// symbolHeap is a min-heap of node ids ordered by an external weight array.
// Slot 0 holds a zero-weight sentinel so sift-up terminates at the root.
type symbolHeap struct {
	weights []uint32
	nodes   [symbols + 2]uint16
	len     int
}

func (h *symbolHeap) push(x uint16) {
	h.len++
	j := h.len
	for h.weights[x] < h.weights[h.nodes[j>>1]] {
		h.nodes[j] = h.nodes[j>>1]
		j >>= 1
	}
	h.nodes[j] = x
}

func (h *symbolHeap) pop() uint16 {
	top := h.nodes[1]
	t := h.nodes[h.len]
	h.len--
	i := 1
	for {
		j := i << 1
		if j > h.len {
			break
		}
		if j < h.len && h.weights[h.nodes[j+1]] < h.weights[h.nodes[j]] {
			j++
		}
		if h.weights[t] < h.weights[h.nodes[j]] {
			break
		}
		h.nodes[i] = h.nodes[j]
		i = j
	}
	h.nodes[i] = t
	return top
}

// createCodes builds length-limited canonical codes with the heap form of the
// Huffman algorithm, after "In-Place Calculation of Minimum-Redundancy Codes"
// by Moffat and Katajainen (code shape via bzip2). A node weight carries the
// count in the upper 24 bits and the subtree depth in the low byte; whenever
// a code comes out longer than huffBitsMax, all weights are rescaled and the
// build restarts, which bounds the depth at the cost of optimality. Every
// symbol participates: zero counts are raised to one.
func (e *huffmanEncoder) createCodes(counts *[symbols]uint32) []uint8 {
	clear(e.codes[:])

	var weights [symbols * 2]uint32
	for i, c := range counts {
		if c == 0 {
			c = 1
		}
		weights[i+1] = c << 8
	}

	var parents [symbols * 2]uint16
	heap := symbolHeap{weights: weights[:]}
	for {
		heap.len = 0
		for i := uint16(1); i <= symbols; i++ {
			heap.push(i)
		}

		// Bottom-up tree: merge the two lightest nodes until one remains.
		nNodes := uint16(symbols)
		clear(parents[:])
		for heap.len > 1 {
			n1 := heap.pop()
			n2 := heap.pop()
			nNodes++
			parents[n1], parents[n2] = nNodes, nNodes
			weights[nNodes] = (weights[n1]&0xffffff00 + weights[n2]&0xffffff00) |
				(1 + max(weights[n1]&0xff, weights[n2]&0xff))
			heap.push(nNodes)
		}

		tooLong := false
		for i := uint16(1); i <= symbols; i++ {
			n := uint8(0)
			for k := i; parents[k] > 0; k = parents[k] {
				n++
			}
			e.lens[i-1] = n
			if n > huffBitsMax {
				tooLong = true
			}
		}
		if !tooLong {
			break
		}
		for i := 1; i <= symbols; i++ {
			weights[i] = (1 + weights[i]>>9) << 8
		}
	}

	// Canonical code values. Every length is non-zero here, so min is exact.
	minLen, maxLen := e.lens[0], e.lens[0]
	for _, l := range e.lens[1:] {
		if l > maxLen {
			maxLen = l
		} else if l < minLen {
			minLen = l
		}
	}
	code := uint16(0)
	for n := minLen; n <= maxLen; n++ {
		for i := range e.lens {
			if e.lens[i] == n {
				e.codes[i] = code
				code++
			}
		}
		code <<= 1
	}

	return e.lens[:]
}

// createCodesSlow builds optimal length-limited canonical codes with the
// package-merge algorithm. Slower than createCodes but minimum-redundancy
// even for pathological distributions; only symbols that occur participate,
// the rest keep length zero.
func (e *huffmanEncoder) createCodesSlow(counts *[symbols]uint32) []uint8 {
	clear(e.codes[:])
	clear(e.lens[:])

	var symsByCount, symsByLen, temp [symbols]uint16
	n := 0
	for i := range counts {
		if counts[i] != 0 {
			symsByCount[n] = uint16(i)
			symsByLen[n] = uint16(i)
			n++
			e.lens[i] = huffBitsMax
		}
	}
	if n == 0 {
		return e.lens[:]
	}

	mergeSortByKey(symsByCount[:n], temp[:n], counts[:])
	if n == 1 {
		// A lone symbol still needs one bit; a zero-length code cannot be
		// decoded.
		e.lens[symsByCount[0]] = 1
		return e.lens[:]
	}

	e.packageMerge(counts, symsByCount[:n])

	// Canonical code values, assigned in (length, symbol) order.
	mergeSortByKey(symsByLen[:n], temp[:n], e.lens[:])
	for i := 1; i < n; i++ {
		prev, cur := symsByLen[i-1], symsByLen[i]
		e.codes[cur] = (e.codes[prev] + 1) << (e.lens[cur] - e.lens[prev])
	}
	return e.lens[:]
}

// collection is one package in the package-merge algorithm: how many times
// each symbol appears in it, plus the summed count.
type collection struct {
	symbols [symbols]uint8
	count   uint32
}

// packageMerge runs one round per bit position. Each round pairs the
// cheapest items (loose symbols merged with last round's packages, cheapest
// first); the unpaired leftover is dropped, decrementing the length of every
// symbol it contains. All participating symbols start at huffBitsMax, set by
// the caller.
func (e *huffmanEncoder) packageMerge(counts *[symbols]uint32, symsByCount []uint16) {
	cols := make([]collection, symbols)
	nextCols := make([]collection, symbols)
	colsLen, nextColsLen := 0, 0

	for i := 0; i < huffBitsMax; i++ {
		colsPos, pos := 0, 0

		for colsLen-colsPos+len(symsByCount)-pos > 1 {
			next := &nextCols[nextColsLen]
			*next = collection{}
			for j := 0; j < 2; j++ {
				if pos >= len(symsByCount) ||
					(colsPos < colsLen && cols[colsPos].count < counts[symsByCount[pos]]) {
					next.count += cols[colsPos].count
					for s, c := range cols[colsPos].symbols[:] {
						next.symbols[s] += c
					}
					colsPos++
				} else {
					next.count += counts[symsByCount[pos]]
					next.symbols[symsByCount[pos]]++
					pos++
				}
			}
			nextColsLen++
		}

		if colsPos < colsLen {
			for s, c := range cols[colsPos].symbols[:] {
				e.lens[s] -= c
			}
		} else if pos < len(symsByCount) {
			e.lens[symsByCount[pos]]--
		}

		cols, nextCols = nextCols, cols
		colsLen, nextColsLen = nextColsLen, 0
	}
}

// encodeSymbol writes the symbol's Huffman code to the bitstream.
func (e *huffmanEncoder) encodeSymbol(sym int, bs *outputBitstream) {
	bs.writeBits(uint32(e.codes[sym]), uint(e.lens[sym]))
}
