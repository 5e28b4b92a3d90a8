// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/xpress

package xpress

// xpressDict is the hash-chain match finder over a 64 KiB sliding window.
// table maps a 15-bit rolling hash of a 3-byte prefix to the most recent
// position with that hash; window maps position&windowMask to the previous
// position with the same hash. Entries store pos+1 so that 0 means empty.
type xpressDict struct {
	src    []byte
	end2   int // first position without a full 3-byte prefix
	table  []int
	window []int
}

// init points the dictionary at src and clears the hash table. The window is
// left as is: fill overwrites every slot before find reads it.
func (d *xpressDict) init(src []byte) {
	d.src = src
	d.end2 = len(src) - 2
	if d.table == nil {
		d.table = make([]int, hashSize)
		d.window = make([]int, windowSize)
	} else {
		clear(d.table)
	}
}

// hashUpdate folds one byte into the rolling prefix hash.
func hashUpdate(h uint32, c byte) uint32 {
	return ((h << hashShift) ^ uint32(c)) & hashMask
}

// fill seeds the chains with every 3-byte prefix in [start, start+chunkSize),
// clamped to the last full prefix. Called once per chunk before find, so that
// searches within the chunk reach back into the previous one.
func (d *xpressDict) fill(start int) {
	if start >= d.end2 {
		return
	}
	endx := start + chunkSize
	if endx > d.end2 {
		endx = d.end2
	}
	h := hashUpdate(uint32(d.src[start]), d.src[start+1])
	for pos := start; pos < endx; pos++ {
		h = hashUpdate(h, d.src[pos+2])
		d.window[pos&windowMask] = d.table[h]
		d.table[h] = pos + 1
	}
}

// find walks the chain for the prefix at pos and returns the best match
// length with the offset that achieved it. A returned length below minMatch
// means no usable match. The first strictly longer candidate wins, so on
// equal length the match found earlier in the chain is kept; the walk visits
// at most maxChain nodes, rejects candidates further back than maxOffset, and
// stops as soon as a match of at least niceLength is seen.
func (d *xpressDict) find(pos int) (length, offset int) {
	src := d.src
	end := len(src)
	low := pos - maxOffset
	p0, p1 := src[pos], src[pos+1]

	length = 2
	chain := maxChain
	for cand := d.window[pos&windowMask]; chain > 0 && cand != 0 && cand > low; chain-- {
		c := cand - 1
		if src[c] == p0 && src[c+1] == p1 {
			// The hash pins the third byte, so three bytes match already.
			l := matchLength(src, c, pos, end)
			if l > length {
				offset = pos - c
				length = l
				if length >= niceLength {
					break
				}
			}
		}
		cand = d.window[c&windowMask]
	}
	return length, offset
}

// matchLength counts the bytes matching between src[a:] and src[b:] for
// a < b, stopping at end.
func matchLength(src []byte, a, b, end int) int {
	n := 0
	for b+n < end && src[a+n] == src[b+n] {
		n++
	}
	return n
}
