package xpress

import (
	"math/rand"
	"testing"
)

// checkCanonicalCodes verifies the length limit, the canonical code
// recurrence in (length, symbol) order, and, when complete is set, Kraft
// equality.
func checkCanonicalCodes(t *testing.T, e *huffmanEncoder, complete bool) {
	t.Helper()

	kraft := 0
	code := uint16(0)
	prevLen := uint8(0)
	for l := uint8(1); l <= huffBitsMax; l++ {
		for s := range e.lens {
			if e.lens[s] != l {
				continue
			}
			kraft += 1 << (huffBitsMax - l)
			if prevLen != 0 {
				code = (code + 1) << (l - prevLen)
			}
			prevLen = l
			if e.codes[s] != code {
				t.Fatalf("symbol %d len %d: code %#x, want canonical %#x", s, l, e.codes[s], code)
			}
			if int(code) >= 1<<l {
				t.Fatalf("symbol %d: code %#x does not fit in %d bits", s, code, l)
			}
		}
	}
	for s, l := range e.lens {
		if l > huffBitsMax {
			t.Fatalf("symbol %d: length %d exceeds limit", s, l)
		}
		if l == 0 && e.codes[s] != 0 {
			t.Fatalf("symbol %d: zero length but code %#x", s, e.codes[s])
		}
	}
	if complete && kraft != 1<<huffBitsMax {
		t.Fatalf("code set not complete: kraft=%d want=%d", kraft, 1<<huffBitsMax)
	}
}

func codeCost(lens []uint8, counts *[symbols]uint32) int {
	cost := 0
	for i, c := range counts {
		cost += int(lens[i]) * int(c)
	}
	return cost
}

func TestCreateCodes_UniformCounts(t *testing.T) {
	var counts [symbols]uint32
	var e huffmanEncoder
	lens := e.createCodes(&counts)

	// 512 equal weights build a perfectly balanced tree.
	for s, l := range lens {
		if l != 9 {
			t.Fatalf("symbol %d: length %d, want 9", s, l)
		}
	}
	checkCanonicalCodes(t, &e, true)
}

func TestCreateCodes_LengthLimitEnforced(t *testing.T) {
	// Fibonacci counts produce maximally skewed trees; without the rescale
	// loop the deepest code would be far past 15 bits.
	var counts [symbols]uint32
	a, b := uint32(1), uint32(1)
	for i := 0; i < 32; i++ {
		counts[i] = a
		a, b = b, a+b
	}

	var e huffmanEncoder
	lens := e.createCodes(&counts)
	for s, l := range lens {
		if l == 0 || l > huffBitsMax {
			t.Fatalf("symbol %d: length %d out of range", s, l)
		}
	}
	checkCanonicalCodes(t, &e, true)
}

func TestCreateCodesSlow_ZeroCountsGetNoCode(t *testing.T) {
	var counts [symbols]uint32
	counts['a'] = 10
	counts['b'] = 20
	counts[streamEnd] = 1

	var e huffmanEncoder
	lens := e.createCodesSlow(&counts)
	for s, l := range lens {
		if counts[s] == 0 && l != 0 {
			t.Fatalf("symbol %d: absent but length %d", s, l)
		}
		if counts[s] != 0 && l == 0 {
			t.Fatalf("symbol %d: present but no code", s)
		}
	}
	checkCanonicalCodes(t, &e, true)
}

func TestCreateCodesSlow_SingleSymbol(t *testing.T) {
	var counts [symbols]uint32
	counts[streamEnd] = 1

	var e huffmanEncoder
	lens := e.createCodesSlow(&counts)
	if lens[streamEnd] != 1 {
		t.Fatalf("lone symbol length: got=%d want=1", lens[streamEnd])
	}
	for s, l := range lens {
		if s != streamEnd && l != 0 {
			t.Fatalf("symbol %d: unexpected length %d", s, l)
		}
	}
}

func TestCreateCodesSlow_TwoSymbols(t *testing.T) {
	var counts [symbols]uint32
	counts[0] = 1
	counts[511] = 1000

	var e huffmanEncoder
	lens := e.createCodesSlow(&counts)
	if lens[0] != 1 || lens[511] != 1 {
		t.Fatalf("two-symbol lengths: got=%d,%d want=1,1", lens[0], lens[511])
	}
	if e.codes[0] != 0 || e.codes[511] != 1 {
		t.Fatalf("two-symbol codes: got=%d,%d want=0,1", e.codes[0], e.codes[511])
	}
}

func TestCreateCodesSlow_NotWorseThanFast(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	distributions := map[string]func(counts *[symbols]uint32){
		"uniform-bytes": func(counts *[symbols]uint32) {
			for i := 0; i < halfSymbols; i++ {
				counts[i] = 256
			}
			counts[streamEnd] = 1
		},
		"geometric": func(counts *[symbols]uint32) {
			c := uint32(1)
			for i := 0; i < 24; i++ {
				counts[i] = c
				if c < 1<<14 {
					c *= 2
				}
			}
		},
		"random": func(counts *[symbols]uint32) {
			for i := range counts {
				if rng.Intn(3) == 0 {
					counts[i] = uint32(rng.Intn(5000) + 1)
				}
			}
		},
	}

	for name, fill := range distributions {
		t.Run(name, func(t *testing.T) {
			var counts [symbols]uint32
			fill(&counts)

			var fast, slow huffmanEncoder
			fastLens := fast.createCodes(&counts)
			slowLens := slow.createCodesSlow(&counts)

			checkCanonicalCodes(t, &slow, true)
			if sc, fc := codeCost(slowLens, &counts), codeCost(fastLens, &counts); sc > fc {
				t.Fatalf("package-merge cost %d worse than heuristic cost %d", sc, fc)
			}
		})
	}
}

func TestCreateCodesSlow_LengthLimitEnforced(t *testing.T) {
	var counts [symbols]uint32
	a, b := uint32(1), uint32(1)
	for i := 0; i < 32; i++ {
		counts[i] = a
		a, b = b, a+b
	}

	var e huffmanEncoder
	lens := e.createCodesSlow(&counts)
	for s := 0; s < 32; s++ {
		if lens[s] == 0 || lens[s] > huffBitsMax {
			t.Fatalf("symbol %d: length %d out of range", s, lens[s])
		}
	}
	checkCanonicalCodes(t, &e, true)
}
