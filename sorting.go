// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/xpress

package xpress

// Stable sorts of symbol indices ordered by an external key array, used by
// the package-merge code builder: the same symbol set is sorted first by
// count and later by code length. Stability keeps equal-keyed symbols in
// ascending symbol order, which the canonical code assignment relies on.

// sortInsertLimit is the slice length below which merge sort switches to
// insertion sort.
const sortInsertLimit = 90

type sortKey interface {
	~uint8 | ~uint32
}

// insertionSortByKey sorts syms in place by keys[sym].
func insertionSortByKey[K sortKey](syms []uint16, keys []K) {
	for i := 1; i < len(syms); i++ {
		x := syms[i]
		k := keys[x]
		j := i
		for j > 0 && keys[syms[j-1]] > k {
			syms[j] = syms[j-1]
			j--
		}
		syms[j] = x
	}
}

// mergeSortByKey sorts syms in place by keys[sym]; temp must be at least as
// long as syms.
func mergeSortByKey[K sortKey](syms, temp []uint16, keys []K) {
	if len(syms) < sortInsertLimit {
		insertionSortByKey(syms, keys)
		return
	}

	m := len(syms) >> 1
	mergeSortByKey(syms[:m], temp[:m], keys)
	mergeSortByKey(syms[m:], temp[m:], keys)
	copy(temp, syms)

	i, j, k := 0, 0, m
	for j < m && k < len(syms) {
		if keys[temp[k]] < keys[temp[j]] {
			syms[i] = temp[k]
			k++
		} else {
			syms[i] = temp[j]
			j++
		}
		i++
	}
	if j < m {
		copy(syms[i:], temp[j:m])
	} else {
		copy(syms[i:], temp[k:])
	}
}
