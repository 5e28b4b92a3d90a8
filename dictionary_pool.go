package xpress

import "sync"

// dictPool stores reusable match-finder dictionaries; the table and window
// arrays are about 1 MiB together and dominate per-call allocation.
var dictPool = sync.Pool{
	New: func() any {
		return &xpressDict{}
	},
}

// acquireDict acquires a dictionary from the pool and points it at src.
func acquireDict(src []byte) *xpressDict {
	d := dictPool.Get().(*xpressDict)
	d.init(src)
	return d
}

// releaseDict releases a dictionary to the pool.
func releaseDict(d *xpressDict) {
	if d == nil {
		return
	}
	d.src = nil
	dictPool.Put(d)
}
