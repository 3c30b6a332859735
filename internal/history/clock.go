package history

import "sync/atomic"

// revisionClock hands out increasing revision numbers for entries.
type revisionClock struct {
	n uint64
}

func (c *revisionClock) next() uint64 {
	return atomic.AddUint64(&c.n, 1)
}
