package service

import (
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// IDGenerator hands out time-based record IDs (Unix milliseconds). IDs are
// strictly increasing within the process, so a burst of creations or a bulk
// import never produces a collision even within the same millisecond.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator creates an IDGenerator on the wall clock.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next returns a fresh ID.
func (g *IDGenerator) Next() int64 {
	return g.NextN(1)[0]
}

// NextN reserves n consecutive IDs.
func (g *IDGenerator) NextN(n int) []int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	start := g.now().UnixMilli()
	if start <= g.last {
		start = g.last + 1
	}

	ids := make([]int64, n)
	for i := range ids {
		ids[i] = start + int64(i)
	}
	if n > 0 {
		g.last = ids[n-1]
	}
	return ids
}

// today returns the current local date in ISO form.
func today(now func() time.Time) string {
	return now().Format(dateLayout)
}
