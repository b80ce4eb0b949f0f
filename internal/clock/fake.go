package clock

import "time"

// FakeClock serves a fixed instant so tests can pin receipt years and posting
// dates. Not safe for concurrent Advance; tests drive it from one goroutine.
type FakeClock struct {
	now time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward, e.g. across a year boundary to exercise
// receipt sequence rollover.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
