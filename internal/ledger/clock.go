package ledger

import "time"

// Clock supplies the current time in unix seconds. The host guarantees
// it is monotone non-decreasing across calls.
type Clock interface {
	Now() uint64
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// ManualClock is a clock advanced by hand, for tests and replays.
type ManualClock struct {
	Time uint64
}

func (c *ManualClock) Now() uint64 {
	return c.Time
}

// Advance moves the clock forward by d seconds.
func (c *ManualClock) Advance(d uint64) {
	c.Time += d
}
