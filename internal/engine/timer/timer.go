// Package timer provides the millisecond clock used for countdowns.
package timer

// Clock is a monotonic millisecond counter.
type Clock interface {
	NowMillis() int64
}

// ManualClock is a Clock advanced explicitly, for tests and fixed-step replay.
type ManualClock struct {
	Now int64
}

// NowMillis implements Clock.
func (c *ManualClock) NowMillis() int64 {
	return c.Now
}

// Advance moves the clock forward by ms.
func (c *ManualClock) Advance(ms int64) {
	c.Now += ms
}

// Stopwatch measures elapsed milliseconds from its last Start.
type Stopwatch struct {
	clock Clock
	start int64
}

// NewStopwatch returns a stopwatch reading from clock. It starts at the
// current time.
func NewStopwatch(clock Clock) *Stopwatch {
	return &Stopwatch{clock: clock, start: clock.NowMillis()}
}

// Start restarts the measurement.
func (s *Stopwatch) Start() {
	s.start = s.clock.NowMillis()
}

// Elapsed returns milliseconds since the last Start.
func (s *Stopwatch) Elapsed() int64 {
	return s.clock.NowMillis() - s.start
}
