package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

func New() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Mock is a Clock fixed at a settable instant, for tests.
type Mock struct {
	CurrentTime time.Time
}

var _ Clock = (*Mock)(nil)

func NewMock(t time.Time) *Mock {
	return &Mock{CurrentTime: t}
}

func (c *Mock) Now() time.Time {
	return c.CurrentTime
}

// Advance moves the clock forward by the given duration
func (c *Mock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}
