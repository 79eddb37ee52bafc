package ecs

// DefaultTPS matches ebiten's default ticks per second.
const DefaultTPS = 60

// Clock is a monotonic frame clock. It counts ticks and reports elapsed game
// time in milliseconds, so fixed-rate steppers can schedule work independent
// of the tick rate.
type Clock struct {
	ticks uint64
	tps   uint64
}

func NewClock(tps int) *Clock {
	if tps <= 0 {
		tps = DefaultTPS
	}
	return &Clock{tps: uint64(tps)}
}

// Advance moves the clock forward by one tick.
func (c *Clock) Advance() {
	c.ticks++
}

func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Now returns the elapsed game time in milliseconds.
func (c *Clock) Now() uint32 {
	return uint32(c.ticks * 1000 / c.tps)
}
