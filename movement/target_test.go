package movement

import (
	"testing"

	"github.com/milk9111/roomcam/common"
)

type fakeClock struct {
	now uint32
}

func (c *fakeClock) Now() uint32 { return c.now }

func TestTargetReachesDestinationExactly(t *testing.T) {
	cases := []struct {
		name  string
		start common.Point
		dest  common.Point
		speed int
	}{
		{"horizontal", common.Point{X: 0, Y: 0}, common.Point{X: 100, Y: 0}, 120},
		{"diagonal", common.Point{X: 10, Y: 10}, common.Point{X: -37, Y: 91}, 60},
		{"already_there", common.Point{X: 5, Y: 5}, common.Point{X: 5, Y: 5}, 120},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clock := &fakeClock{}
			m := NewTarget(clock, c.dest.X, c.dest.Y, c.speed)
			m.SetXY(c.start)
			for i := 0; i < 1000 && !m.IsFinished(); i++ {
				clock.now += 16
				m.Update()
			}
			if !m.IsFinished() {
				t.Fatalf("movement never finished, at %v", m.XY())
			}
			if m.XY() != c.dest {
				t.Fatalf("expected %v, got %v", c.dest, m.XY())
			}
		})
	}
}

func TestTargetSpeed(t *testing.T) {
	clock := &fakeClock{}
	m := NewTarget(clock, 1000, 0, 100)
	m.SetXY(common.Point{})

	clock.now = 500
	m.Update()
	if got := m.XY(); got.X != 50 || got.Y != 0 {
		t.Fatalf("expected 50px after 500ms at 100px/s, got %v", got)
	}
	if m.IsFinished() {
		t.Fatalf("should still be moving")
	}
}

func TestTargetNoElapsedTimeDoesNotMove(t *testing.T) {
	clock := &fakeClock{now: 40}
	m := NewTarget(clock, 100, 100, 120)
	m.SetXY(common.Point{})
	m.Update()
	if got := m.XY(); got != (common.Point{}) {
		t.Fatalf("expected no movement, got %v", got)
	}
}

func TestTargetZeroSpeedArrivesImmediately(t *testing.T) {
	clock := &fakeClock{}
	m := NewTarget(clock, 64, 32, 0)
	m.SetXY(common.Point{})
	m.Update()
	if !m.IsFinished() || m.XY() != (common.Point{X: 64, Y: 32}) {
		t.Fatalf("expected immediate arrival, got %v finished=%v", m.XY(), m.IsFinished())
	}
}
