package core

import "testing"

func TestClockToTicks(t *testing.T) {
	tests := []struct {
		name       string
		multiplier int64
		delta      float64
		expected   Ticks
	}{
		{"one frame at 60fps", 1000, 1.0, 1000},
		{"fractional delta truncates", 1000, 1.6667, 1666},
		{"sub-tick delta truncates to zero", 1000, 0.0004, 0},
		{"zero delta", 1000, 0, 0},
		{"negative delta passes through", 1000, -2.5, -2500},
		{"negative delta truncates toward zero", 1000, -0.0009, 0},
		{"custom multiplier", 100, 3.5, 350},
		{"large delta", 1000, 120.0, 120000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClock(tc.multiplier)
			if got := c.ToTicks(tc.delta); got != tc.expected {
				t.Errorf("ToTicks(%v) = %d, expected %d", tc.delta, got, tc.expected)
			}
		})
	}
}

func TestClockDefaultMultiplier(t *testing.T) {
	c := NewClock(0)
	if c.Multiplier() != DefaultTickMultiplier {
		t.Errorf("Multiplier() = %d, expected %d", c.Multiplier(), DefaultTickMultiplier)
	}

	c = NewClock(-5)
	if c.Multiplier() != DefaultTickMultiplier {
		t.Errorf("Multiplier() = %d, expected %d", c.Multiplier(), DefaultTickMultiplier)
	}
}

func TestClockIsPure(t *testing.T) {
	c := NewClock(1000)
	// Same input must always map to the same output regardless of call order.
	first := c.ToTicks(0.7331)
	for n := 0; n < 10; n++ {
		c.ToTicks(42.0)
	}
	if got := c.ToTicks(0.7331); got != first {
		t.Errorf("ToTicks is not order-independent: %d vs %d", got, first)
	}
}

func TestPointTranslate(t *testing.T) {
	p := Point{X: 3, Y: -2}
	got := p.Translate(-1, 4)
	if got != (Point{X: 2, Y: 2}) {
		t.Errorf("Translate(-1, 4) = %+v, expected {2 2}", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestAbs(t *testing.T) {
	if Abs(-7) != 7 || Abs(7) != 7 || Abs(0) != 0 {
		t.Error("Abs returned wrong value")
	}
}
