// Package core provides fundamental types for the simulation engine.
// It contains no external dependencies so that engine, gameplay and
// replay code can share a common vocabulary without import cycles.
package core

// Ticks counts elapsed simulation time in fixed-point subdivisions of a
// frame. Ticks are the only time unit the engine reasons about: frame
// deltas are converted once at the boundary and everything downstream is
// integer arithmetic, so identical delta sequences accumulate identical
// tick totals on every platform.
type Ticks int64

// DefaultTickMultiplier is the frame-delta to tick scale factor.
// At 60 fps a frame delta of ~1.0 yields ~1000 ticks, i.e. 60,000
// ticks per second.
const DefaultTickMultiplier int64 = 1000

// Clock converts variable frame deltas into integer ticks.
// Conversion truncates toward zero and never rounds, so the mapping is a
// pure function of the input delta. Zero and negative deltas pass
// through unchanged; negative deltas are an escape hatch for host loops
// that rewind and are stored verbatim by the recorder.
type Clock struct {
	multiplier int64
}

// NewClock creates a clock with the given tick multiplier.
// A multiplier <= 0 falls back to DefaultTickMultiplier.
func NewClock(multiplier int64) Clock {
	if multiplier <= 0 {
		multiplier = DefaultTickMultiplier
	}
	return Clock{multiplier: multiplier}
}

// Multiplier returns the frame-delta to tick scale factor.
func (c Clock) Multiplier() int64 {
	return c.multiplier
}

// ToTicks converts a frame delta to ticks, truncating toward zero.
func (c Clock) ToTicks(frameDelta float64) Ticks {
	return Ticks(frameDelta * float64(c.multiplier))
}
