package sim

import "github.com/vovakirdan/arcade-sim/internal/core"

// Timer is a scheduled interval callback expressed in ticks, the
// deterministic analogue of a periodic wall-clock callback. Timers fire
// in registration order, and firing decrements the accumulator by the
// interval instead of resetting it, so drift never builds up no matter
// how the deltas are chunked.
type Timer struct {
	interval    core.Ticks
	accumulated core.Ticks
	fn          func()
	stopped     bool
}

// Stop deactivates the timer. A stopped timer never fires again.
func (t *Timer) Stop() {
	t.stopped = true
}

// Interval returns the firing interval in ticks.
func (t *Timer) Interval() core.Ticks {
	return t.interval
}

// advance accumulates delta and fires as many whole intervals as fit.
// A single large delta can fire the timer several times; checking once
// and resetting would silently drop those firings.
func (t *Timer) advance(delta core.Ticks) {
	if t.stopped {
		return
	}
	t.accumulated += delta
	for t.accumulated >= t.interval && !t.stopped {
		t.accumulated -= t.interval
		t.fn()
	}
}
