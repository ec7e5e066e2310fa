package replay

import (
	"fmt"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/sim"
)

// DefaultMaxStepTicks bounds the recorded time one Advance call
// consumes: one second of frame time at the default tick multiplier.
const DefaultMaxStepTicks core.Ticks = 1000

// Driver consumes a recording and drives a dedicated engine through it,
// applying each recorded tick delta whole, in order, and re-injecting
// the recorded events at their original ticks. The gameplay hook
// therefore sees exactly the step sequence of the original run. The
// wrapped engine must never have a recorder attached; the driver is
// constructed around a plain engine and never attaches one, keeping
// live and replayed history apart by construction.
//
// Completion ends the wrapped engine (Playing -> Ended, the same
// notification as a live game-over); an explicit Stop pauses it instead,
// so subscribers can tell a finished replay from an abandoned one.
type Driver struct {
	engine  *sim.Engine
	maxStep core.Ticks

	rec      *Recording
	deltaIdx int
	eventIdx int
	active   bool
}

// NewDriver wraps an engine for replay. maxStep bounds the recorded
// ticks a single Advance call consumes; values <= 0 fall back to
// DefaultMaxStepTicks.
func NewDriver(engine *sim.Engine, maxStep core.Ticks) *Driver {
	if maxStep <= 0 {
		maxStep = DefaultMaxStepTicks
	}
	return &Driver{engine: engine, maxStep: maxStep}
}

// Engine returns the wrapped replay engine.
func (d *Driver) Engine() *sim.Engine {
	return d.engine
}

// Start validates the recording, resets the wrapped engine with the
// recorded seed and begins the replay. The host then paces it with
// Advance, or drains it synchronously with Run.
func (d *Driver) Start(rec *Recording) error {
	if rec == nil {
		return fmt.Errorf("replay: no recording to replay")
	}
	if err := rec.Validate(); err != nil {
		return err
	}
	d.rec = rec
	d.deltaIdx = 0
	d.eventIdx = 0
	d.engine.Reset(rec.Seed)
	d.engine.Start()
	d.active = true
	if len(rec.DeltaTicks) == 0 {
		d.finish()
	}
	return nil
}

// Active reports whether a replay is in progress.
func (d *Driver) Active() bool {
	return d.active
}

// Advance consumes recorded deltas worth roughly the given frame delta
// of tick budget, capped at the driver's per-call ceiling. Hosts call
// this once per display frame; a large frame delta fast-forwards, but
// each recorded delta is still applied whole so the replayed step
// sequence matches the original run.
func (d *Driver) Advance(frameDelta float64) {
	budget := d.engine.Clock().ToTicks(frameDelta)
	if budget > d.maxStep {
		budget = d.maxStep
	}
	for budget > 0 && d.active {
		consumed := d.stepRecorded()
		if consumed < 0 {
			consumed = -consumed
		}
		if consumed == 0 {
			consumed = 1
		}
		budget -= consumed
	}
}

// Run drains the whole recording synchronously.
func (d *Driver) Run(rec *Recording) error {
	if err := d.Start(rec); err != nil {
		return err
	}
	for d.active {
		d.stepRecorded()
	}
	return nil
}

// Stop halts the replay without ending the wrapped engine, leaving it
// paused. A no-op if no replay is active.
func (d *Driver) Stop() {
	if !d.active {
		return
	}
	d.active = false
	d.engine.Pause()
}

// stepRecorded applies the next recorded delta in one engine step, the
// same step the live run took. Recorded event ticks always land on
// recorded step boundaries (the pump stamps them at step end), so
// injecting every event whose tick falls within the step before it runs
// dispatches each one at exactly its original tick. Returns the ticks
// consumed.
func (d *Driver) stepRecorded() core.Ticks {
	if !d.active {
		return 0
	}

	delta := d.rec.DeltaTicks[d.deltaIdx]
	d.deltaIdx++

	after := d.engine.TotalTicks() + delta
	for d.eventIdx < len(d.rec.Events) && d.rec.Events[d.eventIdx].Tick <= after {
		d.engine.Events().Enqueue(d.rec.Events[d.eventIdx])
		d.eventIdx++
	}
	d.engine.StepTicks(delta)

	if d.deltaIdx >= len(d.rec.DeltaTicks) {
		d.finish()
	}
	return delta
}

func (d *Driver) finish() {
	d.active = false
	d.engine.End()
}
