package sim

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/event"
	"github.com/vovakirdan/arcade-sim/internal/grid"
	"github.com/vovakirdan/arcade-sim/internal/rng"
)

// Config holds the per-instance engine parameters. Threading these
// through construction rather than compiling them in keeps determinism
// guarantees explicit and testable per engine.
type Config struct {
	// TickMultiplier scales frame deltas to ticks. Default 1000.
	TickMultiplier int64
	// TickRate is the nominal host frame rate, informational for hosts
	// that pace themselves. Default 60.
	TickRate int
}

// DefaultConfig returns the reference engine parameters.
func DefaultConfig() Config {
	return Config{
		TickMultiplier: core.DefaultTickMultiplier,
		TickRate:       60,
	}
}

// Simulation is the gameplay capability plugged into an engine. The
// engine calls Setup once after every reset and Update once per
// tick-advancing step; everything else the game needs (random draws,
// collision queries, event handlers, timers) it reaches through the
// engine passed to Setup.
//
// Replay fidelity puts one discipline on implementations: any code path
// that draws from the random source must iterate deterministically
// ordered containers, never bare map order.
type Simulation interface {
	// ID returns a unique identifier, used for registry lookup and
	// recording metadata.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Setup initializes gameplay state on a freshly reset engine.
	Setup(e *Engine)

	// Update advances gameplay by the given tick delta.
	Update(e *Engine, delta core.Ticks)

	// Snapshot returns a digest of the gameplay state, used to compare
	// runs for determinism verification.
	Snapshot() string
}

// Engine owns the simulation lifecycle and composes the tick clock,
// random source, collision index, event pump and scheduled timers into
// the substrate gameplay logic runs on. One engine owns its components
// exclusively; a live engine and a replay engine share nothing but the
// recording passed between them.
type Engine struct {
	cfg    Config
	clock  core.Clock
	logger *log.Logger

	sim        Simulation
	state      State
	seed       string
	totalTicks core.Ticks

	random *rng.Source
	index  *grid.Index
	events *event.Manager
	timers []*Timer

	notifier stateNotifier
}

// New creates an engine for the given simulation and resets it with a
// generated seed. A nil logger disables diagnostics.
func New(cfg Config, sim Simulation, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	e := &Engine{
		cfg:    cfg,
		clock:  core.NewClock(cfg.TickMultiplier),
		logger: logger,
		sim:    sim,
		events: event.NewManager(),
		index:  grid.NewIndex(),
	}
	e.Reset("")
	return e
}

// Reset re-initializes the random source, collision index, timers and
// tick counters, clears queued events and gameplay handlers, moves the
// engine to Ready, and runs the simulation's Setup. An empty seed asks
// the engine to generate a fresh one.
func (e *Engine) Reset(seed string) {
	if seed == "" {
		seed = uuid.NewString()
	}
	e.seed = seed
	e.random = rng.New(seed)
	e.index.Clear()
	e.events.Reset()
	e.timers = nil
	e.totalTicks = 0
	e.setState(StateReady)
	e.sim.Setup(e)
}

// Start begins playing. A no-op unless the engine is Ready.
func (e *Engine) Start() {
	if e.state != StateReady {
		e.logger.Debug("ignoring start", "state", e.state)
		return
	}
	e.setState(StatePlaying)
}

// Pause freezes tick accumulation. A no-op unless Playing. Timer
// accumulators and random source state are preserved exactly for
// resumption.
func (e *Engine) Pause() {
	if e.state != StatePlaying {
		e.logger.Debug("ignoring pause", "state", e.state)
		return
	}
	e.setState(StatePaused)
}

// Resume continues a paused run. A no-op unless Paused.
func (e *Engine) Resume() {
	if e.state != StatePaused {
		e.logger.Debug("ignoring resume", "state", e.state)
		return
	}
	e.setState(StatePlaying)
}

// End terminates the run. Gameplay logic calls this directly on
// game-over. A no-op unless Playing; Ended is terminal until Reset.
func (e *Engine) End() {
	if e.state != StatePlaying {
		e.logger.Debug("ignoring end", "state", e.state)
		return
	}
	e.setState(StateEnded)
}

// Update is the only step function: it converts the frame delta to
// ticks and advances the simulation by that amount. Rejected (no-op)
// unless Playing.
func (e *Engine) Update(frameDelta float64) {
	if e.state != StatePlaying {
		return
	}
	e.step(e.clock.ToTicks(frameDelta))
}

// StepTicks advances the simulation by an exact tick delta, bypassing
// the clock. The replay driver uses this to apply recorded deltas
// verbatim. Rejected (no-op) unless Playing.
func (e *Engine) StepTicks(delta core.Ticks) {
	if e.state != StatePlaying {
		return
	}
	e.step(delta)
}

func (e *Engine) step(delta core.Ticks) {
	if delta == 0 {
		return
	}
	e.totalTicks += delta
	e.events.SetTotalTicks(e.totalTicks)

	// Timers fire in registration order, every time. Only the timers
	// registered before this step advance; ones registered by a firing
	// callback start accumulating next step.
	existing := e.timers
	for _, t := range existing {
		t.advance(delta)
	}
	live := e.timers[:0]
	for _, t := range e.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	e.timers = live

	e.sim.Update(e, delta)
	e.events.Update(delta, e.totalTicks)

	if sink := e.events.CurrentSink(); sink != nil {
		sink.RecordFrameUpdate(delta, e.totalTicks)
	}
}

// Every schedules fn to fire each time interval ticks accumulate.
// Multiple intervals fitting into one step fire multiple times. The
// returned timer can be stopped; nil is returned for a non-positive
// interval.
func (e *Engine) Every(interval core.Ticks, fn func()) *Timer {
	if interval <= 0 || fn == nil {
		e.logger.Debug("ignoring timer with invalid interval", "interval", interval)
		return nil
	}
	t := &Timer{interval: interval, fn: fn}
	e.timers = append(e.timers, t)
	return t
}

// OnStateChange subscribes to lifecycle transitions. Notifications fire
// synchronously with (new, old) whenever the state changes.
func (e *Engine) OnStateChange(fn StateHandler) Subscription {
	return e.notifier.subscribe(fn)
}

func (e *Engine) setState(next State) {
	if e.state == next {
		return
	}
	old := e.state
	e.state = next
	e.notifier.notify(StateChange{New: next, Old: old})
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Seed returns the seed of the current run.
func (e *Engine) Seed() string {
	return e.seed
}

// TotalTicks returns the ticks elapsed since the current run began.
func (e *Engine) TotalTicks() core.Ticks {
	return e.totalTicks
}

// Config returns the engine parameters.
func (e *Engine) Config() Config {
	return e.cfg
}

// Clock returns the frame-delta to tick converter.
func (e *Engine) Clock() core.Clock {
	return e.clock
}

// Random returns the engine's deterministic random source.
func (e *Engine) Random() *rng.Source {
	return e.random
}

// Grid returns the engine's collision index.
func (e *Engine) Grid() *grid.Index {
	return e.index
}

// Events returns the engine's event manager.
func (e *Engine) Events() *event.Manager {
	return e.events
}

// Simulation returns the plugged-in gameplay capability.
func (e *Engine) Simulation() Simulation {
	return e.sim
}
