package replay

import (
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/event"
)

// Options carries caller-supplied recording metadata. Zero values fall
// back to defaults: CreatedAt to the current wall clock, Version to
// FormatVersion.
type Options struct {
	Description string
	Version     string
	CreatedAt   int64
	Extra       map[string]any
}

// Recorder captures every dispatched event plus the per-step tick deltas
// of the engine it is attached to, producing a replayable recording.
//
// Events become visible on the in-progress recording as they arrive;
// tick deltas are buffered and only merged in when recording stops. A
// live Recording() view therefore shows events but an empty delta log.
type Recorder struct {
	manager *event.Manager
	active  bool
	rec     *Recording

	pendingDeltas []core.Ticks
	pendingTotal  core.Ticks
}

// NewRecorder creates an idle recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start attaches the recorder to the event manager and begins a fresh
// recording stamped with the seed and metadata. At most one recorder is
// attached per manager; attaching replaces any previous attachment. Any
// previously finished recording is left with its holders untouched.
func (r *Recorder) Start(m *event.Manager, seed string, opts Options) {
	if r.manager != nil {
		r.manager.DetachSink(r)
	}
	r.manager = m
	m.AttachSink(r)

	meta := Metadata{
		CreatedAt:   opts.CreatedAt,
		Version:     opts.Version,
		Description: opts.Description,
	}
	if meta.CreatedAt == 0 {
		meta.CreatedAt = nowMillis()
	}
	if meta.Version == "" {
		meta.Version = FormatVersion
	}
	if len(opts.Extra) > 0 {
		meta.Extra = make(map[string]any, len(opts.Extra))
		for k, v := range opts.Extra {
			meta.Extra[k] = v
		}
	}

	r.rec = &Recording{Seed: seed, Metadata: meta}
	r.pendingDeltas = nil
	r.pendingTotal = 0
	r.active = true
}

// RecordEvent appends the event to the in-progress recording. The event
// arrives by value, so later mutation of the caller's top-level fields
// cannot alter history; nested params are shared per the documented
// shallow-copy contract. A no-op while not recording.
func (r *Recorder) RecordEvent(ev event.Event) {
	if !r.active {
		return
	}
	r.rec.Events = append(r.rec.Events, ev)
}

// RecordFrameUpdate buffers the tick delta of one engine step. Buffered
// deltas stay invisible on the recording until Stop. A no-op while not
// recording.
func (r *Recorder) RecordFrameUpdate(delta, total core.Ticks) {
	if !r.active {
		return
	}
	r.pendingDeltas = append(r.pendingDeltas, delta)
	r.pendingTotal += delta
}

// Stop detaches from the event manager, flushes the buffered deltas into
// the recording, freezes it and returns it. Returns nil if no recording
// was active.
func (r *Recorder) Stop() *Recording {
	if !r.active {
		return nil
	}
	r.active = false
	if r.manager != nil {
		r.manager.DetachSink(r)
		r.manager = nil
	}

	r.rec.DeltaTicks = r.pendingDeltas
	r.rec.TotalTicks = r.pendingTotal
	r.pendingDeltas = nil
	r.pendingTotal = 0
	return r.rec
}

// Recording returns the in-progress (or last finished) recording.
// While recording it shows events live but no timing data.
func (r *Recorder) Recording() *Recording {
	return r.rec
}

// Active reports whether a recording is in progress.
func (r *Recorder) Active() bool {
	return r.active
}

// Reset discards all buffered and finalized state and detaches from any
// event manager.
func (r *Recorder) Reset() {
	if r.manager != nil {
		r.manager.DetachSink(r)
		r.manager = nil
	}
	r.active = false
	r.rec = nil
	r.pendingDeltas = nil
	r.pendingTotal = 0
}
