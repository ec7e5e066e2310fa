package replay

import (
	"testing"

	"github.com/vovakirdan/arcade-sim/internal/event"
)

func TestRecorderCapturesEventsAndDeltas(t *testing.T) {
	m := event.NewManager()
	r := NewRecorder()
	r.Start(m, "abc", Options{Description: "session"})

	m.PushInput("turn", map[string]any{"direction": "up"})
	m.Update(500, 500)
	m.Update(1000, 1500)
	r.RecordFrameUpdate(500, 500)
	r.RecordFrameUpdate(1000, 1500)

	rec := r.Stop()
	if rec == nil {
		t.Fatal("Stop returned nil for an active recording")
	}
	if rec.Seed != "abc" || rec.Metadata.Description != "session" {
		t.Errorf("recording header wrong: %+v", rec)
	}
	if len(rec.Events) != 1 || rec.Events[0].Tick != 500 {
		t.Errorf("events = %+v, expected one event at tick 500", rec.Events)
	}
	if len(rec.DeltaTicks) != 2 || rec.TotalTicks != 1500 {
		t.Errorf("timing = %v/%d, expected [500 1000]/1500", rec.DeltaTicks, rec.TotalTicks)
	}
	if err := rec.Validate(); err != nil {
		t.Errorf("captured recording is inconsistent: %v", err)
	}
}

func TestEventsVisibleLiveTimingDeferred(t *testing.T) {
	m := event.NewManager()
	r := NewRecorder()
	r.Start(m, "abc", Options{})

	m.PushInput("jump", nil)
	m.Update(100, 100)
	r.RecordFrameUpdate(100, 100)

	live := r.Recording()
	if len(live.Events) != 1 {
		t.Errorf("live view shows %d events, expected 1", len(live.Events))
	}
	// Timing stays buffered until Stop: the live view shows none of it.
	if len(live.DeltaTicks) != 0 || live.TotalTicks != 0 {
		t.Errorf("live view shows timing %v/%d, expected none", live.DeltaTicks, live.TotalTicks)
	}

	rec := r.Stop()
	if len(rec.DeltaTicks) != 1 || rec.TotalTicks != 100 {
		t.Errorf("Stop did not flush timing: %v/%d", rec.DeltaTicks, rec.TotalTicks)
	}
}

func TestRecordingWithoutFrameUpdates(t *testing.T) {
	// startRecording, record one event, stop: one event, no deltas,
	// zero total.
	m := event.NewManager()
	r := NewRecorder()
	r.Start(m, "x", Options{})

	r.RecordEvent(event.Event{Type: event.TypeUserInput, InputType: "jump", Tick: 1})

	rec := r.Stop()
	if len(rec.Events) != 1 {
		t.Errorf("events = %d, expected 1", len(rec.Events))
	}
	if len(rec.DeltaTicks) != 0 {
		t.Errorf("deltaTicks = %v, expected empty", rec.DeltaTicks)
	}
	if rec.TotalTicks != 0 {
		t.Errorf("totalTicks = %d, expected 0", rec.TotalTicks)
	}
}

func TestShallowCopyIsolation(t *testing.T) {
	m := event.NewManager()
	r := NewRecorder()
	r.Start(m, "abc", Options{})

	ev := event.NewUserInput("jump", map[string]any{"force": 2})
	ev.Tick = 42
	r.RecordEvent(ev)

	// Mutating top-level fields after recording must not alter history.
	ev.InputType = "duck"
	ev.Tick = 99

	rec := r.Stop()
	if rec.Events[0].InputType != "jump" || rec.Events[0].Tick != 42 {
		t.Errorf("recorded event was mutated retroactively: %+v", rec.Events[0])
	}
}

func TestInactiveRecorderIsNoop(t *testing.T) {
	r := NewRecorder()

	r.RecordEvent(event.Event{Type: event.TypeUserInput})
	r.RecordFrameUpdate(10, 10)
	if r.Stop() != nil {
		t.Error("Stop on an idle recorder should return nil")
	}
	if r.Active() {
		t.Error("idle recorder reports active")
	}
}

func TestStopDetachesFromManager(t *testing.T) {
	m := event.NewManager()
	r := NewRecorder()
	r.Start(m, "abc", Options{})

	if m.CurrentSink() != event.Sink(r) {
		t.Fatal("Start did not attach the recorder")
	}
	r.Stop()
	if m.CurrentSink() != nil {
		t.Error("Stop did not detach the recorder")
	}

	// Events after Stop are not recorded.
	m.PushInput("late", nil)
	m.Update(1, 1)
	if len(r.Recording().Events) != 0 {
		t.Error("recorder captured events after Stop")
	}
}

func TestStartMovesAttachment(t *testing.T) {
	first := event.NewManager()
	second := event.NewManager()
	r := NewRecorder()

	r.Start(first, "a", Options{})
	r.Start(second, "b", Options{})

	if first.CurrentSink() != nil {
		t.Error("recorder still attached to the previous manager")
	}
	if second.CurrentSink() != event.Sink(r) {
		t.Error("recorder not attached to the new manager")
	}
	if r.Recording().Seed != "b" {
		t.Error("Start did not begin a fresh recording")
	}
}

func TestStartKeepsPriorRecordingsAlive(t *testing.T) {
	m := event.NewManager()
	r := NewRecorder()

	r.Start(m, "first", Options{})
	r.RecordFrameUpdate(10, 10)
	prior := r.Stop()

	r.Start(m, "second", Options{})
	r.Stop()

	if prior.Seed != "first" || prior.TotalTicks != 10 {
		t.Errorf("prior recording was disturbed: %+v", prior)
	}
}

func TestMetadataDefaultsAndOverrides(t *testing.T) {
	m := event.NewManager()
	r := NewRecorder()

	r.Start(m, "abc", Options{})
	rec := r.Stop()
	if rec.Metadata.Version != FormatVersion {
		t.Errorf("version = %q, expected default %q", rec.Metadata.Version, FormatVersion)
	}
	if rec.Metadata.CreatedAt == 0 {
		t.Error("createdAt default was not stamped")
	}

	extra := map[string]any{"game": "snake"}
	r.Start(m, "abc", Options{Version: "7", CreatedAt: 12345, Extra: extra})
	extra["game"] = "mutated" // caller-side mutation must not leak in
	rec = r.Stop()
	if rec.Metadata.Version != "7" || rec.Metadata.CreatedAt != 12345 {
		t.Errorf("overrides not applied: %+v", rec.Metadata)
	}
	if rec.Metadata.Extra["game"] != "snake" {
		t.Errorf("extra metadata not copied at Start: %v", rec.Metadata.Extra)
	}
}

func TestReset(t *testing.T) {
	m := event.NewManager()
	r := NewRecorder()
	r.Start(m, "abc", Options{})
	r.RecordFrameUpdate(10, 10)

	r.Reset()

	if r.Active() || r.Recording() != nil {
		t.Error("Reset did not discard recorder state")
	}
	if m.CurrentSink() != nil {
		t.Error("Reset did not detach from the manager")
	}
	if rec := r.Stop(); rec != nil {
		t.Error("Stop after Reset should return nil")
	}
}
