package event

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/arcade-sim/internal/core"
)

// captureSink records everything forwarded to it.
type captureSink struct {
	events []Event
	frames [][2]core.Ticks
}

func (c *captureSink) RecordEvent(ev Event) {
	c.events = append(c.events, ev)
}

func (c *captureSink) RecordFrameUpdate(delta, total core.Ticks) {
	c.frames = append(c.frames, [2]core.Ticks{delta, total})
}

func TestUpdateDrainsFIFO(t *testing.T) {
	m := NewManager()

	var got []string
	m.OnUserInput(func(ev Event) {
		got = append(got, ev.InputType)
	})

	m.PushInput("left", nil)
	m.PushInput("right", nil)
	m.PushInput("up", nil)
	m.Update(16, 16)

	want := []string{"left", "right", "up"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dispatch order = %v, expected %v", got, want)
	}
}

func TestUpdateStampsTick(t *testing.T) {
	m := NewManager()

	var ticks []core.Ticks
	m.OnUserInput(func(ev Event) {
		ticks = append(ticks, ev.Tick)
	})

	m.PushInput("a", nil)
	m.Update(100, 100)
	m.PushInput("b", nil)
	m.Update(50, 150)

	if len(ticks) != 2 || ticks[0] != 100 || ticks[1] != 150 {
		t.Errorf("event ticks = %v, expected [100 150]", ticks)
	}
}

func TestSinkReceivesCopyBeforeHandler(t *testing.T) {
	m := NewManager()
	sink := &captureSink{}
	m.AttachSink(sink)

	m.OnUserInput(func(ev Event) {
		// A handler mutating its copy must not corrupt history.
		ev.InputType = "mutated"
		ev.Tick = -1
	})

	m.PushInput("jump", nil)
	m.Update(10, 10)

	if len(sink.events) != 1 {
		t.Fatalf("sink received %d events, expected 1", len(sink.events))
	}
	if sink.events[0].InputType != "jump" || sink.events[0].Tick != 10 {
		t.Errorf("recorded event was corrupted by handler: %+v", sink.events[0])
	}
}

func TestEventsQueuedDuringDrainWaitForNextPump(t *testing.T) {
	m := NewManager()

	var count int
	m.OnUserInput(func(ev Event) {
		count++
		if ev.InputType == "first" {
			m.PushInput("second", nil)
		}
	})

	m.PushInput("first", nil)
	m.Update(1, 1)
	if count != 1 {
		t.Fatalf("first pump dispatched %d events, expected 1", count)
	}
	m.Update(1, 2)
	if count != 2 {
		t.Errorf("second pump dispatched %d events total, expected 2", count)
	}
}

func TestRecordObjectUpdate(t *testing.T) {
	m := NewManager()
	sink := &captureSink{}
	m.AttachSink(sink)

	var dispatched int
	m.OnObjectUpdate(func(Event) { dispatched++ })

	m.Update(500, 500) // establish current tick
	m.RecordObjectUpdate("food", "food-1", "spawned", map[string]any{"x": 3, "y": 4})

	if len(sink.events) != 1 {
		t.Fatalf("sink received %d events, expected 1", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Type != TypeObjectUpdate || ev.ObjectType != "food" || ev.ObjectID != "food-1" || ev.Method != "spawned" {
		t.Errorf("unexpected object update: %+v", ev)
	}
	if ev.Tick != 500 {
		t.Errorf("object update tick = %d, expected 500", ev.Tick)
	}
	if dispatched != 0 {
		t.Error("live object updates must not be dispatched back to handlers")
	}
}

func TestSetTotalTicksStampsRecordedUpdates(t *testing.T) {
	// The engine publishes the new total at the start of each step, so
	// object updates recorded before the pump still carry the tick of
	// the step they happened in.
	m := NewManager()
	sink := &captureSink{}
	m.AttachSink(sink)

	m.SetTotalTicks(700)
	m.RecordObjectUpdate("food", "food-1", "spawned", nil)

	if len(sink.events) != 1 {
		t.Fatalf("sink received %d events, expected 1", len(sink.events))
	}
	if sink.events[0].Tick != 700 {
		t.Errorf("recorded tick = %d, expected 700", sink.events[0].Tick)
	}
}

func TestRecordObjectUpdateWithoutSinkIsNoop(t *testing.T) {
	m := NewManager()
	m.RecordObjectUpdate("food", "food-1", "spawned", nil)
}

func TestEnqueueDispatchesObjectUpdates(t *testing.T) {
	m := NewManager()

	var got []Event
	m.OnObjectUpdate(func(ev Event) { got = append(got, ev) })

	m.Enqueue(NewObjectUpdate("snake", "snake-1", "died", nil))
	m.Update(200, 200)

	if len(got) != 1 || got[0].Method != "died" || got[0].Tick != 200 {
		t.Errorf("replayed object update = %+v, expected died at tick 200", got)
	}
}

func TestAttachReplacesAndDetachIsConditional(t *testing.T) {
	m := NewManager()
	first := &captureSink{}
	second := &captureSink{}

	m.AttachSink(first)
	m.AttachSink(second)
	if m.CurrentSink() != second {
		t.Fatal("AttachSink did not replace the previous sink")
	}

	// Detaching the stale sink must not disturb the active one.
	m.DetachSink(first)
	if m.CurrentSink() != second {
		t.Error("DetachSink removed a sink it did not own")
	}

	m.DetachSink(second)
	if m.CurrentSink() != nil {
		t.Error("DetachSink did not remove the active sink")
	}
}

func TestResetKeepsSink(t *testing.T) {
	m := NewManager()
	sink := &captureSink{}
	m.AttachSink(sink)
	m.PushInput("stale", nil)
	m.OnUserInput(func(Event) { t.Error("handler survived reset") })

	m.Reset()
	m.Update(1, 1)

	if m.CurrentSink() != sink {
		t.Error("Reset detached the sink")
	}
	if len(sink.events) != 0 {
		t.Error("Reset did not clear the queue")
	}
}

func TestParamAccessors(t *testing.T) {
	ev := NewUserInput("turn", map[string]any{"direction": "left", "n": 2})
	if ev.StringParam("direction") != "left" {
		t.Error("StringParam returned wrong value")
	}
	if ev.StringParam("n") != "" {
		t.Error("StringParam should return empty for non-string values")
	}
	if ev.Param("missing") != nil {
		t.Error("Param should return nil for missing keys")
	}
	if (Event{}).Param("any") != nil {
		t.Error("Param on nil map should return nil")
	}
}
