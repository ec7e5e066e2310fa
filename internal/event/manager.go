package event

import "github.com/vovakirdan/arcade-sim/internal/core"

// Sink receives every dispatched event and every tick-advancing frame
// update. The recorder implements Sink; the manager forwards to at most
// one sink at a time.
type Sink interface {
	RecordEvent(ev Event)
	RecordFrameUpdate(delta, total core.Ticks)
}

// Handler receives dispatched events.
type Handler func(Event)

// Manager is the per-tick event pump. The host appends input to its
// queue; once per engine step the queue is drained in FIFO order, each
// event is stamped with the current tick total, forwarded to the attached
// sink, and delivered to the registered handlers.
//
// All mutation happens on the single simulation thread, so the manager
// needs no locking.
type Manager struct {
	queue      []Event
	onInput    []Handler
	onObject   []Handler
	sink       Sink
	totalTicks core.Ticks
}

// NewManager creates an empty event manager.
func NewManager() *Manager {
	return &Manager{}
}

// PushInput queues a user input event for the next pump.
func (m *Manager) PushInput(inputType string, params map[string]any) {
	m.queue = append(m.queue, NewUserInput(inputType, params))
}

// Enqueue queues a pre-built event for the next pump. This is the replay
// injection path: re-injected events keep their recorded variant fields
// and are re-stamped with the tick at which the pump dispatches them.
func (m *Manager) Enqueue(ev Event) {
	m.queue = append(m.queue, ev)
}

// OnUserInput registers a handler for USER_INPUT events.
func (m *Manager) OnUserInput(fn Handler) {
	m.onInput = append(m.onInput, fn)
}

// OnObjectUpdate registers a handler for dispatched OBJECT_UPDATE events.
// Only replay injection dispatches object updates; live gameplay records
// them without hearing them back.
func (m *Manager) OnObjectUpdate(fn Handler) {
	m.onObject = append(m.onObject, fn)
}

// SetTotalTicks publishes the tick total used to stamp events recorded
// outside the pump. The engine pushes the new total at the start of each
// step, before timers and the gameplay hook run, so object updates
// recorded from those callbacks carry the tick of the step they happened
// in.
func (m *Manager) SetTotalTicks(total core.Ticks) {
	m.totalTicks = total
}

// RecordObjectUpdate captures a gameplay-originated state change. The
// event is stamped with the current tick and forwarded to the attached
// sink; it is not queued for dispatch.
func (m *Manager) RecordObjectUpdate(objectType, objectID, method string, params map[string]any) {
	if m.sink == nil {
		return
	}
	ev := NewObjectUpdate(objectType, objectID, method, params)
	ev.Tick = m.totalTicks
	m.sink.RecordEvent(ev)
}

// Update drains the queued events. Each event is stamped with total,
// forwarded to the sink before any handler can mutate it, then delivered
// to the handlers for its type. Events queued by handlers during the
// drain are dispatched on the next pump.
func (m *Manager) Update(delta, total core.Ticks) {
	m.totalTicks = total

	batch := m.queue
	m.queue = nil

	for _, ev := range batch {
		ev.Tick = total
		if m.sink != nil {
			m.sink.RecordEvent(ev)
		}
		switch ev.Type {
		case TypeUserInput:
			for _, fn := range m.onInput {
				fn(ev)
			}
		case TypeObjectUpdate:
			for _, fn := range m.onObject {
				fn(ev)
			}
		}
	}
}

// AttachSink attaches a sink, replacing any previous one.
func (m *Manager) AttachSink(s Sink) {
	m.sink = s
}

// DetachSink detaches s if it is the currently attached sink. A sink that
// was already replaced by a newer attachment is left alone.
func (m *Manager) DetachSink(s Sink) {
	if m.sink == s {
		m.sink = nil
	}
}

// CurrentSink returns the attached sink, or nil.
func (m *Manager) CurrentSink() Sink {
	return m.sink
}

// Reset clears the queue and all registered handlers. The attached sink
// survives a reset; its lifecycle belongs to the recorder.
func (m *Manager) Reset() {
	m.queue = nil
	m.onInput = nil
	m.onObject = nil
	m.totalTicks = 0
}
