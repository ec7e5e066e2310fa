// Package event defines the engine's event model and the per-tick event
// pump. Events are the only channel through which external input reaches
// gameplay logic, which is what makes a recorded session replayable.
package event

import "github.com/vovakirdan/arcade-sim/internal/core"

// Type discriminates the event union.
type Type string

const (
	// TypeUserInput is an event originating from the host's input layer.
	TypeUserInput Type = "USER_INPUT"
	// TypeObjectUpdate is a gameplay-originated state change captured
	// explicitly because it cannot be re-derived from seed + input alone.
	TypeObjectUpdate Type = "OBJECT_UPDATE"
)

// Event is the tagged union of user input and object updates.
// Which variant fields are meaningful depends on Type; the rest stay at
// their zero values and are omitted from the serialized form.
//
// Events are copied by value when recorded, which isolates every
// top-level field from later mutation by the caller. Params is shared by
// reference on purpose: deep-copying arbitrary payloads on every dispatch
// is a cost the hot path does not pay. Callers must not mutate the Params
// of an event that has already been dispatched.
type Event struct {
	Type Type       `json:"type"`
	Tick core.Ticks `json:"tick"`

	// USER_INPUT fields.
	InputType string `json:"inputType,omitempty"`

	// OBJECT_UPDATE fields.
	ObjectType string `json:"objectType,omitempty"`
	ObjectID   string `json:"objectId,omitempty"`
	Method     string `json:"method,omitempty"`

	Params map[string]any `json:"params,omitempty"`
}

// NewUserInput creates an untagged user input event. The tick is assigned
// by the event pump at dispatch time.
func NewUserInput(inputType string, params map[string]any) Event {
	return Event{
		Type:      TypeUserInput,
		InputType: inputType,
		Params:    params,
	}
}

// NewObjectUpdate creates an untagged object update event.
func NewObjectUpdate(objectType, objectID, method string, params map[string]any) Event {
	return Event{
		Type:       TypeObjectUpdate,
		ObjectType: objectType,
		ObjectID:   objectID,
		Method:     method,
		Params:     params,
	}
}

// Param returns a named parameter, or nil if absent.
func (e Event) Param(key string) any {
	if e.Params == nil {
		return nil
	}
	return e.Params[key]
}

// StringParam returns a named string parameter, or "" if absent or not a
// string. Replayed recordings decode params from JSON, so string is the
// common payload type.
func (e Event) StringParam(key string) string {
	s, _ := e.Param(key).(string)
	return s
}
