// Package replay implements the event-sourcing subsystem: capturing a
// live session into a recording, and driving a dedicated engine through
// a recording to reproduce the original run bit for bit.
package replay

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/event"
)

// FormatVersion is stamped into recordings produced by this package.
const FormatVersion = "1"

// Metadata describes a recording. Extra carries caller-supplied keys
// that serialize inline next to the known fields.
type Metadata struct {
	CreatedAt   int64 // Unix milliseconds
	Version     string
	Description string
	Extra       map[string]any
}

// metadata JSON keys handled explicitly.
const (
	metaCreatedAt   = "createdAt"
	metaVersion     = "version"
	metaDescription = "description"
)

// MarshalJSON flattens Extra into the metadata object.
func (m Metadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+3)
	for k, v := range m.Extra {
		out[k] = v
	}
	out[metaCreatedAt] = m.CreatedAt
	out[metaVersion] = m.Version
	if m.Description != "" {
		out[metaDescription] = m.Description
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits known fields from inline extras.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw[metaCreatedAt].(float64); ok {
		m.CreatedAt = int64(v)
	}
	if v, ok := raw[metaVersion].(string); ok {
		m.Version = v
	}
	if v, ok := raw[metaDescription].(string); ok {
		m.Description = v
	}
	delete(raw, metaCreatedAt)
	delete(raw, metaVersion)
	delete(raw, metaDescription)
	if len(raw) > 0 {
		m.Extra = raw
	} else {
		m.Extra = nil
	}
	return nil
}

// Recording is the immutable log of a session: seed, dispatched events
// and per-step tick deltas. It fully determines a replay; no other state
// is needed.
type Recording struct {
	Seed       string       `json:"seed"`
	Events     []event.Event `json:"events"`
	DeltaTicks []core.Ticks `json:"deltaTicks"`
	TotalTicks core.Ticks   `json:"totalTicks"`
	Metadata   Metadata     `json:"metadata"`
}

// Validate checks the recording's internal consistency: the delta log
// must sum to the total tick count and event ticks must be
// non-decreasing. An inconsistent recording is a programmer or data
// error; replays reject it up front rather than silently reproduce a
// corrupted run.
func (r *Recording) Validate() error {
	var sum core.Ticks
	for _, d := range r.DeltaTicks {
		sum += d
	}
	if sum != r.TotalTicks {
		return fmt.Errorf("replay: delta ticks sum to %d but totalTicks is %d", sum, r.TotalTicks)
	}

	var prev core.Ticks
	for i, ev := range r.Events {
		if i > 0 && ev.Tick < prev {
			return fmt.Errorf("replay: event %d at tick %d precedes event %d at tick %d", i, ev.Tick, i-1, prev)
		}
		prev = ev.Tick
	}
	return nil
}

// Encode serializes the recording to its persisted JSON form. Nil event
// and delta slices encode as empty arrays so the output always matches
// the recording schema.
func Encode(r *Recording) ([]byte, error) {
	norm := *r
	if norm.Events == nil {
		norm.Events = []event.Event{}
	}
	if norm.DeltaTicks == nil {
		norm.DeltaTicks = []core.Ticks{}
	}
	data, err := json.Marshal(&norm)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot encode recording: %w", err)
	}
	return data, nil
}

// Decode parses a persisted recording, validating its shape against the
// recording schema and its internal consistency before returning it.
// Shape mismatches fail fast here instead of misinterpreting fields at
// replay time.
func Decode(data []byte) (*Recording, error) {
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}
	var rec Recording
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("replay: cannot decode recording: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// nowMillis returns the current wall clock in Unix milliseconds. Wall
// time only ever enters recording metadata, never the simulation.
func nowMillis() int64 {
	return time.Now().UnixMilli()
}
