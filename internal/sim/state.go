// Package sim implements the deterministic, tick-driven simulation
// engine: the lifecycle state machine, scheduled timers, and the
// composition of clock, random source, collision index and event pump
// that gameplay logic runs on.
package sim

// State represents the simulation lifecycle state.
type State int

const (
	StateReady State = iota
	StatePlaying
	StatePaused
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// StateChange carries a lifecycle transition to subscribers.
type StateChange struct {
	New State
	Old State
}

// StateHandler receives state change notifications.
type StateHandler func(StateChange)

// Subscription is a handle for cancelling a state change subscription.
type Subscription struct {
	cancel func()
}

// Cancel removes the subscription. Safe to call more than once.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

type stateSub struct {
	id int
	fn StateHandler
}

// stateNotifier delivers state changes synchronously, in subscription
// order, on the simulation thread.
type stateNotifier struct {
	subs   []stateSub
	nextID int
}

func (n *stateNotifier) subscribe(fn StateHandler) Subscription {
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, stateSub{id: id, fn: fn})
	return Subscription{cancel: func() {
		for i, sub := range n.subs {
			if sub.id == id {
				n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
				return
			}
		}
	}}
}

func (n *stateNotifier) notify(change StateChange) {
	// Iterate a snapshot so handlers can cancel subscriptions mid-delivery.
	subs := n.subs
	for _, sub := range subs {
		sub.fn(change)
	}
}
