package game

import "encoding/json"

type EventKind int

const (
	EventDirectionChanged EventKind = iota
	EventDotEaten
	EventFruitEaten
	EventPowerConsumed
	EventAgentCaught
	EventRoundEnded
)

func (k EventKind) String() string {
	switch k {
	case EventDirectionChanged:
		return "direction_changed"
	case EventDotEaten:
		return "dot_eaten"
	case EventFruitEaten:
		return "fruit_eaten"
	case EventPowerConsumed:
		return "power_consumed"
	case EventAgentCaught:
		return "agent_caught"
	case EventRoundEnded:
		return "round_ended"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes EventKind as a string.
func (k EventKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Event is a one-shot signal for presentation collaborators.
type Event struct {
	Kind      EventKind `json:"kind"`
	Direction Direction `json:"direction,omitempty"`
	AgentID   string    `json:"agent_id,omitempty"`
	Points    int       `json:"points,omitempty"`
	Outcome   Outcome   `json:"outcome,omitempty"`
}

// EventQueue collects the events of one tick. It is emptied exactly once per
// tick by Drain.
type EventQueue struct {
	events []Event
}

func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Drain returns the queued events in emit order and empties the queue.
func (q *EventQueue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

func (q *EventQueue) Len() int {
	return len(q.events)
}
