package core

// Event is a discrete named occurrence emitted by a simulation tick.
// Collaborators (audio, persistence, presentation) react to events; the
// simulation never waits on them.
type Event string

const (
	EventJump     Event = "jump"
	EventDeath    Event = "death"
	EventPadBoost Event = "pad-boost"
	EventWin      Event = "win"
	EventLand     Event = "land"       // Landed on ground after a fall
	EventBlock    Event = "block-land" // Landed on top of a block
	EventStart    Event = "start"      // A new attempt began
)

// EventSink receives events after each tick.
type EventSink interface {
	HandleEvent(e Event)
}

// EventSinkFunc adapts a plain function to EventSink.
type EventSinkFunc func(e Event)

// HandleEvent calls f(e).
func (f EventSinkFunc) HandleEvent(e Event) {
	f(e)
}

// Has reports whether e is present in events.
func Has(events []Event, e Event) bool {
	for _, ev := range events {
		if ev == e {
			return true
		}
	}
	return false
}
