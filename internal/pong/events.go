package pong

import (
	"fmt"
	"time"
)

// EventKind identifies a notification raised by the match.
type EventKind int

const (
	EventPaddleHit  EventKind = iota // Ball deflected by a paddle
	EventScore                       // Ball left the arena; Side is the scorer
	EventShotFired                   // A gun fired
	EventGunReady                    // A gun finished cooling down
	EventGoalScored                  // Score counter incremented
	EventMatchWon                    // Win score reached
	EventFrozen                      // A bullet froze a paddle
	EventUnfrozen                    // A freeze expired
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPaddleHit:
		return "PaddleHit"
	case EventScore:
		return "Score"
	case EventShotFired:
		return "ShotFired"
	case EventGunReady:
		return "GunReady"
	case EventGoalScored:
		return "GoalScored"
	case EventMatchWon:
		return "MatchWon"
	case EventFrozen:
		return "Frozen"
	case EventUnfrozen:
		return "Unfrozen"
	default:
		return "Unknown"
	}
}

// Event is a fire-and-forget notification.
type Event struct {
	Kind       EventKind
	Side       Side
	Mode       Mode
	LeftScore  int
	RightScore int
	At         time.Time
	Played     time.Duration // Running time of the match so far
}

// String formats the event for logs.
func (e Event) String() string {
	return fmt.Sprintf("%s(%s) %d:%d", e.Kind, e.Side, e.LeftScore, e.RightScore)
}

// Sink receives match events. Notify is called synchronously from the game
// loop and must not block.
type Sink interface {
	Notify(e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(e Event)

// Notify calls f(e).
func (f SinkFunc) Notify(e Event) {
	f(e)
}

// MultiSink fans events out to several sinks in order.
type MultiSink []Sink

// Notify delivers e to every non-nil sink.
func (ms MultiSink) Notify(e Event) {
	for _, s := range ms {
		if s != nil {
			s.Notify(e)
		}
	}
}

// discard drops every event.
type discard struct{}

func (discard) Notify(Event) {}
