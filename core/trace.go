package core

import (
	"log/slog"

	"github.com/dustin/go-broadcast"
	"github.com/encodeous/routesim/state"
)

type RouterEvent int

const (
	RoundCompleted RouterEvent = iota
	OriginFolded
	DuplicateDropped
	RouterConverged
)

func (e RouterEvent) String() string {
	switch e {
	case RoundCompleted:
		return "RoundCompleted"
	case OriginFolded:
		return "OriginFolded"
	case DuplicateDropped:
		return "DuplicateDropped"
	case RouterConverged:
		return "RouterConverged"
	}
	return "Unknown"
}

type TraceEvent struct {
	Event  RouterEvent
	Router state.NodeId
	Round  int
	Origin state.NodeId
	// Changed is the number of destinations improved by the step
	Changed int
}

// Tracer fans router events out to any number of listeners
type Tracer struct {
	broadcast.Broadcaster
}

func NewTracer(buflen int) *Tracer {
	return &Tracer{
		Broadcaster: broadcast.NewBroadcaster(buflen),
	}
}

// Emit submits ev to every listener. A nil Tracer discards events.
// Delivery is lossless, so once the tracer's buffer is full Emit blocks the calling router
// until every listener has taken the event.
func (t *Tracer) Emit(ev TraceEvent) {
	if t == nil {
		return
	}
	t.Submit(ev)
}

// Listen registers a listener. The returned channel must be read until stop is called:
// a listener that stops reading stalls every router that emits an event.
func (t *Tracer) Listen(buflen int) (events <-chan interface{}, stop func()) {
	ch := make(chan interface{}, buflen)
	t.Register(ch)
	return ch, func() {
		t.Unregister(ch)
		close(ch)
	}
}

// LogTo writes every event to log at debug level until the returned function is called
func (t *Tracer) LogTo(log *slog.Logger) func() {
	events, stop := t.Listen(64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			te := ev.(TraceEvent)
			log.Debug(te.Event.String(), "router", te.Router, "round", te.Round, "origin", te.Origin, "changed", te.Changed)
		}
	}()
	return func() {
		stop()
		<-done
	}
}
