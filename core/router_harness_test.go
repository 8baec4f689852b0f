package core

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/encodeous/routesim/state"
	"github.com/stretchr/testify/require"
)

func mustTopology(t *testing.T, text string) *state.Topology {
	t.Helper()
	topo, err := state.ParseTopology(strings.NewReader(text))
	require.NoError(t, err)
	return topo
}

// testEnv builds an environment that prints to out. A nil out discards every table.
func testEnv(ctx context.Context, out io.Writer) *Env {
	quiet := out == nil
	if quiet {
		out = io.Discard
	}
	return &Env{
		Context:  ctx,
		Log:      slog.New(slog.DiscardHandler),
		Reporter: NewReporter(out, quiet),
	}
}

// syncBuffer is a bytes.Buffer that can be written from several goroutines
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// RouterHarness records every trace event routers emit during a run
type RouterHarness struct {
	mu     sync.Mutex
	events []TraceEvent
	stop   func()
	done   chan struct{}
}

func NewRouterHarness(tr *Tracer) *RouterHarness {
	h := &RouterHarness{done: make(chan struct{})}
	ch, stop := tr.Listen(16)
	h.stop = stop
	go func() {
		defer close(h.done)
		for ev := range ch {
			h.mu.Lock()
			h.events = append(h.events, ev.(TraceEvent))
			h.mu.Unlock()
		}
	}()
	return h
}

// Count returns how many events of a kind were recorded so far. A router's last event is always
// RouterConverged, so once every router converged nothing else is in flight.
func (h *RouterHarness) Count(event RouterEvent) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return HarnessEvents(h.events).Count(event)
}

// Close stops recording and returns everything seen so far
func (h *RouterHarness) Close() HarnessEvents {
	h.stop()
	<-h.done
	return h.events
}

type HarnessEvents []TraceEvent

func (e HarnessEvents) Count(event RouterEvent) int {
	n := 0
	for _, ev := range e {
		if ev.Event == event {
			n++
		}
	}
	return n
}

func (e HarnessEvents) contains(event RouterEvent, router state.NodeId) bool {
	for _, ev := range e {
		if ev.Event == event && ev.Router == router {
			return true
		}
	}
	return false
}

func (e HarnessEvents) AssertContains(t *testing.T, event RouterEvent, router state.NodeId) {
	t.Helper()
	if e.contains(event, router) {
		return
	}
	t.Fatal("Expected event not found: ", event, " from router ", router, " in ", e)
}
