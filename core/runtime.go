package core

import (
	"context"
	"log/slog"
	"time"
)

// Env is everything a router worker may use besides its own state.
// It is passed explicitly and can be read from any goroutine.
type Env struct {
	Context    context.Context
	Log        *slog.Logger
	Reporter   *Reporter
	Trace      *Tracer
	RoundDelay time.Duration
}

// delay stands in for network latency between rounds
func (e *Env) delay() error {
	if e.RoundDelay <= 0 {
		if e.Context.Err() != nil {
			return context.Cause(e.Context)
		}
		return nil
	}
	select {
	case <-time.After(e.RoundDelay):
		return nil
	case <-e.Context.Done():
		return context.Cause(e.Context)
	}
}

func (e *Env) withContext(ctx context.Context) *Env {
	ne := *e
	ne.Context = ctx
	return &ne
}
