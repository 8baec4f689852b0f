package core

import (
	"context"
	"errors"
	"fmt"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/encodeous/routesim/state"
)

type Engine int

const (
	DistanceVector Engine = iota
	LinkState
)

func ParseEngine(s string) (Engine, error) {
	switch s {
	case "dv":
		return DistanceVector, nil
	case "ls":
		return LinkState, nil
	}
	return 0, fmt.Errorf("unknown engine %q", s)
}

func (e Engine) String() string {
	switch e {
	case DistanceVector:
		return "dv"
	case LinkState:
		return "ls"
	}
	return "unknown"
}

func (e Engine) worker() func(*Env, *Network, *Router) error {
	switch e {
	case DistanceVector:
		return RunDV
	case LinkState:
		return RunLS
	}
	panic(fmt.Sprintf("unknown engine %d", e))
}

type Result struct {
	Engine  Engine
	Network *Network
	Elapsed time.Duration
}

// Route returns the converged cost and next hop from one router to another
func (r *Result) Route(from, to state.NodeId) (state.Cost, state.NodeId) {
	t := r.Network.Topology
	rt := r.Network.Router(from)
	dst := t.MustIndexOf(to)
	via := rt.Route.Via[dst]
	if via == state.NoHandle {
		return rt.Route.Table[dst], "-"
	}
	return rt.Route.Table[dst], t.Name(via)
}

// Simulate runs one worker per router with the chosen engine, waits for all of them and prints
// every converged table. The topology is validated first, so a disconnected network is an error
// rather than a run that never finishes.
func Simulate(e *Env, t *state.Topology, engine Engine) (*Result, error) {
	if err := state.ValidateTopology(t); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancelCause(e.Context)
	defer cancel(context.Canceled)
	run := e.withContext(ctx)
	work := engine.worker()

	net := NewNetwork(t)
	for _, r := range net.Routers {
		r.Log = e.Log.With("router", r.Name, "engine", engine.String())
	}

	e.Log.Info("starting simulation", "engine", engine.String(), "routers", t.Len(), "links", len(t.Edges))
	start := time.Now()
	wg := sync.WaitGroup{}
	for _, r := range net.Routers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if p := recover(); p != nil {
					cancel(fmt.Errorf("router %s: panic: %v", r.Name, p))
				}
			}()
			labels := pprof.Labels("router", string(r.Name))
			pprof.Do(ctx, labels, func(_ context.Context) {
				if err := work(run, net, r); err != nil {
					cancel(fmt.Errorf("router %s: %w", r.Name, err))
				}
			})
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	if ctx.Err() != nil {
		err := context.Cause(ctx)
		e.Log.Error("simulation aborted", "error", err)
		return nil, err
	}

	e.Reporter.Banner("Final routing tables of each router:\n")
	for _, r := range net.Routers {
		e.Reporter.Final(t, r)
	}
	e.Reporter.Duration(elapsed)
	e.Log.Info("simulation complete", "engine", engine.String(), "elapsed", elapsed)

	return &Result{
		Engine:  engine,
		Network: net,
		Elapsed: elapsed,
	}, nil
}

// CrossCheck reports every pair of routers whose converged cost differs between two runs.
// Next hops are not compared since equal-cost paths may legitimately differ.
func CrossCheck(a, b *Result) error {
	var errs []error
	t := a.Network.Topology
	for h, ra := range a.Network.Routers {
		rb := b.Network.Routers[h]
		for dst, ca := range ra.Route.Table {
			if cb := rb.Route.Table[dst]; ca != cb {
				errs = append(errs, fmt.Errorf("%s -> %s: %s says %s, %s says %s",
					ra.Name, t.Name(state.Handle(dst)), a.Engine, ca, b.Engine, cb))
			}
		}
	}
	return errors.Join(errs...)
}
