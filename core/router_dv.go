package core

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/encodeous/routesim/perf"
	"github.com/encodeous/routesim/state"
)

// RunDV runs the distance-vector protocol for r: exactly N-1 synchronous rounds of full-table
// exchange with every neighbour, followed by a final display.
func RunDV(e *Env, net *Network, r *Router) error {
	rounds := net.Len() - 1
	// snapshots from neighbours that are already a round ahead of us
	stash := make(map[int][]Message)

	for round := 0; round < rounds; round++ {
		e.Reporter.Display(net.Topology, r, dvHeader(r, round))
		if err := e.delay(); err != nil {
			return err
		}
		start := time.Now()

		r.Broadcast(Message{
			Round:   round,
			Payload: TableSnapshot(slices.Clone(r.Route.Table)),
		})

		msgs, err := collectRound(e, r, round, stash)
		if err != nil {
			return err
		}

		// relaxation is commutative across neighbours, the ordering only settles equal-cost ties
		slices.SortFunc(msgs, func(a, b Message) int {
			return cmp.Compare(a.From, b.From)
		})
		var changed state.Delta
		for _, msg := range msgs {
			n := r.Neighbour(msg.From)
			snap, ok := msg.Payload.(TableSnapshot)
			if !ok {
				panic(fmt.Sprintf("router %s received %s payload during distance-vector round %d", r.Name, msg.Payload.Kind(), round))
			}
			for _, h := range RelaxDV(&r.Route, n.Id, n.Cost, snap) {
				changed.Add(h)
			}
		}
		r.Marks.Merge(changed)
		r.Rounds++

		perf.RoundLatency.Add(float64(time.Since(start).Microseconds()))
		r.Log.Debug("round complete", "round", round, "changed", len(changed))
		e.Trace.Emit(TraceEvent{
			Event:   RoundCompleted,
			Router:  r.Name,
			Round:   round,
			Changed: len(changed),
		})
	}

	e.Reporter.Display(net.Topology, r, dvHeader(r, rounds))
	e.Trace.Emit(TraceEvent{Event: RouterConverged, Router: r.Name, Round: r.Rounds})
	return nil
}

// collectRound blocks until exactly one snapshot from every neighbour has arrived for round.
// A neighbour can run at most one round ahead, since it needs our snapshot to finish its own
// round; its early snapshots are kept in stash for the next call.
func collectRound(e *Env, r *Router, round int, stash map[int][]Message) ([]Message, error) {
	deg := len(r.Neighbours)
	for len(stash[round]) < deg {
		if err := r.Mailbox.WaitLen(e.Context, deg-len(stash[round])); err != nil {
			return nil, err
		}
		for _, msg := range r.Mailbox.Drain() {
			if msg.Round < round || msg.Round > round+1 {
				panic(fmt.Sprintf("router %s in round %d received a snapshot for round %d from %d", r.Name, round, msg.Round, msg.From))
			}
			stash[msg.Round] = append(stash[msg.Round], msg)
		}
	}
	msgs := stash[round]
	delete(stash, round)
	if len(msgs) != deg {
		panic(fmt.Sprintf("router %s collected %d snapshots for round %d, expected %d", r.Name, len(msgs), round, deg))
	}
	return msgs, nil
}
