package core

import (
	"fmt"

	"github.com/encodeous/routesim/perf"
	"github.com/encodeous/routesim/state"
	"github.com/jellydator/ttlcache/v3"
)

// RunLS runs the link-state protocol for r. The router floods its own link vector, then folds in
// the vector of every other router exactly once, forwarding each new vector to all neighbours and
// recomputing shortest paths after every fold. It returns once all N-1 other routers were heard.
func RunLS(e *Env, net *Network, r *Router) error {
	n := net.Len()
	r.Graph = NewGraph(n)
	r.Graph.Merge(r.Id, r.LinkVector())

	// origins whose vectors were already folded in; later copies arriving over other paths are dropped
	folded := ttlcache.New[state.Handle, struct{}](
		ttlcache.WithDisableTouchOnHit[state.Handle, struct{}](),
	)
	folded.Set(r.Id, struct{}{}, ttlcache.NoTTL)

	r.Broadcast(Message{
		Origin:  r.Id,
		Payload: r.LinkVector(),
	})

	last := state.NodeId("-")
	for r.Heard < n-1 {
		e.Reporter.Display(net.Topology, r, lsHeader(r, r.Heard, last))
		if err := e.delay(); err != nil {
			return err
		}

		msg, links, err := nextOrigin(e, net, r, folded)
		if err != nil {
			return err
		}
		folded.Set(msg.Origin, struct{}{}, ttlcache.NoTTL)
		r.Heard++
		last = net.Topology.Name(msg.Origin)

		r.Graph.Merge(msg.Origin, links)
		r.Broadcast(Message{
			Origin:  msg.Origin,
			Payload: links,
		})
		changed := ShortestPaths(r.Graph, &r.Route)
		r.Marks.Merge(changed)

		r.Log.Debug("folded link vector", "origin", last, "heard", r.Heard, "changed", len(changed))
		e.Trace.Emit(TraceEvent{
			Event:   OriginFolded,
			Router:  r.Name,
			Round:   r.Heard,
			Origin:  last,
			Changed: len(changed),
		})
	}

	e.Reporter.Display(net.Topology, r, lsHeader(r, r.Heard, last))
	e.Trace.Emit(TraceEvent{Event: RouterConverged, Router: r.Name, Round: r.Heard})
	return nil
}

// nextOrigin pops messages until one carries the links of a router not folded in yet
func nextOrigin(e *Env, net *Network, r *Router, folded *ttlcache.Cache[state.Handle, struct{}]) (Message, LinkVector, error) {
	for {
		msg, err := r.Mailbox.Pop(e.Context)
		if err != nil {
			return Message{}, nil, err
		}
		r.Neighbour(msg.From)
		links, ok := msg.Payload.(LinkVector)
		if !ok {
			panic(fmt.Sprintf("router %s received %s payload while flooding", r.Name, msg.Payload.Kind()))
		}
		if folded.Has(msg.Origin) {
			perf.DuplicatesDropped.Add(1)
			e.Trace.Emit(TraceEvent{
				Event:  DuplicateDropped,
				Router: r.Name,
				Round:  r.Heard,
				Origin: net.Topology.Name(msg.Origin),
			})
			continue
		}
		return msg, links, nil
	}
}
