package core

import (
	"fmt"
	"log/slog"

	"github.com/encodeous/routesim/state"
)

// Neighbour is a direct link of a router. It is fixed once the network is built.
type Neighbour struct {
	Id      state.Handle
	Cost    state.Cost
	Mailbox *Mailbox
}

// Router is the state owned by a single simulated router.
// After NewNetwork returns, only the router's own worker may touch it until the run is joined.
type Router struct {
	Id         state.Handle
	Name       state.NodeId
	Neighbours []Neighbour
	Mailbox    *Mailbox
	Route      state.RouteState
	Marks      state.Marks

	// Graph is the link-state view of the network, built from flooded link vectors
	Graph *Graph
	// Rounds counts the completed distance-vector rounds
	Rounds int
	// Heard counts the other routers whose link vectors have been folded into Graph
	Heard int

	Log *slog.Logger
}

// Network is the arena of routers, indexed by handle
type Network struct {
	Topology *state.Topology
	Routers  []*Router
}

func NewNetwork(t *state.Topology) *Network {
	n := t.Len()
	net := &Network{
		Topology: t,
		Routers:  make([]*Router, n),
	}
	for h, name := range t.Nodes {
		net.Routers[h] = &Router{
			Id:      state.Handle(h),
			Name:    name,
			Mailbox: NewMailbox(),
			Route:   state.NewRouteState(state.Handle(h), n),
			Marks:   make(state.Marks, n),
			Log:     slog.New(slog.DiscardHandler),
		}
	}
	for h, links := range t.Adjacency() {
		r := net.Routers[h]
		for _, l := range links {
			r.Neighbours = append(r.Neighbours, Neighbour{
				Id:      l.V1,
				Cost:    l.V2,
				Mailbox: net.Routers[l.V1].Mailbox,
			})
			r.Route.Table[l.V1] = l.V2
			r.Route.Via[l.V1] = l.V1
		}
	}
	return net
}

func (n *Network) Len() int {
	return len(n.Routers)
}

func (n *Network) Router(id state.NodeId) *Router {
	return n.Routers[n.Topology.MustIndexOf(id)]
}

// Neighbour returns the link to h, panicking if h is not adjacent
func (r *Router) Neighbour(h state.Handle) *Neighbour {
	for i := range r.Neighbours {
		if r.Neighbours[i].Id == h {
			return &r.Neighbours[i]
		}
	}
	panic(fmt.Sprintf("router %s received traffic from non-neighbour %d", r.Name, h))
}

// Broadcast pushes msg into the mailbox of every neighbour
func (r *Router) Broadcast(msg Message) {
	msg.From = r.Id
	for _, n := range r.Neighbours {
		n.Mailbox.Push(msg)
	}
}

// LinkVector returns the costs of the router's direct links
func (r *Router) LinkVector() LinkVector {
	lv := make(LinkVector, 0, len(r.Neighbours))
	for _, n := range r.Neighbours {
		lv = append(lv, state.Pair[state.Handle, state.Cost]{V1: n.Id, V2: n.Cost})
	}
	return lv
}
