package core

import (
	"container/heap"

	"github.com/encodeous/routesim/perf"
	"github.com/encodeous/routesim/state"
)

// RelaxDV applies one Bellman-Ford step with the table advertised by neighbour nh.
// The candidate cost to every destination d is remote[d] + linkCost; strictly cheaper
// candidates replace the current entry and route via nh. The improved destinations are returned.
func RelaxDV(rs *state.RouteState, nh state.Handle, linkCost state.Cost, remote TableSnapshot) state.Delta {
	var delta state.Delta
	for dst, remoteCost := range remote {
		if rs.Improve(state.Handle(dst), state.AddCost(remoteCost, linkCost), nh, &delta) {
			perf.Relaxations.Add(1)
		}
	}
	return delta
}

type frontierItem struct {
	cost     state.Cost
	from, to state.Handle
	seq      int
}

// frontier is a min-heap ordered by cost, then by insertion order
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(frontierItem)) }

func (f *frontier) Pop() any {
	old := *f
	item := old[len(old)-1]
	*f = old[:len(old)-1]
	return item
}

// ShortestPaths expands the graph outwards from rs.Self in order of path cost and relaxes the
// routing table with every path it settles. Only strict improvements are applied, so running it
// again on a graph with no new links returns an empty delta and leaves rs untouched.
func ShortestPaths(g *Graph, rs *state.RouteState) state.Delta {
	perf.Recomputations.Add(1)
	var delta state.Delta
	visited := make([]bool, g.Len())
	pq := make(frontier, 0, g.Len())
	seq := 0
	expand := func(from state.Handle, base state.Cost) {
		g.Neighbours(from, func(to state.Handle, c state.Cost) {
			if visited[to] {
				return
			}
			heap.Push(&pq, frontierItem{cost: state.AddCost(base, c), from: from, to: to, seq: seq})
			seq++
		})
	}

	visited[rs.Self] = true
	expand(rs.Self, 0)
	for pq.Len() > 0 {
		item := heap.Pop(&pq).(frontierItem)
		if visited[item.to] {
			continue // already settled through a cheaper path
		}
		visited[item.to] = true
		via := rs.Via[item.from]
		if item.from == rs.Self {
			via = item.to
		}
		if rs.Improve(item.to, item.cost, via, &delta) {
			perf.Relaxations.Add(1)
		}
		expand(item.to, item.cost)
	}
	return delta
}

// ReferenceTables computes every router's converged table directly from the full topology
func ReferenceTables(t *state.Topology) []state.RouteState {
	g := GraphFromTopology(t)
	tables := make([]state.RouteState, t.Len())
	for h := range tables {
		tables[h] = state.NewRouteState(state.Handle(h), t.Len())
		ShortestPaths(g, &tables[h])
	}
	return tables
}
