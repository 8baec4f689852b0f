package core

import "github.com/encodeous/routesim/state"

// Graph is a router's view of the link costs in the network.
// Links are always stored symmetrically; INF means no known link.
type Graph struct {
	n int
	w []state.Cost
}

func NewGraph(n int) *Graph {
	g := &Graph{
		n: n,
		w: make([]state.Cost, n*n),
	}
	for i := range g.w {
		g.w[i] = state.INF
	}
	return g
}

func (g *Graph) Len() int {
	return g.n
}

func (g *Graph) Edge(u, v state.Handle) state.Cost {
	return g.w[int(u)*g.n+int(v)]
}

func (g *Graph) SetEdge(u, v state.Handle, c state.Cost) {
	g.w[int(u)*g.n+int(v)] = c
	g.w[int(v)*g.n+int(u)] = c
}

// Merge folds the link vector of origin into the graph and reports whether anything changed
func (g *Graph) Merge(origin state.Handle, links LinkVector) bool {
	changed := false
	for _, l := range links {
		if l.V1 == origin {
			continue
		}
		if g.Edge(origin, l.V1) != l.V2 {
			g.SetEdge(origin, l.V1, l.V2)
			changed = true
		}
	}
	return changed
}

// Neighbours calls fn for every known link of u, in handle order
func (g *Graph) Neighbours(u state.Handle, fn func(v state.Handle, c state.Cost)) {
	row := g.w[int(u)*g.n : int(u+1)*g.n]
	for v, c := range row {
		if c != state.INF {
			fn(state.Handle(v), c)
		}
	}
}

// GraphFromTopology builds the complete graph of a topology
func GraphFromTopology(t *state.Topology) *Graph {
	g := NewGraph(t.Len())
	for _, e := range t.Edges {
		g.SetEdge(e.A, e.B, e.Cost)
	}
	return g
}
