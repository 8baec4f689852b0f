package core

import (
	"testing"

	"github.com/encodeous/routesim/state"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	triangleTopo = "3\nA B C\nA B 1\nB C 2\nA C 5\n"
	pathTopo     = "4\nA B C D\nA B 2\nB C 3\nC D 1\n"
	squareTopo   = "4\nA B C D\nA B 1\nA C 1\nB D 1\nC D 1\n"
	starTopo     = "5\nH L1 L2 L3 L4\nH L1 1\nH L2 2\nH L3 3\nH L4 4\n"
	meshTopo     = `6
A B C D E F
A B 7
A C 9
A F 14
B C 10
B D 15
C D 11
C F 2
D E 6
E F 9
`
)

func TestNewNetwork(t *testing.T) {
	net := NewNetwork(mustTopology(t, triangleTopo))
	require.Equal(t, 3, net.Len())

	a := net.Router("A")
	assert.Equal(t, state.RoutingTable{0, 1, 5}, a.Route.Table)
	assert.Equal(t, state.ViaTable{0, 1, 2}, a.Route.Via)
	assert.Equal(t, LinkVector{{V1: 1, V2: 1}, {V1: 2, V2: 5}}, a.LinkVector())
	assert.Same(t, net.Router("B").Mailbox, a.Neighbour(1).Mailbox)
	assert.False(t, a.Marks.Any())
}

func TestRouter_NeighbourPanics(t *testing.T) {
	net := NewNetwork(mustTopology(t, pathTopo))
	assert.Panics(t, func() { net.Router("A").Neighbour(3) })
}

func TestRouter_Broadcast(t *testing.T) {
	net := NewNetwork(mustTopology(t, starTopo))
	hub := net.Router("H")
	hub.Broadcast(Message{From: 3, Round: 2, Payload: hub.LinkVector()})

	for _, leaf := range []state.NodeId{"L1", "L2", "L3", "L4"} {
		msgs := net.Router(leaf).Mailbox.Drain()
		require.Len(t, msgs, 1)
		assert.Equal(t, hub.Id, msgs[0].From, "broadcast stamps the sender")
		assert.Equal(t, 2, msgs[0].Round)
	}
	assert.Equal(t, 0, hub.Mailbox.Len())
}

func TestRelaxDV(t *testing.T) {
	// A's view of the triangle before hearing from anybody
	rs := state.NewRouteState(0, 3)
	rs.Improve(1, 1, 1, new(state.Delta))
	rs.Improve(2, 5, 2, new(state.Delta))

	// B advertises C at cost 2, which makes A -> C cost 3 via B
	delta := RelaxDV(&rs, 1, 1, TableSnapshot{1, 0, 2})
	assert.Equal(t, state.Delta{2}, delta)
	assert.Equal(t, state.RoutingTable{0, 1, 3}, rs.Table)
	assert.Equal(t, state.ViaTable{0, 1, 1}, rs.Via)

	// C advertising the same costs again changes nothing
	delta = RelaxDV(&rs, 2, 5, TableSnapshot{5, 2, 0})
	assert.Empty(t, delta)
}

func TestRelaxDV_Unreachable(t *testing.T) {
	rs := state.NewRouteState(0, 3)
	delta := RelaxDV(&rs, 1, 4, TableSnapshot{4, 0, state.INF})
	assert.Equal(t, state.Delta{1}, delta)
	assert.Equal(t, state.INF, rs.Table[2])
	assert.Equal(t, state.NoHandle, rs.Via[2])
}

func TestGraph_Merge(t *testing.T) {
	g := NewGraph(3)
	lv := LinkVector{{V1: 1, V2: 4}, {V1: 2, V2: 6}}
	assert.True(t, g.Merge(0, lv))
	assert.False(t, g.Merge(0, lv))
	assert.Equal(t, state.Cost(4), g.Edge(1, 0))
	assert.Equal(t, state.INF, g.Edge(1, 2))

	var seen []state.Handle
	g.Neighbours(0, func(v state.Handle, c state.Cost) {
		seen = append(seen, v)
	})
	assert.Equal(t, []state.Handle{1, 2}, seen)
}

func TestShortestPaths(t *testing.T) {
	topo := mustTopology(t, pathTopo)
	g := GraphFromTopology(topo)
	rs := state.NewRouteState(0, 4)

	delta := ShortestPaths(g, &rs)
	assert.Equal(t, state.Delta{1, 2, 3}, delta)
	assert.Equal(t, state.RoutingTable{0, 2, 5, 6}, rs.Table)
	assert.Equal(t, state.ViaTable{0, 1, 1, 1}, rs.Via)
}

func TestShortestPaths_Idempotent(t *testing.T) {
	g := GraphFromTopology(mustTopology(t, meshTopo))
	rs := state.NewRouteState(0, 6)
	require.NotEmpty(t, ShortestPaths(g, &rs))
	before := rs.Clone()

	assert.Empty(t, ShortestPaths(g, &rs))
	if diff := cmp.Diff(before, rs); diff != "" {
		t.Fatalf("second run changed the table (-before +after):\n%s", diff)
	}
}

func TestShortestPaths_CheaperIndirectRoute(t *testing.T) {
	// the direct A - C link is the first one explored, yet the route through B is cheaper
	g := GraphFromTopology(mustTopology(t, triangleTopo))
	rs := state.NewRouteState(0, 3)
	ShortestPaths(g, &rs)
	assert.Equal(t, state.Cost(3), rs.Table[2])
	assert.Equal(t, state.Handle(1), rs.Via[2])
}

func TestShortestPaths_PartialGraph(t *testing.T) {
	// only A's own links are known
	net := NewNetwork(mustTopology(t, pathTopo))
	a := net.Router("A")
	g := NewGraph(4)
	g.Merge(a.Id, a.LinkVector())
	assert.Empty(t, ShortestPaths(g, &a.Route))
	assert.Equal(t, state.INF, a.Route.Table[3])

	// learning B's links makes C reachable through B
	b := net.Router("B")
	g.Merge(b.Id, b.LinkVector())
	assert.Equal(t, state.Delta{2}, ShortestPaths(g, &a.Route))
	assert.Equal(t, state.Cost(5), a.Route.Table[2])
	assert.Equal(t, state.Handle(1), a.Route.Via[2])
}

func TestReferenceTables(t *testing.T) {
	topo := mustTopology(t, meshTopo)
	tables := ReferenceTables(topo)
	require.Len(t, tables, 6)

	a := tables[0]
	assert.Equal(t, state.RoutingTable{0, 7, 9, 20, 20, 11}, a.Table)
	// A reaches E through C then F
	assert.Equal(t, state.Handle(2), a.Via[4])

	// shortest paths are symmetric on an undirected graph
	for u := range tables {
		for v := range tables {
			assert.Equal(t, tables[u].Table[v], tables[v].Table[u])
		}
	}
}
