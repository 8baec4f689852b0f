//go:build integration

package integration

import (
	"fmt"
	"math/rand/v2"

	"github.com/encodeous/routesim/state"
)

// RandomTopology builds a connected topology of n routers: a random spanning tree plus extra
// random links. The same seed always yields the same topology.
func RandomTopology(seed uint64, n, extra int, maxCost int64) (*state.Topology, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	nodes := make([]state.NodeId, n)
	for i := range nodes {
		nodes[i] = state.NodeId(fmt.Sprintf("r%d", i))
	}
	t, err := state.NewTopology(nodes)
	if err != nil {
		return nil, err
	}
	perm := rng.Perm(n)
	for i := 1; i < n; i++ {
		a := nodes[perm[i]]
		b := nodes[perm[rng.IntN(i)]]
		if err = t.AddLink(a, b, 1+rng.Int64N(maxCost)); err != nil {
			return nil, err
		}
	}
	for range extra {
		a, b := rng.IntN(n), rng.IntN(n)
		if a == b || t.HasEdge(state.Handle(a), state.Handle(b)) {
			continue
		}
		if err = t.AddLink(nodes[a], nodes[b], 1+rng.Int64N(maxCost)); err != nil {
			return nil, err
		}
	}
	return t, nil
}
