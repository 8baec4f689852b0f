package state

import (
	"fmt"
	"slices"
	"strings"
)

// NodeId is the name a router was declared with
type NodeId string

// Handle is the stable index of a router in the topology arena
type Handle int

type Cost uint32

func (c Cost) String() string {
	if c == INF {
		return "-"
	}
	return fmt.Sprint(uint32(c))
}

// AddCost adds two costs, saturating at INF
func AddCost(a, b Cost) Cost {
	if a == INF || b == INF {
		return INF
	}
	if a > INFM-b {
		return INF
	}
	return a + b
}

// RoutingTable is indexed by destination handle
type RoutingTable []Cost

// ViaTable holds the next hop for each destination handle
type ViaTable []Handle

// Delta is the sorted set of destinations improved by one relaxation step
type Delta []Handle

func (d *Delta) Add(h Handle) {
	idx, found := slices.BinarySearch(*d, h)
	if !found {
		*d = slices.Insert(*d, idx, h)
	}
}

func (d Delta) Contains(h Handle) bool {
	_, found := slices.BinarySearch(d, h)
	return found
}

// Marks are the pending change markers of a router, cleared once rendered
type Marks []bool

func (m Marks) Merge(d Delta) {
	for _, h := range d {
		m[h] = true
	}
}

// Take reports whether h is marked and clears the mark
func (m Marks) Take(h Handle) bool {
	marked := m[h]
	m[h] = false
	return marked
}

func (m Marks) Any() bool {
	return slices.Contains(m, true)
}

// RouteState is the routing and via table owned by a single router
type RouteState struct {
	Self  Handle
	Table RoutingTable
	Via   ViaTable
}

func NewRouteState(self Handle, n int) RouteState {
	rs := RouteState{
		Self:  self,
		Table: make(RoutingTable, n),
		Via:   make(ViaTable, n),
	}
	for i := range n {
		rs.Table[i] = INF
		rs.Via[i] = NoHandle
	}
	rs.Table[self] = 0
	rs.Via[self] = self
	return rs
}

// Improve lowers the cost to dst if cost is strictly smaller
func (rs *RouteState) Improve(dst Handle, cost Cost, via Handle, delta *Delta) bool {
	if cost >= rs.Table[dst] {
		return false
	}
	rs.Table[dst] = cost
	rs.Via[dst] = via
	delta.Add(dst)
	return true
}

func (rs *RouteState) Clone() RouteState {
	return RouteState{
		Self:  rs.Self,
		Table: slices.Clone(rs.Table),
		Via:   slices.Clone(rs.Via),
	}
}

func (rs *RouteState) StringRoutes(t *Topology) string {
	buf := make([]string, 0, len(rs.Table))
	for dst, cost := range rs.Table {
		via := "-"
		if rs.Via[dst] != NoHandle {
			via = string(t.Name(rs.Via[dst]))
		}
		buf = append(buf, fmt.Sprintf("%s via %s (cost: %s)", t.Name(Handle(dst)), via, cost))
	}
	return strings.Join(buf, "\n")
}
