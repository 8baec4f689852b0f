package state

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Edge is an undirected link between two routers
type Edge struct {
	A, B Handle
	Cost Cost
}

// Topology is the static arena of routers and links a simulation runs on.
// Handles index into Nodes and never change once the topology is built.
type Topology struct {
	Nodes []NodeId
	Edges []Edge
	index map[NodeId]Handle
}

type LinkCfg struct {
	A    NodeId `yaml:"a"`
	B    NodeId `yaml:"b"`
	Cost int64  `yaml:"cost"`
}

// TopologyCfg is the yaml representation of a topology
type TopologyCfg struct {
	Routers []NodeId  `yaml:"routers"`
	Links   []LinkCfg `yaml:"links"`
}

func NewTopology(nodes []NodeId) (*Topology, error) {
	t := &Topology{
		Nodes: slices.Clone(nodes),
		index: make(map[NodeId]Handle, len(nodes)),
	}
	for i, n := range nodes {
		if _, ok := t.index[n]; ok {
			return nil, fmt.Errorf("%w: duplicate router %s", ErrMalformedTopology, n)
		}
		t.index[n] = Handle(i)
	}
	return t, nil
}

func (t *Topology) Len() int {
	return len(t.Nodes)
}

func (t *Topology) IndexOf(id NodeId) (Handle, bool) {
	h, ok := t.index[id]
	return h, ok
}

func (t *Topology) MustIndexOf(id NodeId) Handle {
	h, ok := t.index[id]
	if !ok {
		panic(fmt.Sprintf("router %s is not part of the topology", id))
	}
	return h
}

func (t *Topology) Name(h Handle) NodeId {
	return t.Nodes[h]
}

func (t *Topology) HasEdge(a, b Handle) bool {
	return slices.ContainsFunc(t.Edges, func(e Edge) bool {
		return e.A == a && e.B == b || e.A == b && e.B == a
	})
}

// AddLink records an undirected link between two declared routers
func (t *Topology) AddLink(a, b NodeId, cost int64) error {
	ha, ok := t.index[a]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNeighbour, a)
	}
	hb, ok := t.index[b]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNeighbour, b)
	}
	if ha == hb {
		return fmt.Errorf("%w: self link on %s", ErrMalformedTopology, a)
	}
	if cost < 0 {
		return fmt.Errorf("%w: %s - %s costs %d", ErrNegativeCost, a, b, cost)
	}
	if cost > int64(INFM) {
		return fmt.Errorf("%w: %s - %s cost %d exceeds %d", ErrMalformedTopology, a, b, cost, INFM)
	}
	if t.HasEdge(ha, hb) {
		return fmt.Errorf("%w: duplicate link %s - %s", ErrMalformedTopology, a, b)
	}
	t.Edges = append(t.Edges, Edge{A: ha, B: hb, Cost: Cost(cost)})
	return nil
}

// Adjacency returns, for every router, its neighbours ordered by handle
func (t *Topology) Adjacency() [][]Pair[Handle, Cost] {
	adj := make([][]Pair[Handle, Cost], len(t.Nodes))
	for _, e := range t.Edges {
		adj[e.A] = append(adj[e.A], Pair[Handle, Cost]{e.B, e.Cost})
		adj[e.B] = append(adj[e.B], Pair[Handle, Cost]{e.A, e.Cost})
	}
	for _, n := range adj {
		SortPairs(n)
	}
	return adj
}

func (t *Topology) Config() TopologyCfg {
	cfg := TopologyCfg{Routers: slices.Clone(t.Nodes)}
	for _, e := range t.Edges {
		cfg.Links = append(cfg.Links, LinkCfg{
			A:    t.Name(e.A),
			B:    t.Name(e.B),
			Cost: int64(e.Cost),
		})
	}
	return cfg
}

func TopologyFromConfig(cfg TopologyCfg) (*Topology, error) {
	if len(cfg.Routers) == 0 {
		return nil, fmt.Errorf("%w: no routers declared", ErrMalformedTopology)
	}
	t, err := NewTopology(cfg.Routers)
	if err != nil {
		return nil, err
	}
	for i, l := range cfg.Links {
		if err := t.AddLink(l.A, l.B, l.Cost); err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
	}
	return t, nil
}

/*
ParseTopology reads the plain text topology format:

	3
	A B C
	A B 1
	B C 2
	EOF

The first line is the router count, the second the router names, and every following line
an undirected link with an integer cost. A line reading EOF, or the end of input, ends the
link list. Blank lines and lines starting with # are skipped.
*/
func ParseTopology(r io.Reader) (*Topology, error) {
	sc := bufio.NewScanner(r)
	lineNo := 0
	count := -1
	var t *Topology
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == EOFMarker {
			break
		}
		fields := strings.Fields(line)
		switch {
		case count == -1:
			n, err := strconv.Atoi(line)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("line %d: %w: router count %q is not a positive integer", lineNo, ErrMalformedTopology, line)
			}
			count = n
		case t == nil:
			if len(fields) != count {
				return nil, fmt.Errorf("line %d: %w: declared %d routers but listed %d", lineNo, ErrMalformedTopology, count, len(fields))
			}
			nodes := make([]NodeId, 0, len(fields))
			for _, f := range fields {
				nodes = append(nodes, NodeId(f))
			}
			var err error
			t, err = NewTopology(nodes)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		default:
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: %w: expected \"<router> <router> <cost>\", got %q", lineNo, ErrMalformedTopology, line)
			}
			cost, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: cost %q is not an integer", lineNo, ErrMalformedTopology, fields[2])
			}
			if err = t.AddLink(NodeId(fields[0]), NodeId(fields[1]), cost); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if count == -1 {
		return nil, fmt.Errorf("%w: missing router count", ErrMalformedTopology)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: missing router list", ErrMalformedTopology)
	}
	return t, nil
}

// ReadTopology loads a topology file, using the yaml format for .yaml and .yml files
func ReadTopology(path string) (*Topology, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var cfg TopologyCfg
		if err = yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedTopology, err)
		}
		return TopologyFromConfig(cfg)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ParseTopology(f)
	}
}
