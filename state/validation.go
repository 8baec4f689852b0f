package state

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"time"
)

var namePattern, _ = regexp.Compile("^[0-9A-Za-z._-]+$")

func PathValidator(s string) error {
	_, err := os.Stat(path.Dir(s))
	if err != nil {
		return err
	}
	_, err = filepath.Abs(s)
	return err
}

func NameValidator(s string) error {
	if !namePattern.MatchString(s) {
		return fmt.Errorf("%s is not a valid name, must match pattern %s", s, namePattern.String())
	}
	if len(s) > 100 {
		return fmt.Errorf("len(\"%s\") = %d > 100 is too long", s, len(s))
	}
	return nil
}

// Unreachable returns the routers that cannot be reached from the first router
func Unreachable(t *Topology) []NodeId {
	if t.Len() == 0 {
		return nil
	}
	adj := t.Adjacency()
	seen := make([]bool, t.Len())
	seen[0] = true
	queue := []Handle{0}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range adj[cur] {
			if !seen[n.V1] {
				seen[n.V1] = true
				queue = append(queue, n.V1)
			}
		}
	}
	missing := make([]NodeId, 0)
	for h, ok := range seen {
		if !ok {
			missing = append(missing, t.Name(Handle(h)))
		}
	}
	return missing
}

// ValidateTopology checks the properties both engines rely on to terminate with correct tables
func ValidateTopology(t *Topology) error {
	if t == nil || t.Len() == 0 {
		return fmt.Errorf("%w: no routers declared", ErrMalformedTopology)
	}
	for _, n := range t.Nodes {
		if err := NameValidator(string(n)); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedTopology, err)
		}
	}
	var maxCost Cost
	for _, e := range t.Edges {
		if e.Cost > INFM {
			return fmt.Errorf("%w: %s - %s cost exceeds %d", ErrMalformedTopology, t.Name(e.A), t.Name(e.B), INFM)
		}
		maxCost = max(maxCost, e.Cost)
	}
	// a shortest path has at most N-1 links, so its cost must stay finite
	if bound := uint64(t.Len()-1) * uint64(maxCost); bound > uint64(INFM) {
		return fmt.Errorf("%w: paths of up to %d links costing %d each may exceed the largest route cost %d",
			ErrMalformedTopology, t.Len()-1, maxCost, INFM)
	}
	if missing := Unreachable(t); len(missing) != 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: %v unreachable from %s", ErrDisconnectedTopology, missing, t.Name(0))
	}
	return nil
}

func SimConfigValidator(cfg *SimCfg) error {
	if cfg.Topology == "" {
		return fmt.Errorf("no topology file configured")
	}
	if !slices.Contains([]string{"dv", "ls", "both"}, cfg.Engine) {
		return fmt.Errorf("unknown engine %q, expected one of dv, ls, both", cfg.Engine)
	}
	if cfg.RoundDelay < 0 || cfg.RoundDelay > time.Minute {
		return fmt.Errorf("round delay %v must be between 0 and 1m", cfg.RoundDelay)
	}
	if cfg.LogPath != "" {
		if err := PathValidator(cfg.LogPath); err != nil {
			return fmt.Errorf("invalid log path: %w", err)
		}
	}
	return nil
}
