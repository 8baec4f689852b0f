package core

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/encodeous/routesim/state"
)

var tableRule = strings.Repeat("-", 36)

// Reporter serialises table dumps from concurrent routers.
// The lock is held for exactly one print and never while waiting on a mailbox.
type Reporter struct {
	mu    sync.Mutex
	w     io.Writer
	quiet bool
}

// NewReporter writes to w. A quiet reporter skips per-round tables and only prints final results.
func NewReporter(w io.Writer, quiet bool) *Reporter {
	return &Reporter{w: w, quiet: quiet}
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

func (rep *Reporter) writeTable(t *state.Topology, r *Router, header string) {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(tableRule + "\n")
	fmt.Fprintf(&sb, "|%s|%s|%s|\n", center("To Router", 11), center("Cost", 9), center("Via Router", 12))
	sb.WriteString(tableRule + "\n")
	for dst := range r.Route.Table {
		h := state.Handle(dst)
		name := string(t.Name(h))
		if r.Marks.Take(h) {
			name = "*" + name
		}
		via := "-"
		if r.Route.Via[h] != state.NoHandle {
			via = string(t.Name(r.Route.Via[h]))
		}
		fmt.Fprintf(&sb, "|%s|%s|%s|\n", center(name, 11), center(r.Route.Table[h].String(), 9), center(via, 12))
		sb.WriteString(tableRule + "\n")
	}
	sb.WriteString("\n")
	_, _ = io.WriteString(rep.w, sb.String())
}

// Display prints the table of r as it stands during a run
func (rep *Reporter) Display(t *state.Topology, r *Router, header string) {
	if rep.quiet {
		return
	}
	rep.mu.Lock()
	defer rep.mu.Unlock()
	rep.writeTable(t, r, header)
}

// Final prints the converged table of r
func (rep *Reporter) Final(t *state.Topology, r *Router) {
	rep.mu.Lock()
	defer rep.mu.Unlock()
	rep.writeTable(t, r, finalHeader(r))
}

func (rep *Reporter) Banner(line string) {
	rep.mu.Lock()
	defer rep.mu.Unlock()
	_, _ = fmt.Fprintln(rep.w, line)
}

func (rep *Reporter) Duration(d time.Duration) {
	rep.Banner(fmt.Sprintf("Duration of Program Execution: %v", d))
}

func initialHeader(r *Router) string {
	return fmt.Sprintf("Initial routing table of router %s:", r.Name)
}

func finalHeader(r *Router) string {
	return fmt.Sprintf("From Router %s:", r.Name)
}

func dvHeader(r *Router, round int) string {
	if round == 0 {
		return initialHeader(r)
	}
	return fmt.Sprintf("From Router %s | Iteration %d :", r.Name, round)
}

func lsHeader(r *Router, heard int, last state.NodeId) string {
	if heard == 0 {
		return initialHeader(r)
	}
	return fmt.Sprintf("From Router %s | Iteration %d | Connectivity info received from Router %s :", r.Name, heard, last)
}
