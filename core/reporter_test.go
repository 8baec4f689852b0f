package core

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/encodeous/routesim/state"
	"github.com/stretchr/testify/assert"
)

func TestCenter(t *testing.T) {
	assert.Equal(t, " To Router ", center("To Router", 11))
	assert.Equal(t, "  Cost   ", center("Cost", 9))
	assert.Equal(t, "     A      ", center("A", 12))
	assert.Equal(t, "toolongvalue", center("toolongvalue", 4))
}

func TestReporter_Display(t *testing.T) {
	net := NewNetwork(mustTopology(t, "3\nA B C\nA B 1\n"))
	a := net.Router("A")
	a.Marks.Merge(state.Delta{1})

	out := &bytes.Buffer{}
	rep := NewReporter(out, false)
	rep.Display(net.Topology, a, initialHeader(a))

	want := strings.Join([]string{
		"Initial routing table of router A:",
		"------------------------------------",
		"| To Router |  Cost   | Via Router |",
		"------------------------------------",
		"|     A     |    0    |     A      |",
		"------------------------------------",
		"|    *B     |    1    |     B      |",
		"------------------------------------",
		"|     C     |    -    |     -      |",
		"------------------------------------",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())

	// marks are cleared once shown
	assert.False(t, a.Marks.Any())
	out.Reset()
	rep.Display(net.Topology, a, finalHeader(a))
	assert.NotContains(t, out.String(), "*")
	assert.True(t, strings.HasPrefix(out.String(), "From Router A:\n"))
}

func TestReporter_Quiet(t *testing.T) {
	net := NewNetwork(mustTopology(t, "2\nA B\nA B 1\n"))
	out := &bytes.Buffer{}
	rep := NewReporter(out, true)
	rep.Display(net.Topology, net.Router("A"), initialHeader(net.Router("A")))
	assert.Empty(t, out.String())

	rep.Final(net.Topology, net.Router("B"))
	rep.Duration(1500 * time.Millisecond)
	assert.Contains(t, out.String(), "From Router B:")
	assert.Contains(t, out.String(), "Duration of Program Execution: 1.5s")
}

func TestHeaders(t *testing.T) {
	r := &Router{Name: "X"}
	assert.Equal(t, "Initial routing table of router X:", dvHeader(r, 0))
	assert.Equal(t, "From Router X | Iteration 3 :", dvHeader(r, 3))
	assert.Equal(t, "Initial routing table of router X:", lsHeader(r, 0, "-"))
	assert.Equal(t, "From Router X | Iteration 2 | Connectivity info received from Router Q :", lsHeader(r, 2, "Q"))
}
