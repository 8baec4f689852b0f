package state

import "time"

const (
	INF = ^Cost(0)
	// INFM is the largest finite cost a link or route may carry.
	INFM = INF - 1

	// NoHandle is the via entry of a destination with no known next hop.
	NoHandle Handle = -1

	// EOFMarker terminates a text topology before the physical end of file.
	EOFMarker = "EOF"
)

var (
	DefaultRoundDelay = time.Duration(0)
	TraceBufferSize   = 1024
	DefaultEngine     = "dv"
)
