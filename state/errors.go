package state

import "errors"

var (
	// ErrMalformedTopology is returned for syntactically invalid topology input.
	ErrMalformedTopology = errors.New("malformed topology")
	// ErrUnknownNeighbour is returned when a link names a router that was never declared.
	ErrUnknownNeighbour = errors.New("link references an undeclared router")
	// ErrNegativeCost is returned for links with a negative cost.
	ErrNegativeCost = errors.New("negative link cost")
	// ErrDisconnectedTopology is returned when some router cannot reach every other router.
	ErrDisconnectedTopology = errors.New("topology is disconnected")
)
