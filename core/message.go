package core

import "github.com/encodeous/routesim/state"

// Payload is the body of a message exchanged between routers
type Payload interface {
	Kind() string
}

// TableSnapshot is a full copy of a router's routing table, sent by the distance-vector engine.
// Receivers must treat it as read-only, as the same snapshot is delivered to every neighbour.
type TableSnapshot state.RoutingTable

func (TableSnapshot) Kind() string { return "table" }

// LinkVector lists the direct links of a router, flooded by the link-state engine
type LinkVector []state.Pair[state.Handle, state.Cost]

func (LinkVector) Kind() string { return "links" }

type Message struct {
	// From is the neighbour that pushed the message into the mailbox
	From state.Handle
	// Round is the distance-vector round the snapshot was taken in
	Round int
	// Origin is the router whose links a flooded LinkVector describes
	Origin  state.Handle
	Payload Payload
}
