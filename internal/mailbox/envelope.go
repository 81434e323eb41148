package mailbox

import "fmt"

// Broadcast is the target name that addresses every registered endpoint
// except the sender. Endpoint names are never empty, so it cannot collide
// with a real name.
const Broadcast = ""

// Envelope is one message in transit between endpoints. Envelopes are passed
// by value; once constructed nobody mutates them. The payload is shared, and
// the sender must not modify it after sending.
type Envelope struct {
	// Sequence is unique within a hub and increases with every send. All
	// copies of one broadcast share it.
	Sequence uint64
	// Label is an application-defined message kind.
	Label string
	// Sender is the name of the sending endpoint.
	Sender string
	// Receiver is the name of the endpoint this copy was delivered to.
	Receiver string
	// Payload is an opaque application value.
	Payload any
	// Broadcast is true when this copy came from a broadcast send.
	Broadcast bool
}

// IsBroadcast returns true if this copy was produced by a broadcast.
func (e Envelope) IsBroadcast() bool {
	return e.Broadcast
}

// AddressedTo returns a copy of e delivered to receiver. Used to fan a
// broadcast out into per-endpoint copies.
func (e Envelope) AddressedTo(receiver string) Envelope {
	e.Receiver = receiver
	return e
}

// String renders the routing header, without the payload.
func (e Envelope) String() string {
	to := e.Receiver
	if to == Broadcast {
		to = "*"
	}
	return fmt.Sprintf("#%d %s %s->%s", e.Sequence, e.Label, e.Sender, to)
}
