package coordination

import (
	"context"

	"github.com/Iron-Ham/relay/internal/mailbox"
)

// Endpoint performs Hub operations on behalf of one name, so callers need not
// thread WithName through every context.
type Endpoint struct {
	hub  *Hub
	name string
}

// Name returns the endpoint name.
func (e *Endpoint) Name() string { return e.name }

// Context returns ctx bound to this endpoint's name.
func (e *Endpoint) Context(ctx context.Context) context.Context {
	return WithName(ctx, e.name)
}

// Register registers the endpoint on its hub.
func (e *Endpoint) Register() error {
	return e.hub.Register(e.Context(context.Background()))
}

// Send delivers payload to the endpoint named to. See Hub.Send.
func (e *Endpoint) Send(ctx context.Context, label, to string, payload any, waitForPickup bool) error {
	return e.hub.Send(e.Context(ctx), label, to, payload, waitForPickup)
}

// Broadcast delivers payload to every other registered endpoint.
func (e *Endpoint) Broadcast(ctx context.Context, label string, payload any, waitForPickup bool) error {
	return e.hub.Send(e.Context(ctx), label, mailbox.Broadcast, payload, waitForPickup)
}

// Receive dequeues the oldest envelope. See Hub.Receive.
func (e *Endpoint) Receive(ctx context.Context, wait bool) (mailbox.Envelope, bool, error) {
	return e.hub.Receive(e.Context(ctx), wait)
}

// Pending returns the number of envelopes waiting for this endpoint.
func (e *Endpoint) Pending() int {
	return e.hub.Pending(e.name)
}
