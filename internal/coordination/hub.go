package coordination

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/Iron-Ham/relay/internal/errors"
	"github.com/Iron-Ham/relay/internal/event"
	"github.com/Iron-Ham/relay/internal/logging"
	"github.com/Iron-Ham/relay/internal/mailbox"
	"github.com/Iron-Ham/relay/internal/registry"
)

var hubCounter atomic.Uint64

// Hub is one isolated message-passing domain: a name registry, the mailboxes
// it owns, and the sequence counter for envelopes sent through it. Endpoints
// on different hubs cannot address each other.
type Hub struct {
	id     string
	reg    *registry.Registry
	seq    atomic.Uint64
	logger *logging.Logger
	bus    *event.Bus
}

// NewHub creates an empty Hub.
func NewHub(opts ...Option) *Hub {
	hc := &hubConfig{}
	for _, opt := range opts {
		opt(hc)
	}

	id := fmt.Sprintf("hub-%d", hubCounter.Add(1))
	logger := hc.logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	return &Hub{
		id:     id,
		reg:    registry.New(),
		logger: logger.WithHub(id),
		bus:    hc.bus,
	}
}

// ID returns the hub's process-unique identifier, used in logs and events.
func (h *Hub) ID() string { return h.id }

// Register makes the endpoint named in ctx addressable. Registering an
// already registered name is a no-op. It fails only when ctx carries no name.
func (h *Hub) Register(ctx context.Context) error {
	name, ok := NameFrom(ctx)
	if !ok {
		return errors.NewEndpointError("register", errors.ErrUnnamedEndpoint)
	}

	if _, created := h.reg.Register(name); created {
		h.logger.Info("endpoint registered", "endpoint", name)
		h.publish(event.NewEndpointRegisteredEvent(h.id, name))
	}
	return nil
}

// Send delivers payload under label from the endpoint named in ctx to target.
// A target of [mailbox.Broadcast] delivers one copy to every other registered
// endpoint, all sharing one sequence number.
//
// With waitForPickup false the envelope is enqueued and Send returns at once.
// With waitForPickup true Send blocks until the receiver dequeues it. If ctx
// is done first the envelope is withdrawn and a *errors.DeliveryError matching
// errors.ErrCancelled is returned; for a broadcast the fan-out stops there and
// a *errors.BroadcastError reports which targets were reached.
func (h *Hub) Send(ctx context.Context, label, target string, payload any, waitForPickup bool) error {
	sender, ok := NameFrom(ctx)
	if !ok {
		return errors.NewEndpointError("send",
			fmt.Errorf("%w: %w", errors.ErrSenderNotRegistered, errors.ErrUnnamedEndpoint))
	}
	if !h.reg.Contains(sender) {
		return errors.NewEndpointError("send", errors.ErrSenderNotRegistered).WithEndpoint(sender)
	}

	env := mailbox.Envelope{
		Label:    label,
		Sender:   sender,
		Receiver: target,
		Payload:  payload,
	}
	if target == mailbox.Broadcast {
		return h.broadcast(ctx, env, waitForPickup)
	}

	mb, ok := h.reg.Lookup(target)
	if !ok {
		return errors.NewEndpointError("send", errors.ErrReceiverNotRegistered).WithEndpoint(target)
	}
	env.Sequence = h.seq.Add(1)
	return h.deliver(ctx, mb, env, waitForPickup)
}

// broadcast fans env out to a snapshot of the registry, in name order,
// skipping the sender.
func (h *Hub) broadcast(ctx context.Context, env mailbox.Envelope, waitForPickup bool) error {
	env.Sequence = h.seq.Add(1)
	env.Broadcast = true

	entries := h.reg.Entries()
	var delivered []string
	for i, e := range entries {
		if e.Name == env.Sender {
			continue
		}
		if err := h.deliver(ctx, e.Mailbox, env.AddressedTo(e.Name), waitForPickup); err != nil {
			failed := []string{e.Name}
			for _, rest := range entries[i+1:] {
				if rest.Name != env.Sender {
					failed = append(failed, rest.Name)
				}
			}
			return &errors.BroadcastError{
				Sequence:  env.Sequence,
				Delivered: delivered,
				Failed:    failed,
				Errs:      []error{err},
			}
		}
		delivered = append(delivered, e.Name)
	}
	return nil
}

func (h *Hub) deliver(ctx context.Context, mb *mailbox.Mailbox, env mailbox.Envelope, waitForPickup bool) error {
	if !waitForPickup {
		mb.Put(env)
		h.sent(env, false)
		return nil
	}

	if err := mb.Transfer(ctx, env); err != nil {
		derr := errors.Cancelled("send", err).WithTarget(env.Receiver).WithSequence(env.Sequence)
		h.logger.Warn("hand-off cancelled",
			"endpoint", env.Sender,
			"target", env.Receiver,
			"seq", env.Sequence,
			"error", err)
		h.publish(event.NewDeliveryFailedEvent(h.id, "send", env.Sender, env.Receiver, env.Sequence, derr))
		return derr
	}
	h.sent(env, true)
	return nil
}

// Receive dequeues the oldest envelope for the endpoint named in ctx.
//
// With wait true it blocks until an envelope arrives or ctx is done; a done
// ctx yields a *errors.DeliveryError matching errors.ErrCancelled. With wait
// false it never blocks: an empty mailbox returns ok == false and a nil error.
func (h *Hub) Receive(ctx context.Context, wait bool) (env mailbox.Envelope, ok bool, err error) {
	name, named := NameFrom(ctx)
	if !named {
		return mailbox.Envelope{}, false, errors.NewEndpointError("receive",
			fmt.Errorf("%w: %w", errors.ErrReceiverNotRegistered, errors.ErrUnnamedEndpoint))
	}
	mb, found := h.reg.Lookup(name)
	if !found {
		return mailbox.Envelope{}, false,
			errors.NewEndpointError("receive", errors.ErrReceiverNotRegistered).WithEndpoint(name)
	}

	if !wait {
		env, ok = mb.Poll()
		if ok {
			h.received(env)
		}
		return env, ok, nil
	}

	env, err = mb.Take(ctx)
	if err != nil {
		derr := errors.Cancelled("receive", err)
		h.logger.Warn("receive cancelled", "endpoint", name, "error", err)
		h.publish(event.NewDeliveryFailedEvent(h.id, "receive", name, "", 0, derr))
		return mailbox.Envelope{}, false, derr
	}
	h.received(env)
	return env, true, nil
}

// Endpoint returns a handle that performs Hub operations as name.
func (h *Hub) Endpoint(name string) *Endpoint {
	return &Endpoint{hub: h, name: name}
}

// Names returns every registered endpoint name in sorted order.
func (h *Hub) Names() []string { return h.reg.Names() }

// Pending returns the number of envelopes waiting for name, or 0 if name is
// not registered.
func (h *Hub) Pending(name string) int {
	mb, ok := h.reg.Lookup(name)
	if !ok {
		return 0
	}
	return mb.Len()
}

// Stats returns counters for every mailbox, sorted by endpoint name.
func (h *Hub) Stats() []mailbox.Stats {
	entries := h.reg.Entries()
	out := make([]mailbox.Stats, len(entries))
	for i, e := range entries {
		out[i] = e.Mailbox.Stats()
	}
	return out
}

func (h *Hub) sent(env mailbox.Envelope, handoff bool) {
	h.logger.Debug("envelope sent",
		"seq", env.Sequence,
		"label", env.Label,
		"endpoint", env.Sender,
		"target", env.Receiver,
		"handoff", handoff,
		"broadcast", env.Broadcast)
	h.publish(event.NewEnvelopeSentEvent(h.id, env.Sequence, env.Label, env.Sender, env.Receiver, handoff, env.Broadcast))
}

func (h *Hub) received(env mailbox.Envelope) {
	h.logger.Debug("envelope received",
		"seq", env.Sequence,
		"label", env.Label,
		"endpoint", env.Receiver,
		"from", env.Sender)
	h.publish(event.NewEnvelopeReceivedEvent(h.id, env.Sequence, env.Label, env.Sender, env.Receiver))
}

func (h *Hub) publish(e event.Event) {
	if h.bus != nil {
		h.bus.Publish(e)
	}
}
