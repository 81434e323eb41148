package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "endpoint.registered").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeEndpointRegistered = "endpoint.registered"
	TypeEnvelopeSent       = "envelope.sent"
	TypeEnvelopeReceived   = "envelope.received"
	TypeDeliveryFailed     = "delivery.failed"
)

// baseEvent provides common fields for all events.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// EndpointRegisteredEvent is emitted the first time a name registers on a hub.
type EndpointRegisteredEvent struct {
	baseEvent
	HubID    string
	Endpoint string
}

// NewEndpointRegisteredEvent creates an EndpointRegisteredEvent.
func NewEndpointRegisteredEvent(hubID, endpoint string) EndpointRegisteredEvent {
	return EndpointRegisteredEvent{
		baseEvent: newBaseEvent(TypeEndpointRegistered),
		HubID:     hubID,
		Endpoint:  endpoint,
	}
}

// EnvelopeSentEvent is emitted once per delivered envelope copy.
type EnvelopeSentEvent struct {
	baseEvent
	HubID     string
	Sequence  uint64
	Label     string
	Sender    string
	Receiver  string
	Handoff   bool // the sender waited for pickup
	Broadcast bool
}

// NewEnvelopeSentEvent creates an EnvelopeSentEvent.
func NewEnvelopeSentEvent(hubID string, seq uint64, label, sender, receiver string, handoff, broadcast bool) EnvelopeSentEvent {
	return EnvelopeSentEvent{
		baseEvent: newBaseEvent(TypeEnvelopeSent),
		HubID:     hubID,
		Sequence:  seq,
		Label:     label,
		Sender:    sender,
		Receiver:  receiver,
		Handoff:   handoff,
		Broadcast: broadcast,
	}
}

// EnvelopeReceivedEvent is emitted when an endpoint dequeues an envelope.
type EnvelopeReceivedEvent struct {
	baseEvent
	HubID    string
	Sequence uint64
	Label    string
	Sender   string
	Receiver string
}

// NewEnvelopeReceivedEvent creates an EnvelopeReceivedEvent.
func NewEnvelopeReceivedEvent(hubID string, seq uint64, label, sender, receiver string) EnvelopeReceivedEvent {
	return EnvelopeReceivedEvent{
		baseEvent: newBaseEvent(TypeEnvelopeReceived),
		HubID:     hubID,
		Sequence:  seq,
		Label:     label,
		Sender:    sender,
		Receiver:  receiver,
	}
}

// DeliveryFailedEvent is emitted when a blocking send or receive is cancelled.
type DeliveryFailedEvent struct {
	baseEvent
	HubID    string
	Op       string // "send" or "receive"
	Endpoint string // the endpoint that was blocked
	Target   string // empty for receive
	Sequence uint64 // zero for receive
	Err      error
}

// NewDeliveryFailedEvent creates a DeliveryFailedEvent.
func NewDeliveryFailedEvent(hubID, op, endpoint, target string, seq uint64, err error) DeliveryFailedEvent {
	return DeliveryFailedEvent{
		baseEvent: newBaseEvent(TypeDeliveryFailed),
		HubID:     hubID,
		Op:        op,
		Endpoint:  endpoint,
		Target:    target,
		Sequence:  seq,
		Err:       err,
	}
}
