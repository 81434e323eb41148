// Package event provides a synchronous pub-sub bus for relay diagnostics.
//
// A Hub publishes to a Bus when it is built with one; nothing in the
// delivery path depends on a subscriber being present. Subscribers observe
// registrations and deliveries without holding a reference to the Hub.
//
// # Event Types
//
//   - [EndpointRegisteredEvent] ("endpoint.registered"): a name was bound to a
//     new mailbox. Not emitted for idempotent re-registration.
//   - [EnvelopeSentEvent] ("envelope.sent"): one envelope copy reached a
//     mailbox (queued, or taken by the receiver for hand-off sends).
//   - [EnvelopeReceivedEvent] ("envelope.received"): an endpoint dequeued an
//     envelope.
//   - [DeliveryFailedEvent] ("delivery.failed"): a hand-off send or blocking
//     receive was cancelled.
//
// # Thread Safety
//
// The [Bus] is safe for concurrent use. Handlers run synchronously on the
// publishing goroutine, so a slow handler slows the sender down. A panicking
// handler is recovered and logged; the remaining handlers still run.
//
//	bus := event.NewBus()
//	bus.Subscribe(event.TypeEndpointRegistered, func(e event.Event) {
//	    reg := e.(event.EndpointRegisteredEvent)
//	    fmt.Println("registered:", reg.Endpoint)
//	})
package event
