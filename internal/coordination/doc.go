// Package coordination provides the Hub, the shared state through which named
// endpoints exchange envelopes.
//
// A Hub owns a name registry and one mailbox per registered endpoint. Each
// Hub is isolated; there is no process-global registry.
//
// Goroutines are anonymous, so the caller's endpoint name travels in the
// context:
//
//	hub := coordination.NewHub(coordination.WithLogger(logger))
//
//	ctx := coordination.WithName(context.Background(), "worker")
//	if err := hub.Register(ctx); err != nil {
//	    return err
//	}
//
//	// Fire-and-forget to one endpoint
//	err := hub.Send(ctx, "job", "scheduler", payload, false)
//
//	// Hand-off to every other endpoint; blocks until each picks it up
//	err = hub.Send(ctx, "stop", mailbox.Broadcast, nil, true)
//
//	// Block for the next envelope
//	env, _, err := hub.Receive(ctx, true)
//
// The [Endpoint] handle binds the name once:
//
//	w := hub.Endpoint("worker")
//	_ = w.Register()
//	env, ok, err := w.Receive(ctx, false)
//
// # Errors
//
// Unregistered senders and receivers produce *errors.EndpointError.
// Interrupted hand-offs and blocking receives produce *errors.DeliveryError
// matching errors.ErrCancelled and the context error. A broadcast interrupted
// part way produces *errors.BroadcastError. A polling receive on an empty
// mailbox is not an error.
//
// # Observability
//
// WithLogger and WithBus attach observers. Registration is logged at INFO,
// sends and receives at DEBUG, cancellations at WARN. The bus receives the
// event types defined in package event.
package coordination
