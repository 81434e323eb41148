// Package relay is a named-endpoint message-passing facility for goroutines
// that share an address space.
//
// A [Hub] maps names to mailboxes. An endpoint registers under a name, sends
// envelopes to another endpoint by name or to every other endpoint at once,
// and receives its own envelopes in FIFO order. Sends either return at once
// or hand off, waiting until the receiver has picked the envelope up.
//
//	hub := relay.NewHub()
//
//	a, b := hub.Endpoint("a"), hub.Endpoint("b")
//	_ = a.Register()
//	_ = b.Register()
//
//	_ = a.Send(ctx, "greet", "b", 42, false)
//	_ = a.Broadcast(ctx, "ping", nil, false)
//
//	env, ok, err := b.Receive(ctx, true)
//
// Goroutines calling the Hub directly identify themselves through the
// context with [WithName].
package relay

import (
	"github.com/Iron-Ham/relay/internal/coordination"
	"github.com/Iron-Ham/relay/internal/errors"
	"github.com/Iron-Ham/relay/internal/event"
	"github.com/Iron-Ham/relay/internal/logging"
	"github.com/Iron-Ham/relay/internal/mailbox"
)

type (
	// Hub is one isolated message-passing domain.
	Hub = coordination.Hub
	// Endpoint performs Hub operations as one name.
	Endpoint = coordination.Endpoint
	// Option configures a Hub's observers.
	Option = coordination.Option
	// Envelope is one delivered message.
	Envelope = mailbox.Envelope

	// EndpointError reports an unregistered sender or receiver.
	EndpointError = errors.EndpointError
	// DeliveryError reports a cancelled hand-off or blocking receive.
	DeliveryError = errors.DeliveryError
	// BroadcastError reports a broadcast that stopped part way.
	BroadcastError = errors.BroadcastError

	// Logger receives Hub diagnostics.
	Logger = logging.Logger
	// LoggerOptions configures a Logger.
	LoggerOptions = logging.Options
	// EventBus receives Hub events.
	EventBus = event.Bus
	// Event is a Hub diagnostic event.
	Event = event.Event
)

// Broadcast is the send target that addresses every other registered endpoint.
const Broadcast = mailbox.Broadcast

var (
	ErrSenderNotRegistered   = errors.ErrSenderNotRegistered
	ErrReceiverNotRegistered = errors.ErrReceiverNotRegistered
	ErrCancelled             = errors.ErrCancelled
	ErrUnnamedEndpoint       = errors.ErrUnnamedEndpoint
)

var (
	// NewHub creates an empty Hub.
	NewHub = coordination.NewHub
	// WithName binds an endpoint name to a context.
	WithName = coordination.WithName
	// NameFrom returns the endpoint name bound to a context.
	NameFrom = coordination.NameFrom
	// WithLogger attaches a logger to a Hub.
	WithLogger = coordination.WithLogger
	// WithBus attaches an event bus to a Hub.
	WithBus = coordination.WithBus

	// NewLogger creates a Logger writing to a directory, or stderr.
	NewLogger = logging.New
	// NewEventBus creates an empty EventBus.
	NewEventBus = event.NewBus

	// IsCancelled reports whether an error came from an interrupted operation.
	IsCancelled = errors.IsCancelled
)
