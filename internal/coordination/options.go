package coordination

import (
	"github.com/Iron-Ham/relay/internal/event"
	"github.com/Iron-Ham/relay/internal/logging"
)

// hubConfig holds optional observers for a Hub. None of them change delivery
// behaviour.
type hubConfig struct {
	logger *logging.Logger
	bus    *event.Bus
}

// Option configures a Hub.
type Option func(*hubConfig)

// WithLogger sets the logger for registration and delivery diagnostics.
// If nil, nothing is logged.
func WithLogger(l *logging.Logger) Option {
	return func(c *hubConfig) { c.logger = l }
}

// WithBus sets the event bus that receives registration and delivery events.
// If nil, no events are published.
func WithBus(b *event.Bus) Option {
	return func(c *hubConfig) { c.bus = b }
}
