// Package mailbox provides the envelope model and the per-endpoint inbound
// queue used by relay hubs.
//
// # Main Types
//
//   - [Envelope]: one message in transit (sequence, label, sender, receiver,
//     payload)
//   - [Mailbox]: an unbounded FIFO owned by one endpoint and written by any
//     number of producers
//
// # Delivery Modes
//
// A Mailbox accepts items in two ways:
//
//   - [Mailbox.Put] enqueues and returns immediately. The queue is unbounded,
//     so Put never waits for space.
//   - [Mailbox.Transfer] enqueues in FIFO position and then parks the caller
//     until a consumer dequeues that exact envelope, or until the context is
//     done. A cancelled transfer withdraws its envelope; a consumer can never
//     observe an envelope whose sender was told the delivery failed.
//
// Consumers use [Mailbox.Take] (blocking, context-aware) or [Mailbox.Poll]
// (non-blocking). Both remove the oldest item.
//
// # Ordering
//
// Items are dequeued in the order they were enqueued. Producers racing each
// other interleave in lock acquisition order; items from one producer keep
// their relative order.
//
// # Thread Safety
//
// All [Mailbox] methods are safe for concurrent use. More than one goroutine
// may call Take on the same mailbox; each envelope is handed to exactly one
// of them.
package mailbox
