// Package registry maps endpoint names to their mailboxes.
//
// A [Registry] is the name service of a single hub. Registration is
// idempotent: the first call for a name creates its [mailbox.Mailbox], every
// later call (from any goroutine) returns that same mailbox. There is no
// unregister; names live as long as the registry.
//
// # Basic Usage
//
//	reg := registry.New()
//
//	mb, created := reg.Register("worker")
//
//	// Resolve a target
//	mb, ok := reg.Lookup("worker")
//
//	// Snapshot for broadcast fan-out, sorted by name
//	for _, e := range reg.Entries() { ... }
//
// # Thread Safety
//
// All [Registry] methods are safe for concurrent use via an internal
// sync.RWMutex. Lookups take the read lock only.
package registry
