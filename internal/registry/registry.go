package registry

import (
	"sort"
	"sync"

	"github.com/Iron-Ham/relay/internal/mailbox"
)

// Entry pairs a registered name with its mailbox.
type Entry struct {
	Name    string
	Mailbox *mailbox.Mailbox
}

// Registry maps endpoint names to mailboxes. Entries are only ever added;
// a registered name keeps the same mailbox for the lifetime of the registry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*mailbox.Mailbox
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*mailbox.Mailbox)}
}

// Register returns the mailbox for name, creating it if the name is new.
// created is true only for the call that inserted the entry; concurrent
// callers registering the same name all receive the same mailbox.
func (r *Registry) Register(name string) (mb *mailbox.Mailbox, created bool) {
	r.mu.RLock()
	mb, ok := r.entries[name]
	r.mu.RUnlock()
	if ok {
		return mb, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if mb, ok := r.entries[name]; ok {
		return mb, false // lost the race
	}
	mb = mailbox.New(name)
	r.entries[name] = mb
	return mb, true
}

// Lookup returns the mailbox registered for name.
func (r *Registry) Lookup(name string) (*mailbox.Mailbox, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mb, ok := r.entries[name]
	return mb, ok
}

// Contains reports whether name is registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Entries returns a snapshot of every registration, sorted by name. Entries
// registered after the snapshot is taken are not included.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	out := make([]Entry, 0, len(r.entries))
	for name, mb := range r.entries {
		out = append(out, Entry{Name: name, Mailbox: mb})
	}
	r.mu.RUnlock()

	// Sort for deterministic fan-out order.
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	entries := r.Entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
