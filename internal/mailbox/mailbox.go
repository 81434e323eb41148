package mailbox

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
)

// item is one queued envelope. taken is non-nil for hand-off deliveries and
// is closed once a consumer has dequeued the item.
type item struct {
	env     Envelope
	taken   chan struct{}
	claimed bool // guarded by Mailbox.mu
}

// Stats is a point-in-time view of a mailbox's counters.
type Stats struct {
	Owner     string
	Queued    int    // items currently waiting, hand-offs included
	Enqueued  uint64 // items ever accepted
	Dequeued  uint64 // items ever handed to a consumer
	Withdrawn uint64 // hand-offs removed after their sender gave up
}

// Mailbox is an unbounded FIFO of envelopes owned by a single endpoint.
type Mailbox struct {
	owner string

	mu    sync.Mutex
	items *list.List // of *item

	// ready holds at most one wake-up token. Producers drop a token after
	// every push; a consumer that dequeues while items remain passes the
	// token on, so no waiting consumer misses a non-empty queue.
	ready chan struct{}

	enqueued  atomic.Uint64
	dequeued  atomic.Uint64
	withdrawn atomic.Uint64
}

// New creates an empty mailbox owned by the named endpoint.
func New(owner string) *Mailbox {
	return &Mailbox{
		owner: owner,
		items: list.New(),
		ready: make(chan struct{}, 1),
	}
}

// Owner returns the name of the endpoint that consumes this mailbox.
func (m *Mailbox) Owner() string {
	return m.owner
}

// Put appends env and returns without waiting for a consumer. The mailbox
// has no capacity limit, so Put never blocks on space.
func (m *Mailbox) Put(env Envelope) {
	m.push(&item{env: env})
}

// Transfer appends env and blocks until a consumer dequeues it. If ctx is done
// first, the envelope is withdrawn and ctx.Err() is returned. When the
// consumer wins the race with cancellation the transfer counts as completed
// and Transfer returns nil.
func (m *Mailbox) Transfer(ctx context.Context, env Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	it := &item{env: env, taken: make(chan struct{})}
	elem := m.push(it)

	select {
	case <-it.taken:
		return nil
	case <-ctx.Done():
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if it.claimed {
		return nil
	}
	m.items.Remove(elem)
	m.withdrawn.Add(1)
	return ctx.Err()
}

// Take removes and returns the oldest envelope, blocking until one is
// available or ctx is done.
func (m *Mailbox) Take(ctx context.Context) (Envelope, error) {
	for {
		if env, ok := m.Poll(); ok {
			return env, nil
		}
		select {
		case <-m.ready:
		case <-ctx.Done():
			return Envelope{}, ctx.Err()
		}
	}
}

// Poll removes and returns the oldest envelope without blocking. ok is false
// when the mailbox is empty.
func (m *Mailbox) Poll() (env Envelope, ok bool) {
	m.mu.Lock()
	front := m.items.Front()
	if front == nil {
		m.mu.Unlock()
		return Envelope{}, false
	}
	it := m.items.Remove(front).(*item)
	it.claimed = true
	more := m.items.Len() > 0
	m.mu.Unlock()

	m.dequeued.Add(1)
	if it.taken != nil {
		close(it.taken)
	}
	if more {
		m.signal()
	}
	return it.env, true
}

// Len returns the number of envelopes waiting, including parked hand-offs.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items.Len()
}

// Stats returns the mailbox counters.
func (m *Mailbox) Stats() Stats {
	return Stats{
		Owner:     m.owner,
		Queued:    m.Len(),
		Enqueued:  m.enqueued.Load(),
		Dequeued:  m.dequeued.Load(),
		Withdrawn: m.withdrawn.Load(),
	}
}

func (m *Mailbox) push(it *item) *list.Element {
	m.mu.Lock()
	elem := m.items.PushBack(it)
	m.mu.Unlock()

	m.enqueued.Add(1)
	m.signal()
	return elem
}

func (m *Mailbox) signal() {
	select {
	case m.ready <- struct{}{}:
	default:
	}
}
