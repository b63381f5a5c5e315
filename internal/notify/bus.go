// Package notify is the process-wide channel of transient user messages.
//
// The bus keeps the list of live notifications and pushes a snapshot of it
// to every subscriber whenever it changes. Notifications never expire on
// their own; they leave the list only through Remove or Clear.
//
// The application creates one bus at startup with NewBus and injects it
// into every component that publishes or displays. A Subscription's Unsubscribe blocks until any in-flight
// delivery to that subscriber has finished, and no delivery starts after it
// returns.
package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSuccess, KindError, KindWarning, KindInfo:
		return true
	}
	return false
}

// Notification is a single transient message.
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Bus holds live notifications and their subscribers.
type Bus struct {
	mu      sync.Mutex
	items   []Notification
	version uint64
	subs    map[*Subscription]struct{}
	now     func() time.Time
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[*Subscription]struct{}),
		now:  time.Now,
	}
}

// Publish appends a notification and returns its ID.
func (b *Bus) Publish(kind Kind, message string) string {
	if !kind.Valid() {
		kind = KindInfo
	}
	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: b.now(),
	}

	b.mu.Lock()
	b.items = append(b.items, n)
	b.mu.Unlock()

	b.broadcast()
	return n.ID
}

// Success publishes a success notification.
func (b *Bus) Success(message string) string { return b.Publish(KindSuccess, message) }

// Error publishes an error notification.
func (b *Bus) Error(message string) string { return b.Publish(KindError, message) }

// Warning publishes a warning notification.
func (b *Bus) Warning(message string) string { return b.Publish(KindWarning, message) }

// Info publishes an informational notification.
func (b *Bus) Info(message string) string { return b.Publish(KindInfo, message) }

// Remove dismisses the notification with the given ID.
// Reports whether it was present.
func (b *Bus) Remove(id string) bool {
	b.mu.Lock()
	idx := slices.IndexFunc(b.items, func(n Notification) bool { return n.ID == id })
	if idx < 0 {
		b.mu.Unlock()
		return false
	}
	b.items = slices.Delete(b.items, idx, idx+1)
	b.mu.Unlock()

	b.broadcast()
	return true
}

// Clear dismisses every notification.
func (b *Bus) Clear() {
	b.mu.Lock()
	b.items = nil
	b.mu.Unlock()
	b.broadcast()
}

// List returns a copy of the live notifications, oldest first.
func (b *Bus) List() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// snapshotLocked copies the live list; the copy is never nil.
func (b *Bus) snapshotLocked() []Notification {
	return append(make([]Notification, 0, len(b.items)), b.items...)
}

// Subscribe registers fn and immediately delivers the current list to it.
// fn must not call back into Unsubscribe on its own subscription.
func (b *Bus) Subscribe(fn func([]Notification)) *Subscription {
	s := &Subscription{bus: b, fn: fn}

	b.mu.Lock()
	b.subs[s] = struct{}{}
	items, version := b.snapshotLocked(), b.version
	b.mu.Unlock()

	s.deliver(items, version)
	return s
}

// Subscribers returns the number of active subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// broadcast pushes the current list to every subscriber. Delivery happens
// outside the bus lock so slow subscribers do not block publishers.
func (b *Bus) broadcast() {
	b.mu.Lock()
	b.version++
	items, version := b.snapshotLocked(), b.version
	subs := make([]*Subscription, 0, len(b.subs))
	for s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()

	for _, s := range subs {
		s.deliver(items, version)
	}
}

// Subscription is a registered consumer of bus snapshots.
type Subscription struct {
	bus *Bus
	fn  func([]Notification)

	mu     sync.Mutex
	closed bool
	seen   uint64
}

// deliver invokes the callback unless the subscription is closed or a
// newer snapshot was already delivered.
func (s *Subscription) deliver(items []Notification, version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || (version < s.seen) {
		return
	}
	s.seen = version
	s.fn(items)
}

// Unsubscribe releases the subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.bus.mu.Lock()
	delete(s.bus.subs, s)
	s.bus.mu.Unlock()

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
