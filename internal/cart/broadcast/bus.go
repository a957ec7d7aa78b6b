// Package broadcast provides the change-signal channel between cart store
// instances sharing one storage backend: an in-process Bus for instances in
// the same process, and a Redis pub/sub Channel for instances across
// processes. Signals carry only the sender's origin ID, never a payload,
// so receivers always reconcile by re-reading storage.
package broadcast

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Bus fans a change signal out to every joined member except the sender.
type Bus struct {
	mu      sync.Mutex
	members map[string]*Member
}

func NewBus() *Bus {
	return &Bus{members: make(map[string]*Member)}
}

// Join adds a participant. Each cart store instance joins once and uses the
// returned Member as its Broadcaster.
func (b *Bus) Join() *Member {
	m := &Member{bus: b, origin: uuid.NewString()}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.members[m.origin] = m
	return m
}

func (b *Bus) dispatch(origin string) {
	b.mu.Lock()
	receivers := make([]*Member, 0, len(b.members))
	for id, m := range b.members {
		if id != origin {
			receivers = append(receivers, m)
		}
	}
	b.mu.Unlock()

	for _, m := range receivers {
		m.fire()
	}
}

// Member is one participant's handle on the bus.
type Member struct {
	bus    *Bus
	origin string

	mu       sync.Mutex
	handlers []func()
}

// NotifyChanged signals every other member synchronously.
func (m *Member) NotifyChanged(ctx context.Context) error {
	m.bus.dispatch(m.origin)
	return nil
}

// OnExternalChange registers a handler for other members' signals.
func (m *Member) OnExternalChange(handler func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, handler)
}

// Close leaves the bus; the member receives no further signals.
func (m *Member) Close() error {
	m.bus.mu.Lock()
	defer m.bus.mu.Unlock()
	delete(m.bus.members, m.origin)
	return nil
}

func (m *Member) fire() {
	m.mu.Lock()
	handlers := make([]func(), len(m.handlers))
	copy(handlers, m.handlers)
	m.mu.Unlock()

	for _, h := range handlers {
		h()
	}
}
