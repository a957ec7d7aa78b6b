package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jcmexdev/storefront-cart/internal/cart/domain"
)

// Listener receives the post-mutation snapshot after every successful
// change, whether it originated locally or in another context.
type Listener func(domain.Snapshot)

// Store is the sole mutable source of truth for cart contents. All
// mutations go through the pure domain.Apply transition; the store's job is
// ordering, persistence, subscriber notification and cross-context fan-out.
//
// The in-memory mutation and local subscriber notification complete before
// a mutating call returns. Persistence and broadcasting are best-effort:
// failures are logged, never surfaced to the caller, and do not roll back
// the in-memory state.
type Store struct {
	storage Storage
	bcast   Broadcaster

	mu        sync.Mutex
	items     []domain.LineItem
	listeners map[int]Listener
	nextID    int
}

// NewStore loads the persisted collection and wires the external-change
// handler. A corrupt or unreadable blob degrades to an empty cart: it is
// logged and discarded, never repaired in place, and never fails startup.
func NewStore(ctx context.Context, storage Storage, bcast Broadcaster) *Store {
	s := &Store{
		storage:   storage,
		bcast:     bcast,
		listeners: make(map[int]Listener),
	}

	items, err := storage.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "cart: discarding unreadable stored cart", "error", err)
		items = nil
	}
	s.items = items

	if bcast != nil {
		bcast.OnExternalChange(s.reload)
	}
	return s
}

// AddItem merges quantity units of item into the matching slot, appending a
// new slot when none exists. quantity must be positive; a non-positive
// value is a caller bug and returns domain.ErrInvalidQuantity.
func (s *Store) AddItem(ctx context.Context, item domain.LineItem, quantity int) error {
	return s.apply(ctx, domain.AddItem{Item: item, Quantity: quantity})
}

// RemoveItem deletes the slot with the given key; absent keys are a no-op.
func (s *Store) RemoveItem(ctx context.Context, key domain.ItemKey) error {
	return s.apply(ctx, domain.RemoveItem{Key: key})
}

// SetQuantity replaces a slot's quantity in place, preserving its position.
// A quantity <= 0 removes the slot.
func (s *Store) SetQuantity(ctx context.Context, key domain.ItemKey, quantity int) error {
	return s.apply(ctx, domain.SetQuantity{Key: key, Quantity: quantity})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	return s.apply(ctx, domain.Clear{})
}

// Snapshot returns an ordered copy of the current line items.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers a listener fired after every successful mutation,
// local or remote-origin. The returned func unregisters it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) apply(ctx context.Context, cmd domain.Command) error {
	s.mu.Lock()
	next, changed, err := domain.Apply(s.items, cmd)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !changed {
		// Removing an absent key or clearing an empty cart leaves the
		// collection as it was; persisting and fanning out would be pure
		// noise.
		s.mu.Unlock()
		return nil
	}
	s.items = next
	snap := s.snapshotLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	if err := s.storage.Save(ctx, next); err != nil {
		slog.ErrorContext(ctx, "cart: failed to persist cart", "error", err)
	}

	for _, l := range listeners {
		l(snap)
	}

	if s.bcast != nil {
		if err := s.bcast.NotifyChanged(ctx); err != nil {
			slog.ErrorContext(ctx, "cart: failed to broadcast change", "error", err)
		}
	}
	return nil
}

// reload handles a change announced by another context: re-read the blob
// and replace local state wholesale. Last writer wins; no field-level merge
// is attempted. An unreadable blob keeps the current local state.
func (s *Store) reload() {
	ctx := context.Background()
	items, err := s.storage.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "cart: ignoring external change with unreadable payload", "error", err)
		return
	}

	s.mu.Lock()
	s.items = items
	snap := s.snapshotLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func (s *Store) snapshotLocked() domain.Snapshot {
	snap := make(domain.Snapshot, len(s.items))
	copy(snap, s.items)
	return snap
}

func (s *Store) listenersLocked() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}
