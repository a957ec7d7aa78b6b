// Package cart holds the durable, observable line-item store and the ports
// it needs from the outside world: a Storage backend holding the serialized
// collection under one key, and a Broadcaster carrying the "cart changed"
// signal between store instances that share that backend.
package cart

import (
	"context"

	"github.com/jcmexdev/storefront-cart/internal/cart/domain"
)

// Storage persists the whole line-item collection as one blob. There is no
// per-item write path on purpose: the store always replaces the collection
// wholesale, which is what makes last-writer-wins reconciliation possible.
type Storage interface {
	// Save serializes and writes the full collection.
	Save(ctx context.Context, items []domain.LineItem) error

	// Load reads the full collection. A missing blob is an empty cart, not
	// an error. A corrupt blob is an error; the store logs and discards it.
	Load(ctx context.Context) ([]domain.LineItem, error)
}

// Broadcaster is the cross-context signal channel. The signal carries no
// payload; receivers re-read Storage and replace their state wholesale.
type Broadcaster interface {
	// NotifyChanged announces that this instance just persisted a new
	// collection. Other instances' OnExternalChange handlers fire; the
	// announcing instance's own handlers do not.
	NotifyChanged(ctx context.Context) error

	// OnExternalChange registers a handler invoked when another instance
	// announces a change.
	OnExternalChange(handler func())

	Close() error
}
