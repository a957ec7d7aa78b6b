// Package memory is a Storage backend that keeps the serialized cart in
// process memory. It exists for tests and for running the service without
// any external backend; contents do not survive a restart.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jcmexdev/storefront-cart/internal/cart/domain"
)

// Storage holds the cart blob in memory. It round-trips through JSON like
// the durable backends so serialization bugs surface in tests too.
type Storage struct {
	mu   sync.Mutex
	blob []byte
}

func New() *Storage {
	return &Storage{}
}

func (s *Storage) Save(ctx context.Context, items []domain.LineItem) error {
	blob, err := json.Marshal(items)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = blob
	return nil
}

func (s *Storage) Load(ctx context.Context) ([]domain.LineItem, error) {
	s.mu.Lock()
	blob := s.blob
	s.mu.Unlock()

	if blob == nil {
		return nil, nil
	}
	var items []domain.LineItem
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Corrupt overwrites the stored blob with arbitrary bytes. Tests use it to
// exercise the degrade-to-empty path.
func (s *Storage) Corrupt(blob []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = blob
}
