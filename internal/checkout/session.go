// Package checkout ties the cart, the shipping selection and the promotion
// controller together into the state the checkout page renders, and builds
// the payload handed to the external order service.
package checkout

import (
	"sync"

	"github.com/jcmexdev/storefront-cart/internal/cart"
	"github.com/jcmexdev/storefront-cart/internal/pricing"
	"github.com/jcmexdev/storefront-cart/internal/promo"
)

// Session is one shopper's checkout state. It owns the shipping selection;
// the cart store and promotion controller own their own state. Totals are
// recomputed from scratch on every read; the session never caches them.
type Session struct {
	store  *cart.Store
	promos *promo.Controller

	mu       sync.Mutex
	shipping pricing.ShippingSelection
}

// NewSession starts with external delivery selected, the storefront's
// default.
func NewSession(store *cart.Store, promos *promo.Controller) *Session {
	return &Session{
		store:    store,
		promos:   promos,
		shipping: pricing.ShippingExternal,
	}
}

// Shipping returns the current shipping selection.
func (s *Session) Shipping() pricing.ShippingSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shipping
}

// SetShipping switches the shipping selection. Switching to store pickup
// while a free-shipping promotion is active invalidates the promotion: it
// is removed and the removal reason is returned so the UI can show it.
func (s *Session) SetShipping(sel pricing.ShippingSelection) (removedReason string) {
	s.mu.Lock()
	s.shipping = sel
	s.mu.Unlock()

	if sel != pricing.ShippingInternal {
		return ""
	}
	if active, ok := s.promos.Active(); ok && active.Kind == promo.KindFreeShipping {
		res := s.promos.Remove("free shipping does not apply to store pickup; the promotion was removed")
		return res.Message
	}
	return ""
}

// ApplyPromo validates a user-entered code against the current subtotal.
func (s *Session) ApplyPromo(code string) promo.Result {
	return s.promos.Apply(code, s.store.Snapshot().Subtotal())
}

// RemovePromo deactivates the active promotion at the shopper's request.
func (s *Session) RemovePromo() promo.Result {
	return s.promos.Remove("")
}

// ActivePromoCode returns the active promotion's code, if any.
func (s *Session) ActivePromoCode() (string, bool) {
	if p, ok := s.promos.Active(); ok {
		return p.Code, true
	}
	return "", false
}

// Totals computes a fresh totals record for the current state.
func (s *Session) Totals() pricing.Totals {
	snap := s.store.Snapshot()
	shipping := s.Shipping()

	var active *promo.Promotion
	if p, ok := s.promos.Active(); ok {
		active = &p
	}
	return pricing.ComputeTotals(snap, shipping, active)
}
