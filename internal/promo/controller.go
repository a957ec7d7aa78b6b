package promo

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Result is the user-facing outcome of a controller operation. Message is
// rendered verbatim by the presentation layer; Applied reports whether the
// operation changed the active promotion.
type Result struct {
	Applied bool
	Message string
}

// Controller owns the single active-promotion slot.
//
// One deliberate quirk is preserved from the storefront this was built for:
// once a promotion is active, the subtotal later dropping below its minimum
// does NOT revoke it. The discount simply stops applying numerically (the
// pricing engine computes zero for it) while the promotion stays active, so
// the shopper keeps it if the cart grows back. Eager revocation was judged
// too aggressive for checkout UX; do not "fix" this without product sign-off.
type Controller struct {
	registry *Registry

	mu     sync.Mutex
	active *Promotion
}

func NewController(registry *Registry) *Controller {
	return &Controller{registry: registry}
}

// Apply validates a user-entered code against the registry and the current
// subtotal. It never replaces an already-active promotion: the caller must
// remove the active one first.
func (c *Controller) Apply(code string, subtotal decimal.Decimal) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		return Result{Message: "a promotion is already applied; remove it first"}
	}

	normalized := Normalize(code)
	rule, ok := c.registry.Lookup(normalized)
	if !ok {
		return Result{Message: fmt.Sprintf("%q is not a valid promotion code", normalized)}
	}

	if !rule.EligibleFor(subtotal) {
		shortfall := rule.MinOrderAmount.Sub(subtotal)
		return Result{Message: fmt.Sprintf("add %s more to your order to use %s", shortfall, rule.Code)}
	}

	c.active = &rule
	return Result{
		Applied: true,
		Message: fmt.Sprintf("%s applied: %s", rule.Code, rule.Description),
	}
}

// Remove deactivates the active promotion. reason, when non-empty, is
// surfaced to the shopper (used when an external event such as switching to
// store pickup forces the removal). Removing with nothing active is a no-op
// with a neutral message.
func (c *Controller) Remove(reason string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return Result{Message: "no promotion is applied"}
	}
	c.active = nil

	msg := reason
	if msg == "" {
		msg = "promotion removed"
	}
	return Result{Applied: true, Message: msg}
}

// Active returns the active promotion, if any. The bool follows the
// comma-ok convention.
func (c *Controller) Active() (Promotion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return Promotion{}, false
	}
	return *c.active, true
}
