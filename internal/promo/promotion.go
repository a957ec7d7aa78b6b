// Package promo holds the promotion-code rules and the controller that
// enforces the "at most one active promotion" policy.
package promo

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind selects how a promotion discounts the order.
type Kind string

const (
	// KindPercentage discounts the subtotal by Value percent.
	KindPercentage Kind = "percentage"
	// KindFixed discounts a fixed Value, capped at the subtotal.
	KindFixed Kind = "fixed"
	// KindFreeShipping waives the external shipping fee.
	KindFreeShipping Kind = "free-shipping"
)

// Promotion is one discount rule. MinOrderAmount of zero means the rule has
// no minimum-order gate.
type Promotion struct {
	Code           string
	Kind           Kind
	Value          decimal.Decimal
	MinOrderAmount decimal.Decimal
	Description    string
}

// EligibleFor reports whether the subtotal satisfies the minimum-order
// gate. Promotions without a gate are always eligible.
func (p Promotion) EligibleFor(subtotal decimal.Decimal) bool {
	if p.MinOrderAmount.IsZero() {
		return true
	}
	return subtotal.GreaterThanOrEqual(p.MinOrderAmount)
}

// Normalize maps user input to registry form: trimmed, upper-cased.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Registry is the static authority on which codes exist. It has no
// mutation path and no failure mode beyond not-found.
type Registry struct {
	rules map[string]Promotion
}

// NewRegistry builds a registry from the given rules, keyed by normalized
// code. With no arguments it holds the storefront's standing promotions.
func NewRegistry(rules ...Promotion) *Registry {
	if len(rules) == 0 {
		rules = []Promotion{
			{
				Code:        "WELCOME10",
				Kind:        KindPercentage,
				Value:       decimal.NewFromInt(10),
				Description: "10% off your order",
			},
			{
				Code:           "SAVE5000",
				Kind:           KindFixed,
				Value:          decimal.NewFromInt(5000),
				MinOrderAmount: decimal.NewFromInt(30000),
				Description:    "5,000 off orders of 30,000 or more",
			},
			{
				Code:           "FREESHIP",
				Kind:           KindFreeShipping,
				MinOrderAmount: decimal.NewFromInt(20000),
				Description:    "free delivery on orders of 20,000 or more",
			},
		}
	}
	r := &Registry{rules: make(map[string]Promotion, len(rules))}
	for _, rule := range rules {
		r.rules[Normalize(rule.Code)] = rule
	}
	return r
}

// Lookup resolves a normalized code to its rule.
func (r *Registry) Lookup(code string) (Promotion, bool) {
	p, ok := r.rules[code]
	return p, ok
}
