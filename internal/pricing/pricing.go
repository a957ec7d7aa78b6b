// Package pricing derives the monetary totals shown at checkout. It owns no
// state: ComputeTotals is a pure function of the cart snapshot, the shipping
// selection and the active promotion, and is re-run from scratch on every
// input change rather than patched incrementally; the computation is cheap
// and recomputing removes staleness bugs wholesale.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront-cart/internal/cart/domain"
	"github.com/jcmexdev/storefront-cart/internal/promo"
)

// ShippingSelection picks how the order reaches the shopper.
type ShippingSelection string

const (
	// ShippingInternal is in-store pickup; no fee.
	ShippingInternal ShippingSelection = "internal"
	// ShippingExternal is courier delivery at the flat fee.
	ShippingExternal ShippingSelection = "external"
)

// ExternalShippingFee is the flat fee charged for external delivery.
var ExternalShippingFee = decimal.NewFromInt(5000)

// Fee returns the shipping fee for this selection before any waiver.
func (s ShippingSelection) Fee() decimal.Decimal {
	if s == ShippingExternal {
		return ExternalShippingFee
	}
	return decimal.Zero
}

// Totals is the derived pricing record for one (cart, shipping, promotion)
// state. DiscountAmount is what the shopper is shown as saved; for a
// free-shipping promotion it reports the waived fee while the item-level
// discount is zero.
type Totals struct {
	Subtotal          decimal.Decimal
	ShippingDisplayed decimal.Decimal
	DiscountAmount    decimal.Decimal
	ShippingCharged   decimal.Decimal
	GrandTotal        decimal.Decimal
}

// ComputeTotals derives the totals record. promo may be nil (no promotion).
//
// An active promotion whose minimum-order gate the subtotal no longer meets
// contributes nothing; it is not this function's job to revoke it (see
// promo.Controller for why that is deliberate).
//
// A discount never exceeds the base it discounts, so the grand total cannot
// go negative.
func ComputeTotals(cart domain.Snapshot, shipping ShippingSelection, p *promo.Promotion) Totals {
	subtotal := cart.Subtotal()
	shippingDisplayed := shipping.Fee()

	t := Totals{
		Subtotal:          subtotal,
		ShippingDisplayed: shippingDisplayed,
		DiscountAmount:    decimal.Zero,
		ShippingCharged:   shippingDisplayed,
	}

	itemDiscount := decimal.Zero
	if p != nil && p.EligibleFor(subtotal) {
		switch p.Kind {
		case promo.KindPercentage:
			discount := subtotal.Mul(p.Value).Div(decimal.NewFromInt(100))
			t.DiscountAmount = decimal.Min(discount, subtotal)
			itemDiscount = t.DiscountAmount
		case promo.KindFixed:
			t.DiscountAmount = decimal.Min(p.Value, subtotal)
			itemDiscount = t.DiscountAmount
		case promo.KindFreeShipping:
			t.DiscountAmount = shippingDisplayed
			t.ShippingCharged = decimal.Zero
		}
	}

	t.GrandTotal = subtotal.Sub(itemDiscount).Add(t.ShippingCharged)
	return t
}
