package domain

import (
	"github.com/shopspring/decimal"
)

// ItemKey identifies one cart slot: a product in one specific variant.
// Two line items with equal keys are the same slot and are merged on add.
type ItemKey struct {
	ProductID string
	Color     string
	Size      string
}

// LineItem is one cart slot. Display fields are copied from the product at
// the moment it was added and are never re-fetched, so the cart tolerates
// the catalog changing the price or dropping the product afterwards.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Color     string          `json:"color,omitempty"`
	Size      string          `json:"size,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Key derives the slot identity from the product and its variant selectors.
func (i LineItem) Key() ItemKey {
	return ItemKey{ProductID: i.ProductID, Color: i.Color, Size: i.Size}
}

func (i LineItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Snapshot is an ordered, point-in-time copy of the line-item collection.
// It is a value: mutating a snapshot never affects the live cart.
type Snapshot []LineItem

// Subtotal sums unit price times quantity over all line items.
func (s Snapshot) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s {
		total = total.Add(item.Subtotal())
	}
	return total
}
