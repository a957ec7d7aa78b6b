package checkout

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderPayload is the finished order handed to the external order service.
// PromoCode and DiscountAmount are present only when the discount is
// actually nonzero for the current state. An active promotion whose
// minimum the cart no longer meets contributes neither.
type OrderPayload struct {
	Items          []OrderPayloadItem `json:"items"`
	TotalAmount    decimal.Decimal    `json:"totalAmount"`
	ShippingFee    decimal.Decimal    `json:"shippingFee"`
	PromoCode      string             `json:"promoCode,omitempty"`
	DiscountAmount *decimal.Decimal   `json:"discountAmount,omitempty"`
}

// OrderPayloadItem is one ordered line.
type OrderPayloadItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
}

// Submitter hands a finalized payload to the external order service. What
// happens to the order afterwards is outside this system.
type Submitter interface {
	Submit(ctx context.Context, payload OrderPayload) error
}

// BuildPayload assembles the order payload from the session's current
// state.
func (s *Session) BuildPayload() OrderPayload {
	snap := s.store.Snapshot()
	totals := s.Totals()

	payload := OrderPayload{
		Items:       make([]OrderPayloadItem, 0, len(snap)),
		TotalAmount: totals.GrandTotal,
		ShippingFee: totals.ShippingCharged,
	}
	for _, item := range snap {
		payload.Items = append(payload.Items, OrderPayloadItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice,
			Name:      item.Name,
		})
	}

	if active, ok := s.promos.Active(); ok && totals.DiscountAmount.IsPositive() {
		discount := totals.DiscountAmount
		payload.PromoCode = active.Code
		payload.DiscountAmount = &discount
	}
	return payload
}
