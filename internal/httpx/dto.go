package httpx

import "github.com/shopspring/decimal"

type AddItemRequest struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Color     string          `json:"color,omitempty"`
	Size      string          `json:"size,omitempty"`
	Quantity  int             `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type ShippingRequest struct {
	Shipping string `json:"shipping"`
}

type PromoRequest struct {
	Code string `json:"code"`
}

type LineItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Color     string          `json:"color,omitempty"`
	Size      string          `json:"size,omitempty"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type TotalsResponse struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	ShippingDisplayed decimal.Decimal `json:"shipping_displayed"`
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
	ShippingCharged   decimal.Decimal `json:"shipping_charged"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
}

type CartResponse struct {
	Items     []LineItemResponse `json:"items"`
	Shipping  string             `json:"shipping"`
	PromoCode string             `json:"promo_code,omitempty"`
	Totals    TotalsResponse     `json:"totals"`
}

// FeedbackResponse carries a promotion or shipping operation's outcome. The
// message is user-facing and the UI renders it verbatim.
type FeedbackResponse struct {
	Applied bool   `json:"applied"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
