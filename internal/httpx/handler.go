package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/storefront-cart/internal/cart"
	"github.com/jcmexdev/storefront-cart/internal/cart/domain"
	"github.com/jcmexdev/storefront-cart/internal/checkout"
	"github.com/jcmexdev/storefront-cart/internal/httpx/middlewares"
	"github.com/jcmexdev/storefront-cart/internal/pricing"
)

// Handler is the HTTP surface the storefront UI talks to. It exposes
// exactly the boundary the presentation layer may depend on: cart
// mutations, the snapshot with fresh totals, promotion apply/remove with
// their feedback strings, and checkout submission.
type Handler struct {
	store     *cart.Store
	session   *checkout.Session
	submitter checkout.Submitter
}

func NewHandler(store *cart.Store, session *checkout.Session, submitter checkout.Submitter) *Handler {
	return &Handler{store: store, session: session, submitter: submitter}
}

// GetCart returns the current snapshot with freshly computed totals.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// AddItem adds quantity units of a product variant to the cart, merging
// into the existing slot when the variant is already present.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "product_id is required")
		return
	}

	item := domain.LineItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		ImageURL:  req.ImageURL,
		Color:     req.Color,
		Size:      req.Size,
	}
	if err := h.store.AddItem(r.Context(), item, req.Quantity); err != nil {
		if errors.Is(err, domain.ErrInvalidQuantity) {
			writeError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be a positive integer")
			return
		}
		writeError(w, http.StatusInternalServerError, "cart_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// SetQuantity replaces a slot's quantity; zero or below removes the slot.
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if err := h.store.SetQuantity(r.Context(), itemKeyFromRequest(r), req.Quantity); err != nil {
		writeError(w, http.StatusInternalServerError, "cart_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// RemoveItem deletes a slot; removing an absent slot is not an error.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveItem(r.Context(), itemKeyFromRequest(r)); err != nil {
		writeError(w, http.StatusInternalServerError, "cart_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "cart_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// SetShipping switches between store pickup and delivery. If the switch
// forces an active promotion off (free shipping with pickup), the feedback
// message says so.
func (h *Handler) SetShipping(w http.ResponseWriter, r *http.Request) {
	var req ShippingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	var sel pricing.ShippingSelection
	switch req.Shipping {
	case string(pricing.ShippingInternal):
		sel = pricing.ShippingInternal
	case string(pricing.ShippingExternal):
		sel = pricing.ShippingExternal
	default:
		writeError(w, http.StatusBadRequest, "invalid_shipping", "shipping must be \"internal\" or \"external\"")
		return
	}

	reason := h.session.SetShipping(sel)
	writeJSON(w, http.StatusOK, FeedbackResponse{Applied: true, Message: reason})
}

// ApplyPromo validates a user-entered code. All failure modes (unknown
// code, minimum not met, one already active) come back as feedback
// messages, never as errors.
func (h *Handler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req PromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	res := h.session.ApplyPromo(req.Code)
	writeJSON(w, http.StatusOK, FeedbackResponse{Applied: res.Applied, Message: res.Message})
}

// RemovePromo deactivates the active promotion.
func (h *Handler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	res := h.session.RemovePromo()
	writeJSON(w, http.StatusOK, FeedbackResponse{Applied: res.Applied, Message: res.Message})
}

// Checkout builds the order payload from the current state and hands it to
// the order service.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	payload := h.session.BuildPayload()
	if len(payload.Items) == 0 {
		writeError(w, http.StatusBadRequest, "empty_cart", "cannot check out an empty cart")
		return
	}

	// Comma-ok keeps a missing middleware from panicking here.
	requestID, _ := r.Context().Value(middlewares.ContextKeyRequestID).(string)
	slog.InfoContext(r.Context(), "submitting order",
		"request_id", requestID,
		"items", len(payload.Items),
		"total", payload.TotalAmount,
		"promo_code", payload.PromoCode,
	)

	if err := h.submitter.Submit(r.Context(), payload); err != nil {
		writeError(w, http.StatusBadGateway, "order_service_error", err.Error())
		return
	}

	if err := h.store.Clear(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "failed to clear cart after checkout", "error", err)
	}
	h.session.RemovePromo()

	writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) cartResponse() CartResponse {
	snap := h.store.Snapshot()
	totals := h.session.Totals()

	resp := CartResponse{
		Items:    make([]LineItemResponse, 0, len(snap)),
		Shipping: string(h.session.Shipping()),
		Totals: TotalsResponse{
			Subtotal:          totals.Subtotal,
			ShippingDisplayed: totals.ShippingDisplayed,
			DiscountAmount:    totals.DiscountAmount,
			ShippingCharged:   totals.ShippingCharged,
			GrandTotal:        totals.GrandTotal,
		},
	}
	if code, ok := h.session.ActivePromoCode(); ok {
		resp.PromoCode = code
	}
	for _, item := range snap {
		resp.Items = append(resp.Items, LineItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			ImageURL:  item.ImageURL,
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		})
	}
	return resp
}

// itemKeyFromRequest rebuilds the slot identity from the URL: the product
// ID is the path segment, the variant selectors ride as query params.
func itemKeyFromRequest(r *http.Request) domain.ItemKey {
	return domain.ItemKey{
		ProductID: chi.URLParam(r, "productID"),
		Color:     r.URL.Query().Get("color"),
		Size:      r.URL.Query().Get("size"),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
