package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/storefront-cart/internal/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", handler.GetCart)
		r.Delete("/", handler.ClearCart)
		r.Post("/items", handler.AddItem)
		r.Put("/items/{productID}", handler.SetQuantity)
		r.Delete("/items/{productID}", handler.RemoveItem)
		r.Put("/shipping", handler.SetShipping)
		r.Post("/promotion", handler.ApplyPromo)
		r.Delete("/promotion", handler.RemovePromo)
	})
	r.Post("/checkout", handler.Checkout)

	// The otelhttp wrapper opens a server span per request; without it the
	// exporter and the trace_id/span_id log attributes have nothing to
	// carry.
	return otelhttp.NewHandler(r, "cart-service")
}
