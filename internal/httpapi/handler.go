package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/studio101-core/server/internal/assistant"
	"github.com/studio101-core/server/internal/auth"
	"github.com/studio101-core/server/internal/catalog"
	"github.com/studio101-core/server/internal/order"
	"github.com/studio101-core/server/internal/store"
)

// Orders is the part of the order service the HTTP layer drives.
type Orders interface {
	PlaceCart(ctx context.Context, user *auth.User, lines []store.Line) (*order.Placement, error)
	Finalize(ctx context.Context, user *auth.User, c order.Completion, fallback []order.Item) (*order.Payment, error)
}

type Deps struct {
	Catalog   *catalog.Catalog
	Sessions  *assistant.Registry
	Assistant *assistant.Router
	Orders    Orders
	History   order.PaymentHistory

	CookieSecure bool
}

type handler struct {
	catalog      *catalog.Catalog
	sessions     *assistant.Registry
	assistant    *assistant.Router
	orders       Orders
	history      order.PaymentHistory
	cookieSecure bool
	now          func() time.Time
}

// NewHandler builds the storefront API.
func NewHandler(d Deps) (http.Handler, error) {
	switch {
	case d.Catalog == nil:
		return nil, fmt.Errorf("catalog is nil")
	case d.Sessions == nil:
		return nil, fmt.Errorf("session registry is nil")
	case d.Assistant == nil:
		return nil, fmt.Errorf("assistant router is nil")
	case d.Orders == nil:
		return nil, fmt.Errorf("order service is nil")
	case d.History == nil:
		return nil, fmt.Errorf("payment history is nil")
	}
	h := &handler{
		catalog:      d.Catalog,
		sessions:     d.Sessions,
		assistant:    d.Assistant,
		orders:       d.Orders,
		history:      d.History,
		cookieSecure: d.CookieSecure,
		now:          time.Now,
	}
	return h.routes(), nil
}

func (h *handler) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(h.withSession)

		r.Route("/api", func(r chi.Router) {
			r.Post("/chat", h.postChat)
			r.Get("/chat/messages", h.getTranscript)

			r.Get("/products", h.listProducts)
			r.Get("/products/{productID}", h.getProduct)
			r.Get("/bestsellers", h.getBestsellers)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.getCart)
				r.Delete("/", h.clearCart)
				r.Post("/items", h.addCartItem)
				r.Patch("/items/{lineID}", h.setCartQuantity)
				r.Delete("/items/{lineID}", h.removeCartLine)
				r.Post("/items/{lineID}/increment", h.incrementCartLine)
				r.Post("/items/{lineID}/decrement", h.decrementCartLine)
				r.Delete("/products/{productID}", h.removeCartProduct)
				r.Post("/open", h.openCart)
				r.Post("/close", h.closeCart)
				r.Post("/checkout", h.checkoutCart)
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", h.listFavorites)
				r.Put("/{productID}", h.addFavorite)
				r.Delete("/{productID}", h.removeFavorite)
				r.Post("/{productID}/toggle", h.toggleFavorite)
			})

			r.Get("/me/payments", h.listMyPayments)
		})

		r.Get("/payment/success", h.paymentSuccess)
		r.Get("/payment/fail", h.paymentFail)
	})

	return r
}
