package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studio101-core/server/internal/assistant"
	"github.com/studio101-core/server/internal/auth"
	errx "github.com/studio101-core/server/internal/core/error"
	"github.com/studio101-core/server/internal/payment"
	"github.com/studio101-core/server/internal/store"
)

type cartView struct {
	Items       []store.Line `json:"items"`
	TotalCount  int          `json:"totalCount"`
	TotalAmount int64        `json:"totalAmount"`
	Open        bool         `json:"open"`
}

func viewCart(c *store.Cart) cartView {
	return cartView{
		Items:       c.Lines(),
		TotalCount:  c.TotalCount(),
		TotalAmount: c.TotalAmount(),
		Open:        c.IsOpen(),
	}
}

// updateCart applies fn to the session cart and responds with the result.
func updateCart(w http.ResponseWriter, r *http.Request, fn func(*store.Cart)) {
	var view cartView
	sessionFrom(r).WithCart(func(c *store.Cart) {
		fn(c)
		view = viewCart(c)
	})
	writeJSON(w, http.StatusOK, view)
}

func (h *handler) getCart(w http.ResponseWriter, r *http.Request) {
	updateCart(w, r, func(*store.Cart) {})
}

func (h *handler) clearCart(w http.ResponseWriter, r *http.Request) {
	updateCart(w, r, (*store.Cart).Clear)
}

type addCartItemRequest struct {
	ProductID int `json:"product_id"`
}

type addCartItemResponse struct {
	Result string   `json:"result"`
	Cart   cartView `json:"cart"`
}

func (h *handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, ok := h.catalog.ByID(req.ProductID)
	if !ok {
		writeError(w, r, errx.NotFound(msgProductNotFound))
		return
	}

	var resp addCartItemResponse
	sessionFrom(r).WithCart(func(c *store.Cart) {
		resp.Result = c.Add(p).String()
		resp.Cart = viewCart(c)
	})
	writeJSON(w, http.StatusOK, resp)
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handler) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Quantity < 1 || req.Quantity > store.MaxQuantity {
		writeError(w, r, errx.BadRequest(msgQuantityRange))
		return
	}
	h.withLine(w, r, func(c *store.Cart, lineID string) { c.SetQuantity(lineID, req.Quantity) })
}

func (h *handler) removeCartLine(w http.ResponseWriter, r *http.Request) {
	updateCart(w, r, func(c *store.Cart) { c.Remove(chi.URLParam(r, "lineID")) })
}

func (h *handler) incrementCartLine(w http.ResponseWriter, r *http.Request) {
	h.withLine(w, r, (*store.Cart).Increment)
}

func (h *handler) decrementCartLine(w http.ResponseWriter, r *http.Request) {
	h.withLine(w, r, (*store.Cart).Decrement)
}

// withLine runs fn on an existing cart line, answering 404 when it is gone.
func (h *handler) withLine(w http.ResponseWriter, r *http.Request, fn func(*store.Cart, string)) {
	lineID := chi.URLParam(r, "lineID")
	var (
		view  cartView
		found bool
	)
	sessionFrom(r).WithCart(func(c *store.Cart) {
		if _, found = c.Line(lineID); found {
			fn(c, lineID)
		}
		view = viewCart(c)
	})
	if !found {
		writeError(w, r, errx.NotFound(msgLineNotFound))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handler) removeCartProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := h.productParam(r)
	if !ok {
		writeError(w, r, errx.NotFound(msgProductNotFound))
		return
	}
	updateCart(w, r, func(c *store.Cart) { c.RemoveProduct(p.ID) })
}

func (h *handler) openCart(w http.ResponseWriter, r *http.Request) {
	updateCart(w, r, (*store.Cart).Open)
}

func (h *handler) closeCart(w http.ResponseWriter, r *http.Request) {
	updateCart(w, r, (*store.Cart).Close)
}

type checkoutResponse struct {
	OrderID   string            `json:"orderId"`
	OrderName string            `json:"orderName"`
	Amount    int64             `json:"amount"`
	Checkout  *payment.Checkout `json:"checkout"`
}

// checkoutCart starts one payment for every line in the cart. The cart is
// kept until the payment succeeds.
func (h *handler) checkoutCart(w http.ResponseWriter, r *http.Request) {
	user := auth.FromContext(r.Context())
	if user == nil {
		writeError(w, r, errx.New(nil, http.StatusUnauthorized, assistant.MsgLoginRequired))
		return
	}

	var lines []store.Line
	sessionFrom(r).WithCart(func(c *store.Cart) { lines = c.Lines() })
	if len(lines) == 0 {
		writeError(w, r, errx.BadRequest(msgCartEmpty))
		return
	}

	placement, err := h.orders.PlaceCart(r.Context(), user, lines)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{
		OrderID:   placement.OrderID,
		OrderName: placement.OrderName,
		Amount:    placement.Amount,
		Checkout:  placement.Checkout,
	})
}
