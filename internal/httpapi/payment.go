package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/studio101-core/server/internal/auth"
	errx "github.com/studio101-core/server/internal/core/error"
	"github.com/studio101-core/server/internal/order"
	"github.com/studio101-core/server/internal/payment"
	"github.com/studio101-core/server/internal/store"
)

type paymentResult struct {
	Message string         `json:"message"`
	OrderID string         `json:"orderId"`
	Payment *order.Payment `json:"payment,omitempty"`
}

// paymentSuccess is where the gateway sends the customer after approval.
// The session cart stands in for a pending order that has expired, and is
// emptied once the payment is recorded.
func (h *handler) paymentSuccess(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c := order.Completion{
		OrderID:    strings.TrimSpace(q.Get("orderId")),
		PaymentKey: strings.TrimSpace(q.Get("paymentKey")),
	}
	if c.OrderID == "" {
		writeError(w, r, errx.BadRequest(msgOrderNotFound))
		return
	}
	if raw := strings.TrimSpace(q.Get("amount")); raw != "" {
		amount, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || amount < 0 {
			writeError(w, r, errx.BadRequest(msgAmountMismatch))
			return
		}
		c.Amount = amount
	}

	s := sessionFrom(r)
	var fallback []order.Item
	s.WithCart(func(cart *store.Cart) { fallback = order.ItemsFromCart(cart.Lines()) })

	p, err := h.orders.Finalize(r.Context(), auth.FromContext(r.Context()), c, fallback)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.WithCart((*store.Cart).Clear)

	writeJSON(w, http.StatusOK, paymentResult{Message: msgPaymentComplete, OrderID: c.OrderID, Payment: p})
}

type paymentFailure struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	OrderID string `json:"orderId,omitempty"`
}

func (h *handler) paymentFail(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	code := strings.TrimSpace(q.Get("code"))
	writeJSON(w, http.StatusOK, paymentFailure{
		Code:    code,
		Message: payment.FailureMessage(code, q.Get("message")),
		OrderID: strings.TrimSpace(q.Get("orderId")),
	})
}
