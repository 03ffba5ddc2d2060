package payment

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// LocalCheckout approves every payment without a gateway by redirecting
// straight to the success route. Use it only for development.
type LocalCheckout struct {
	successURL string
}

func NewLocalCheckout(successURL string) *LocalCheckout {
	return &LocalCheckout{successURL: successURL}
}

func (l *LocalCheckout) RequestPayment(_ context.Context, req Request) (*Checkout, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invalid payment amount %d", req.Amount)
	}
	u, err := url.Parse(l.successURL)
	if err != nil {
		return nil, fmt.Errorf("parse success url: %w", err)
	}
	q := u.Query()
	q.Set("orderId", req.OrderID)
	q.Set("paymentKey", "local_"+uuid.NewString())
	q.Set("amount", strconv.FormatInt(req.Amount, 10))
	u.RawQuery = q.Encode()

	return &Checkout{OrderID: req.OrderID, RedirectURL: u.String()}, nil
}

var _ Initiator = (*LocalCheckout)(nil)
