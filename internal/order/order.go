package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studio101-core/server/internal/catalog"
	"github.com/studio101-core/server/internal/store"
)

var (
	ErrUnauthenticated  = errors.New("order: login required")
	ErrEmptyOrder       = errors.New("order: no items")
	ErrOrderNotFound    = errors.New("order: not found")
	ErrAlreadyFinalized = errors.New("order: already finalized")
	ErrAmountMismatch   = errors.New("order: amount mismatch")
	ErrUserMismatch     = errors.New("order: placed by another user")
	ErrInvalidQuantity  = errors.New("order: quantity out of range")
	ErrAmountOverflow   = errors.New("order: amount out of range")
)

// Item is one purchased product as stored with a payment.
type Item struct {
	ProductID    int    `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductImage string `json:"product_image"`
	Price        int64  `json:"price"`
	Quantity     int    `json:"quantity"`
}

func ItemFromProduct(p catalog.Product, quantity int) Item {
	if quantity < 1 {
		quantity = 1
	}
	return Item{
		ProductID:    p.ID,
		ProductName:  p.Name,
		ProductImage: p.Image,
		Price:        p.PriceValue(),
		Quantity:     quantity,
	}
}

// ItemsFromCart converts cart lines into order items.
func ItemsFromCart(lines []store.Line) []Item {
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, ItemFromProduct(l.Product, l.Quantity))
	}
	return items
}

// Total is the sum of price times quantity over items. It fails with
// ErrAmountOverflow instead of wrapping around.
func Total(items []Item) (int64, error) {
	var total int64
	for _, it := range items {
		if it.Price < 0 || it.Quantity < 0 {
			return 0, fmt.Errorf("%w: negative line for product %d", ErrAmountOverflow, it.ProductID)
		}
		if it.Price > 0 && int64(it.Quantity) > math.MaxInt64/it.Price {
			return 0, fmt.Errorf("%w: product %d x %d", ErrAmountOverflow, it.ProductID, it.Quantity)
		}
		sub := it.Price * int64(it.Quantity)
		if total > math.MaxInt64-sub {
			return 0, ErrAmountOverflow
		}
		total += sub
	}
	return total, nil
}

// CheckQuantities rejects items with a quantity outside 1..limit.
func CheckQuantities(items []Item, limit int) error {
	for _, it := range items {
		if it.Quantity < 1 || it.Quantity > limit {
			return fmt.Errorf("%w: %d units of product %d, limit %d", ErrInvalidQuantity, it.Quantity, it.ProductID, limit)
		}
	}
	return nil
}

// Pending is the order record stashed between payment initiation and completion.
type Pending struct {
	OrderID     string    `json:"orderId"`
	UserID      string    `json:"userId"`
	OrderName   string    `json:"orderName"`
	Items       []Item    `json:"items"`
	TotalAmount int64     `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Payment is a completed purchase in the durable store.
type Payment struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"user_id"`
	Items       []Item    `json:"items"`
	TotalAmount int64     `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p Payment) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return errors.New("payment: user id is required")
	}
	if p.TotalAmount < 0 {
		return fmt.Errorf("payment: negative total %d", p.TotalAmount)
	}
	return nil
}

// Completion carries the query parameters of the payment success route.
type Completion struct {
	OrderID    string
	PaymentKey string
	Amount     int64
}

// NewOrderID returns ORDER_<unix-ms>_<suffix>_<8 hex>.
func NewOrderID(now time.Time, suffix int) string {
	rnd := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("ORDER_%d_%d_%s", now.UnixMilli(), suffix, rnd)
}

// ProductOrderName names a single-product order: "<name> <qty>개".
func ProductOrderName(name string, quantity int) string {
	return fmt.Sprintf("%s %d개", name, quantity)
}

// CartOrderName names a cart order after its first line: "<first> 외 N개".
func CartOrderName(items []Item) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0].ProductName
	default:
		return fmt.Sprintf("%s 외 %d개", items[0].ProductName, len(items)-1)
	}
}

type PendingStore interface {
	Save(ctx context.Context, p Pending, ttl time.Duration) error
	// Load returns ErrOrderNotFound when nothing is stashed under orderID.
	Load(ctx context.Context, orderID string) (*Pending, error)
	Delete(ctx context.Context, orderID string) error
	// Claim sets the finalization flag and reports whether this caller won it.
	Claim(ctx context.Context, orderID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, orderID string) error
}

type PaymentStore interface {
	InsertPayment(ctx context.Context, p Payment) (string, error)
}

// StockStore lowers stock, never below zero. Products without stock
// tracking are not an error.
type StockStore interface {
	DecrementStock(ctx context.Context, productID, quantity int) error
}

type PaymentHistory interface {
	ListPayments(ctx context.Context, userID string) ([]Payment, error)
	// PurchaseCounts sums purchased quantity per product id.
	PurchaseCounts(ctx context.Context) (map[int]int, error)
}

// Ledger is a durable store that can serve every order concern.
type Ledger interface {
	PaymentStore
	StockStore
	PaymentHistory
}
