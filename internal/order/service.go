package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/studio101-core/server/internal/auth"
	"github.com/studio101-core/server/internal/catalog"
	"github.com/studio101-core/server/internal/payment"
	"github.com/studio101-core/server/internal/store"
	logx "github.com/studio101-core/server/pkg/logger"
)

type Config struct {
	PendingTTL   time.Duration `envconfig:"ORDER_PENDING_TTL" default:"1h"`
	FinalizedTTL time.Duration `envconfig:"ORDER_FINALIZED_TTL" default:"24h"`
	// MaxQuantity caps the units of one product per order; zero means
	// store.MaxQuantity.
	MaxQuantity int `envconfig:"ORDER_MAX_QUANTITY" default:"99"`
}

type Deps struct {
	Pending   PendingStore
	Payments  PaymentStore
	Stock     StockStore
	Initiator payment.Initiator
	// Confirmer is optional; without it the success route is trusted as is.
	Confirmer payment.Confirmer
}

// Placement is the result of a successfully initiated payment.
type Placement struct {
	OrderID   string            `json:"orderId"`
	OrderName string            `json:"orderName"`
	Amount    int64             `json:"amount"`
	Checkout  *payment.Checkout `json:"checkout"`
}

// Service runs the two-phase order flow: Place* stashes the order and starts
// the payment, Finalize records it exactly once when the customer returns.
type Service struct {
	cfg  Config
	deps Deps
	now  func() time.Time
	log  zerolog.Logger
}

func NewService(cfg Config, deps Deps) (*Service, error) {
	if deps.Pending == nil {
		return nil, fmt.Errorf("pending order store is nil")
	}
	if deps.Payments == nil {
		return nil, fmt.Errorf("payment store is nil")
	}
	if deps.Initiator == nil {
		return nil, fmt.Errorf("payment initiator is nil")
	}
	if cfg.MaxQuantity <= 0 {
		cfg.MaxQuantity = store.MaxQuantity
	}
	return &Service{
		cfg:  cfg,
		deps: deps,
		now:  time.Now,
		log:  logx.With("order"),
	}, nil
}

// PlaceOrder starts the payment for quantity units of one product.
func (s *Service) PlaceOrder(ctx context.Context, user *auth.User, p catalog.Product, quantity int) (*Placement, error) {
	if quantity < 1 {
		quantity = 1
	}
	items := []Item{ItemFromProduct(p, quantity)}
	orderID := NewOrderID(s.now(), p.ID)
	return s.place(ctx, user, orderID, ProductOrderName(p.Name, quantity), items)
}

// PlaceCart starts the payment for every line of a cart.
func (s *Service) PlaceCart(ctx context.Context, user *auth.User, lines []store.Line) (*Placement, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	items := ItemsFromCart(lines)
	orderID := NewOrderID(s.now(), len(lines))
	return s.place(ctx, user, orderID, CartOrderName(items), items)
}

func (s *Service) place(ctx context.Context, user *auth.User, orderID, orderName string, items []Item) (*Placement, error) {
	if user == nil || user.ID == "" {
		return nil, ErrUnauthenticated
	}
	total, err := s.checkItems(items)
	if err != nil {
		return nil, err
	}

	rec := Pending{
		OrderID:     orderID,
		UserID:      user.ID,
		OrderName:   orderName,
		Items:       items,
		TotalAmount: total,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.deps.Pending.Save(ctx, rec, s.cfg.PendingTTL); err != nil {
		return nil, fmt.Errorf("stash order %s: %w", orderID, err)
	}

	checkout, err := s.deps.Initiator.RequestPayment(ctx, payment.Request{
		Amount:        rec.TotalAmount,
		OrderID:       orderID,
		OrderName:     orderName,
		CustomerName:  user.CustomerName(),
		CustomerEmail: user.Email,
	})
	if err != nil {
		// the stash stays for manual recovery
		s.log.Warn().Err(err).Str("order_id", orderID).Msg("payment initiation failed")
		return nil, fmt.Errorf("request payment for %s: %w", orderID, err)
	}

	s.log.Info().
		Str("order_id", orderID).
		Str("user_id", user.ID).
		Int64("amount", rec.TotalAmount).
		Int("items", len(items)).
		Msg("order placed")

	return &Placement{
		OrderID:   orderID,
		OrderName: orderName,
		Amount:    rec.TotalAmount,
		Checkout:  checkout,
	}, nil
}

// Finalize records a returned payment. Only the first call for an order id
// writes anything; later calls get ErrAlreadyFinalized. When the stash is gone
// the fallback items (usually the cart) are used instead.
func (s *Service) Finalize(ctx context.Context, user *auth.User, c Completion, fallback []Item) (*Payment, error) {
	if user == nil || user.ID == "" {
		return nil, ErrUnauthenticated
	}
	if c.OrderID == "" {
		return nil, ErrOrderNotFound
	}
	log := s.log.With().Str("order_id", c.OrderID).Str("user_id", user.ID).Logger()

	claimed, err := s.deps.Pending.Claim(ctx, c.OrderID, s.cfg.FinalizedTTL)
	if err != nil {
		return nil, fmt.Errorf("claim order %s: %w", c.OrderID, err)
	}
	if !claimed {
		log.Info().Msg("order already finalized")
		return nil, ErrAlreadyFinalized
	}

	release := true
	defer func() {
		if !release {
			return
		}
		if err := s.deps.Pending.Release(context.WithoutCancel(ctx), c.OrderID); err != nil {
			log.Error().Err(err).Msg("failed to release finalization flag")
		}
	}()

	items, err := s.resolveItems(ctx, user, c.OrderID, fallback)
	if err != nil {
		return nil, err
	}
	total, err := s.checkItems(items)
	if err != nil {
		log.Warn().Err(err).Msg("refusing to record order")
		return nil, err
	}
	if c.Amount > 0 && c.Amount != total {
		log.Warn().Int64("expected", total).Int64("got", c.Amount).Msg("payment amount mismatch")
		return nil, ErrAmountMismatch
	}

	if s.deps.Confirmer != nil {
		if err := s.confirm(ctx, c, total); err != nil {
			return nil, err
		}
	}

	p := Payment{
		UserID:      user.ID,
		Items:       items,
		TotalAmount: total,
		CreatedAt:   s.now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	id, err := s.deps.Payments.InsertPayment(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("insert payment for %s: %w", c.OrderID, err)
	}
	p.ID = id
	release = false

	s.decrementStock(ctx, log, items)

	if err := s.deps.Pending.Delete(ctx, c.OrderID); err != nil {
		log.Warn().Err(err).Msg("failed to delete pending order")
	}

	log.Info().Str("payment_id", id).Int64("amount", total).Msg("order finalized")
	return &p, nil
}

func (s *Service) resolveItems(ctx context.Context, user *auth.User, orderID string, fallback []Item) ([]Item, error) {
	rec, err := s.deps.Pending.Load(ctx, orderID)
	switch {
	case errors.Is(err, ErrOrderNotFound):
		if len(fallback) == 0 {
			return nil, ErrOrderNotFound
		}
		s.log.Debug().Str("order_id", orderID).Int("items", len(fallback)).Msg("pending order missing; using fallback items")
		return fallback, nil
	case err != nil:
		return nil, fmt.Errorf("load order %s: %w", orderID, err)
	}

	if rec.UserID != "" && rec.UserID != user.ID {
		return nil, ErrUserMismatch
	}
	if len(rec.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	return rec.Items, nil
}

const codeAlreadyProcessed = "ALREADY_PROCESSED_PAYMENT"

func (s *Service) confirm(ctx context.Context, c Completion, total int64) error {
	err := s.deps.Confirmer.ConfirmPayment(ctx, c.PaymentKey, c.OrderID, total)
	if err == nil {
		return nil
	}
	// a retried finalization after a failed insert hits an approved payment
	var gwErr *payment.Error
	if errors.As(err, &gwErr) && gwErr.Code == codeAlreadyProcessed {
		return nil
	}
	return fmt.Errorf("confirm payment for %s: %w", c.OrderID, err)
}

func (s *Service) decrementStock(ctx context.Context, log zerolog.Logger, items []Item) {
	if s.deps.Stock == nil {
		return
	}
	for _, it := range items {
		if err := s.deps.Stock.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
			log.Warn().Err(err).Int("product_id", it.ProductID).Msg("failed to decrement stock")
		}
	}
}

func (s *Service) checkItems(items []Item) (int64, error) {
	if err := CheckQuantities(items, s.cfg.MaxQuantity); err != nil {
		return 0, err
	}
	return Total(items)
}
