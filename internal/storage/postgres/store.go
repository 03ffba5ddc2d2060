package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/studio101-core/server/internal/chatlog"
	errx "github.com/studio101-core/server/internal/core/error"
	"github.com/studio101-core/server/internal/order"
	logx "github.com/studio101-core/server/pkg/logger"
)

// Store is the durable store for payments, stock and chat messages.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

type paymentRow struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Items       []byte    `db:"items"`
	TotalAmount int64     `db:"total_amount"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r paymentRow) toPayment() (order.Payment, error) {
	var items []order.Item
	if len(r.Items) > 0 {
		if err := json.Unmarshal(r.Items, &items); err != nil {
			return order.Payment{}, fmt.Errorf("decode items of payment %s: %w", r.ID, err)
		}
	}
	return order.Payment{
		ID:          r.ID,
		UserID:      r.UserID,
		Items:       items,
		TotalAmount: r.TotalAmount,
		CreatedAt:   r.CreatedAt,
	}, nil
}

const insertPaymentQuery = `
	INSERT INTO payments (user_id, items, total_amount, created_at)
	VALUES ($1, $2, $3, $4)
	RETURNING id`

func (s *Store) InsertPayment(ctx context.Context, p order.Payment) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	items := p.Items
	if items == nil {
		items = []order.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode payment items: %w", err)
	}
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var id string
	if err := s.db.QueryRowxContext(ctx, insertPaymentQuery, p.UserID, b, p.TotalAmount, createdAt).Scan(&id); err != nil {
		logx.Error().Err(err).Str("user_id", p.UserID).Msg("failed to insert payment")
		return "", errx.WrapDatabase(err)
	}
	return id, nil
}

const decrementStockQuery = `UPDATE products SET stock = GREATEST(0, stock - $1) WHERE id = $2`

// DecrementStock lowers stock but never below zero. A missing product row or
// a schema without stock tracking is not an error.
func (s *Store) DecrementStock(ctx context.Context, productID, quantity int) error {
	res, err := s.db.ExecContext(ctx, decrementStockQuery, quantity, productID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && (pqErr.Code == "42703" || pqErr.Code == "42P01") {
			logx.Debug().Int("product_id", productID).Str("code", string(pqErr.Code)).Msg("stock is not tracked")
			return nil
		}
		return errx.WrapDatabase(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		logx.Debug().Int("product_id", productID).Msg("no stock row for product")
	}
	return nil
}

const listPaymentsQuery = `
	SELECT id, user_id, items, total_amount, created_at
	FROM payments
	WHERE user_id = $1
	ORDER BY created_at DESC`

func (s *Store) ListPayments(ctx context.Context, userID string) ([]order.Payment, error) {
	var rows []paymentRow
	if err := s.db.SelectContext(ctx, &rows, listPaymentsQuery, userID); err != nil {
		return nil, errx.WrapDatabase(err)
	}
	out := make([]order.Payment, 0, len(rows))
	for _, r := range rows {
		p, err := r.toPayment()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

const purchaseCountsQuery = `
	SELECT (item->>'product_id')::int AS product_id,
	       SUM(GREATEST(COALESCE((item->>'quantity')::int, 1), 1)) AS quantity
	FROM payments, jsonb_array_elements(items) AS item
	GROUP BY 1`

func (s *Store) PurchaseCounts(ctx context.Context) (map[int]int, error) {
	var rows []struct {
		ProductID int `db:"product_id"`
		Quantity  int `db:"quantity"`
	}
	if err := s.db.SelectContext(ctx, &rows, purchaseCountsQuery); err != nil {
		return nil, errx.WrapDatabase(err)
	}
	counts := make(map[int]int, len(rows))
	for _, r := range rows {
		counts[r.ProductID] = r.Quantity
	}
	return counts, nil
}

const insertChatMessageQuery = `
	INSERT INTO chat_messages (user_id, session_id, message, sender, created_at)
	VALUES (:user_id, :session_id, :message, :sender, :created_at)`

// Append writes one chat record to chat_messages.
func (s *Store) Append(ctx context.Context, rec chatlog.Record) error {
	if _, err := s.db.NamedExecContext(ctx, insertChatMessageQuery, rec); err != nil {
		return errx.WrapDatabase(err)
	}
	return nil
}

var (
	_ order.Ledger = (*Store)(nil)
	_ chatlog.Sink = (*Store)(nil)
)
