package order

import (
	"context"
	"sort"
	"strconv"
	"sync"
)

// MemoryLedger is an in-process Ledger used when no database is configured.
// Stock is only tracked for products given to SetStock.
type MemoryLedger struct {
	mu       sync.Mutex
	payments []Payment
	stock    map[int]int
	seq      int
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{stock: map[int]int{}}
}

func (m *MemoryLedger) InsertPayment(_ context.Context, p Payment) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p.ID = strconv.Itoa(m.seq)
	p.Items = append([]Item(nil), p.Items...)
	m.payments = append(m.payments, p)
	return p.ID, nil
}

func (m *MemoryLedger) SetStock(productID, stock int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stock[productID] = stock
}

// Stock reports the tracked stock of a product.
func (m *MemoryLedger) Stock(productID int) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.stock[productID]
	return n, ok
}

func (m *MemoryLedger) DecrementStock(_ context.Context, productID, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.stock[productID]
	if !ok {
		return nil
	}
	m.stock[productID] = max(0, n-quantity)
	return nil
}

// ListPayments returns the user's payments, newest first.
func (m *MemoryLedger) ListPayments(_ context.Context, userID string) ([]Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Payment
	for i := len(m.payments) - 1; i >= 0; i-- {
		if m.payments[i].UserID == userID {
			out = append(out, m.payments[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryLedger) PurchaseCounts(_ context.Context) (map[int]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[int]int{}
	for _, p := range m.payments {
		for _, it := range p.Items {
			q := it.Quantity
			if q < 1 {
				q = 1
			}
			counts[it.ProductID] += q
		}
	}
	return counts, nil
}

var _ Ledger = (*MemoryLedger)(nil)
