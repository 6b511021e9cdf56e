package memory

import (
	"context" // request-scoped context, kept for interface parity with the postgres source
	"sync"
	"time"

	"github.com/finvoy/ledger-notify/internal/interfaces"
	"github.com/finvoy/ledger-notify/internal/models"
)

// LedgerSource is an in-memory implementation of interfaces.LedgerSource.
// Tests seed it with entries, orders and postings; an optional Err makes
// every fetch fail, for exercising the failed-fetch path.
type LedgerSource struct {
	mu          sync.Mutex
	Payables    []models.LedgerEntry
	Receivables []models.LedgerEntry
	Purchases   []models.PurchaseOrder
	Postings    []models.Posting
	Err         error
}

func NewLedgerSource() *LedgerSource {
	return &LedgerSource{}
}

func (m *LedgerSource) PayablesDueOn(ctx context.Context, due time.Time) ([]models.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return copyOf(m.Payables), nil
}

func (m *LedgerSource) ReceivablesDueOn(ctx context.Context, due time.Time) ([]models.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return copyOf(m.Receivables), nil
}

func (m *LedgerSource) PurchasesTouchedToday(ctx context.Context) ([]models.PurchaseOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return copyOf(m.Purchases), nil
}

func (m *LedgerSource) RecentPostings(ctx context.Context, window time.Duration, limit int) ([]models.Posting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	postings := copyOf(m.Postings)
	if limit > 0 && len(postings) > limit {
		postings = postings[:limit]
	}
	return postings, nil
}

// copyOf returns a copy so callers cannot mutate the seeded state.
func copyOf[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

var _ interfaces.LedgerSource = (*LedgerSource)(nil)
