package interfaces

import (
	"context"
	"time"

	"github.com/finvoy/ledger-notify/internal/models"
)

// LedgerSource is the read-only view of the accounting database the
// pipeline needs. A query failure is returned as an error, never collapsed
// into an empty result, so callers can tell "nothing due" from "broken".
type LedgerSource interface {
	// PayablesDueOn returns posted, unreconciled payable lines with
	// date_maturity equal to the given date.
	PayablesDueOn(ctx context.Context, due time.Time) ([]models.LedgerEntry, error)

	// ReceivablesDueOn returns posted, unreconciled receivable lines with
	// date_maturity equal to the given date.
	ReceivablesDueOn(ctx context.Context, due time.Time) ([]models.LedgerEntry, error)

	// PurchasesTouchedToday returns purchase orders created or modified
	// today, in every lifecycle state.
	PurchasesTouchedToday(ctx context.Context) ([]models.PurchaseOrder, error)

	// RecentPostings returns posted documents created within the trailing
	// window, most recent first, capped at limit.
	RecentPostings(ctx context.Context, window time.Duration, limit int) ([]models.Posting, error)
}
