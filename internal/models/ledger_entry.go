package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry represents a single journal item (account_move_line) joined
// with its parent document, partner and company. The query layer only
// returns posted, unreconciled lines with the side-specific amount > 0.
type LedgerEntry struct {
	ID             int64               // journal item id
	MoveID         int64               // parent document id
	PartnerName    string              // counterparty, empty when unset
	CompanyName    string              // legal entity, empty when unset
	DueDate        time.Time           // date_maturity
	Date           time.Time           // posting date
	LineName       string              // journal item label
	Debit          decimal.Decimal     // gross debit leg
	Credit         decimal.Decimal     // gross credit leg
	AmountResidual decimal.NullDecimal // unsettled portion, may be absent
	MoveName       string              // document display name
	MoveRef        string              // document reference, empty when unset
	MoveType       string              // in_invoice, out_invoice, entry, ...
	MoveState      string              // always "posted" at this layer
}

// OpenAmount returns the absolute amount still open for this entry,
// preferring the residual and falling back to the given gross leg when the
// residual is absent or zero. A zero residual triggering the fallback
// matches the production behavior and is intentional.
func (e LedgerEntry) OpenAmount(gross decimal.Decimal) decimal.Decimal {
	if e.AmountResidual.Valid && !e.AmountResidual.Decimal.IsZero() {
		return e.AmountResidual.Decimal.Abs()
	}
	return gross.Abs()
}
