package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase order lifecycle states as stored by the accounting database.
const (
	PurchaseStateDraft     = "draft"
	PurchaseStateSent      = "sent"
	PurchaseStateToApprove = "to approve"
	PurchaseStateApproved  = "purchase"
	PurchaseStateDone      = "done"
	PurchaseStateCancelled = "cancel"
)

// PurchaseOrder represents one purchase_order row. All lifecycle states are
// included; the activity report covers orders created or touched today.
type PurchaseOrder struct {
	ID          int64
	Name        string          // order display name (e.g. P00042)
	OrderDate   time.Time       // date_order, zero when unset
	State       string          // lifecycle state, see constants above
	PartnerName string          // supplier, empty when unset
	AmountTotal decimal.Decimal // gross order total
	CreateDate  time.Time
	WriteDate   time.Time
	UserLogin   string // buyer login, empty when unset
	Origin      string // source document, empty when unset
}
