package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Posting represents one posted document (account_move) seen by the
// continuous monitor. Only posted documents are fetched.
type Posting struct {
	ID          int64
	Name        string
	Date        time.Time // accounting date
	Ref         string    // document reference, empty when unset
	AmountTotal decimal.Decimal
	MoveType    string
	State       string
	CreateDate  time.Time
	PartnerName string // empty when unset
}
