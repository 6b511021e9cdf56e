package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotificationDispatched is the audit record emitted after every send
// attempt that got past the empty check, successful or not.
type NotificationDispatched struct {
	AttemptID   string          `json:"attempt_id"`
	Kind        string          `json:"kind"`
	Destination string          `json:"destination"`
	EntryCount  int             `json:"entry_count"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	Outcome     string          `json:"outcome"` // sent | failed
	OccurredAt  time.Time       `json:"occurred_at"`
}
