package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportKind identifies one of the summary reports the notifier produces.
type ReportKind string

const (
	KindPayableToday     ReportKind = "payable_today"
	KindReceivableDue    ReportKind = "receivable_due"
	KindPurchaseActivity ReportKind = "purchase_activity"
)

// ReportLine is one render-ready detail line inside a group.
type ReportLine struct {
	Name    string          // document display name
	Partner string          // counterparty, empty when unset
	Ref     string          // document reference, empty when unset
	Date    time.Time       // order/posting date, zero when unset
	Amount  decimal.Decimal // absolute open or total amount
}

// ReportGroup is a bucket of lines sharing a grouping key (company name or
// purchase state). The sum of group totals across a report always equals
// the report grand total.
type ReportGroup struct {
	Key   string
	Count int
	Total decimal.Decimal
	Lines []ReportLine
}

// Report is the top-level artifact for one dispatch. It is built fresh on
// every trigger, handed to the formatter, and discarded.
type Report struct {
	Kind       ReportKind
	AsOf       time.Time // target date the selection was made for
	DueToday   bool      // receivable only: due today vs. tomorrow
	Groups     []ReportGroup
	GrandTotal decimal.Decimal
	EntryCount int
	GroupCount int
}
