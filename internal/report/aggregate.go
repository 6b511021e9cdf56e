package report

import (
	"sort"
	"time"

	"github.com/finvoy/ledger-notify/internal/models"
	"github.com/shopspring/decimal"
)

// Sentinel bucket for payable lines whose document carries no company.
const noCompany = "Sem empresa"

// AggregatePayables groups payable lines by company, totals each group with
// the residual-or-credit open amount and sorts groups by total descending
// (stable, so equal totals keep their first-seen order). Returns nil when
// there is nothing to report.
func AggregatePayables(entries []models.LedgerEntry, asOf time.Time) *models.Report {
	if len(entries) == 0 {
		return nil
	}

	index := make(map[string]int)
	groups := make([]models.ReportGroup, 0)

	for _, entry := range entries {
		key := entry.CompanyName
		if key == "" {
			key = noCompany
		}
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.ReportGroup{Key: key})
		}
		groups[i].Count++
		groups[i].Total = groups[i].Total.Add(entry.OpenAmount(entry.Credit))
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total.GreaterThan(groups[j].Total)
	})

	grand := decimal.Zero
	for _, g := range groups {
		grand = grand.Add(g.Total)
	}

	return &models.Report{
		Kind:       models.KindPayableToday,
		AsOf:       asOf,
		Groups:     groups,
		GrandTotal: grand,
		EntryCount: len(entries),
		GroupCount: len(groups),
	}
}

// AggregateReceivables builds a flat report in query order. Each line's
// amount is the residual-or-debit open amount. Returns nil when there is
// nothing to report.
func AggregateReceivables(entries []models.LedgerEntry, due time.Time, dueToday bool) *models.Report {
	if len(entries) == 0 {
		return nil
	}

	group := models.ReportGroup{Key: "Detalhes"}
	for _, entry := range entries {
		amount := entry.OpenAmount(entry.Debit)
		name := entry.MoveName
		if name == "" {
			name = entry.LineName
		}
		group.Count++
		group.Total = group.Total.Add(amount)
		group.Lines = append(group.Lines, models.ReportLine{
			Name:    name,
			Partner: entry.PartnerName,
			Ref:     entry.MoveRef,
			Date:    entry.DueDate,
			Amount:  amount,
		})
	}

	return &models.Report{
		Kind:       models.KindReceivableDue,
		AsOf:       due,
		DueToday:   dueToday,
		Groups:     []models.ReportGroup{group},
		GrandTotal: group.Total,
		EntryCount: group.Count,
		GroupCount: 1,
	}
}

// AggregatePurchases groups purchase orders by lifecycle state in the
// first-seen order of the (already most-recent-first) input. The grand
// total sums every order regardless of state. Returns nil when there is
// nothing to report.
func AggregatePurchases(orders []models.PurchaseOrder, asOf time.Time) *models.Report {
	if len(orders) == 0 {
		return nil
	}

	index := make(map[string]int)
	groups := make([]models.ReportGroup, 0)

	for _, order := range orders {
		i, seen := index[order.State]
		if !seen {
			i = len(groups)
			index[order.State] = i
			groups = append(groups, models.ReportGroup{Key: order.State})
		}
		groups[i].Count++
		groups[i].Total = groups[i].Total.Add(order.AmountTotal)
		groups[i].Lines = append(groups[i].Lines, models.ReportLine{
			Name:    order.Name,
			Partner: order.PartnerName,
			Date:    order.OrderDate,
			Amount:  order.AmountTotal,
		})
	}

	grand := decimal.Zero
	for _, g := range groups {
		grand = grand.Add(g.Total)
	}

	return &models.Report{
		Kind:       models.KindPurchaseActivity,
		AsOf:       asOf,
		Groups:     groups,
		GrandTotal: grand,
		EntryCount: len(orders),
		GroupCount: len(groups),
	}
}
