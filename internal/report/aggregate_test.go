package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finvoy/ledger-notify/internal/models"
	"github.com/finvoy/ledger-notify/internal/report"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amount(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func payable(company string, credit float64) models.LedgerEntry {
	return models.LedgerEntry{
		CompanyName: company,
		Credit:      amount(credit),
		MoveState:   "posted",
	}
}

func receivable(partner string, debit float64, residual float64) models.LedgerEntry {
	e := models.LedgerEntry{
		PartnerName: partner,
		Debit:       amount(debit),
		MoveState:   "posted",
	}
	if residual != 0 {
		e.AmountResidual = decimal.NullDecimal{Decimal: amount(residual), Valid: true}
	}
	return e
}

func order(name, state string, total float64) models.PurchaseOrder {
	return models.PurchaseOrder{
		Name:        name,
		State:       state,
		AmountTotal: amount(total),
	}
}

// =============================================================================
// PAYABLES
// =============================================================================

func TestAggregatePayables_GroupsByCompany(t *testing.T) {
	// GIVEN: two Acme entries and one Beta entry
	entries := []models.LedgerEntry{
		payable("Acme", 300),
		payable("Acme", 200),
		payable("Beta", 100),
	}

	// WHEN: aggregating
	rep := report.AggregatePayables(entries, day(2026, time.March, 2))
	require.NotNil(t, rep)

	// THEN: Acme (500) comes before Beta (100), grand total is 600
	require.Len(t, rep.Groups, 2)
	assert.Equal(t, "Acme", rep.Groups[0].Key)
	assert.Equal(t, 2, rep.Groups[0].Count)
	assert.True(t, rep.Groups[0].Total.Equal(amount(500)))
	assert.Equal(t, "Beta", rep.Groups[1].Key)
	assert.Equal(t, 1, rep.Groups[1].Count)
	assert.True(t, rep.Groups[1].Total.Equal(amount(100)))
	assert.True(t, rep.GrandTotal.Equal(amount(600)))
	assert.Equal(t, 3, rep.EntryCount)
	assert.Equal(t, 2, rep.GroupCount)
}

func TestAggregatePayables_SortsByTotalDescending(t *testing.T) {
	entries := []models.LedgerEntry{
		payable("Small", 100),
		payable("Big", 500),
		payable("Mid", 200),
	}

	rep := report.AggregatePayables(entries, day(2026, time.March, 2))
	require.NotNil(t, rep)

	got := []string{rep.Groups[0].Key, rep.Groups[1].Key, rep.Groups[2].Key}
	assert.Equal(t, []string{"Big", "Mid", "Small"}, got)
}

func TestAggregatePayables_GroupTotalsSumToGrandTotal(t *testing.T) {
	entries := []models.LedgerEntry{
		payable("A", 19.99),
		payable("B", 0.01),
		payable("A", 1234.56),
		payable("C", 7.77),
		payable("B", 0.03),
	}

	rep := report.AggregatePayables(entries, day(2026, time.March, 2))
	require.NotNil(t, rep)

	sum := decimal.Zero
	for _, g := range rep.Groups {
		sum = sum.Add(g.Total)
	}
	assert.True(t, sum.Equal(rep.GrandTotal), "sum %s != grand %s", sum, rep.GrandTotal)
}

func TestAggregatePayables_MissingCompanyGetsSentinelBucket(t *testing.T) {
	entries := []models.LedgerEntry{payable("", 42)}

	rep := report.AggregatePayables(entries, day(2026, time.March, 2))
	require.NotNil(t, rep)
	assert.Equal(t, "Sem empresa", rep.Groups[0].Key)
}

func TestAggregatePayables_ResidualPreferredOverCredit(t *testing.T) {
	entry := payable("Acme", 100)
	entry.AmountResidual = decimal.NullDecimal{Decimal: amount(-60), Valid: true}

	rep := report.AggregatePayables([]models.LedgerEntry{entry}, day(2026, time.March, 2))
	require.NotNil(t, rep)

	// residual wins and is taken absolute
	assert.True(t, rep.GrandTotal.Equal(amount(60)))
}

func TestAggregatePayables_ZeroResidualFallsBackToCredit(t *testing.T) {
	// A genuinely zero residual falls back to the gross credit. Existing
	// production behavior, preserved on purpose.
	entry := payable("Acme", 100)
	entry.AmountResidual = decimal.NullDecimal{Decimal: decimal.Zero, Valid: true}

	rep := report.AggregatePayables([]models.LedgerEntry{entry}, day(2026, time.March, 2))
	require.NotNil(t, rep)
	assert.True(t, rep.GrandTotal.Equal(amount(100)))
}

func TestAggregatePayables_EmptyInputYieldsNil(t *testing.T) {
	assert.Nil(t, report.AggregatePayables(nil, day(2026, time.March, 2)))
	assert.Nil(t, report.AggregatePayables([]models.LedgerEntry{}, day(2026, time.March, 2)))
}

func TestAggregatePayables_IsPure(t *testing.T) {
	entries := []models.LedgerEntry{
		payable("Acme", 300),
		payable("Beta", 100),
		payable("Acme", 200),
	}

	first := report.AggregatePayables(entries, day(2026, time.March, 2))
	second := report.AggregatePayables(entries, day(2026, time.March, 2))

	assert.Equal(t, first, second)
}

// =============================================================================
// RECEIVABLES
// =============================================================================

func TestAggregateReceivables_KeepsQueryOrder(t *testing.T) {
	entries := []models.LedgerEntry{
		receivable("Zeta", 50, 0),
		receivable("Alfa", 30, 0),
	}

	rep := report.AggregateReceivables(entries, day(2026, time.March, 2), true)
	require.NotNil(t, rep)
	require.Equal(t, 1, rep.GroupCount)

	lines := rep.Groups[0].Lines
	require.Len(t, lines, 2)
	assert.Equal(t, "Zeta", lines[0].Partner)
	assert.Equal(t, "Alfa", lines[1].Partner)
	assert.True(t, rep.GrandTotal.Equal(amount(80)))
}

func TestAggregateReceivables_ResidualFallsBackToDebit(t *testing.T) {
	entries := []models.LedgerEntry{
		receivable("Paid partly", 100, 40), // residual 40 wins
		receivable("Untouched", 100, 0),    // no residual, debit wins
	}

	rep := report.AggregateReceivables(entries, day(2026, time.March, 2), true)
	require.NotNil(t, rep)
	assert.True(t, rep.GrandTotal.Equal(amount(140)))
}

func TestAggregateReceivables_EmptyInputYieldsNil(t *testing.T) {
	assert.Nil(t, report.AggregateReceivables(nil, day(2026, time.March, 2), true))
}

// =============================================================================
// PURCHASES
// =============================================================================

func TestAggregatePurchases_GroupsByStateFirstSeen(t *testing.T) {
	// GIVEN: orders already sorted most-recent-first by the query layer
	orders := []models.PurchaseOrder{
		order("P003", models.PurchaseStateApproved, 300),
		order("P002", models.PurchaseStateDraft, 50),
		order("P001", models.PurchaseStateApproved, 150),
	}

	rep := report.AggregatePurchases(orders, day(2026, time.March, 2))
	require.NotNil(t, rep)

	// THEN: states appear in first-seen order, not a fixed enum order
	require.Len(t, rep.Groups, 2)
	assert.Equal(t, models.PurchaseStateApproved, rep.Groups[0].Key)
	assert.Equal(t, 2, rep.Groups[0].Count)
	assert.True(t, rep.Groups[0].Total.Equal(amount(450)))
	assert.Equal(t, models.PurchaseStateDraft, rep.Groups[1].Key)

	// grand total covers every state, cancelled included
	assert.True(t, rep.GrandTotal.Equal(amount(500)))
}

func TestAggregatePurchases_GrandTotalIncludesAllStates(t *testing.T) {
	orders := []models.PurchaseOrder{
		order("P001", models.PurchaseStateApproved, 100),
		order("P002", models.PurchaseStateCancelled, 25),
	}

	rep := report.AggregatePurchases(orders, day(2026, time.March, 2))
	require.NotNil(t, rep)
	assert.True(t, rep.GrandTotal.Equal(amount(125)))
}

func TestAggregatePurchases_EmptyInputYieldsNil(t *testing.T) {
	assert.Nil(t, report.AggregatePurchases(nil, day(2026, time.March, 2)))
}
