package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/finvoy/ledger-notify/internal/interfaces"
	"github.com/finvoy/ledger-notify/internal/models"
)

// LedgerSource reads reporting data straight from the accounting database
// (Odoo schema). It is read-only: the notifier never writes back.
type LedgerSource struct {
	db *sql.DB
}

func NewLedgerSource(db *sql.DB) *LedgerSource {
	return &LedgerSource{db: db}
}

// Open connects with the given lib/pq DSN and verifies the connection.
func Open(ctx context.Context, dsn string) (*LedgerSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: ping failed: %w", err)
	}
	return &LedgerSource{db: db}, nil
}

func (s *LedgerSource) Close() error {
	return s.db.Close()
}

const payablesQuery = `
	SELECT
		aml.id,
		aml.move_id,
		rp.name,
		rc.name,
		aml.date_maturity,
		aml.date,
		aml.name,
		aml.debit,
		aml.credit,
		aml.amount_residual,
		am.name,
		am.ref,
		am.move_type,
		am.state
	FROM account_move_line aml
	INNER JOIN account_move am ON aml.move_id = am.id
	LEFT JOIN res_partner rp ON aml.partner_id = rp.id
	LEFT JOIN res_company rc ON am.company_id = rc.id
	INNER JOIN account_account aa ON aml.account_id = aa.id
	WHERE aa.account_type = 'liability_payable'
	  AND aml.date_maturity = $1
	  AND am.state = 'posted'
	  AND aml.reconciled = false
	  AND aml.credit > 0
	ORDER BY rc.name, aml.date_maturity, rp.name, aml.name`

func (s *LedgerSource) PayablesDueOn(ctx context.Context, due time.Time) ([]models.LedgerEntry, error) {
	return s.queryEntries(ctx, payablesQuery, due.Format("2006-01-02"))
}

const receivablesQuery = `
	SELECT
		aml.id,
		aml.move_id,
		rp.name,
		NULL::varchar,
		aml.date_maturity,
		aml.date,
		aml.name,
		aml.debit,
		aml.credit,
		aml.amount_residual,
		am.name,
		am.ref,
		am.move_type,
		am.state
	FROM account_move_line aml
	INNER JOIN account_move am ON aml.move_id = am.id
	LEFT JOIN res_partner rp ON aml.partner_id = rp.id
	INNER JOIN account_account aa ON aml.account_id = aa.id
	WHERE aa.account_type = 'asset_receivable'
	  AND aml.date_maturity = $1
	  AND am.state = 'posted'
	  AND aml.reconciled = false
	  AND aml.debit > 0
	ORDER BY aml.date_maturity, rp.name, aml.name`

func (s *LedgerSource) ReceivablesDueOn(ctx context.Context, due time.Time) ([]models.LedgerEntry, error) {
	return s.queryEntries(ctx, receivablesQuery, due.Format("2006-01-02"))
}

func (s *LedgerSource) queryEntries(ctx context.Context, query string, args ...any) ([]models.LedgerEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: query failed: %w", err)
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var (
			entry    models.LedgerEntry
			partner  sql.NullString
			company  sql.NullString
			dueDate  sql.NullTime
			lineName sql.NullString
			moveRef  sql.NullString
		)
		err := rows.Scan(
			&entry.ID,
			&entry.MoveID,
			&partner,
			&company,
			&dueDate,
			&entry.Date,
			&lineName,
			&entry.Debit,
			&entry.Credit,
			&entry.AmountResidual,
			&entry.MoveName,
			&moveRef,
			&entry.MoveType,
			&entry.MoveState,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan failed: %w", err)
		}
		entry.PartnerName = partner.String
		entry.CompanyName = company.String
		entry.DueDate = dueDate.Time
		entry.LineName = lineName.String
		entry.MoveRef = moveRef.String
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows failed: %w", err)
	}
	return entries, nil
}

const purchasesQuery = `
	SELECT
		po.id,
		po.name,
		po.date_order,
		po.state,
		rp.name,
		po.amount_total,
		po.create_date,
		po.write_date,
		ru.login,
		po.origin
	FROM purchase_order po
	LEFT JOIN res_partner rp ON po.partner_id = rp.id
	LEFT JOIN res_users ru ON po.user_id = ru.id
	WHERE DATE(po.write_date) = CURRENT_DATE
	   OR DATE(po.create_date) = CURRENT_DATE
	ORDER BY po.write_date DESC, po.create_date DESC`

func (s *LedgerSource) PurchasesTouchedToday(ctx context.Context) ([]models.PurchaseOrder, error) {
	rows, err := s.db.QueryContext(ctx, purchasesQuery)
	if err != nil {
		return nil, fmt.Errorf("postgres: query failed: %w", err)
	}
	defer rows.Close()

	var orders []models.PurchaseOrder
	for rows.Next() {
		var (
			order     models.PurchaseOrder
			orderDate sql.NullTime
			partner   sql.NullString
			login     sql.NullString
			origin    sql.NullString
		)
		err := rows.Scan(
			&order.ID,
			&order.Name,
			&orderDate,
			&order.State,
			&partner,
			&order.AmountTotal,
			&order.CreateDate,
			&order.WriteDate,
			&login,
			&origin,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan failed: %w", err)
		}
		order.OrderDate = orderDate.Time
		order.PartnerName = partner.String
		order.UserLogin = login.String
		order.Origin = origin.String
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows failed: %w", err)
	}
	return orders, nil
}

const recentPostingsQuery = `
	SELECT
		am.id,
		am.name,
		am.date,
		am.ref,
		am.amount_total,
		am.move_type,
		am.state,
		am.create_date,
		rp.name
	FROM account_move am
	LEFT JOIN res_partner rp ON am.partner_id = rp.id
	WHERE am.state = 'posted'
	  AND am.create_date >= $1
	ORDER BY am.id DESC
	LIMIT $2`

func (s *LedgerSource) RecentPostings(ctx context.Context, window time.Duration, limit int) ([]models.Posting, error) {
	since := time.Now().Add(-window)

	rows, err := s.db.QueryContext(ctx, recentPostingsQuery, since, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: query failed: %w", err)
	}
	defer rows.Close()

	var postings []models.Posting
	for rows.Next() {
		var (
			posting models.Posting
			ref     sql.NullString
			partner sql.NullString
		)
		err := rows.Scan(
			&posting.ID,
			&posting.Name,
			&posting.Date,
			&ref,
			&posting.AmountTotal,
			&posting.MoveType,
			&posting.State,
			&posting.CreateDate,
			&partner,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan failed: %w", err)
		}
		posting.Ref = ref.String
		posting.PartnerName = partner.String
		postings = append(postings, posting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows failed: %w", err)
	}
	return postings, nil
}

var _ interfaces.LedgerSource = (*LedgerSource)(nil)
