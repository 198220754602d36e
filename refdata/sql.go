package refdata

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/meenmo/bondlib/bond"
	"github.com/meenmo/bondlib/calendar"
)

const snapshotQuery = `
SELECT isin, issuer, ticker, currency, coupon_pct, maturity, issue_date,
       day_count, frequency, business_day_rule, cal, end_of_month
FROM bond_reference`

type sqlRow struct {
	ISIN         string     `db:"isin"`
	Issuer       string     `db:"issuer"`
	Ticker       string     `db:"ticker"`
	Currency     string     `db:"currency"`
	CouponPct    float64    `db:"coupon_pct"`
	Maturity     time.Time  `db:"maturity"`
	IssueDate    *time.Time `db:"issue_date"`
	DayCount     string     `db:"day_count"`
	Frequency    int        `db:"frequency"`
	BusinessRule string     `db:"business_day_rule"`
	Calendar     string     `db:"cal"`
	EndOfMonth   bool       `db:"end_of_month"`
}

// LoadSnapshotSQL loads a snapshot from a bond_reference table. It runs once
// per reload boundary; the returned Snapshot never touches the database again.
func LoadSnapshotSQL(ctx context.Context, db *sqlx.DB, name string) (*Snapshot, error) {
	rows, err := db.QueryxContext(ctx, snapshotQuery)
	if err != nil {
		return nil, fmt.Errorf("LoadSnapshotSQL: %w", err)
	}
	defer rows.Close()

	var refs []Reference
	for rows.Next() {
		var r sqlRow
		if err := rows.StructScan(&r); err != nil {
			return nil, fmt.Errorf("LoadSnapshotSQL: scan: %w", err)
		}
		refs = append(refs, Reference{
			ISIN:      r.ISIN,
			Issuer:    r.Issuer,
			Ticker:    r.Ticker,
			Currency:  r.Currency,
			CouponPct: r.CouponPct,
			Maturity:  r.Maturity,
			IssueDate: r.IssueDate,
			Conventions: bond.ConventionSet{
				DayCount:        bond.DayCount(r.DayCount),
				Frequency:       bond.Frequency(r.Frequency),
				BusinessDayRule: calendar.Rule(r.BusinessRule),
				Calendar:        calendar.CalendarID(r.Calendar),
				EndOfMonth:      r.EndOfMonth,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("LoadSnapshotSQL: rows: %w", err)
	}

	return NewSnapshot(name, time.Now().UTC(), refs), nil
}
