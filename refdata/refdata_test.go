package refdata_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/bondlib/bond"
	"github.com/meenmo/bondlib/calendar"
	"github.com/meenmo/bondlib/refdata"
)

const snapshotYAML = `
name: primary
as_of: 2025-06-27
bonds:
  - isin: US912810RN00
    issuer: US Treasury
    ticker: T
    currency: USD
    coupon_pct: 3.0
    maturity: 2052-08-15
    day_count: ACT/ACT
    frequency: 2
    business_day_rule: FOLLOWING
    calendar: US
  - isin: XS1234567896
    issuer: Acme Finance BV
    ticker: ACME
    currency: EUR
    coupon_pct: 5.25
    maturity: 2031-03-20
    issue_date: 2021-03-20
    day_count: 30E/360
    frequency: 1
    business_day_rule: MODIFIED_FOLLOWING
    calendar: TARGET
`

func TestLoadSnapshotYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "primary.yaml")
	require.NoError(t, os.WriteFile(path, []byte(snapshotYAML), 0o644))

	snap, err := refdata.LoadSnapshotYAML(path)
	require.NoError(t, err)
	assert.Equal(t, "primary", snap.Name())
	assert.Equal(t, 2, snap.Size())

	ref, ok := snap.Lookup("US912810RN00")
	require.True(t, ok)
	assert.Equal(t, "US Treasury", ref.Issuer)
	assert.Equal(t, bond.DCActAct, ref.Conventions.DayCount)
	assert.Equal(t, bond.Semiannual, ref.Conventions.Frequency)
	assert.Equal(t, calendar.US, ref.Conventions.Calendar)
	assert.Nil(t, ref.IssueDate)

	acme, ok := snap.Lookup("XS1234567896")
	require.True(t, ok)
	require.NotNil(t, acme.IssueDate)
	assert.Equal(t, bond.Annual, acme.Conventions.Frequency)

	_, ok = snap.Lookup("US91282CJK80")
	assert.False(t, ok)
}

func TestLoadSnapshotYAML_BadDate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bonds:\n  - isin: X\n    maturity: not-a-date\n"), 0o644))

	_, err := refdata.LoadSnapshotYAML(path)
	require.Error(t, err)
}

func TestLoadSnapshotSQL(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	sdb := sqlx.NewDb(db, "sqlmock")

	maturity := time.Date(2052, 8, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"isin", "issuer", "ticker", "currency", "coupon_pct", "maturity",
		"issue_date", "day_count", "frequency", "business_day_rule", "cal", "end_of_month",
	}).AddRow(
		"US912810RN00", "US Treasury", "T", "USD", 3.0, maturity,
		nil, "ACT/ACT", 2, "FOLLOWING", "US", false,
	)
	mock.ExpectQuery("SELECT isin").WillReturnRows(rows)

	snap, err := refdata.LoadSnapshotSQL(context.Background(), sdb, "secondary")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Size())

	ref, ok := snap.Lookup("US912810RN00")
	require.True(t, ok)
	assert.True(t, maturity.Equal(ref.Maturity))
	assert.Equal(t, bond.DCActAct, ref.Conventions.DayCount)
	require.NoError(t, mock.ExpectationsWereMet())
}
