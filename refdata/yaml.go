package refdata

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/bondlib/bond"
	"github.com/meenmo/bondlib/calendar"
)

type yamlFile struct {
	Name  string     `yaml:"name"`
	AsOf  string     `yaml:"as_of"`
	Bonds []yamlBond `yaml:"bonds"`
}

type yamlBond struct {
	ISIN         string  `yaml:"isin"`
	Issuer       string  `yaml:"issuer"`
	Ticker       string  `yaml:"ticker"`
	Currency     string  `yaml:"currency"`
	CouponPct    float64 `yaml:"coupon_pct"`
	Maturity     string  `yaml:"maturity"`
	IssueDate    string  `yaml:"issue_date"`
	DayCount     string  `yaml:"day_count"`
	Frequency    int     `yaml:"frequency"`
	BusinessRule string  `yaml:"business_day_rule"`
	Calendar     string  `yaml:"calendar"`
	EndOfMonth   bool    `yaml:"end_of_month"`
}

// LoadSnapshotYAML reads a reference snapshot from a YAML file.
func LoadSnapshotYAML(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadSnapshotYAML: %w", err)
	}

	var f yamlFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("LoadSnapshotYAML: parse %s: %w", path, err)
	}

	asOf := time.Now().UTC()
	if f.AsOf != "" {
		asOf, err = time.Parse("2006-01-02", f.AsOf)
		if err != nil {
			return nil, fmt.Errorf("LoadSnapshotYAML: as_of: %w", err)
		}
	}

	refs := make([]Reference, 0, len(f.Bonds))
	for _, b := range f.Bonds {
		ref, err := b.toReference()
		if err != nil {
			return nil, fmt.Errorf("LoadSnapshotYAML: bond %s: %w", b.ISIN, err)
		}
		refs = append(refs, ref)
	}
	return NewSnapshot(f.Name, asOf, refs), nil
}

func (b yamlBond) toReference() (Reference, error) {
	maturity, err := time.Parse("2006-01-02", b.Maturity)
	if err != nil {
		return Reference{}, fmt.Errorf("maturity: %w", err)
	}

	var issue *time.Time
	if b.IssueDate != "" {
		d, err := time.Parse("2006-01-02", b.IssueDate)
		if err != nil {
			return Reference{}, fmt.Errorf("issue_date: %w", err)
		}
		issue = &d
	}

	conv := bond.DefaultConventions()
	if b.DayCount != "" {
		conv.DayCount = bond.DayCount(b.DayCount)
	}
	if b.Frequency != 0 {
		conv.Frequency = bond.Frequency(b.Frequency)
	}
	if b.BusinessRule != "" {
		conv.BusinessDayRule = calendar.Rule(b.BusinessRule)
	}
	if b.Calendar != "" {
		conv.Calendar = calendar.CalendarID(b.Calendar)
	}
	conv.EndOfMonth = b.EndOfMonth

	return Reference{
		ISIN:        b.ISIN,
		Issuer:      b.Issuer,
		Ticker:      b.Ticker,
		Currency:    b.Currency,
		CouponPct:   b.CouponPct,
		Maturity:    maturity,
		IssueDate:   issue,
		Conventions: conv,
	}, nil
}
