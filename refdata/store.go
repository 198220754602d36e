// Package refdata provides the read-only reference stores the resolver
// queries. A Snapshot is loaded once per process (or per explicit reload
// boundary) and is immutable for the duration of a batch.
package refdata

import (
	"time"

	"github.com/meenmo/bondlib/bond"
)

// Reference is one curated bond record keyed by ISIN.
type Reference struct {
	ISIN        string
	Issuer      string
	Ticker      string
	Currency    string
	CouponPct   float64
	Maturity    time.Time
	IssueDate   *time.Time
	Conventions bond.ConventionSet
}

// Store is a keyed, side-effect-free lookup. Implementations must be safe for
// concurrent readers.
type Store interface {
	Lookup(isin string) (Reference, bool)
}

// Snapshot is a map-backed immutable Store.
type Snapshot struct {
	name string
	asOf time.Time
	refs map[string]Reference
}

// NewSnapshot builds a Snapshot from records. Later duplicates win.
func NewSnapshot(name string, asOf time.Time, refs []Reference) *Snapshot {
	m := make(map[string]Reference, len(refs))
	for _, r := range refs {
		m[r.ISIN] = r
	}
	return &Snapshot{name: name, asOf: asOf, refs: m}
}

func (s *Snapshot) Lookup(isin string) (Reference, bool) {
	r, ok := s.refs[isin]
	return r, ok
}

func (s *Snapshot) Name() string    { return s.name }
func (s *Snapshot) AsOf() time.Time { return s.asOf }
func (s *Snapshot) Size() int       { return len(s.refs) }
