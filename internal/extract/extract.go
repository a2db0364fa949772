// Package extract maps each platform's raw tables into uniform
// organization signals.
package extract

import (
	"dao-activity-lab/internal/classify"
	"dao-activity-lab/internal/domain"
)

// Func extracts signals from tables keyed by category. Mandatory categories
// must be present; optional ones may be missing.
type Func func(tables map[string]*domain.Table) ([]domain.OrganizationSignal, error)

// Spec describes how one platform is analyzed.
type Spec struct {
	Platform   domain.Platform
	Mandatory  []string // categories whose absence aborts extraction
	Optional   []string // categories that only narrow sub-metrics
	Extract    Func
	Thresholds classify.Thresholds
}

// Categories returns mandatory followed by optional categories.
func (s Spec) Categories() []string {
	out := make([]string, 0, len(s.Mandatory)+len(s.Optional))
	out = append(out, s.Mandatory...)
	return append(out, s.Optional...)
}

// Category names shared by several platforms.
const (
	CategoryProposals = "proposals"
	CategoryVotes     = "votes"
)

// specs is the closed per-platform dispatch table.
var specs = map[domain.Platform]Spec{
	domain.PlatformAragon: {
		Platform:  domain.PlatformAragon,
		Mandatory: []string{AragonOrganizations, AragonTransactions},
		Optional:  []string{CategoryVotes, AragonCasts, AragonTokenHolders, AragonApps},
		Extract:   ExtractAragon,
	},
	domain.PlatformDAOhaus: {
		Platform:  domain.PlatformDAOhaus,
		Mandatory: []string{DAOhausMoloches, CategoryProposals},
		Optional:  []string{CategoryVotes, DAOhausMembers, DAOhausRageQuits, DAOhausTokenBalances},
		Extract:   ExtractDAOhaus,
	},
	domain.PlatformDAOstack: {
		Platform:  domain.PlatformDAOstack,
		Mandatory: []string{DAOstackDAOs, CategoryProposals},
		Optional:  []string{CategoryVotes, DAOstackStakes, DAOstackReputationHolders},
		Extract:   ExtractDAOstack,
	},
}

// Lookup returns the spec for platform p with its default thresholds.
func Lookup(p domain.Platform) (Spec, bool) {
	s, ok := specs[p]
	if !ok {
		return Spec{}, false
	}
	s.Thresholds, _ = classify.DefaultThresholds(p)
	return s, true
}

// checkMandatory returns MissingInputError for the first absent category.
func checkMandatory(p domain.Platform, tables map[string]*domain.Table, mandatory ...string) error {
	for _, c := range mandatory {
		if tables[c] == nil {
			return &domain.MissingInputError{Platform: p, Category: c}
		}
	}
	return nil
}

// orgIndex keeps organizations in source order and resolves addresses.
type orgIndex struct {
	signals []domain.OrganizationSignal
	byID    map[string]int
}

func newOrgIndex(capacity int) *orgIndex {
	return &orgIndex{
		signals: make([]domain.OrganizationSignal, 0, capacity),
		byID:    make(map[string]int, capacity),
	}
}

// add registers an organization; duplicates keep the first row.
func (x *orgIndex) add(s domain.OrganizationSignal) {
	if _, exists := x.byID[s.ID]; exists {
		return
	}
	if s.Name == "" {
		s.Name = domain.UnnamedOrganization
	}
	if s.Counts == nil {
		s.Counts = make(map[domain.Counter]int)
	}
	x.byID[s.ID] = len(x.signals)
	x.signals = append(x.signals, s)
}

// get returns the signal for address, or nil if it is not an organization.
func (x *orgIndex) get(address string) *domain.OrganizationSignal {
	i, ok := x.byID[address]
	if !ok {
		return nil
	}
	return &x.signals[i]
}

// addEvents walks an event table and records one event per row with a
// timestamp. Rows for unknown organizations and rows without a timestamp
// are skipped.
func (x *orgIndex) addEvents(t *domain.Table, orgColumn, timeColumn string, c domain.Counter) error {
	if t == nil {
		return nil
	}
	r := newReader(t)
	if err := r.require(orgColumn, timeColumn); err != nil {
		return err
	}
	for i := 0; i < r.rows(); i++ {
		s := x.get(r.address(i, orgColumn))
		if s == nil {
			continue
		}
		at, ok, err := r.time(i, timeColumn)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		s.AddEvent(at, c)
	}
	return nil
}

// countRows adds one to c per row referencing a known organization.
func (x *orgIndex) countRows(t *domain.Table, orgColumn string, c domain.Counter) error {
	if t == nil {
		return nil
	}
	r := newReader(t)
	if err := r.require(orgColumn); err != nil {
		return err
	}
	for i := 0; i < r.rows(); i++ {
		if s := x.get(r.address(i, orgColumn)); s != nil {
			s.Incr(c, 1)
		}
	}
	return nil
}

// countDistinct adds the number of distinct valueColumn values per
// organization to c.
func (x *orgIndex) countDistinct(t *domain.Table, orgColumn, valueColumn string, c domain.Counter) error {
	if t == nil {
		return nil
	}
	r := newReader(t)
	if err := r.require(orgColumn, valueColumn); err != nil {
		return err
	}
	seen := make(map[string]map[string]struct{})
	for i := 0; i < r.rows(); i++ {
		org := r.address(i, orgColumn)
		s := x.get(org)
		if s == nil {
			continue
		}
		v := r.address(i, valueColumn)
		if seen[org] == nil {
			seen[org] = make(map[string]struct{})
		}
		if _, dup := seen[org][v]; dup {
			continue
		}
		seen[org][v] = struct{}{}
		s.Incr(c, 1)
	}
	return nil
}
