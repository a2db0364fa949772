package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnnamedOrganization is the display label for organizations without a name.
const UnnamedOrganization = "Unnamed"

// Counter names a per-organization secondary count.
type Counter string

const (
	CounterTransactions      Counter = "transactions"
	CounterProposals         Counter = "proposals"
	CounterVotes             Counter = "votes"
	CounterCasts             Counter = "casts"
	CounterMembers           Counter = "members"
	CounterStakes            Counter = "stakes"
	CounterRageQuits         Counter = "rage_quits"
	CounterTokenHolders      Counter = "token_holders"
	CounterApps              Counter = "apps"
	CounterReputationHolders Counter = "reputation_holders"
)

// String returns the string representation of Counter.
func (c Counter) String() string {
	return string(c)
}

// ActivityEvent is one timestamped record attributable to an organization.
type ActivityEvent struct {
	Time    time.Time
	Counter Counter // which count the event contributes to
}

// Treasury holds pass-through balance figures. USDValue is reported as
// exported by the dataset and never converted.
type Treasury struct {
	Balance  decimal.Decimal `json:"balance"`
	USDValue decimal.Decimal `json:"usd_value"`
	Tokens   int             `json:"tokens"`
}

// OrganizationSignal is the platform-independent activity signal of one
// organization. Signals are derived per invocation and never persisted.
type OrganizationSignal struct {
	ID   string // contract address, lower-cased
	Name string // UnnamedOrganization when absent

	// CreatedAt is the creation instant. Zero means unknown; such
	// organizations are never considered potential tests.
	CreatedAt time.Time

	Events []ActivityEvent
	Counts map[Counter]int

	// LastActivity is the latest event instant, nil iff Events is empty.
	LastActivity *time.Time

	Treasury *Treasury // nil unless the platform exports balances
}

// Count returns the value of counter c (0 when absent).
func (s *OrganizationSignal) Count(c Counter) int {
	return s.Counts[c]
}

// AddEvent records an activity event and keeps LastActivity and the
// event's counter in step.
func (s *OrganizationSignal) AddEvent(at time.Time, c Counter) {
	s.Events = append(s.Events, ActivityEvent{Time: at, Counter: c})
	if s.Counts == nil {
		s.Counts = make(map[Counter]int)
	}
	s.Counts[c]++
	if s.LastActivity == nil || at.After(*s.LastActivity) {
		t := at
		s.LastActivity = &t
	}
}

// Incr adds n to counter c without recording an activity event.
func (s *OrganizationSignal) Incr(c Counter, n int) {
	if s.Counts == nil {
		s.Counts = make(map[Counter]int)
	}
	s.Counts[c] += n
}
