package classify

import (
	"errors"
	"fmt"

	"dao-activity-lab/internal/domain"
)

// ErrInvalidThresholds is returned by Thresholds.Validate.
var ErrInvalidThresholds = errors.New("invalid thresholds")

// Minimum is one clause of the high-volume predicate: Counter >= Min.
type Minimum struct {
	Counter domain.Counter `yaml:"counter" json:"counter"`
	Min     int            `yaml:"min" json:"min"`
}

// Thresholds parameterizes the shared classification per platform.
type Thresholds struct {
	// Potential-test filter: age < TestMaxAgeDays and every VolumeCounters
	// value <= TestMaxCount.
	TestMaxAgeDays int              `yaml:"test_max_age_days" json:"test_max_age_days"`
	TestMaxCount   int              `yaml:"test_max_count" json:"test_max_count"`
	VolumeCounters []domain.Counter `yaml:"volume_counters" json:"volume_counters"`

	// Recency windows (inclusive, in whole days).
	HighRecencyDays     int `yaml:"high_recency_days" json:"high_recency_days"`
	ModerateRecencyDays int `yaml:"moderate_recency_days" json:"moderate_recency_days"`

	// HighVolume is an OR-combination: any clause satisfied is enough.
	HighVolume []Minimum `yaml:"high_volume" json:"high_volume"`
}

// DefaultThresholds returns the stock thresholds for platform p.
// The second return is false for unsupported platforms.
func DefaultThresholds(p domain.Platform) (Thresholds, bool) {
	base := Thresholds{
		TestMaxAgeDays:      7,
		TestMaxCount:        2,
		HighRecencyDays:     30,
		ModerateRecencyDays: 90,
	}

	switch p {
	case domain.PlatformAragon:
		base.VolumeCounters = []domain.Counter{domain.CounterTransactions}
		base.HighVolume = []Minimum{
			{Counter: domain.CounterTransactions, Min: 5},
		}
	case domain.PlatformDAOhaus:
		base.VolumeCounters = []domain.Counter{domain.CounterProposals, domain.CounterVotes, domain.CounterMembers}
		base.HighVolume = []Minimum{
			{Counter: domain.CounterProposals, Min: 5},
			{Counter: domain.CounterVotes, Min: 10},
		}
	case domain.PlatformDAOstack:
		base.VolumeCounters = []domain.Counter{domain.CounterProposals, domain.CounterVotes, domain.CounterStakes}
		base.HighVolume = []Minimum{
			{Counter: domain.CounterProposals, Min: 3},
			{Counter: domain.CounterVotes, Min: 5},
			{Counter: domain.CounterStakes, Min: 5},
		}
	default:
		return Thresholds{}, false
	}
	return base, true
}

// DefaultThresholdSet returns DefaultThresholds for every supported platform.
func DefaultThresholdSet() map[domain.Platform]Thresholds {
	set := make(map[domain.Platform]Thresholds, len(domain.Platforms))
	for _, p := range domain.Platforms {
		t, _ := DefaultThresholds(p)
		set[p] = t
	}
	return set
}

// Validate checks the thresholds are internally consistent.
func (t Thresholds) Validate() error {
	if t.TestMaxAgeDays < 0 || t.TestMaxCount < 0 {
		return fmt.Errorf("%w: negative potential-test limits", ErrInvalidThresholds)
	}
	if t.HighRecencyDays < 0 || t.ModerateRecencyDays < 0 {
		return fmt.Errorf("%w: negative recency window", ErrInvalidThresholds)
	}
	if t.HighRecencyDays > t.ModerateRecencyDays {
		return fmt.Errorf("%w: high recency window %d exceeds moderate window %d",
			ErrInvalidThresholds, t.HighRecencyDays, t.ModerateRecencyDays)
	}
	if len(t.VolumeCounters) == 0 {
		return fmt.Errorf("%w: no volume counters", ErrInvalidThresholds)
	}
	if len(t.HighVolume) == 0 {
		return fmt.Errorf("%w: empty high-volume predicate", ErrInvalidThresholds)
	}
	for _, m := range t.HighVolume {
		if m.Counter == "" || m.Min < 0 {
			return fmt.Errorf("%w: bad high-volume clause %q >= %d", ErrInvalidThresholds, m.Counter, m.Min)
		}
	}
	return nil
}

// isHighVolume evaluates the high-volume predicate.
func (t Thresholds) isHighVolume(s *domain.OrganizationSignal) bool {
	for _, m := range t.HighVolume {
		if s.Count(m.Counter) >= m.Min {
			return true
		}
	}
	return false
}

// isLowVolume reports whether every volume counter is at most TestMaxCount.
func (t Thresholds) isLowVolume(s *domain.OrganizationSignal) bool {
	for _, c := range t.VolumeCounters {
		if s.Count(c) > t.TestMaxCount {
			return false
		}
	}
	return true
}
