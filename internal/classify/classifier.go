// Package classify implements the platform-independent activity
// classification shared by every platform.
package classify

import (
	"sync"
	"time"

	"dao-activity-lab/internal/domain"
)

const day = 24 * time.Hour

// DaysBetween returns the whole days from t to now, truncated toward zero.
func DaysBetween(now, t time.Time) int {
	return int(now.Sub(t) / day)
}

// Categorize assigns exactly one category to s. Rules are evaluated in
// priority order and the first match wins:
//
//  1. potential_test: known creation, age < TestMaxAgeDays, all volume
//     counters <= TestMaxCount
//  2. no_activity: no activity events
//  3. highly_active: recency <= HighRecencyDays and the high-volume predicate
//  4. moderately_active: recency <= ModerateRecencyDays
//  5. minimally_active
func Categorize(s *domain.OrganizationSignal, now time.Time, t Thresholds) domain.Category {
	if !s.CreatedAt.IsZero() && DaysBetween(now, s.CreatedAt) < t.TestMaxAgeDays && t.isLowVolume(s) {
		return domain.CategoryPotentialTest
	}

	if s.LastActivity == nil {
		return domain.CategoryNoActivity
	}

	recency := DaysBetween(now, *s.LastActivity)
	switch {
	case recency <= t.HighRecencyDays && t.isHighVolume(s):
		return domain.CategoryHighlyActive
	case recency <= t.ModerateRecencyDays:
		return domain.CategoryModeratelyActive
	default:
		return domain.CategoryMinimallyActive
	}
}

// tagged is one organization mapped to its category.
type tagged struct {
	signal   *domain.OrganizationSignal
	category domain.Category
}

// Classify categorizes every signal and folds the categories into a result.
// It is pure: identical inputs and now yield identical results.
func Classify(signals []domain.OrganizationSignal, now time.Time, t Thresholds) domain.ClassificationResult {
	tags := make([]tagged, len(signals))
	for i := range signals {
		tags[i] = tagged{signal: &signals[i], category: Categorize(&signals[i], now, t)}
	}
	return fold(tags, now)
}

// ClassifyParallel is Classify with categorization partitioned across
// workers. The fold runs over the tags in source order, so the result is
// identical to Classify.
func ClassifyParallel(signals []domain.OrganizationSignal, now time.Time, t Thresholds, workers int) domain.ClassificationResult {
	if workers <= 1 || len(signals) < 2*workers {
		return Classify(signals, now, t)
	}

	tags := make([]tagged, len(signals))
	chunk := (len(signals) + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < len(signals); start += chunk {
		end := min(start+chunk, len(signals))
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				tags[i] = tagged{signal: &signals[i], category: Categorize(&signals[i], now, t)}
			}
		}(start, end)
	}
	wg.Wait()

	return fold(tags, now)
}

// fold reduces category tags into counts and detailed listings.
func fold(tags []tagged, now time.Time) domain.ClassificationResult {
	res := domain.ClassificationResult{
		TotalOrganizations: len(tags),
		Detailed: domain.DetailedActivity{
			HighlyActiveDAOs:     []domain.OrganizationSummary{},
			ModeratelyActiveDAOs: []domain.OrganizationSummary{},
		},
	}

	for _, tg := range tags {
		switch tg.category {
		case domain.CategoryPotentialTest:
			res.PotentialTest++
		case domain.CategoryNoActivity:
			res.NoActivity++
		case domain.CategoryHighlyActive:
			res.HighlyActive++
			res.Detailed.HighlyActiveDAOs = append(res.Detailed.HighlyActiveDAOs, summarize(tg.signal, now))
		case domain.CategoryModeratelyActive:
			res.ModeratelyActive++
			res.Detailed.ModeratelyActiveDAOs = append(res.Detailed.ModeratelyActiveDAOs, summarize(tg.signal, now))
		case domain.CategoryMinimallyActive:
			res.MinimallyActive++
		}
	}

	res.ActiveOrganizations = res.HighlyActive + res.ModeratelyActive + res.MinimallyActive
	res.InactiveOrganizations = res.TotalOrganizations - res.ActiveOrganizations
	return res
}

// summarize builds the listing entry for an organization with activity.
func summarize(s *domain.OrganizationSignal, now time.Time) domain.OrganizationSummary {
	counts := make(map[domain.Counter]int, len(s.Counts))
	for k, v := range s.Counts {
		counts[k] = v
	}

	sum := domain.OrganizationSummary{
		Address:           s.ID,
		Name:              s.Name,
		Counts:            counts,
		LastActivity:      *s.LastActivity,
		DaysSinceActivity: DaysBetween(now, *s.LastActivity),
	}
	if !s.CreatedAt.IsZero() {
		sum.AgeDays = DaysBetween(now, s.CreatedAt)
	}
	if s.Treasury != nil {
		t := *s.Treasury
		sum.Treasury = &t
	}
	return sum
}
