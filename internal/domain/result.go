package domain

import "time"

// Category is the activity level assigned to one organization.
type Category string

const (
	CategoryHighlyActive     Category = "highly_active"
	CategoryModeratelyActive Category = "moderately_active"
	CategoryMinimallyActive  Category = "minimally_active"
	CategoryPotentialTest    Category = "potential_test"
	CategoryNoActivity       Category = "no_activity"
)

// Categories lists every category in priority order.
var Categories = []Category{
	CategoryPotentialTest,
	CategoryNoActivity,
	CategoryHighlyActive,
	CategoryModeratelyActive,
	CategoryMinimallyActive,
}

// String returns the string representation of Category.
func (c Category) String() string {
	return string(c)
}

// IsActive reports whether organizations in c count as active.
func (c Category) IsActive() bool {
	return c == CategoryHighlyActive || c == CategoryModeratelyActive || c == CategoryMinimallyActive
}

// ClassificationResult is the activity breakdown of one platform.
//
// The five category counts partition TotalOrganizations. Potential test
// organizations count as inactive, and InactiveOrganizations is always
// TotalOrganizations - ActiveOrganizations.
type ClassificationResult struct {
	Platform Platform `json:"platform"`

	TotalOrganizations    int `json:"total_organizations"`
	ActiveOrganizations   int `json:"active_organizations"`
	InactiveOrganizations int `json:"inactive_organizations"`

	HighlyActive     int `json:"highly_active"`
	ModeratelyActive int `json:"moderately_active"`
	MinimallyActive  int `json:"minimally_active"`
	PotentialTest    int `json:"potential_test"`
	NoActivity       int `json:"no_activity"`

	Detailed DetailedActivity `json:"detailed_activity"`
}

// DetailedActivity lists the organizations of the two most active tiers in
// source order.
type DetailedActivity struct {
	HighlyActiveDAOs     []OrganizationSummary `json:"highly_active_daos"`
	ModeratelyActiveDAOs []OrganizationSummary `json:"moderately_active_daos"`
}

// OrganizationSummary is the per-organization record of a detailed listing.
type OrganizationSummary struct {
	Address           string          `json:"address"`
	Name              string          `json:"name"`
	Counts            map[Counter]int `json:"counts"`
	LastActivity      time.Time       `json:"last_activity"`
	AgeDays           int             `json:"age_days"`
	DaysSinceActivity int             `json:"days_since_activity"`
	Treasury          *Treasury       `json:"treasury,omitempty"`
}

// ActivityRate returns active organizations as a percentage of the total.
func (r *ClassificationResult) ActivityRate() float64 {
	if r.TotalOrganizations == 0 {
		return 0
	}
	return float64(r.ActiveOrganizations) / float64(r.TotalOrganizations) * 100
}

// CategoryCount returns the count for category c.
func (r *ClassificationResult) CategoryCount(c Category) int {
	switch c {
	case CategoryHighlyActive:
		return r.HighlyActive
	case CategoryModeratelyActive:
		return r.ModeratelyActive
	case CategoryMinimallyActive:
		return r.MinimallyActive
	case CategoryPotentialTest:
		return r.PotentialTest
	case CategoryNoActivity:
		return r.NoActivity
	default:
		return 0
	}
}
