// Package reporting renders classification results and dataset structure
// for terminals, Markdown, CSV and JSON.
package reporting

import (
	"encoding/json"
	"fmt"
	"slices"

	"dao-activity-lab/internal/domain"
)

const dateLayout = "2006-01-02"

// PlatformReport is one platform's outcome in a multi-platform report.
// Exactly one of Result and Err is set.
type PlatformReport struct {
	Platform domain.Platform
	Result   *domain.ClassificationResult
	Err      error
}

// counterOrder is the display order of secondary counts.
var counterOrder = []domain.Counter{
	domain.CounterTransactions,
	domain.CounterProposals,
	domain.CounterVotes,
	domain.CounterCasts,
	domain.CounterMembers,
	domain.CounterStakes,
	domain.CounterRageQuits,
	domain.CounterTokenHolders,
	domain.CounterApps,
	domain.CounterReputationHolders,
}

var counterLabels = map[domain.Counter]string{
	domain.CounterTransactions:      "Transactions",
	domain.CounterProposals:         "Proposals",
	domain.CounterVotes:             "Votes",
	domain.CounterCasts:             "Casts",
	domain.CounterMembers:           "Members",
	domain.CounterStakes:            "Stakes",
	domain.CounterRageQuits:         "Rage Quits",
	domain.CounterTokenHolders:      "Token Holders",
	domain.CounterApps:              "Apps",
	domain.CounterReputationHolders: "Reputation Holders",
}

// presentCounters returns the counters carried by s in display order.
func presentCounters(s domain.OrganizationSummary) []domain.Counter {
	var out []domain.Counter
	for _, c := range counterOrder {
		if _, ok := s.Counts[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

func formatTreasury(t *domain.Treasury) string {
	return fmt.Sprintf("%s across %d tokens (USD %s)", t.Balance.String(), t.Tokens, t.USDValue.StringFixed(2))
}

// SortByRecency returns a copy of summaries ordered most recent activity
// first. Ties keep their input order.
func SortByRecency(summaries []domain.OrganizationSummary) []domain.OrganizationSummary {
	out := slices.Clone(summaries)
	slices.SortStableFunc(out, func(a, b domain.OrganizationSummary) int {
		return b.LastActivity.Compare(a.LastActivity)
	})
	return out
}

// SortResultByRecency returns a copy of r with both listings sorted by
// SortByRecency. Counts are unchanged.
func SortResultByRecency(r *domain.ClassificationResult) *domain.ClassificationResult {
	out := *r
	out.Detailed.HighlyActiveDAOs = SortByRecency(r.Detailed.HighlyActiveDAOs)
	out.Detailed.ModeratelyActiveDAOs = SortByRecency(r.Detailed.ModeratelyActiveDAOs)
	return &out
}

// RenderJSON renders v as indented JSON.
func RenderJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}
	return string(b) + "\n", nil
}
