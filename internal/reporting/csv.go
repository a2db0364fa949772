package reporting

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"dao-activity-lab/internal/domain"
)

// csvHeader is the fixed column set of RenderCSV. Counters a platform does
// not track are left empty.
func csvHeader() []string {
	h := []string{"platform", "category", "address", "name", "last_activity", "age_days", "days_since_activity"}
	for _, c := range counterOrder {
		h = append(h, c.String())
	}
	return append(h, "treasury_balance", "treasury_usd_value", "treasury_tokens")
}

// RenderCSV renders the detailed listings of every successful result, one
// row per listed organization.
func RenderCSV(results []PlatformReport) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(csvHeader()); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, pr := range results {
		if pr.Err != nil || pr.Result == nil {
			continue
		}
		listings := []struct {
			category  domain.Category
			summaries []domain.OrganizationSummary
		}{
			{domain.CategoryHighlyActive, pr.Result.Detailed.HighlyActiveDAOs},
			{domain.CategoryModeratelyActive, pr.Result.Detailed.ModeratelyActiveDAOs},
		}
		for _, l := range listings {
			for _, s := range l.summaries {
				if err := w.Write(csvRow(pr.Result.Platform, l.category, s)); err != nil {
					return "", fmt.Errorf("write csv row: %w", err)
				}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return sb.String(), nil
}

func csvRow(p domain.Platform, category domain.Category, s domain.OrganizationSummary) []string {
	row := []string{
		p.String(),
		category.String(),
		s.Address,
		s.Name,
		s.LastActivity.Format(dateLayout),
		strconv.Itoa(s.AgeDays),
		strconv.Itoa(s.DaysSinceActivity),
	}
	for _, c := range counterOrder {
		if n, ok := s.Counts[c]; ok {
			row = append(row, strconv.Itoa(n))
		} else {
			row = append(row, "")
		}
	}
	if s.Treasury == nil {
		return append(row, "", "", "")
	}
	return append(row, s.Treasury.Balance.String(), s.Treasury.USDValue.StringFixed(2), strconv.Itoa(s.Treasury.Tokens))
}
