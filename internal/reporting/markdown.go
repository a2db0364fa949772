package reporting

import (
	"fmt"
	"strings"

	"dao-activity-lab/internal/domain"
)

// RenderMarkdown renders results as a Markdown report, one section per
// platform. Failed platforms are listed with their error.
func RenderMarkdown(results []PlatformReport) string {
	var sb strings.Builder

	sb.WriteString("# DAO Activity Report\n\n")

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Platform | Total | Active | Inactive | Activity Rate |\n")
	sb.WriteString("|----------|-------|--------|----------|---------------|\n")
	for _, pr := range results {
		if pr.Err != nil {
			sb.WriteString(fmt.Sprintf("| %s | - | - | - | error |\n", pr.Platform))
			continue
		}
		r := pr.Result
		sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %.2f%% |\n",
			r.Platform, r.TotalOrganizations, r.ActiveOrganizations, r.InactiveOrganizations, r.ActivityRate()))
	}
	sb.WriteString("\n")

	for _, pr := range results {
		sb.WriteString(fmt.Sprintf("## %s\n\n", strings.ToUpper(pr.Platform.String())))
		if pr.Err != nil {
			sb.WriteString(fmt.Sprintf("Analysis failed: %s\n\n", escapeCell(pr.Err.Error())))
			continue
		}
		writeMarkdownPlatform(&sb, pr.Result)
	}

	return sb.String()
}

func writeMarkdownPlatform(sb *strings.Builder, r *domain.ClassificationResult) {
	sb.WriteString("| Category | Organizations |\n")
	sb.WriteString("|----------|---------------|\n")
	sb.WriteString(fmt.Sprintf("| Highly Active | %d |\n", r.HighlyActive))
	sb.WriteString(fmt.Sprintf("| Moderately Active | %d |\n", r.ModeratelyActive))
	sb.WriteString(fmt.Sprintf("| Minimally Active | %d |\n", r.MinimallyActive))
	sb.WriteString(fmt.Sprintf("| Potential Test | %d |\n", r.PotentialTest))
	sb.WriteString(fmt.Sprintf("| No Activity | %d |\n", r.NoActivity))
	sb.WriteString("\n")

	sb.WriteString("### Highly Active DAOs\n\n")
	writeMarkdownListing(sb, r.Detailed.HighlyActiveDAOs)
	sb.WriteString("### Moderately Active DAOs\n\n")
	writeMarkdownListing(sb, r.Detailed.ModeratelyActiveDAOs)
}

func writeMarkdownListing(sb *strings.Builder, summaries []domain.OrganizationSummary) {
	if len(summaries) == 0 {
		sb.WriteString("None.\n\n")
		return
	}

	sb.WriteString("| Name | Address | Activity | Treasury | Last Activity |\n")
	sb.WriteString("|------|---------|----------|----------|---------------|\n")
	for _, s := range summaries {
		counts := make([]string, 0, len(s.Counts))
		for _, c := range presentCounters(s) {
			counts = append(counts, fmt.Sprintf("%s: %d", counterLabels[c], s.Counts[c]))
		}
		treasury := "-"
		if s.Treasury != nil {
			treasury = formatTreasury(s.Treasury)
		}
		sb.WriteString(fmt.Sprintf("| %s | `%s` | %s | %s | %s |\n",
			escapeCell(s.Name), s.Address, strings.Join(counts, ", "), treasury, s.LastActivity.Format(dateLayout)))
	}
	sb.WriteString("\n")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
