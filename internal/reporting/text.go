package reporting

import (
	"fmt"
	"strings"

	"dao-activity-lab/internal/domain"
	"dao-activity-lab/internal/structure"
)

// ANSI styles used when TextOptions.Color is set.
const (
	styleReset  = "\x1b[0m"
	styleGreen  = "\x1b[1;32m"
	styleYellow = "\x1b[1;33m"
	styleBlue   = "\x1b[1;34m"
)

// TextOptions controls console rendering.
type TextOptions struct {
	Color bool // wrap headings in ANSI styles
}

func (o TextOptions) style(s, style string) string {
	if !o.Color {
		return s
	}
	return style + s + styleReset
}

// RenderText renders one platform's result in the console layout.
func RenderText(r *domain.ClassificationResult, opts TextOptions) string {
	var sb strings.Builder

	sb.WriteString("\n" + opts.style("Platform: "+strings.ToUpper(r.Platform.String()), styleGreen) + "\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n")

	sb.WriteString("\n" + opts.style("Overview:", styleBlue) + "\n")
	sb.WriteString(fmt.Sprintf("Total Organizations: %d\n", r.TotalOrganizations))
	sb.WriteString(fmt.Sprintf("Active Organizations: %d\n", r.ActiveOrganizations))
	sb.WriteString(fmt.Sprintf("Inactive Organizations: %d\n", r.InactiveOrganizations))

	sb.WriteString("\n" + opts.style("Activity Breakdown:", styleBlue) + "\n")
	sb.WriteString(fmt.Sprintf("Highly Active: %d\n", r.HighlyActive))
	sb.WriteString(fmt.Sprintf("Moderately Active: %d\n", r.ModeratelyActive))
	sb.WriteString(fmt.Sprintf("Minimally Active: %d\n", r.MinimallyActive))
	sb.WriteString(fmt.Sprintf("Potential Test Organizations: %d\n", r.PotentialTest))
	sb.WriteString(fmt.Sprintf("No Activity: %d\n", r.NoActivity))

	if len(r.Detailed.HighlyActiveDAOs) > 0 {
		sb.WriteString("\n" + opts.style("Highly Active DAOs:", styleGreen) + "\n")
		writeSummaries(&sb, r.Detailed.HighlyActiveDAOs)
	}
	if len(r.Detailed.ModeratelyActiveDAOs) > 0 {
		sb.WriteString("\n" + opts.style("Moderately Active DAOs:", styleYellow) + "\n")
		writeSummaries(&sb, r.Detailed.ModeratelyActiveDAOs)
	}

	if r.TotalOrganizations > 0 {
		sb.WriteString(fmt.Sprintf("\n%s %.2f%%\n", opts.style("Overall Activity Rate:", styleBlue), r.ActivityRate()))
	}

	return sb.String()
}

func writeSummaries(sb *strings.Builder, summaries []domain.OrganizationSummary) {
	for _, s := range summaries {
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		sb.WriteString(fmt.Sprintf("Name: %s\n", s.Name))
		sb.WriteString(fmt.Sprintf("Address: %s\n", s.Address))
		for _, c := range presentCounters(s) {
			sb.WriteString(fmt.Sprintf("%s: %d\n", counterLabels[c], s.Counts[c]))
		}
		if s.Treasury != nil {
			sb.WriteString(fmt.Sprintf("Treasury: %s\n", formatTreasury(s.Treasury)))
		}
		sb.WriteString(fmt.Sprintf("Last Activity: %s\n", s.LastActivity.Format(dateLayout)))
	}
}

// RenderStructure renders file and column listings. detailed adds
// descriptions and sample values per column.
func RenderStructure(structures []structure.PlatformStructure, detailed bool, opts TextOptions) string {
	var sb strings.Builder

	for _, ps := range structures {
		sb.WriteString("\n" + opts.style("Platform: "+strings.ToUpper(ps.Platform.String()), styleGreen) + "\n")
		sb.WriteString(strings.Repeat("=", 50) + "\n")

		for _, f := range ps.Files {
			sb.WriteString("\n" + opts.style("File: "+f.Name+".csv", styleYellow) + "\n")
			sb.WriteString(fmt.Sprintf("Total columns: %d\n", len(f.Columns)))
			sb.WriteString("\nColumns:\n")

			for _, c := range f.Columns {
				if !detailed {
					sb.WriteString(fmt.Sprintf("  - %s\n", c.Name))
					continue
				}
				sb.WriteString(fmt.Sprintf("\n  %s:\n", opts.style(c.Name, styleBlue)))
				sb.WriteString(fmt.Sprintf("  Description: %s\n", c.Description))
				if len(c.SampleValues) > 0 {
					sb.WriteString(fmt.Sprintf("  Sample values: %s\n", strings.Join(c.SampleValues, ", ")))
				}
			}
			sb.WriteString(strings.Repeat("-", 50) + "\n")
		}
	}

	return sb.String()
}

// RenderColumnMatches renders FindColumn results for query.
func RenderColumnMatches(query string, matches []structure.ColumnMatch, opts TextOptions) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("\nSearching for column '%s':\n", query))
	sb.WriteString(strings.Repeat("=", 50) + "\n")

	if len(matches) == 0 {
		sb.WriteString(fmt.Sprintf("No columns found matching '%s'\n", query))
		return sb.String()
	}

	for _, m := range matches {
		sb.WriteString(fmt.Sprintf("\nPlatform: %s\n", strings.ToUpper(m.Platform.String())))
		sb.WriteString(fmt.Sprintf("File: %s\n", opts.style(m.File+".csv", styleYellow)))
		sb.WriteString(fmt.Sprintf("Column: %s\n", opts.style(m.Column.Name, styleBlue)))
		sb.WriteString(fmt.Sprintf("Description: %s\n", m.Column.Description))
		if len(m.Column.SampleValues) > 0 {
			sb.WriteString(fmt.Sprintf("Sample values: %s\n", strings.Join(m.Column.SampleValues, ", ")))
		}
		sb.WriteString(strings.Repeat("-", 30) + "\n")
	}

	return sb.String()
}
