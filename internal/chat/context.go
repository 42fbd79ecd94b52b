package chat

import (
	"encoding/json"
	"fmt"
	"strings"

	"budgetlens/internal/models"
)

// NoDataFound is the context returned when no section has anything to
// say about the query.
const NoDataFound = "No specific data found for this query."

// Section caps keep the assembled context bounded no matter how broad
// the search was.
const (
	maxContextMinistries = 5
	maxContextSchemes    = 5
	maxContextFindings   = 3
	maxContextTopMin     = 5
)

// BuildContext assembles the bounded text block handed to the
// completion service: the year block (when a year is selected), then
// ministry, scheme, and revenue search hits, then key findings.
func BuildContext(results models.SearchResults, overview *models.YearOverview, year int, findings []string) string {
	var sections []string

	if overview != nil {
		sections = append(sections, yearBlock(overview, year))
	}

	if len(results.Ministries) > 0 {
		var b strings.Builder
		b.WriteString("Relevant Ministries:\n")
		for i, m := range results.Ministries {
			if i == maxContextMinistries {
				break
			}
			fmt.Fprintf(&b, "- %s: Rank %d, Latest Allocation: ₹%.0f crores\n", m.Name, m.Rank, m.LatestAllocation)
		}
		sections = append(sections, b.String())
	}

	if len(results.Schemes) > 0 {
		var b strings.Builder
		b.WriteString("Relevant Schemes:\n")
		for i, sc := range results.Schemes {
			if i == maxContextSchemes {
				break
			}
			fmt.Fprintf(&b, "- %s (%s): ₹%.0f crores in %d\n", sc.Name, sc.Ministry, sc.Amount, sc.Year)
		}
		sections = append(sections, b.String())
	}

	if len(results.RevenueSources) > 0 {
		var b strings.Builder
		b.WriteString("Relevant Revenue Sources:\n")
		for _, rv := range results.RevenueSources {
			fmt.Fprintf(&b, "- %s: ₹%.0f crores (latest)\n", rv.Source, rv.LatestAmount)
		}
		sections = append(sections, b.String())
	}

	if len(findings) > 0 {
		var b strings.Builder
		b.WriteString("Key Budget Insights:\n")
		for i, f := range findings {
			if i == maxContextFindings {
				break
			}
			fmt.Fprintf(&b, "- %s\n", f)
		}
		sections = append(sections, b.String())
	}

	if len(sections) == 0 {
		return NoDataFound
	}
	return strings.Join(sections, "\n")
}

func yearBlock(overview *models.YearOverview, year int) string {
	summary, _ := json.MarshalIndent(overview.BudgetSummary, "", "  ")

	top := overview.TopMinistries
	if len(top) > maxContextTopMin {
		top = top[:maxContextTopMin]
	}
	topJSON, _ := json.MarshalIndent(top, "", "  ")

	return fmt.Sprintf("Current selected year: %d\nBudget Summary: %s\nTop Ministries: %s\n",
		year, summary, topJSON)
}
