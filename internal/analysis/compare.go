package analysis

import (
	"sort"

	"budgetlens/internal/models"
)

// CompareYears builds side-by-side series for the requested years.
// Duplicates are dropped, caller order is preserved, and partial
// coverage is fine: it only fails when none of the years have a
// summary record. Series omit years without data instead of
// zero-filling them.
func (s *Service) CompareYears(years []int) (models.Comparison, error) {
	years = dedupe(years)

	cmp := models.Comparison{
		Years:             years,
		RevenueComparison: make(map[string][]models.YearPoint),
		MinistryTrends:    make(map[string][]models.YearPoint),
	}

	for _, y := range years {
		if sum, ok := s.store.Summary(y); ok {
			cmp.BudgetSummaries = append(cmp.BudgetSummaries, sum)
		}
	}
	if len(cmp.BudgetSummaries) == 0 {
		return models.Comparison{}, models.NotFound("no summary data for any of the requested years")
	}

	for _, row := range s.store.RevenueRows() {
		if series := yearSeries(row.Amounts, years); len(series) > 0 {
			cmp.RevenueComparison[row.Source] = series
		}
	}

	for _, row := range s.topRankedMinistries() {
		if series := yearSeries(row.Amounts, years); len(series) > 0 {
			cmp.MinistryTrends[row.Name] = series
		}
	}

	return cmp, nil
}

// topRankedMinistries returns the top N rows by the published ranking,
// unranked rows last, ties in table order.
func (s *Service) topRankedMinistries() []models.MinistryRow {
	rows := make([]models.MinistryRow, len(s.store.MinistryRows()))
	copy(rows, s.store.MinistryRows())
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i].Rank, rows[j].Rank
		if ri == 0 {
			return false
		}
		if rj == 0 {
			return true
		}
		return ri < rj
	})
	if len(rows) > s.topN {
		rows = rows[:s.topN]
	}
	return rows
}

func yearSeries(amounts map[int]models.Amount, years []int) []models.YearPoint {
	var series []models.YearPoint
	for _, y := range years {
		if amt := amounts[y]; amt.Valid {
			series = append(series, models.YearPoint{Year: y, Amount: amt.Crores})
		}
	}
	return series
}

func dedupe(years []int) []int {
	seen := make(map[int]bool, len(years))
	out := make([]int, 0, len(years))
	for _, y := range years {
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	return out
}
