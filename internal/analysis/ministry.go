package analysis

import (
	"strings"

	"budgetlens/internal/models"
)

// MinistryDetail resolves a ministry by case-insensitive substring
// match and returns its drill-down view for the year. When several
// ministries match, the first in table order wins; callers wanting a
// specific ministry should pass its exact name.
func (s *Service) MinistryDetail(year int, pattern string) (models.MinistryDetail, error) {
	needle := strings.ToLower(pattern)

	var row *models.MinistryRow
	rows := s.store.MinistryRows()
	for i := range rows {
		if strings.Contains(strings.ToLower(rows[i].Name), needle) && rows[i].Amounts[year].Valid {
			row = &rows[i]
			break
		}
	}
	if row == nil {
		return models.MinistryDetail{}, models.NotFound("no data found for %q in %d", pattern, year)
	}

	detail := models.MinistryDetail{
		MinistryName:      row.Name,
		CurrentAllocation: row.Amounts[year].Crores,
		Rank:              row.Rank,
		TenYearTotal:      row.TenYearTotal,
	}
	if detail.TenYearTotal == "" {
		detail.TenYearTotal = "N/A"
	}

	// Historical series covers only years in the configured range with
	// a defined amount; gaps are omitted, not filled.
	for _, y := range s.store.Years().Years() {
		if amt := row.Amounts[y]; amt.Valid {
			detail.HistoricalTrend = append(detail.HistoricalTrend, models.YearPoint{Year: y, Amount: amt.Crores})
		}
	}

	for _, item := range s.store.ExpenditureItems(year) {
		if strings.Contains(strings.ToLower(item.Ministry), needle) {
			detail.MajorSchemes = append(detail.MajorSchemes, models.SchemeAllocation{
				Scheme: item.Scheme,
				Amount: item.Amount,
				Type:   item.ExpenditureType,
			})
		}
	}

	return detail, nil
}
