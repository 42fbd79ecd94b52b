package analysis

import (
	"sort"

	"budgetlens/internal/models"
)

// NoSpeechAvailable is returned in place of a speech summary when the
// speech table has no record for the year.
const NoSpeechAvailable = "No speech data available"

// Deficit trend classifications.
const (
	TrendImproving     = "Improving"
	TrendDeteriorating = "Deteriorating"
	TrendStable        = "Stable"
	TrendNoData        = "No trend data"
	TrendUnknown       = "Unknown"
)

// YearOverview assembles the full dashboard view for one year. It
// fails with a NotFoundError when the year has no summary record; it
// never returns partial data alongside an error.
func (s *Service) YearOverview(year int) (models.YearOverview, error) {
	sum, ok := s.store.Summary(year)
	if !ok {
		return models.YearOverview{}, models.NotFound("no data available for year %d", year)
	}

	speech, ok := s.store.Speech(year)
	if !ok {
		speech = NoSpeechAvailable
	}

	return models.YearOverview{
		BudgetSummary:    sum,
		RevenueBreakdown: s.revenueBreakdown(year),
		TopMinistries:    s.topMinistries(year),
		KeySchemes:       s.keySchemes(year),
		SpeechSummary:    speech,
		FiscalHealth:     s.fiscalHealth(sum),
	}, nil
}

// revenueBreakdown lists every source with a defined, positive amount
// for the year, annotated with its share of the year's total.
func (s *Service) revenueBreakdown(year int) []models.RevenueShare {
	var shares []models.RevenueShare
	var total float64
	for _, row := range s.store.RevenueRows() {
		amt := row.Amounts[year]
		if amt.Valid && amt.Crores > 0 {
			shares = append(shares, models.RevenueShare{Source: row.Source, Amount: amt.Crores})
			total += amt.Crores
		}
	}
	for i := range shares {
		if total > 0 {
			shares[i].Percentage = shares[i].Amount / total * 100
		}
	}
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].Amount > shares[j].Amount })
	return shares
}

// topMinistries ranks ministries by amount for the year, descending,
// ties kept in table order, limited to the configured top N.
func (s *Service) topMinistries(year int) []models.MinistryAllocation {
	var ranked []models.MinistryAllocation
	for _, row := range s.store.MinistryRows() {
		amt := row.Amounts[year]
		if amt.Valid && amt.Crores > 0 {
			ranked = append(ranked, models.MinistryAllocation{
				Ministry: row.Name,
				Amount:   amt.Crores,
				Rank:     row.Rank,
			})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Amount > ranked[j].Amount })
	if len(ranked) > s.topN {
		ranked = ranked[:s.topN]
	}
	return ranked
}

// keySchemes returns the year's detailed line items, largest first.
func (s *Service) keySchemes(year int) []models.ExpenditureItem {
	items := s.store.ExpenditureItems(year)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Amount > items[j].Amount })
	return items
}

func (s *Service) fiscalHealth(sum models.BudgetSummary) models.FiscalHealth {
	fh := models.FiscalHealth{
		BudgetBalance:      sum.TotalReceipts - sum.TotalExpenditure,
		FiscalDeficitRatio: sum.FiscalDeficitGDPPct,
		DeficitTrend:       s.deficitTrend(sum.Year),
	}
	if sum.GDPNominal > 0 {
		fh.ExpenditureToGDP = sum.TotalExpenditure / sum.GDPNominal * 100
		fh.RevenueToGDP = sum.TotalReceipts / sum.GDPNominal * 100
	}
	return fh
}

// deficitTrend compares the year's deficit ratio with the prior
// year's. The comparison is anti-symmetric: swapping which year is
// current flips Improving and Deteriorating.
func (s *Service) deficitTrend(year int) string {
	cur, ok := s.store.Summary(year)
	if !ok {
		return TrendUnknown
	}
	prev, ok := s.store.Summary(year - 1)
	if !ok {
		return TrendNoData
	}
	switch {
	case cur.FiscalDeficitGDPPct < prev.FiscalDeficitGDPPct:
		return TrendImproving
	case cur.FiscalDeficitGDPPct > prev.FiscalDeficitGDPPct:
		return TrendDeteriorating
	default:
		return TrendStable
	}
}
