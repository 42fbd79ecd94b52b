package analysis

import (
	"errors"
	"fmt"
	"sort"

	"budgetlens/internal/models"
)

// majorRevenueSources are the tracked indicators for the revenue trend
// sub-report. These are fixed illustrative indicators, not a general
// insight miner.
var majorRevenueSources = []string{
	"Corporation Tax",
	"Income Tax",
	"Goods and Services Tax (GST)",
}

const (
	gstSourceName   = "Goods and Services Tax (GST)"
	gstLaunchYear   = 2017
	defenceMinistry = "Ministry of Defence"
)

// Fiscal trend classifications for the insights report.
const (
	FiscalImproving     = "Improving"
	FiscalDeteriorating = "Deteriorating"
	FiscalStable        = "Stable"
)

// Insights computes the corpus-wide report. The four sub-reports and
// the key findings degrade independently: a failure in one is recorded
// on its own error field while the others still return data.
func (s *Service) Insights() models.Insights {
	var ins models.Insights

	rt, err := capture("revenue trends", s.revenueTrends)
	if err != nil {
		rt.Error = err.Error()
	}
	ins.RevenueTrends = rt

	ep, err := capture("expenditure patterns", s.expenditurePatterns)
	if err != nil {
		ep.Error = err.Error()
	}
	ins.ExpenditurePatterns = ep

	fa, err := capture("fiscal analysis", s.fiscalAnalysis)
	if err != nil {
		fa.Error = err.Error()
	}
	ins.FiscalAnalysis = fa

	mp, err := capture("ministry performance", s.ministryPerformance)
	if err != nil {
		mp.Error = err.Error()
	}
	ins.MinistryPerformance = mp

	kf, err := capture("key findings", s.keyFindings)
	if err != nil {
		ins.KeyFindingsError = err.Error()
	}
	ins.KeyFindings = kf

	return ins
}

// revenueTrends computes year-over-year growth for the tracked major
// sources. A pair contributes only when both years are defined and
// positive.
func (s *Service) revenueTrends() (models.RevenueTrends, error) {
	trends := models.RevenueTrends{Sources: make(map[string]models.RevenueTrend)}
	for _, source := range majorRevenueSources {
		row, ok := s.revenueRow(source)
		if !ok {
			continue
		}
		var trend models.RevenueTrend
		for y := s.store.Years().First + 1; y <= s.store.Years().Last; y++ {
			cur, prev := row.Amounts[y], row.Amounts[y-1]
			if cur.Valid && prev.Valid && cur.Crores > 0 && prev.Crores > 0 {
				trend.GrowthRates = append(trend.GrowthRates, models.GrowthRate{
					Year: y,
					Rate: (cur.Crores - prev.Crores) / prev.Crores * 100,
				})
			}
		}
		if len(trend.GrowthRates) > 0 {
			var sum float64
			for _, g := range trend.GrowthRates {
				sum += g.Rate
			}
			trend.AvgGrowth = sum / float64(len(trend.GrowthRates))
		}
		trends.Sources[source] = trend
	}
	return trends, nil
}

// expenditurePatterns totals spend per year (missing treated as zero
// for this sum only) and ranks ministries by growth from the first to
// the last year of the range.
func (s *Service) expenditurePatterns() (models.ExpenditurePatterns, error) {
	var p models.ExpenditurePatterns

	for _, y := range s.store.Years().Years() {
		var total float64
		for _, row := range s.store.MinistryRows() {
			if amt := row.Amounts[y]; amt.Valid {
				total += amt.Crores
			}
		}
		p.YearlyTotals = append(p.YearlyTotals, models.YearTotal{Year: y, Total: total})
	}

	first, last := s.store.Years().First, s.store.Years().Last
	var growth []models.MinistryGrowth
	for _, row := range s.store.MinistryRows() {
		start, end := row.Amounts[first], row.Amounts[last]
		if start.Valid && end.Valid && start.Crores > 0 {
			growth = append(growth, models.MinistryGrowth{
				Ministry:  row.Name,
				GrowthPct: (end.Crores - start.Crores) / start.Crores * 100,
			})
		}
	}
	sort.SliceStable(growth, func(i, j int) bool { return growth[i].GrowthPct > growth[j].GrowthPct })

	top := 10
	if top > len(growth) {
		top = len(growth)
	}
	p.TopGrowing = growth[:top]

	bottom := 5
	if bottom > len(growth) {
		bottom = len(growth)
	}
	p.Declining = growth[len(growth)-bottom:]

	return p, nil
}

// fiscalAnalysis recomputes the per-year GDP ratios from the summary
// table and classifies the overall trend by comparing the mean deficit
// ratio of the earliest three years against the latest three.
func (s *Service) fiscalAnalysis() (models.FiscalAnalysis, error) {
	summaries := s.store.Summaries()
	if len(summaries) == 0 {
		return models.FiscalAnalysis{}, errors.New("no summary records")
	}

	var fa models.FiscalAnalysis
	var deficitSum, expSum float64
	for _, sum := range summaries {
		yd := models.FiscalYearData{Year: sum.Year, DeficitRatio: sum.FiscalDeficitGDPPct}
		if sum.GDPNominal > 0 {
			yd.ExpenditureToGDP = sum.TotalExpenditure / sum.GDPNominal * 100
			yd.RevenueToGDP = sum.TotalReceipts / sum.GDPNominal * 100
		}
		fa.YearlyData = append(fa.YearlyData, yd)
		deficitSum += yd.DeficitRatio
		expSum += yd.ExpenditureToGDP
	}
	fa.AvgDeficitRatio = deficitSum / float64(len(fa.YearlyData))
	fa.AvgExpenditureToGDP = expSum / float64(len(fa.YearlyData))
	fa.Trend = classifyFiscalTrend(fa.YearlyData)
	return fa, nil
}

func classifyFiscalTrend(yearly []models.FiscalYearData) string {
	sorted := make([]models.FiscalYearData, len(yearly))
	copy(sorted, yearly)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	n := 3
	if n > len(sorted) {
		n = len(sorted)
	}
	earlyMean := meanDeficit(sorted[:n])
	recentMean := meanDeficit(sorted[len(sorted)-n:])

	switch {
	case recentMean <= earlyMean-0.5:
		return FiscalImproving
	case recentMean >= earlyMean+0.5:
		return FiscalDeteriorating
	default:
		return FiscalStable
	}
}

func meanDeficit(yearly []models.FiscalYearData) float64 {
	var sum float64
	for _, y := range yearly {
		sum += y.DeficitRatio
	}
	return sum / float64(len(yearly))
}

// ministryPerformance computes allocation statistics per ministry over
// every year with defined data and ranks by total and by consistency.
func (s *Service) ministryPerformance() (models.MinistryPerformance, error) {
	var stats []models.MinistryStats
	for _, row := range s.store.MinistryRows() {
		var values []float64
		for _, y := range s.store.Years().Years() {
			if amt := row.Amounts[y]; amt.Valid {
				values = append(values, amt.Crores)
			}
		}
		if len(values) == 0 {
			continue
		}
		mean, variance := meanVariance(values)
		st := models.MinistryStats{
			Ministry: row.Name,
			Average:  mean,
			Variance: variance,
		}
		for _, v := range values {
			st.Total += v
		}
		if mean > 0 {
			st.Consistency = 1 / (1 + variance/mean)
		}
		stats = append(stats, st)
	}

	var perf models.MinistryPerformance
	perf.TopByTotal = topStats(stats, func(a, b models.MinistryStats) bool { return a.Total > b.Total })
	perf.MostConsistent = topStats(stats, func(a, b models.MinistryStats) bool { return a.Consistency > b.Consistency })
	return perf, nil
}

func meanVariance(values []float64) (mean, variance float64) {
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, variance
}

func topStats(stats []models.MinistryStats, less func(a, b models.MinistryStats) bool) []models.MinistryStats {
	sorted := make([]models.MinistryStats, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > 10 {
		sorted = sorted[:10]
	}
	return sorted
}

// keyFindings renders the fixed indicator sentences. The entity names
// and reference years are deliberately hardcoded illustrative
// indicators; a finding whose inputs are absent is skipped.
func (s *Service) keyFindings() ([]string, error) {
	var findings []string
	latest := s.store.Years().Last

	if row, ok := s.revenueRow(gstSourceName); ok {
		base, cur := row.Amounts[gstLaunchYear], row.Amounts[latest]
		if base.Valid && base.Crores > 0 && cur.Valid {
			growth := (cur.Crores - base.Crores) / base.Crores * 100
			findings = append(findings, fmt.Sprintf(
				"GST revenue has grown by %.1f%% since its introduction in %d", growth, gstLaunchYear))
		}
	}

	if row, ok := s.ministryRow(defenceMinistry); ok {
		base, cur := row.Amounts[s.store.Years().First], row.Amounts[latest]
		if base.Valid && base.Crores > 0 && cur.Valid {
			growth := (cur.Crores - base.Crores) / base.Crores * 100
			findings = append(findings, fmt.Sprintf(
				"Defence spending has increased by %.1f%% over the decade", growth))
		}
	}

	if sum, ok := s.store.Summary(latest); ok {
		findings = append(findings, fmt.Sprintf(
			"The fiscal deficit for %d is projected at %.1f%% of GDP", latest, sum.FiscalDeficitGDPPct))
	}

	if rows := s.store.MinistryRows(); len(rows) > 0 {
		findings = append(findings, fmt.Sprintf(
			"%s consistently remains the largest spender across all years", rows[0].Name))
	}

	return findings, nil
}

func (s *Service) revenueRow(source string) (models.RevenueRow, bool) {
	for _, row := range s.store.RevenueRows() {
		if row.Source == source {
			return row, true
		}
	}
	return models.RevenueRow{}, false
}

func (s *Service) ministryRow(name string) (models.MinistryRow, bool) {
	for _, row := range s.store.MinistryRows() {
		if row.Name == name {
			return row, true
		}
	}
	return models.MinistryRow{}, false
}
