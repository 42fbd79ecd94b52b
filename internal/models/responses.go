package models

// RevenueShare is one source's contribution to a year's receipts.
type RevenueShare struct {
	Source     string  `json:"source"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// MinistryAllocation is one ministry's spend for a single year.
type MinistryAllocation struct {
	Ministry string  `json:"ministry"`
	Amount   float64 `json:"amount"`
	Rank     int     `json:"rank"`
}

// FiscalHealth holds the derived fiscal ratios for one year.
type FiscalHealth struct {
	BudgetBalance      float64 `json:"budget_balance"`
	ExpenditureToGDP   float64 `json:"expenditure_to_gdp"`
	RevenueToGDP       float64 `json:"revenue_to_gdp"`
	FiscalDeficitRatio float64 `json:"fiscal_deficit_ratio"`
	DeficitTrend       string  `json:"deficit_trend"`
}

// YearOverview is the full dashboard view for a single year.
type YearOverview struct {
	BudgetSummary    BudgetSummary        `json:"budget_summary"`
	RevenueBreakdown []RevenueShare       `json:"revenue_breakdown"`
	TopMinistries    []MinistryAllocation `json:"top_ministries"`
	KeySchemes       []ExpenditureItem    `json:"key_schemes"`
	SpeechSummary    string               `json:"speech_summary"`
	FiscalHealth     FiscalHealth         `json:"fiscal_health"`
}

// YearPoint is one (year, amount) sample of a series. Years with no
// defined amount are omitted from series, never zero-filled.
type YearPoint struct {
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

// SchemeAllocation is a scheme line within a ministry detail view.
type SchemeAllocation struct {
	Scheme string  `json:"scheme"`
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
}

// MinistryDetail is the drill-down view for one ministry and year.
type MinistryDetail struct {
	MinistryName      string             `json:"ministry_name"`
	CurrentAllocation float64            `json:"current_allocation"`
	Rank              int                `json:"rank"`
	HistoricalTrend   []YearPoint        `json:"historical_trend"`
	MajorSchemes      []SchemeAllocation `json:"major_schemes"`
	TenYearTotal      string             `json:"total_10_year"`
}

// Comparison holds multi-year comparison series.
type Comparison struct {
	Years             []int                  `json:"years"`
	BudgetSummaries   []BudgetSummary        `json:"budget_summary"`
	RevenueComparison map[string][]YearPoint `json:"revenue_comparison"`
	MinistryTrends    map[string][]YearPoint `json:"ministry_trends"`
}

// GrowthRate is a year-over-year growth observation.
type GrowthRate struct {
	Year int     `json:"year"`
	Rate float64 `json:"growth_rate"`
}

// RevenueTrend is the growth profile of one tracked revenue source.
type RevenueTrend struct {
	GrowthRates []GrowthRate `json:"growth_rates"`
	AvgGrowth   float64      `json:"avg_growth"`
}

// RevenueTrends is the revenue sub-report of the insights view.
type RevenueTrends struct {
	Sources map[string]RevenueTrend `json:"sources"`
	Error   string                  `json:"error,omitempty"`
}

// YearTotal is total expenditure across ministries for one year.
type YearTotal struct {
	Year  int     `json:"year"`
	Total float64 `json:"total"`
}

// MinistryGrowth is a ministry's growth over the configured range.
type MinistryGrowth struct {
	Ministry  string  `json:"ministry"`
	GrowthPct float64 `json:"growth_pct"`
}

// ExpenditurePatterns is the expenditure sub-report of the insights view.
type ExpenditurePatterns struct {
	YearlyTotals []YearTotal      `json:"yearly_totals"`
	TopGrowing   []MinistryGrowth `json:"top_growing_ministries"`
	Declining    []MinistryGrowth `json:"declining_ministries"`
	Error        string           `json:"error,omitempty"`
}

// FiscalYearData is one year's recomputed fiscal ratios.
type FiscalYearData struct {
	Year             int     `json:"year"`
	DeficitRatio     float64 `json:"fiscal_deficit_ratio"`
	ExpenditureToGDP float64 `json:"expenditure_to_gdp"`
	RevenueToGDP     float64 `json:"revenue_to_gdp"`
}

// FiscalAnalysis is the fiscal sub-report of the insights view.
type FiscalAnalysis struct {
	YearlyData          []FiscalYearData `json:"yearly_data"`
	AvgDeficitRatio     float64          `json:"average_deficit_ratio"`
	AvgExpenditureToGDP float64          `json:"average_expenditure_to_gdp"`
	Trend               string           `json:"trend_analysis"`
	Error               string           `json:"error,omitempty"`
}

// MinistryStats holds allocation statistics for one ministry across
// all years with defined data.
type MinistryStats struct {
	Ministry    string  `json:"ministry"`
	Average     float64 `json:"average_allocation"`
	Total       float64 `json:"total_allocation"`
	Variance    float64 `json:"allocation_variance"`
	Consistency float64 `json:"consistency_score"`
}

// MinistryPerformance is the performance sub-report of the insights view.
type MinistryPerformance struct {
	TopByTotal     []MinistryStats `json:"top_by_total"`
	MostConsistent []MinistryStats `json:"most_consistent"`
	Error          string          `json:"error,omitempty"`
}

// Insights is the corpus-wide insights report. Sub-reports degrade
// independently: a failed section carries an error string while its
// siblings still hold data.
type Insights struct {
	RevenueTrends       RevenueTrends       `json:"revenue_trends"`
	ExpenditurePatterns ExpenditurePatterns `json:"expenditure_patterns"`
	FiscalAnalysis      FiscalAnalysis      `json:"fiscal_analysis"`
	MinistryPerformance MinistryPerformance `json:"ministry_performance"`
	KeyFindings         []string            `json:"key_findings"`
	KeyFindingsError    string              `json:"key_findings_error,omitempty"`
}

// MinistryHit is a ministry search match.
type MinistryHit struct {
	Name             string  `json:"name"`
	Rank             int     `json:"rank"`
	LatestAllocation float64 `json:"latest_allocation"`
}

// SchemeHit is a scheme search match.
type SchemeHit struct {
	Name     string  `json:"name"`
	Ministry string  `json:"ministry"`
	Amount   float64 `json:"amount"`
	Year     int     `json:"year"`
}

// RevenueHit is a revenue-source search match.
type RevenueHit struct {
	Source       string  `json:"source"`
	LatestAmount float64 `json:"latest_amount"`
}

// SearchResults groups matches by category, in table order.
type SearchResults struct {
	Ministries     []MinistryHit `json:"ministries"`
	Schemes        []SchemeHit   `json:"schemes"`
	RevenueSources []RevenueHit  `json:"revenue_sources"`
}

// Empty reports whether no category matched.
func (r SearchResults) Empty() bool {
	return len(r.Ministries) == 0 && len(r.Schemes) == 0 && len(r.RevenueSources) == 0
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
	Year      int    `json:"year,omitempty"`
}

// ChatResponse is the reply to POST /api/chat.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

// YearsResponse is returned by GET /api/years.
type YearsResponse struct {
	Range   YearRange `json:"range"`
	Covered []int     `json:"covered"`
}
