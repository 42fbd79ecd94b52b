package models

// Amount is a monetary value in crores that may be missing. Missing is
// distinct from zero: a source with no figure for a year must not be
// summed as a zero allocation.
type Amount struct {
	Crores float64
	Valid  bool
}

// Crore returns a defined Amount.
func Crore(v float64) Amount {
	return Amount{Crores: v, Valid: true}
}

// YearRange is the configured inclusive range of budget years.
type YearRange struct {
	First int `yaml:"first" json:"first"`
	Last  int `yaml:"last" json:"last"`
}

// Years enumerates the range in ascending order.
func (r YearRange) Years() []int {
	if r.Last < r.First {
		return nil
	}
	years := make([]int, 0, r.Last-r.First+1)
	for y := r.First; y <= r.Last; y++ {
		years = append(years, y)
	}
	return years
}

// Contains reports whether year falls inside the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.First && year <= r.Last
}

// RevenueRow is one row of the year-columnar revenue table: a revenue
// source and its amount per year.
type RevenueRow struct {
	Source  string
	Amounts map[int]Amount
}

// MinistryRow is one row of the year-columnar expenditure table.
// TenYearTotal is a display string produced upstream; it is passed
// through, never recomputed.
type MinistryRow struct {
	Name         string
	Rank         int
	Amounts      map[int]Amount
	TenYearTotal string
}

// BudgetSummary is the per-year fiscal summary record. All monetary
// fields are in crores.
type BudgetSummary struct {
	Year                int     `json:"year"`
	TotalReceipts       float64 `json:"total_receipts"`
	TotalExpenditure    float64 `json:"total_expenditure"`
	FiscalDeficit       float64 `json:"fiscal_deficit_in_crores"`
	FiscalDeficitGDPPct float64 `json:"fiscal_deficit_as_gdp_pct"`
	GDPNominal          float64 `json:"gdp_nominal_in_crores"`
}

// ExpenditureItem is the finest-grained expenditure record.
type ExpenditureItem struct {
	Year            int     `json:"year"`
	Ministry        string  `json:"ministry"`
	Scheme          string  `json:"scheme"`
	Amount          float64 `json:"amount"`
	ExpenditureType string  `json:"type"`
	EstimateType    string  `json:"estimate_type"`
}

// RevenueItem is the fine-grained receipt record by source and year.
type RevenueItem struct {
	Year         int     `json:"year"`
	Source       string  `json:"source"`
	Amount       float64 `json:"amount"`
	RevenueType  string  `json:"type"`
	EstimateType string  `json:"estimate_type"`
}

// SchemeOutcome is the auxiliary outcomes table; it is loaded and
// served as-is, not consumed by the aggregations.
type SchemeOutcome struct {
	Year     int    `json:"year"`
	Ministry string `json:"ministry"`
	Scheme   string `json:"scheme"`
	Outcome  string `json:"outcome"`
}

// Speech holds the pre-computed summary of one year's budget speech.
type Speech struct {
	Year    int    `json:"year"`
	Summary string `json:"summary"`
}
