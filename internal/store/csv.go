package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"budgetlens/internal/models"
)

// File names of the seven sources inside the data directory.
const (
	revenueFile     = "year_wise_revenue.csv"
	expenditureFile = "year_wise_expenditures.csv"
	summaryFile     = "budget_summary.csv"
	expDetailFile   = "expenditures_detailed.csv"
	revDetailFile   = "revenues_detailed.csv"
	outcomesFile    = "scheme_outcomes.csv"
	speechesFile    = "speeches.csv"
)

// CSVLoader reads the seven CSV sources from a directory.
type CSVLoader struct {
	Dir   string
	Years models.YearRange
}

// NewCSVLoader returns a loader rooted at dir for the given year range.
func NewCSVLoader(dir string, years models.YearRange) *CSVLoader {
	return &CSVLoader{Dir: dir, Years: years}
}

// Load reads and normalizes every source. Any absent file or missing
// required column aborts the whole load.
func (l *CSVLoader) Load() (*Store, error) {
	t := Tables{Years: l.Years}

	var err error
	if t.Revenue, err = l.loadRevenue(); err != nil {
		return nil, err
	}
	if t.Ministries, err = l.loadExpenditure(); err != nil {
		return nil, err
	}
	if t.Summaries, err = l.loadSummary(); err != nil {
		return nil, err
	}
	if t.ExpenditureItems, err = l.loadExpenditureItems(); err != nil {
		return nil, err
	}
	if t.RevenueItems, err = l.loadRevenueItems(); err != nil {
		return nil, err
	}
	if t.Outcomes, err = l.loadOutcomes(); err != nil {
		return nil, err
	}
	if t.Speeches, err = l.loadSpeeches(); err != nil {
		return nil, err
	}

	slog.Info("budget tables loaded",
		"dir", l.Dir,
		"revenue_sources", len(t.Revenue),
		"ministries", len(t.Ministries),
		"summary_years", len(t.Summaries),
		"expenditure_items", len(t.ExpenditureItems),
		"revenue_items", len(t.RevenueItems))

	return New(t), nil
}

// table is one parsed CSV file with name-addressable columns.
type table struct {
	source string
	header []string
	rows   [][]string
	index  map[string]int
}

func (l *CSVLoader) readTable(name string) (*table, error) {
	path := filepath.Join(l.Dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, &models.LoadError{Source: name, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, &models.LoadError{Source: name, Err: fmt.Errorf("read header: %w", err)}
	}
	t := &table{source: name, header: header, index: make(map[string]int, len(header))}
	for i, h := range header {
		t.index[strings.TrimSpace(h)] = i
	}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &models.LoadError{Source: name, Err: err}
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

// col returns the index of a required column.
func (t *table) col(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, &models.LoadError{Source: t.source, Err: fmt.Errorf("missing required column %q", name)}
	}
	return i, nil
}

func (t *table) cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseAmount turns a year-column cell into an Amount. Thousands
// separators and quote characters are stripped first; anything that
// still fails to parse is missing, not zero.
func parseAmount(raw string) models.Amount {
	s := strings.NewReplacer(",", "", `"`, "", " ", "").Replace(raw)
	if s == "" {
		return models.Amount{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return models.Amount{}
	}
	return models.Crore(v)
}

// parseRequiredFloat is for summary fields, where an unparsable value
// means the snapshot itself is broken.
func parseRequiredFloat(t *table, raw, column string) (float64, error) {
	s := strings.NewReplacer(",", "", `"`, "", " ", "").Replace(raw)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &models.LoadError{Source: t.source, Err: fmt.Errorf("column %q: bad number %q", column, raw)}
	}
	return v, nil
}

func parseRequiredInt(t *table, raw, column string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &models.LoadError{Source: t.source, Err: fmt.Errorf("column %q: bad integer %q", column, raw)}
	}
	return v, nil
}

// yearColumns resolves the index of every year column in the range.
func (l *CSVLoader) yearColumns(t *table) (map[int]int, error) {
	cols := make(map[int]int, l.Years.Last-l.Years.First+1)
	for _, y := range l.Years.Years() {
		idx, err := t.col(strconv.Itoa(y))
		if err != nil {
			return nil, err
		}
		cols[y] = idx
	}
	return cols, nil
}

func (l *CSVLoader) loadRevenue() ([]models.RevenueRow, error) {
	t, err := l.readTable(revenueFile)
	if err != nil {
		return nil, err
	}
	srcIdx, err := t.col("Revenue Source")
	if err != nil {
		return nil, err
	}
	yearCols, err := l.yearColumns(t)
	if err != nil {
		return nil, err
	}

	rows := make([]models.RevenueRow, 0, len(t.rows))
	for _, rec := range t.rows {
		row := models.RevenueRow{
			Source:  t.cell(rec, srcIdx),
			Amounts: make(map[int]models.Amount, len(yearCols)),
		}
		for y, idx := range yearCols {
			row.Amounts[y] = parseAmount(t.cell(rec, idx))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (l *CSVLoader) loadExpenditure() ([]models.MinistryRow, error) {
	t, err := l.readTable(expenditureFile)
	if err != nil {
		return nil, err
	}
	nameIdx, err := t.col("Ministry Name")
	if err != nil {
		return nil, err
	}
	rankIdx, err := t.col("Rank")
	if err != nil {
		return nil, err
	}
	totalIdx, err := t.col("10-Year Total")
	if err != nil {
		return nil, err
	}
	yearCols, err := l.yearColumns(t)
	if err != nil {
		return nil, err
	}

	rows := make([]models.MinistryRow, 0, len(t.rows))
	for _, rec := range t.rows {
		rank, _ := strconv.Atoi(t.cell(rec, rankIdx)) // absent rank stays 0
		row := models.MinistryRow{
			Name:         t.cell(rec, nameIdx),
			Rank:         rank,
			TenYearTotal: t.cell(rec, totalIdx),
			Amounts:      make(map[int]models.Amount, len(yearCols)),
		}
		for y, idx := range yearCols {
			row.Amounts[y] = parseAmount(t.cell(rec, idx))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (l *CSVLoader) loadSummary() ([]models.BudgetSummary, error) {
	t, err := l.readTable(summaryFile)
	if err != nil {
		return nil, err
	}
	cols := make(map[string]int, 6)
	for _, name := range []string{
		"year", "total_receipts", "total_expenditure",
		"fiscal_deficit_in_crores", "fiscal_deficit_as_gdp_pct", "gdp_nominal_in_crores",
	} {
		idx, err := t.col(name)
		if err != nil {
			return nil, err
		}
		cols[name] = idx
	}

	seen := make(map[int]bool, len(t.rows))
	summaries := make([]models.BudgetSummary, 0, len(t.rows))
	for _, rec := range t.rows {
		year, err := parseRequiredInt(t, t.cell(rec, cols["year"]), "year")
		if err != nil {
			return nil, err
		}
		if seen[year] {
			return nil, &models.LoadError{Source: summaryFile, Err: fmt.Errorf("duplicate summary record for year %d", year)}
		}
		seen[year] = true

		sum := models.BudgetSummary{Year: year}
		if sum.TotalReceipts, err = parseRequiredFloat(t, t.cell(rec, cols["total_receipts"]), "total_receipts"); err != nil {
			return nil, err
		}
		if sum.TotalExpenditure, err = parseRequiredFloat(t, t.cell(rec, cols["total_expenditure"]), "total_expenditure"); err != nil {
			return nil, err
		}
		if sum.FiscalDeficit, err = parseRequiredFloat(t, t.cell(rec, cols["fiscal_deficit_in_crores"]), "fiscal_deficit_in_crores"); err != nil {
			return nil, err
		}
		if sum.FiscalDeficitGDPPct, err = parseRequiredFloat(t, t.cell(rec, cols["fiscal_deficit_as_gdp_pct"]), "fiscal_deficit_as_gdp_pct"); err != nil {
			return nil, err
		}
		if sum.GDPNominal, err = parseRequiredFloat(t, t.cell(rec, cols["gdp_nominal_in_crores"]), "gdp_nominal_in_crores"); err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

func (l *CSVLoader) loadExpenditureItems() ([]models.ExpenditureItem, error) {
	t, err := l.readTable(expDetailFile)
	if err != nil {
		return nil, err
	}
	yearIdx, err := t.col("year")
	if err != nil {
		return nil, err
	}
	minIdx, err := t.col("ministry_name")
	if err != nil {
		return nil, err
	}
	schemeIdx, err := t.col("grant_or_scheme_name")
	if err != nil {
		return nil, err
	}
	amtIdx, err := t.col("amount_in_crores")
	if err != nil {
		return nil, err
	}
	typeIdx, err := t.col("expenditure_type")
	if err != nil {
		return nil, err
	}
	estIdx, err := t.col("estimate_type")
	if err != nil {
		return nil, err
	}

	items := make([]models.ExpenditureItem, 0, len(t.rows))
	for _, rec := range t.rows {
		year, err := parseRequiredInt(t, t.cell(rec, yearIdx), "year")
		if err != nil {
			return nil, err
		}
		amt := parseAmount(t.cell(rec, amtIdx))
		if !amt.Valid {
			// A line item without a figure carries no information;
			// skip rather than invent a zero.
			continue
		}
		items = append(items, models.ExpenditureItem{
			Year:            year,
			Ministry:        t.cell(rec, minIdx),
			Scheme:          t.cell(rec, schemeIdx),
			Amount:          amt.Crores,
			ExpenditureType: t.cell(rec, typeIdx),
			EstimateType:    t.cell(rec, estIdx),
		})
	}
	return items, nil
}

func (l *CSVLoader) loadRevenueItems() ([]models.RevenueItem, error) {
	t, err := l.readTable(revDetailFile)
	if err != nil {
		return nil, err
	}
	yearIdx, err := t.col("year")
	if err != nil {
		return nil, err
	}
	srcIdx, err := t.col("revenue_source")
	if err != nil {
		return nil, err
	}
	amtIdx, err := t.col("amount_in_crores")
	if err != nil {
		return nil, err
	}
	typeIdx, err := t.col("revenue_type")
	if err != nil {
		return nil, err
	}
	estIdx, err := t.col("estimate_type")
	if err != nil {
		return nil, err
	}

	items := make([]models.RevenueItem, 0, len(t.rows))
	for _, rec := range t.rows {
		year, err := parseRequiredInt(t, t.cell(rec, yearIdx), "year")
		if err != nil {
			return nil, err
		}
		amt := parseAmount(t.cell(rec, amtIdx))
		if !amt.Valid {
			continue
		}
		items = append(items, models.RevenueItem{
			Year:         year,
			Source:       t.cell(rec, srcIdx),
			Amount:       amt.Crores,
			RevenueType:  t.cell(rec, typeIdx),
			EstimateType: t.cell(rec, estIdx),
		})
	}
	return items, nil
}

func (l *CSVLoader) loadOutcomes() ([]models.SchemeOutcome, error) {
	t, err := l.readTable(outcomesFile)
	if err != nil {
		return nil, err
	}
	yearIdx, err := t.col("year")
	if err != nil {
		return nil, err
	}
	minIdx, err := t.col("ministry_name")
	if err != nil {
		return nil, err
	}
	schemeIdx, err := t.col("scheme_name")
	if err != nil {
		return nil, err
	}
	outIdx, err := t.col("outcome")
	if err != nil {
		return nil, err
	}

	outcomes := make([]models.SchemeOutcome, 0, len(t.rows))
	for _, rec := range t.rows {
		year, err := parseRequiredInt(t, t.cell(rec, yearIdx), "year")
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, models.SchemeOutcome{
			Year:     year,
			Ministry: t.cell(rec, minIdx),
			Scheme:   t.cell(rec, schemeIdx),
			Outcome:  t.cell(rec, outIdx),
		})
	}
	return outcomes, nil
}

func (l *CSVLoader) loadSpeeches() ([]models.Speech, error) {
	t, err := l.readTable(speechesFile)
	if err != nil {
		return nil, err
	}
	yearIdx, err := t.col("year")
	if err != nil {
		return nil, err
	}
	sumIdx, err := t.col("ai_summary")
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(t.rows))
	speeches := make([]models.Speech, 0, len(t.rows))
	for _, rec := range t.rows {
		year, err := parseRequiredInt(t, t.cell(rec, yearIdx), "year")
		if err != nil {
			return nil, err
		}
		if seen[year] {
			return nil, &models.LoadError{Source: speechesFile, Err: fmt.Errorf("duplicate speech record for year %d", year)}
		}
		seen[year] = true
		speeches = append(speeches, models.Speech{Year: year, Summary: t.cell(rec, sumIdx)})
	}
	return speeches, nil
}
