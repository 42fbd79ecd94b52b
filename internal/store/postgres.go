package store

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"budgetlens/internal/models"
)

// PostgresLoader loads the same logical tables from a Postgres
// snapshot. Year-columnar tables are stored long-format in SQL and
// pivoted here into the in-memory shape the aggregations expect.
type PostgresLoader struct {
	DSN   string
	Years models.YearRange
}

// NewPostgresLoader returns a loader for the given connection string.
func NewPostgresLoader(dsn string, years models.YearRange) *PostgresLoader {
	return &PostgresLoader{DSN: dsn, Years: years}
}

// Load connects, reads every table, and closes the connection. The
// store keeps no handle to the database afterwards.
func (l *PostgresLoader) Load() (*Store, error) {
	db, err := sql.Open("postgres", l.DSN)
	if err != nil {
		return nil, &models.LoadError{Source: "postgres", Err: err}
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return nil, &models.LoadError{Source: "postgres", Err: err}
	}

	t := Tables{Years: l.Years}
	if t.Revenue, err = l.loadRevenue(db); err != nil {
		return nil, err
	}
	if t.Ministries, err = l.loadMinistries(db); err != nil {
		return nil, err
	}
	if t.Summaries, err = l.loadSummaries(db); err != nil {
		return nil, err
	}
	if t.ExpenditureItems, err = l.loadExpenditureItems(db); err != nil {
		return nil, err
	}
	if t.RevenueItems, err = l.loadRevenueItems(db); err != nil {
		return nil, err
	}
	if t.Outcomes, err = l.loadOutcomes(db); err != nil {
		return nil, err
	}
	if t.Speeches, err = l.loadSpeeches(db); err != nil {
		return nil, err
	}
	return New(t), nil
}

func pgErr(table string, err error) error {
	return &models.LoadError{Source: "postgres/" + table, Err: err}
}

func (l *PostgresLoader) loadRevenue(db *sql.DB) ([]models.RevenueRow, error) {
	rows, err := db.Query(`
		SELECT source, year, amount
		FROM revenue_yearly
		WHERE year BETWEEN $1 AND $2
		ORDER BY source, year`, l.Years.First, l.Years.Last)
	if err != nil {
		return nil, pgErr("revenue_yearly", err)
	}
	defer rows.Close()

	bySource := make(map[string]*models.RevenueRow)
	var order []string
	for rows.Next() {
		var (
			source string
			year   int
			amount sql.NullFloat64
		)
		if err := rows.Scan(&source, &year, &amount); err != nil {
			return nil, pgErr("revenue_yearly", err)
		}
		row, ok := bySource[source]
		if !ok {
			row = &models.RevenueRow{Source: source, Amounts: make(map[int]models.Amount)}
			bySource[source] = row
			order = append(order, source)
		}
		if amount.Valid {
			row.Amounts[year] = models.Crore(amount.Float64)
		} else {
			row.Amounts[year] = models.Amount{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, pgErr("revenue_yearly", err)
	}

	out := make([]models.RevenueRow, 0, len(order))
	for _, src := range order {
		out = append(out, *bySource[src])
	}
	return out, nil
}

func (l *PostgresLoader) loadMinistries(db *sql.DB) ([]models.MinistryRow, error) {
	rows, err := db.Query(`
		SELECT ministry, rank, year, amount, ten_year_total
		FROM expenditure_yearly
		WHERE year BETWEEN $1 AND $2
		ORDER BY rank, ministry, year`, l.Years.First, l.Years.Last)
	if err != nil {
		return nil, pgErr("expenditure_yearly", err)
	}
	defer rows.Close()

	byName := make(map[string]*models.MinistryRow)
	var order []string
	for rows.Next() {
		var (
			ministry string
			rank     int
			year     int
			amount   sql.NullFloat64
			total    sql.NullString
		)
		if err := rows.Scan(&ministry, &rank, &year, &amount, &total); err != nil {
			return nil, pgErr("expenditure_yearly", err)
		}
		row, ok := byName[ministry]
		if !ok {
			row = &models.MinistryRow{
				Name:         ministry,
				Rank:         rank,
				TenYearTotal: total.String,
				Amounts:      make(map[int]models.Amount),
			}
			byName[ministry] = row
			order = append(order, ministry)
		}
		if amount.Valid {
			row.Amounts[year] = models.Crore(amount.Float64)
		} else {
			row.Amounts[year] = models.Amount{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, pgErr("expenditure_yearly", err)
	}

	out := make([]models.MinistryRow, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out, nil
}

func (l *PostgresLoader) loadSummaries(db *sql.DB) ([]models.BudgetSummary, error) {
	rows, err := db.Query(`
		SELECT year, total_receipts, total_expenditure,
		       fiscal_deficit_in_crores, fiscal_deficit_as_gdp_pct, gdp_nominal_in_crores
		FROM budget_summary
		ORDER BY year`)
	if err != nil {
		return nil, pgErr("budget_summary", err)
	}
	defer rows.Close()

	seen := make(map[int]bool)
	var out []models.BudgetSummary
	for rows.Next() {
		var s models.BudgetSummary
		if err := rows.Scan(&s.Year, &s.TotalReceipts, &s.TotalExpenditure,
			&s.FiscalDeficit, &s.FiscalDeficitGDPPct, &s.GDPNominal); err != nil {
			return nil, pgErr("budget_summary", err)
		}
		if seen[s.Year] {
			return nil, pgErr("budget_summary", fmt.Errorf("duplicate summary record for year %d", s.Year))
		}
		seen[s.Year] = true
		out = append(out, s)
	}
	return out, rows.Err()
}

func (l *PostgresLoader) loadExpenditureItems(db *sql.DB) ([]models.ExpenditureItem, error) {
	rows, err := db.Query(`
		SELECT year, ministry, scheme, amount, expenditure_type, estimate_type
		FROM expenditure_items
		ORDER BY year, ministry, scheme`)
	if err != nil {
		return nil, pgErr("expenditure_items", err)
	}
	defer rows.Close()

	var out []models.ExpenditureItem
	for rows.Next() {
		var (
			it     models.ExpenditureItem
			amount sql.NullFloat64
		)
		if err := rows.Scan(&it.Year, &it.Ministry, &it.Scheme, &amount,
			&it.ExpenditureType, &it.EstimateType); err != nil {
			return nil, pgErr("expenditure_items", err)
		}
		if !amount.Valid {
			continue
		}
		it.Amount = amount.Float64
		out = append(out, it)
	}
	return out, rows.Err()
}

func (l *PostgresLoader) loadRevenueItems(db *sql.DB) ([]models.RevenueItem, error) {
	rows, err := db.Query(`
		SELECT year, source, amount, revenue_type, estimate_type
		FROM revenue_items
		ORDER BY year, source`)
	if err != nil {
		return nil, pgErr("revenue_items", err)
	}
	defer rows.Close()

	var out []models.RevenueItem
	for rows.Next() {
		var (
			it     models.RevenueItem
			amount sql.NullFloat64
		)
		if err := rows.Scan(&it.Year, &it.Source, &amount, &it.RevenueType, &it.EstimateType); err != nil {
			return nil, pgErr("revenue_items", err)
		}
		if !amount.Valid {
			continue
		}
		it.Amount = amount.Float64
		out = append(out, it)
	}
	return out, rows.Err()
}

func (l *PostgresLoader) loadOutcomes(db *sql.DB) ([]models.SchemeOutcome, error) {
	rows, err := db.Query(`
		SELECT year, ministry, scheme, outcome
		FROM scheme_outcomes
		ORDER BY year, ministry, scheme`)
	if err != nil {
		return nil, pgErr("scheme_outcomes", err)
	}
	defer rows.Close()

	var out []models.SchemeOutcome
	for rows.Next() {
		var o models.SchemeOutcome
		if err := rows.Scan(&o.Year, &o.Ministry, &o.Scheme, &o.Outcome); err != nil {
			return nil, pgErr("scheme_outcomes", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (l *PostgresLoader) loadSpeeches(db *sql.DB) ([]models.Speech, error) {
	rows, err := db.Query(`SELECT year, ai_summary FROM speeches ORDER BY year`)
	if err != nil {
		return nil, pgErr("speeches", err)
	}
	defer rows.Close()

	var out []models.Speech
	for rows.Next() {
		var sp models.Speech
		if err := rows.Scan(&sp.Year, &sp.Summary); err != nil {
			return nil, pgErr("speeches", err)
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}
