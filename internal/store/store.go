// Package store owns the immutable in-memory budget tables. Tables are
// loaded once at startup; every accessor is a read. A failed load is
// fatal to all downstream operations.
package store

import (
	"budgetlens/internal/models"
)

// Loader produces a fully-populated Store or fails with a
// *models.LoadError.
type Loader interface {
	Load() (*Store, error)
}

// Store holds the base tables. Fields are unexported so nothing
// outside this package can swap a table after load. Accessors return
// views the callers must treat as read-only.
type Store struct {
	years       models.YearRange
	revenue     []models.RevenueRow
	ministries  []models.MinistryRow
	summaries   []models.BudgetSummary
	summaryByYr map[int]models.BudgetSummary
	expItems    []models.ExpenditureItem
	revItems    []models.RevenueItem
	outcomes    []models.SchemeOutcome
	speeches    map[int]string
}

// Tables bundles the loaded base tables for Store construction.
type Tables struct {
	Years            models.YearRange
	Revenue          []models.RevenueRow
	Ministries       []models.MinistryRow
	Summaries        []models.BudgetSummary
	ExpenditureItems []models.ExpenditureItem
	RevenueItems     []models.RevenueItem
	Outcomes         []models.SchemeOutcome
	Speeches         []models.Speech
}

// New builds a Store from loaded tables.
func New(t Tables) *Store {
	s := &Store{
		years:       t.Years,
		revenue:     t.Revenue,
		ministries:  t.Ministries,
		summaries:   t.Summaries,
		summaryByYr: make(map[int]models.BudgetSummary, len(t.Summaries)),
		expItems:    t.ExpenditureItems,
		revItems:    t.RevenueItems,
		outcomes:    t.Outcomes,
		speeches:    make(map[int]string, len(t.Speeches)),
	}
	for _, sum := range t.Summaries {
		s.summaryByYr[sum.Year] = sum
	}
	for _, sp := range t.Speeches {
		s.speeches[sp.Year] = sp.Summary
	}
	return s
}

// Years returns the configured year range.
func (s *Store) Years() models.YearRange { return s.years }

// Summary returns the budget summary record for a year.
func (s *Store) Summary(year int) (models.BudgetSummary, bool) {
	sum, ok := s.summaryByYr[year]
	return sum, ok
}

// Summaries returns all summary records in table order.
func (s *Store) Summaries() []models.BudgetSummary { return s.summaries }

// RevenueRows returns the year-columnar revenue table in table order.
func (s *Store) RevenueRows() []models.RevenueRow { return s.revenue }

// MinistryRows returns the year-columnar expenditure table in table
// order (ranked order, as published upstream).
func (s *Store) MinistryRows() []models.MinistryRow { return s.ministries }

// ExpenditureItems returns the detailed expenditure records for a year.
func (s *Store) ExpenditureItems(year int) []models.ExpenditureItem {
	var items []models.ExpenditureItem
	for _, it := range s.expItems {
		if it.Year == year {
			items = append(items, it)
		}
	}
	return items
}

// AllExpenditureItems returns every detailed expenditure record.
func (s *Store) AllExpenditureItems() []models.ExpenditureItem { return s.expItems }

// RevenueItems returns every detailed revenue record.
func (s *Store) RevenueItems() []models.RevenueItem { return s.revItems }

// SchemeOutcomes returns the auxiliary outcomes for a year; year 0
// returns all of them.
func (s *Store) SchemeOutcomes(year int) []models.SchemeOutcome {
	if year == 0 {
		return s.outcomes
	}
	var out []models.SchemeOutcome
	for _, o := range s.outcomes {
		if o.Year == year {
			out = append(out, o)
		}
	}
	return out
}

// Speech returns the pre-computed speech summary for a year.
func (s *Store) Speech(year int) (string, bool) {
	sp, ok := s.speeches[year]
	return sp, ok
}

// CoveredYears returns the years that have a summary record, ascending.
func (s *Store) CoveredYears() []int {
	var years []int
	for _, y := range s.years.Years() {
		if _, ok := s.summaryByYr[y]; ok {
			years = append(years, y)
		}
	}
	return years
}
