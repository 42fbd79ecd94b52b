// Package search resolves free-text queries against the ministry,
// scheme, and revenue-source tables by case-insensitive substring
// match. Matches come back in table order; there is no ranking and no
// fuzzy matching. An empty query matches everything; callers that do
// not want that must guard for it.
package search

import (
	"strings"

	"budgetlens/internal/models"
	"budgetlens/internal/store"
)

type Service struct {
	store *store.Store
}

// New creates a search service over a loaded store.
func New(st *store.Store) *Service {
	return &Service{store: st}
}

// Search matches query against ministry names, scheme names, and
// revenue-source names.
func (s *Service) Search(query string) models.SearchResults {
	needle := strings.ToLower(query)
	latest := s.store.Years().Last

	var results models.SearchResults

	for _, row := range s.store.MinistryRows() {
		if strings.Contains(strings.ToLower(row.Name), needle) {
			hit := models.MinistryHit{Name: row.Name, Rank: row.Rank}
			if amt := row.Amounts[latest]; amt.Valid {
				hit.LatestAllocation = amt.Crores
			}
			results.Ministries = append(results.Ministries, hit)
		}
	}

	for _, item := range s.store.AllExpenditureItems() {
		if strings.Contains(strings.ToLower(item.Scheme), needle) {
			results.Schemes = append(results.Schemes, models.SchemeHit{
				Name:     item.Scheme,
				Ministry: item.Ministry,
				Amount:   item.Amount,
				Year:     item.Year,
			})
		}
	}

	for _, row := range s.store.RevenueRows() {
		if strings.Contains(strings.ToLower(row.Source), needle) {
			hit := models.RevenueHit{Source: row.Source}
			if amt := row.Amounts[latest]; amt.Valid {
				hit.LatestAmount = amt.Crores
			}
			results.RevenueSources = append(results.RevenueSources, hit)
		}
	}

	return results
}
