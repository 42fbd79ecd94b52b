// Package analysis derives dashboard views from the immutable budget
// tables: per-year overviews, ministry drill-downs, multi-year
// comparisons, and corpus-wide insights. Every operation is a pure
// read; results are recomputed on each call.
package analysis

import (
	"fmt"

	"budgetlens/internal/models"
	"budgetlens/internal/store"
)

// DefaultTopMinistries caps ministry rankings when no limit is configured.
const DefaultTopMinistries = 10

type Service struct {
	store *store.Store
	topN  int
}

// New creates an aggregation service over a loaded store.
func New(st *store.Store, topN int) *Service {
	if topN <= 0 {
		topN = DefaultTopMinistries
	}
	return &Service{store: st, topN: topN}
}

// capture runs one insight sub-computation and converts both explicit
// errors and panics into a ComputationError, so a broken section never
// takes its siblings down with it.
func capture[T any](section string, fn func() (T, error)) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &models.ComputationError{Section: section, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	out, err = fn()
	if err != nil {
		err = &models.ComputationError{Section: section, Err: err}
	}
	return out, err
}
