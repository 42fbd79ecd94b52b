package analysis

import (
	"testing"

	"budgetlens/internal/models"
)

func TestMinistryDetailCaseInsensitiveMatch(t *testing.T) {
	svc := testService()

	detail, err := svc.MinistryDetail(2025, "DEFENCE")
	if err != nil {
		t.Fatalf("MinistryDetail: %v", err)
	}
	if detail.MinistryName != "Ministry of Defence" {
		t.Errorf("name = %q", detail.MinistryName)
	}
	if detail.CurrentAllocation != 680000 {
		t.Errorf("allocation = %v, want 680000", detail.CurrentAllocation)
	}
	if detail.Rank != 2 {
		t.Errorf("rank = %d, want 2", detail.Rank)
	}
}

func TestMinistryDetailFirstMatchWins(t *testing.T) {
	svc := testService()

	// "ministry" matches every row; table order resolves the tie.
	detail, err := svc.MinistryDetail(2025, "ministry")
	if err != nil {
		t.Fatalf("MinistryDetail: %v", err)
	}
	if detail.MinistryName != "Ministry of Finance" {
		t.Errorf("name = %q, want Ministry of Finance", detail.MinistryName)
	}
}

func TestMinistryDetailNotFound(t *testing.T) {
	svc := testService()

	if _, err := svc.MinistryDetail(2025, "agriculture"); !models.IsNotFound(err) {
		t.Errorf("unmatched name: err = %v, want NotFoundError", err)
	}
	// Railways exists but has no 2024 figure; a name match alone is not
	// enough.
	if _, err := svc.MinistryDetail(2024, "railways"); !models.IsNotFound(err) {
		t.Errorf("undefined year: err = %v, want NotFoundError", err)
	}
}

func TestMinistryDetailTrendOmitsGaps(t *testing.T) {
	svc := testService()

	detail, err := svc.MinistryDetail(2025, "defence")
	if err != nil {
		t.Fatalf("MinistryDetail: %v", err)
	}
	wantYears := []int{2016, 2024, 2025}
	if len(detail.HistoricalTrend) != len(wantYears) {
		t.Fatalf("trend has %d points, want %d", len(detail.HistoricalTrend), len(wantYears))
	}
	for i, p := range detail.HistoricalTrend {
		if p.Year != wantYears[i] {
			t.Errorf("trend[%d].Year = %d, want %d", i, p.Year, wantYears[i])
		}
	}
}

func TestMinistryDetailTenYearTotalFallback(t *testing.T) {
	svc := testService()

	detail, err := svc.MinistryDetail(2025, "railways")
	if err != nil {
		t.Fatalf("MinistryDetail: %v", err)
	}
	if detail.TenYearTotal != "N/A" {
		t.Errorf("ten year total = %q, want N/A", detail.TenYearTotal)
	}
}

func TestMinistryDetailMajorSchemes(t *testing.T) {
	svc := testService()

	detail, err := svc.MinistryDetail(2025, "defence")
	if err != nil {
		t.Fatalf("MinistryDetail: %v", err)
	}
	if len(detail.MajorSchemes) != 1 {
		t.Fatalf("schemes = %d, want 1", len(detail.MajorSchemes))
	}
	if detail.MajorSchemes[0].Scheme != "Capital Outlay on Defence Services" {
		t.Errorf("scheme = %q", detail.MajorSchemes[0].Scheme)
	}
}
