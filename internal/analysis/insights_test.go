package analysis

import (
	"reflect"
	"strings"
	"testing"

	"budgetlens/internal/models"
	"budgetlens/internal/store"
)

func TestRevenueTrends(t *testing.T) {
	ins := testService().Insights()
	if ins.RevenueTrends.Error != "" {
		t.Fatalf("revenue trends error: %s", ins.RevenueTrends.Error)
	}

	ct, ok := ins.RevenueTrends.Sources["Corporation Tax"]
	if !ok {
		t.Fatal("no Corporation Tax trend")
	}
	// Consecutive defined pairs: 2023->2024 and 2024->2025.
	if len(ct.GrowthRates) != 2 {
		t.Fatalf("Corporation Tax growth rates = %d, want 2", len(ct.GrowthRates))
	}
	if !approx(ct.GrowthRates[0].Rate, 12.5) {
		t.Errorf("2024 rate = %v, want 12.5", ct.GrowthRates[0].Rate)
	}
	if !approx(ct.AvgGrowth, (12.5+120000.0/900000*100)/2) {
		t.Errorf("avg growth = %v", ct.AvgGrowth)
	}

	// GST's 2017 figure has no 2016 or 2018 neighbor; only the
	// 2024->2025 pair contributes.
	gst := ins.RevenueTrends.Sources["Goods and Services Tax (GST)"]
	if len(gst.GrowthRates) != 1 || gst.GrowthRates[0].Year != 2025 {
		t.Errorf("GST growth rates = %+v, want a single 2025 entry", gst.GrowthRates)
	}

	if _, ok := ins.RevenueTrends.Sources["Customs"]; ok {
		t.Error("untracked source present in trends")
	}
}

func TestExpenditurePatterns(t *testing.T) {
	ins := testService().Insights()
	ep := ins.ExpenditurePatterns
	if ep.Error != "" {
		t.Fatalf("expenditure patterns error: %s", ep.Error)
	}

	if len(ep.YearlyTotals) != 10 {
		t.Fatalf("yearly totals = %d, want one per year of the range", len(ep.YearlyTotals))
	}
	if got := ep.YearlyTotals[0]; got.Year != 2016 || !approx(got.Total, 1240000) {
		t.Errorf("2016 total = %+v, want 1240000", got)
	}

	// Railways has no first-year figure, so it is excluded from growth
	// rather than treated as growth from zero.
	wantGrowing := []string{"Ministry of Finance", "Ministry of Defence"}
	var gotGrowing []string
	for _, g := range ep.TopGrowing {
		gotGrowing = append(gotGrowing, g.Ministry)
	}
	if !reflect.DeepEqual(gotGrowing, wantGrowing) {
		t.Errorf("top growing = %v, want %v", gotGrowing, wantGrowing)
	}
	if !approx(ep.TopGrowing[1].GrowthPct, 100) {
		t.Errorf("Defence growth = %v, want 100", ep.TopGrowing[1].GrowthPct)
	}
}

func TestFiscalAnalysis(t *testing.T) {
	ins := testService().Insights()
	fa := ins.FiscalAnalysis
	if fa.Error != "" {
		t.Fatalf("fiscal analysis error: %s", fa.Error)
	}

	if !approx(fa.AvgDeficitRatio, (7.5+5.9+5.0+4.5)/4) {
		t.Errorf("avg deficit ratio = %v", fa.AvgDeficitRatio)
	}
	// Early-three mean 6.13, recent-three mean 5.13: a full point lower.
	if fa.Trend != FiscalImproving {
		t.Errorf("trend = %q, want %q", fa.Trend, FiscalImproving)
	}
}

func TestClassifyFiscalTrend(t *testing.T) {
	mk := func(ratios ...float64) []models.FiscalYearData {
		var out []models.FiscalYearData
		for i, r := range ratios {
			out = append(out, models.FiscalYearData{Year: 2020 + i, DeficitRatio: r})
		}
		return out
	}

	tests := []struct {
		name   string
		yearly []models.FiscalYearData
		want   string
	}{
		{"improving", mk(7.0, 6.5, 6.0, 5.5, 5.0), FiscalImproving},
		{"deteriorating", mk(4.0, 4.5, 5.0, 5.5, 6.0), FiscalDeteriorating},
		{"flat", mk(5.0, 5.1, 4.9, 5.0, 5.1), FiscalStable},
		{"short series", mk(6.0, 5.9), FiscalStable},
	}
	for _, tt := range tests {
		if got := classifyFiscalTrend(tt.yearly); got != tt.want {
			t.Errorf("%s: trend = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMinistryPerformance(t *testing.T) {
	ins := testService().Insights()
	mp := ins.MinistryPerformance
	if mp.Error != "" {
		t.Fatalf("ministry performance error: %s", mp.Error)
	}

	if len(mp.TopByTotal) == 0 || mp.TopByTotal[0].Ministry != "Ministry of Finance" {
		t.Errorf("top by total = %+v", mp.TopByTotal)
	}
	// A single data point has zero variance, so Railways scores a
	// perfect 1.
	if len(mp.MostConsistent) == 0 || mp.MostConsistent[0].Ministry != "Ministry of Railways" {
		t.Errorf("most consistent = %+v", mp.MostConsistent)
	}
	if !approx(mp.MostConsistent[0].Consistency, 1) {
		t.Errorf("consistency = %v, want 1", mp.MostConsistent[0].Consistency)
	}
}

func TestKeyFindings(t *testing.T) {
	ins := testService().Insights()
	if ins.KeyFindingsError != "" {
		t.Fatalf("key findings error: %s", ins.KeyFindingsError)
	}

	want := []string{
		"GST revenue has grown by 150.0% since its introduction in 2017",
		"Defence spending has increased by 100.0% over the decade",
		"The fiscal deficit for 2025 is projected at 4.5% of GDP",
		"Ministry of Finance consistently remains the largest spender across all years",
	}
	if !reflect.DeepEqual(ins.KeyFindings, want) {
		t.Errorf("key findings = %q, want %q", ins.KeyFindings, want)
	}
}

func TestInsightsSectionsDegradeIndependently(t *testing.T) {
	// No summary records at all: the fiscal section fails while the
	// revenue section still reports.
	st := store.New(store.Tables{
		Years: models.YearRange{First: 2024, Last: 2025},
		Revenue: []models.RevenueRow{
			{Source: "Income Tax", Amounts: map[int]models.Amount{
				2024: models.Crore(500), 2025: models.Crore(550),
			}},
		},
	})
	ins := New(st, 0).Insights()

	if ins.FiscalAnalysis.Error == "" {
		t.Error("fiscal analysis error missing")
	}
	if !strings.Contains(ins.FiscalAnalysis.Error, "fiscal analysis") {
		t.Errorf("fiscal error = %q, want section name", ins.FiscalAnalysis.Error)
	}
	if ins.RevenueTrends.Error != "" {
		t.Errorf("revenue trends failed alongside: %s", ins.RevenueTrends.Error)
	}
	if _, ok := ins.RevenueTrends.Sources["Income Tax"]; !ok {
		t.Error("revenue trends lost data when a sibling failed")
	}
}

func TestInsightsDeterministic(t *testing.T) {
	svc := testService()
	if a, b := svc.Insights(), svc.Insights(); !reflect.DeepEqual(a, b) {
		t.Error("two identical calls produced different reports")
	}
}
