package analysis

import (
	"budgetlens/internal/models"
	"budgetlens/internal/store"
)

// testService builds a service over a small fixture spanning 2016-2025
// with deliberately patchy coverage: Railways only has 2025 data, GST
// starts in 2017, Customs has a defined zero for 2025.
func testService() *Service {
	return New(testStore(), 0)
}

func testStore() *store.Store {
	return store.New(store.Tables{
		Years: models.YearRange{First: 2016, Last: 2025},
		Revenue: []models.RevenueRow{
			{Source: "Corporation Tax", Amounts: map[int]models.Amount{
				2023: models.Crore(800000), 2024: models.Crore(900000), 2025: models.Crore(1020000),
			}},
			{Source: "Income Tax", Amounts: map[int]models.Amount{
				2024: models.Crore(550000), 2025: models.Crore(600000),
			}},
			{Source: "Goods and Services Tax (GST)", Amounts: map[int]models.Amount{
				2017: models.Crore(400000), 2024: models.Crore(950000), 2025: models.Crore(1000000),
			}},
			{Source: "Customs", Amounts: map[int]models.Amount{
				2025: models.Crore(0),
			}},
		},
		Ministries: []models.MinistryRow{
			{Name: "Ministry of Finance", Rank: 1, TenYearTotal: "1,50,00,000", Amounts: map[int]models.Amount{
				2016: models.Crore(900000), 2024: models.Crore(1700000), 2025: models.Crore(1900000),
			}},
			{Name: "Ministry of Defence", Rank: 2, TenYearTotal: "55,00,000", Amounts: map[int]models.Amount{
				2016: models.Crore(340000), 2024: models.Crore(620000), 2025: models.Crore(680000),
			}},
			{Name: "Ministry of Railways", Rank: 3, Amounts: map[int]models.Amount{
				2025: models.Crore(280000),
			}},
		},
		Summaries: []models.BudgetSummary{
			{Year: 2016, TotalReceipts: 1400000, TotalExpenditure: 2000000, FiscalDeficit: 530000, FiscalDeficitGDPPct: 7.5, GDPNominal: 15000000},
			{Year: 2023, TotalReceipts: 2400000, TotalExpenditure: 4100000, FiscalDeficit: 1700000, FiscalDeficitGDPPct: 5.9, GDPNominal: 27000000},
			{Year: 2024, TotalReceipts: 2700000, TotalExpenditure: 4500000, FiscalDeficit: 1600000, FiscalDeficitGDPPct: 5.0, GDPNominal: 30000000},
			{Year: 2025, TotalReceipts: 3000000, TotalExpenditure: 5000000, FiscalDeficit: 1500000, FiscalDeficitGDPPct: 4.5, GDPNominal: 33000000},
		},
		ExpenditureItems: []models.ExpenditureItem{
			{Year: 2025, Ministry: "Ministry of Finance", Scheme: "Interest Payments", Amount: 1160000, ExpenditureType: "Revenue", EstimateType: "Budget Estimate"},
			{Year: 2025, Ministry: "Ministry of Defence", Scheme: "Capital Outlay on Defence Services", Amount: 172000, ExpenditureType: "Capital", EstimateType: "Budget Estimate"},
			{Year: 2025, Ministry: "Ministry of Railways", Scheme: "Rolling Stock", Amount: 45000, ExpenditureType: "Capital", EstimateType: "Budget Estimate"},
			{Year: 2024, Ministry: "Ministry of Defence", Scheme: "Defence Pensions", Amount: 141000, ExpenditureType: "Revenue", EstimateType: "Revised Estimate"},
		},
		RevenueItems: []models.RevenueItem{
			{Year: 2025, Source: "Corporation Tax", Amount: 1020000, RevenueType: "Tax", EstimateType: "Budget Estimate"},
		},
		Outcomes: []models.SchemeOutcome{
			{Year: 2025, Ministry: "Ministry of Defence", Scheme: "Capital Outlay on Defence Services", Outcome: "Fleet modernization on schedule"},
		},
		Speeches: []models.Speech{
			{Year: 2025, Summary: "Focus on capital expenditure and fiscal consolidation."},
		},
	})
}
