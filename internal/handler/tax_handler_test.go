package handler

import (
	"net/http"
	"testing"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedBooks records a 2024 property with income, expenses, an improvement,
// and an asset, plus a second 2024 project and unrelated 2023 income
func (s *testServer) seedBooks() (elm, oak *domain.Project) {
	elm = s.addProject("2024", "Elm")
	oak = s.addProject("2024", "Oak")
	old := s.addProject("2023", "Old")

	s.ledger.AddEntry(&domain.LedgerEntry{ID: "rent", Date: day("2024-02-01"), Type: domain.EntryTypeIncome, Amount: dec("10000"), Category: "Rental Income", NYSource: true, ProjectID: elm.ID})
	s.ledger.AddEntry(&domain.LedgerEntry{ID: "roof", Date: day("2024-03-01"), Type: domain.EntryTypeExpense, Amount: dec("2000"), Pillar: domain.PillarRepairs, Category: "Roof", NYSource: true, ProjectID: elm.ID})
	s.ledger.AddEntry(&domain.LedgerEntry{ID: "meal", Date: day("2024-03-09"), Type: domain.EntryTypeExpense, Amount: dec("200"), Pillar: domain.PillarTravels, Category: domain.CategoryBusinessMeals, NYSource: true, ProjectID: elm.ID})
	s.ledger.AddEntry(&domain.LedgerEntry{ID: "addition", Date: day("2024-04-01"), Type: domain.EntryTypeExpense, Amount: dec("2750"), Pillar: domain.PillarRepairs, Capitalize: true, NYSource: true, ProjectID: elm.ID})
	s.assets.AddAsset(&domain.Asset{ID: "truck", Name: "Truck", PurchaseDate: day("2024-01-10"), Cost: dec("5000"), BusinessUsePercent: dec("100"), UsefulLife: dec("5"), ProjectID: elm.ID})

	s.ledger.AddEntry(&domain.LedgerEntry{ID: "fee", Date: day("2024-06-01"), Type: domain.EntryTypeIncome, Amount: dec("1000"), ProjectID: oak.ID})
	s.ledger.AddEntry(&domain.LedgerEntry{ID: "paint", Date: day("2024-06-02"), Type: domain.EntryTypeExpense, Amount: dec("900"), Pillar: domain.PillarRepairs, ProjectID: oak.ID})

	s.ledger.AddEntry(&domain.LedgerEntry{ID: "old", Date: day("2023-06-01"), Type: domain.EntryTypeIncome, Amount: dec("777"), ProjectID: old.ID})
	return elm, oak
}

func TestGetSummary_Project(t *testing.T) {
	s := newTestServer(t)
	elm, _ := s.seedBooks()

	rec := s.do(http.MethodGet, "/api/v1/tax/summary?projectId="+elm.ID, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var summary SummaryResponse
	decodeJSON(t, rec, &summary)
	assert.Equal(t, SummaryResponse{
		Year:               "2024",
		ProjectID:          elm.ID,
		Revenue:            "10000.00",
		GrossExpenses:      "2200.00",
		DeductibleExpenses: "2100.00",
		TotalDepreciation:  "1100.00",
		NetCashProfit:      "7800.00",
		TaxableProfit:      "6800.00",
		NYSourceIncome:     "6800.00",
		FederalTax:         "2380.00",
		NYStateTax:         "442.00",
		TaxLiability:       "2822.00",
		TaxSavings:         "1328.00",
		Rates:              RatesResponse{Federal: "0.35", NYState: "0.065", Combined: "0.415"},
	}, summary)
}

func TestGetSummary_Selections(t *testing.T) {
	s := newTestServer(t)
	s.seedBooks()

	tests := []struct {
		query   string
		revenue string
	}{
		{"?year=2024", "11000.00"},
		{"?year=2023", "777.00"},
		{"?year=2019", "0.00"},
		{"", "11777.00"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := s.do(http.MethodGet, "/api/v1/tax/summary"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)
			var summary SummaryResponse
			decodeJSON(t, rec, &summary)
			assert.Equal(t, tt.revenue, summary.Revenue)
		})
	}
}

func TestGetSummary_BadSelection(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/v1/tax/summary?projectId=ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/tax/summary?year=twenty", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetScheduleC(t *testing.T) {
	s := newTestServer(t)
	elm, _ := s.seedBooks()

	rec := s.do(http.MethodGet, "/api/v1/tax/schedule-c?projectId="+elm.ID, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var sc ScheduleCResponse
	decodeJSON(t, rec, &sc)
	assert.Equal(t, "6800.00", sc.NetProfit)

	lines := make(map[string]string, len(sc.Lines))
	for _, l := range sc.Lines {
		lines[l.Line] = l.Amount
	}
	assert.Len(t, sc.Lines, 12)
	assert.Equal(t, "10000.00", lines["1"])
	assert.Equal(t, "1100.00", lines["13"])
	assert.Equal(t, "2000.00", lines["21"])
	assert.Equal(t, "100.00", lines["24b"])
	assert.Equal(t, "3200.00", lines["28"])
	assert.Equal(t, "6800.00", lines["31"])
}

func TestGetDepreciationAndDeductions(t *testing.T) {
	s := newTestServer(t)
	elm, _ := s.seedBooks()

	rec := s.do(http.MethodGet, "/api/v1/tax/depreciation?projectId="+elm.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var schedule DepreciationResponse
	decodeJSON(t, rec, &schedule)
	require.Len(t, schedule.Assets, 1)
	require.Len(t, schedule.Improvements, 1)
	assert.Equal(t, "1000.00", schedule.Assets[0].Current)
	assert.Equal(t, "100.00", schedule.Improvements[0].Current)
	assert.Equal(t, "27.5", schedule.Improvements[0].UsefulLife)
	assert.Equal(t, "1100.00", schedule.TotalDepreciation)

	rec = s.do(http.MethodGet, "/api/v1/tax/entries?projectId="+elm.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var deductions []DeductionResponse
	decodeJSON(t, rec, &deductions)
	require.Len(t, deductions, 3)

	byID := make(map[string]DeductionResponse, len(deductions))
	for _, d := range deductions {
		byID[d.EntryID] = d
	}
	assert.Equal(t, "200.00", byID["meal"].Gross)
	assert.Equal(t, "100.00", byID["meal"].Deductible)
	assert.Equal(t, "100.00", byID["meal"].NonDeductible)
	assert.Equal(t, "2000.00", byID["roof"].Deductible)
	assert.Equal(t, "0.00", byID["addition"].Deductible)
}

func TestGetAccountantReport(t *testing.T) {
	s := newTestServer(t)
	elm, _ := s.seedBooks()

	rec := s.do(http.MethodGet, "/api/v1/tax/accountant-report?projectId="+elm.ID, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report AccountantReportResponse
	decodeJSON(t, rec, &report)
	assert.Equal(t, "6800.00", report.Summary.TaxableProfit)
	assert.Equal(t, "6800.00", report.NYSourceIncome)
	require.Len(t, report.IncomeByCategory, 1)
	assert.Equal(t, "Rental Income", report.IncomeByCategory[0].Category)
	assert.Equal(t, "10000.00", report.IncomeByCategory[0].Gross)

	pillars := make(map[string]PillarGroupResponse)
	for _, g := range report.ExpensesByPillar {
		pillars[g.Pillar] = g
	}
	assert.Equal(t, "2000.00", pillars["Repairs"].Gross)
	assert.Equal(t, "200.00", pillars["Travels"].Gross)
	assert.Equal(t, "100.00", pillars["Travels"].Deductible)
}

func TestGetRankings(t *testing.T) {
	s := newTestServer(t)
	elm, oak := s.seedBooks()

	rec := s.do(http.MethodGet, "/api/v1/tax/rankings?year=2024", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ranks []ProjectRankResponse
	decodeJSON(t, rec, &ranks)
	require.Len(t, ranks, 2)
	assert.Equal(t, elm.ID, ranks[0].ProjectID)
	assert.Equal(t, oak.ID, ranks[1].ProjectID)
	assert.Equal(t, "1000.00", ranks[1].Income)
	assert.Equal(t, "10.00", ranks[1].Margin)

	rec = s.do(http.MethodGet, "/api/v1/tax/rankings?year=2024&limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &ranks)
	assert.Len(t, ranks, 1)

	rec = s.do(http.MethodGet, "/api/v1/tax/rankings?limit=-2", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decodeProblem(t, rec)
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "limit", problem.Errors[0].Field)
}

func TestGetRankings_DefaultAndUnlimited(t *testing.T) {
	s := newTestServer(t)
	expenses := map[string]string{"A": "100", "B": "200", "C": "300", "D": "400"}
	for _, name := range []string{"A", "B", "C", "D"} {
		p := s.addProject("2024", name)
		s.ledger.AddEntry(&domain.LedgerEntry{
			ID:        "income-" + name,
			Date:      day("2024-05-01"),
			Type:      domain.EntryTypeIncome,
			Amount:    dec("1000"),
			ProjectID: p.ID,
		})
		s.ledger.AddEntry(&domain.LedgerEntry{
			ID:        "expense-" + name,
			Date:      day("2024-05-02"),
			Type:      domain.EntryTypeExpense,
			Amount:    dec(expenses[name]),
			Pillar:    domain.PillarRepairs,
			ProjectID: p.ID,
		})
	}

	tests := []struct {
		query string
		want  int
	}{
		{"?year=2024", 3},
		{"?year=2024&limit=0", 4},
		{"?year=2024&limit=2", 2},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := s.do(http.MethodGet, "/api/v1/tax/rankings"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)
			var ranks []ProjectRankResponse
			decodeJSON(t, rec, &ranks)
			assert.Len(t, ranks, tt.want)
			assert.Equal(t, "A", ranks[0].Name)
		})
	}
}

func TestGetMonthlyAndTopCategories(t *testing.T) {
	s := newTestServer(t)
	s.seedBooks()

	rec := s.do(http.MethodGet, "/api/v1/tax/monthly?year=2024", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var points []MonthlyPointResponse
	decodeJSON(t, rec, &points)
	require.Len(t, points, 4)
	assert.Equal(t, MonthlyPointResponse{Month: "2024-02", Income: "10000.00", Expenses: "0.00"}, points[0])
	assert.Equal(t, MonthlyPointResponse{Month: "2024-03", Income: "0.00", Expenses: "2200.00"}, points[1])

	rec = s.do(http.MethodGet, "/api/v1/tax/top-categories?year=2024&limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []CategoryTotalResponse
	decodeJSON(t, rec, &categories)
	require.Len(t, categories, 1)
	assert.Equal(t, "Roof", categories[0].Category)
	assert.Equal(t, "2000.00", categories[0].Gross)

	rec = s.do(http.MethodGet, "/api/v1/tax/top-categories?limit=many", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
