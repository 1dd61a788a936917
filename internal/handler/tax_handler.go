package handler

import (
	"net/http"

	"github.com/Mavunaku/cvp3sea/internal/service"
	"github.com/Mavunaku/cvp3sea/internal/tax"
	"github.com/labstack/echo/v4"
)

// TaxHandler serves the computed tax views
type TaxHandler struct {
	taxService *service.TaxService
}

// NewTaxHandler creates a new TaxHandler
func NewTaxHandler(taxService *service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

// RatesResponse holds the rate policy used for estimates
type RatesResponse struct {
	Federal  string `json:"federal"`
	NYState  string `json:"nyState"`
	Combined string `json:"combined"`
}

// SummaryResponse represents the tax estimate of a selection
type SummaryResponse struct {
	Year               string        `json:"year,omitempty"`
	ProjectID          string        `json:"projectId,omitempty"`
	Revenue            string        `json:"revenue"`
	GrossExpenses      string        `json:"grossExpenses"`
	DeductibleExpenses string        `json:"deductibleExpenses"`
	TotalDepreciation  string        `json:"totalDepreciation"`
	NetCashProfit      string        `json:"netCashProfit"`
	TaxableProfit      string        `json:"taxableProfit"`
	NYSourceIncome     string        `json:"nySourceIncome"`
	FederalTax         string        `json:"federalTax"`
	NYStateTax         string        `json:"nyStateTax"`
	TaxLiability       string        `json:"taxLiability"`
	TaxSavings         string        `json:"taxSavings"`
	Rates              RatesResponse `json:"rates"`
}

// DeductionResponse represents the deduction of one expense entry
type DeductionResponse struct {
	EntryID       string `json:"entryId"`
	Date          string `json:"date"`
	Description   string `json:"description"`
	Pillar        string `json:"pillar"`
	Category      string `json:"category"`
	Gross         string `json:"gross"`
	Deductible    string `json:"deductible"`
	NonDeductible string `json:"nonDeductible"`
	Rule          string `json:"rule"`
	NYSource      bool   `json:"nySource"`
}

// AssetDepreciationResponse represents one asset row of the depreciation schedule
type AssetDepreciationResponse struct {
	AssetID            string `json:"assetId"`
	Name               string `json:"name"`
	Type               string `json:"type"`
	PurchaseDate       string `json:"purchaseDate"`
	Cost               string `json:"cost"`
	Land               string `json:"land"`
	BusinessUsePercent string `json:"businessUsePercent"`
	UsefulLife         string `json:"usefulLife"`
	Basis              string `json:"basis"`
	Section179         string `json:"section179"`
	SpecialAllowance   string `json:"specialAllowance"`
	StraightLine       string `json:"straightLine"`
	Override           bool   `json:"override"`
	Current            string `json:"current"`
	Prior              string `json:"prior"`
	Accumulated        string `json:"accumulated"`
}

// ImprovementDepreciationResponse represents one capitalized expense row
type ImprovementDepreciationResponse struct {
	EntryID     string `json:"entryId"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Cost        string `json:"cost"`
	UsefulLife  string `json:"usefulLife"`
	Current     string `json:"current"`
}

// DepreciationResponse represents the depreciation schedule of a selection
type DepreciationResponse struct {
	Assets                  []AssetDepreciationResponse       `json:"assets"`
	Improvements            []ImprovementDepreciationResponse `json:"improvements"`
	TotalCost               string                            `json:"totalCost"`
	TotalLand               string                            `json:"totalLand"`
	TotalBasis              string                            `json:"totalBasis"`
	TotalPrior              string                            `json:"totalPrior"`
	TotalCurrent            string                            `json:"totalCurrent"`
	TotalAccumulated        string                            `json:"totalAccumulated"`
	ImprovementCost         string                            `json:"improvementCost"`
	ImprovementDepreciation string                            `json:"improvementDepreciation"`
	TotalDepreciation       string                            `json:"totalDepreciation"`
}

// ScheduleCLineResponse represents one line of the Schedule C preview
type ScheduleCLineResponse struct {
	Line   string `json:"line"`
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// ScheduleCResponse represents the Schedule C preview
type ScheduleCResponse struct {
	Lines     []ScheduleCLineResponse `json:"lines"`
	NetProfit string                  `json:"netProfit"`
}

// CategoryTotalResponse represents the totals of one category
type CategoryTotalResponse struct {
	Category   string `json:"category"`
	Gross      string `json:"gross"`
	Deductible string `json:"deductible"`
}

// PillarGroupResponse represents the expenses of one pillar
type PillarGroupResponse struct {
	Pillar     string                  `json:"pillar"`
	Gross      string                  `json:"gross"`
	Deductible string                  `json:"deductible"`
	Categories []CategoryTotalResponse `json:"categories"`
}

// AccountantReportResponse represents the accountant report of a selection
type AccountantReportResponse struct {
	Summary          SummaryResponse         `json:"summary"`
	IncomeByCategory []CategoryTotalResponse `json:"incomeByCategory"`
	ExpensesByPillar []PillarGroupResponse   `json:"expensesByPillar"`
	NYSourceRevenue  string                  `json:"nySourceRevenue"`
	NYSourceExpenses string                  `json:"nySourceExpenses"`
	NYSourceIncome   string                  `json:"nySourceIncome"`
}

// ProjectRankResponse represents the profitability of one project
type ProjectRankResponse struct {
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Income    string `json:"income"`
	Expenses  string `json:"expenses"`
	Net       string `json:"net"`
	Margin    string `json:"margin"`
}

// MonthlyPointResponse represents the totals of one month
type MonthlyPointResponse struct {
	Month    string `json:"month"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
}

func toRatesResponse(r tax.Rates) RatesResponse {
	return RatesResponse{
		Federal:  r.Federal.String(),
		NYState:  r.NYState.String(),
		Combined: r.Combined().String(),
	}
}

func toSummaryResponse(s tax.Summary, rates tax.Rates) SummaryResponse {
	return SummaryResponse{
		Revenue:            formatMoney(s.Revenue),
		GrossExpenses:      formatMoney(s.GrossExpenses),
		DeductibleExpenses: formatMoney(s.DeductibleExpenses),
		TotalDepreciation:  formatMoney(s.TotalDepreciation),
		NetCashProfit:      formatMoney(s.NetCashProfit),
		TaxableProfit:      formatMoney(s.TaxableProfit),
		NYSourceIncome:     formatMoney(s.NYSourceIncome),
		FederalTax:         formatMoney(s.FederalTax),
		NYStateTax:         formatMoney(s.NYStateTax),
		TaxLiability:       formatMoney(s.TaxLiability),
		TaxSavings:         formatMoney(s.TaxSavings),
		Rates:              toRatesResponse(rates),
	}
}

func toCategoryTotals(totals []tax.CategoryTotal) []CategoryTotalResponse {
	result := make([]CategoryTotalResponse, len(totals))
	for i, t := range totals {
		result[i] = CategoryTotalResponse{
			Category:   t.Category,
			Gross:      formatMoney(t.Gross),
			Deductible: formatMoney(t.Deductible),
		}
	}
	return result
}

func toDepreciationResponse(s tax.Schedule) DepreciationResponse {
	assets := make([]AssetDepreciationResponse, len(s.Assets))
	for i, a := range s.Assets {
		assets[i] = AssetDepreciationResponse{
			AssetID:            a.AssetID,
			Name:               a.Name,
			Type:               string(a.Type),
			PurchaseDate:       a.PurchaseDate,
			Cost:               formatMoney(a.Cost),
			Land:               formatMoney(a.Land),
			BusinessUsePercent: a.BusinessUsePercent.String(),
			UsefulLife:         a.UsefulLife.String(),
			Basis:              formatMoney(a.Basis),
			Section179:         formatMoney(a.Section179),
			SpecialAllowance:   formatMoney(a.SpecialAllowance),
			StraightLine:       formatMoney(a.StraightLine),
			Override:           a.Override,
			Current:            formatMoney(a.Current),
			Prior:              formatMoney(a.Prior),
			Accumulated:        formatMoney(a.Accumulated),
		}
	}

	improvements := make([]ImprovementDepreciationResponse, len(s.Improvements))
	for i, imp := range s.Improvements {
		improvements[i] = ImprovementDepreciationResponse{
			EntryID:     imp.EntryID,
			Date:        imp.Date,
			Description: imp.Description,
			Category:    imp.Category,
			Cost:        formatMoney(imp.Cost),
			UsefulLife:  imp.UsefulLife.String(),
			Current:     formatMoney(imp.Current),
		}
	}

	return DepreciationResponse{
		Assets:                  assets,
		Improvements:            improvements,
		TotalCost:               formatMoney(s.TotalCost),
		TotalLand:               formatMoney(s.TotalLand),
		TotalBasis:              formatMoney(s.TotalBasis),
		TotalPrior:              formatMoney(s.TotalPrior),
		TotalCurrent:            formatMoney(s.TotalCurrent),
		TotalAccumulated:        formatMoney(s.TotalAccumulated),
		ImprovementCost:         formatMoney(s.ImprovementCost),
		ImprovementDepreciation: formatMoney(s.ImprovementDepreciation),
		TotalDepreciation:       formatMoney(s.TotalDepreciation),
	}
}

// GetSummary godoc
// @Summary Estimate taxes
// @Description Revenue, deductions, depreciation and the estimated liability of a selection
// @Tags tax
// @Produce json
// @Security BearerAuth
// @Param year query string false "Fiscal year"
// @Param projectId query string false "Project ID"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /tax/summary [get]
func (h *TaxHandler) GetSummary(c echo.Context) error {
	summary, sel, err := h.taxService.Summary(selectionFromQuery(c))
	if err != nil {
		return handleDomainError(c, err, "compute tax summary")
	}

	response := toSummaryResponse(summary, h.taxService.Rates())
	response.Year = sel.Year
	response.ProjectID = sel.ProjectID
	return c.JSON(http.StatusOK, response)
}

// GetDeductions godoc
// @Summary Itemize expense deductions
// @Tags tax
// @Produce json
// @Security BearerAuth
// @Param year query string false "Fiscal year"
// @Param projectId query string false "Project ID"
// @Success 200 {array} DeductionResponse
// @Failure 400 {object} ProblemDetails
// @Router /tax/entries [get]
func (h *TaxHandler) GetDeductions(c echo.Context) error {
	breakdowns, err := h.taxService.Deductions(selectionFromQuery(c))
	if err != nil {
		return handleDomainError(c, err, "itemize deductions")
	}

	response := make([]DeductionResponse, len(breakdowns))
	for i, b := range breakdowns {
		response[i] = DeductionResponse{
			EntryID:       b.EntryID,
			Date:          b.Date,
			Description:   b.Description,
			Pillar:        string(b.Pillar),
			Category:      b.Category,
			Gross:         formatMoney(b.Gross),
			Deductible:    formatMoney(b.Deductible),
			NonDeductible: formatMoney(b.NonDeductible),
			Rule:          string(b.Rule),
			NYSource:      b.NYSource,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetDepreciation godoc
// @Summary Depreciation schedule
// @Tags tax
// @Produce json
// @Security BearerAuth
// @Param year query string false "Fiscal year"
// @Param projectId query string false "Project ID"
// @Success 200 {object} DepreciationResponse
// @Failure 400 {object} ProblemDetails
// @Router /tax/depreciation [get]
func (h *TaxHandler) GetDepreciation(c echo.Context) error {
	schedule, err := h.taxService.Depreciation(selectionFromQuery(c))
	if err != nil {
		return handleDomainError(c, err, "build depreciation schedule")
	}
	return c.JSON(http.StatusOK, toDepreciationResponse(schedule))
}

// GetScheduleC godoc
// @Summary Schedule C preview
// @Tags tax
// @Produce json
// @Security BearerAuth
// @Param year query string false "Fiscal year"
// @Param projectId query string false "Project ID"
// @Success 200 {object} ScheduleCResponse
// @Failure 400 {object} ProblemDetails
// @Router /tax/schedule-c [get]
func (h *TaxHandler) GetScheduleC(c echo.Context) error {
	sc, err := h.taxService.ScheduleC(selectionFromQuery(c))
	if err != nil {
		return handleDomainError(c, err, "build schedule C")
	}

	lines := sc.Lines()
	response := ScheduleCResponse{
		Lines:     make([]ScheduleCLineResponse, len(lines)),
		NetProfit: formatMoney(sc.NetProfit),
	}
	for i, l := range lines {
		response.Lines[i] = ScheduleCLineResponse{Line: l.Line, Label: l.Label, Amount: formatMoney(l.Amount)}
	}
	return c.JSON(http.StatusOK, response)
}

// GetAccountantReport godoc
// @Summary Accountant report
// @Description Income by category, expenses by pillar and New York source totals
// @Tags tax
// @Produce json
// @Security BearerAuth
// @Param year query string false "Fiscal year"
// @Param projectId query string false "Project ID"
// @Success 200 {object} AccountantReportResponse
// @Failure 400 {object} ProblemDetails
// @Router /tax/accountant-report [get]
func (h *TaxHandler) GetAccountantReport(c echo.Context) error {
	report, err := h.taxService.AccountantReport(selectionFromQuery(c))
	if err != nil {
		return handleDomainError(c, err, "build accountant report")
	}

	pillars := make([]PillarGroupResponse, len(report.ExpensesByPillar))
	for i, g := range report.ExpensesByPillar {
		pillars[i] = PillarGroupResponse{
			Pillar:     string(g.Pillar),
			Gross:      formatMoney(g.Gross),
			Deductible: formatMoney(g.Deductible),
			Categories: toCategoryTotals(g.Categories),
		}
	}

	return c.JSON(http.StatusOK, AccountantReportResponse{
		Summary:          toSummaryResponse(report.Summary, h.taxService.Rates()),
		IncomeByCategory: toCategoryTotals(report.IncomeByCategory),
		ExpensesByPillar: pillars,
		NYSourceRevenue:  formatMoney(report.NYSourceRevenue),
		NYSourceExpenses: formatMoney(report.NYSourceExpenses),
		NYSourceIncome:   formatMoney(report.NYSourceIncome),
	})
}

// GetRankings godoc
// @Summary Rank projects by margin
// @Tags tax
// @Produce json
// @Security BearerAuth
// @Param year query string false "Fiscal year"
// @Param limit query int false "Maximum projects (default 3, 0 for all)"
// @Success 200 {array} ProjectRankResponse
// @Failure 400 {object} ProblemDetails
// @Router /tax/rankings [get]
func (h *TaxHandler) GetRankings(c echo.Context) error {
	limit, ok := limitFromQuery(c, service.DefaultRankingLimit)
	if !ok {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "limit", Message: "Must be a non-negative integer"},
		})
	}

	ranks, err := h.taxService.Rankings(selectionFromQuery(c), limit)
	if err != nil {
		return handleDomainError(c, err, "rank projects")
	}

	response := make([]ProjectRankResponse, len(ranks))
	for i, r := range ranks {
		response[i] = ProjectRankResponse{
			ProjectID: r.ProjectID,
			Name:      r.Name,
			Type:      string(r.Type),
			Income:    formatMoney(r.Income),
			Expenses:  formatMoney(r.Expenses),
			Net:       formatMoney(r.Net),
			Margin:    formatMoney(r.Margin),
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetMonthly godoc
// @Summary Monthly income and expenses
// @Tags tax
// @Produce json
// @Security BearerAuth
// @Param year query string false "Fiscal year"
// @Param projectId query string false "Project ID"
// @Success 200 {array} MonthlyPointResponse
// @Failure 400 {object} ProblemDetails
// @Router /tax/monthly [get]
func (h *TaxHandler) GetMonthly(c echo.Context) error {
	points, err := h.taxService.Monthly(selectionFromQuery(c))
	if err != nil {
		return handleDomainError(c, err, "build monthly series")
	}

	response := make([]MonthlyPointResponse, len(points))
	for i, p := range points {
		response[i] = MonthlyPointResponse{
			Month:    p.Month,
			Income:   formatMoney(p.Income),
			Expenses: formatMoney(p.Expenses),
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetTopCategories godoc
// @Summary Highest spending expense categories
// @Tags tax
// @Produce json
// @Security BearerAuth
// @Param year query string false "Fiscal year"
// @Param projectId query string false "Project ID"
// @Param limit query int false "Maximum categories (0 for all)"
// @Success 200 {array} CategoryTotalResponse
// @Failure 400 {object} ProblemDetails
// @Router /tax/top-categories [get]
func (h *TaxHandler) GetTopCategories(c echo.Context) error {
	limit, ok := limitFromQuery(c, 0)
	if !ok {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "limit", Message: "Must be a non-negative integer"},
		})
	}

	totals, err := h.taxService.TopCategories(selectionFromQuery(c), limit)
	if err != nil {
		return handleDomainError(c, err, "rank expense categories")
	}
	return c.JSON(http.StatusOK, toCategoryTotals(totals))
}
