package tax

import (
	"testing"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleCFixture() ([]*domain.LedgerEntry, []*domain.Asset) {
	loan := expense("loan", "2024-01-05", "1200", domain.PillarInterestExpense, domain.CategoryLoanInterest)
	loan.Interest = decPtr("300")

	roof := expense("roof", "2024-04-01", "2750", domain.PillarRepairs, "Roof")
	roof.Capitalize = true

	entries := []*domain.LedgerEntry{
		income("rent", "2024-01-01", "20000"),
		expense("ads", "2024-01-02", "500", domain.PillarGeneralBusiness, domain.CategoryAdvertising),
		expense("ins", "2024-01-03", "800", domain.PillarGeneralBusiness, domain.CategoryInsurance),
		expense("legal", "2024-01-04", "600", domain.PillarGeneralBusiness, "Legal/Professional Fees"),
		loan,
		expense("paint", "2024-02-01", "450", domain.PillarRepairs, "Painting"),
		expense("car", "2024-02-02", "350", domain.PillarTravels, domain.CategoryAutoTravel),
		expense("meal", "2024-02-03", "240", domain.PillarTravels, domain.CategoryBusinessMeals),
		expense("show", "2024-02-04", "150", domain.PillarTravels, domain.CategoryEntertainment),
		expense("water", "2024-02-05", "90", domain.PillarUtilities, "Water"),
		expense("excise", "2024-02-06", "70", domain.PillarTaxesPaid, "Excise"),
		expense("misc", "2024-02-07", "40", domain.PillarUncategorized, ""),
		roof,
	}
	assets := []*domain.Asset{asset("pc", "2024-01-15", "2000", "5")}
	return entries, assets
}

func TestBuildScheduleC(t *testing.T) {
	entries, assets := scheduleCFixture()
	sc := BuildScheduleC(entries, assets)

	assertDecimal(t, "20000", sc.GrossReceipts)
	assertDecimal(t, "500", sc.Advertising)
	assertDecimal(t, "500", sc.Depreciation)
	assertDecimal(t, "800", sc.Insurance)
	assertDecimal(t, "300", sc.MortgageInterest)
	assertDecimal(t, "450", sc.Repairs)
	assertDecimal(t, "350", sc.Travel)
	assertDecimal(t, "120", sc.Meals)
	assertDecimal(t, "90", sc.Utilities)
	assertDecimal(t, "710", sc.OtherExpenses)
	assertDecimal(t, "3820", sc.TotalExpenses)
	assertDecimal(t, "16180", sc.NetProfit)
}

func TestBuildScheduleC_AgreesWithSummary(t *testing.T) {
	entries, assets := scheduleCFixture()
	sc := BuildScheduleC(entries, assets)
	s := Summarize(entries, assets, DefaultRates())

	assertDecimal(t, s.DeductibleExpenses.Add(s.TotalDepreciation).String(), sc.TotalExpenses)
	assertDecimal(t, s.TaxableProfit.String(), sc.NetProfit)
}

func TestScheduleC_Lines(t *testing.T) {
	entries, assets := scheduleCFixture()
	lines := BuildScheduleC(entries, assets).Lines()

	require.Len(t, lines, 12)
	assert.Equal(t, "1", lines[0].Line)
	assert.Equal(t, "13", lines[2].Line)
	assertDecimal(t, "500", lines[2].Amount)
	assert.Equal(t, "31", lines[len(lines)-1].Line)
	assertDecimal(t, "16180", lines[len(lines)-1].Amount)
}
