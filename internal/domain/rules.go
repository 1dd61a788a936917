package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Pillar groups expense categories for deduction and reporting purposes
type Pillar string

const (
	PillarTaxesPaid       Pillar = "Taxes Paid"
	PillarInterestExpense Pillar = "Interest Expense"
	PillarRepairs         Pillar = "Repairs"
	PillarUtilities       Pillar = "Utilities"
	PillarTravels         Pillar = "Travels"
	PillarGeneralBusiness Pillar = "General Business"
	PillarUncategorized   Pillar = "Uncategorized"
)

// Categories with special deduction treatment
const (
	CategoryLoanInterest  = "Loan Interest"
	CategoryLoanPrincipal = "Loan Principal"
	CategoryAutoTravel    = "Auto & Travel"
	CategoryBusinessMeals = "Business Meals (50% Deductible)"
	CategoryTravelMeals   = "Travel Meals (50% Deductible)"
	CategoryEntertainment = "Entertainment (Non-Deductible)"
	CategoryAdvertising   = "Advertising"
	CategoryInsurance     = "Insurance"
	CategoryOther         = "Other"
	HalfDeductibleMarker  = "(50% Deductible)"
)

// PillarOrder is the display order used by reports
var PillarOrder = []Pillar{
	PillarTaxesPaid,
	PillarInterestExpense,
	PillarRepairs,
	PillarUtilities,
	PillarTravels,
	PillarGeneralBusiness,
	PillarUncategorized,
}

// PillarCategories lists the controlled categories of each pillar
var PillarCategories = map[Pillar][]string{
	PillarTaxesPaid:       {"Excise", "Local Income", "Real Estate", "Personal Property", "Sales Tax", "Federal Highway"},
	PillarInterestExpense: {CategoryLoanInterest, CategoryLoanPrincipal},
	PillarRepairs:         {"Roof", "Landscaping", "Painting", "Plumbing", "Windows", "Electrical", "Furniture", "Appliances", "Extermination", "Equipment", "Cleaning", "Parking Lot"},
	PillarUtilities:       {"Water", "Gas", "Electricity", "Phone", "Cable", "Internet"},
	PillarTravels:         {CategoryAutoTravel, CategoryBusinessMeals, CategoryTravelMeals, CategoryEntertainment},
	PillarGeneralBusiness: {CategoryAdvertising, CategoryInsurance, "Legal/Professional Fees", "Wages/Salaries", CategoryOther},
}

// IncomeCategories lists the controlled income categories
var IncomeCategories = []string{"Services", "Product Sales", "Rental Income", "Interest Income", CategoryOther}

// IsKnownPillar reports whether p is one of the fixed pillars (Uncategorized included)
func IsKnownPillar(p Pillar) bool {
	for _, known := range PillarOrder {
		if p == known {
			return true
		}
	}
	return false
}

// IsHalfDeductible reports whether a category is a 50% deductible meal category
func IsHalfDeductible(category string) bool {
	return strings.Contains(category, HalfDeductibleMarker)
}

// Useful lives in years
var (
	DefaultAssetUsefulLife       = decimal.NewFromInt(5)
	DefaultImprovementUsefulLife = decimal.RequireFromString("27.5")

	UsefulLives = []decimal.Decimal{
		decimal.NewFromInt(3),
		decimal.NewFromInt(5),
		decimal.NewFromInt(7),
		decimal.NewFromInt(15),
		decimal.RequireFromString("27.5"),
		decimal.NewFromInt(39),
	}
)

// IsValidUsefulLife reports whether life is in the recovery period enumeration
func IsValidUsefulLife(life decimal.Decimal) bool {
	for _, l := range UsefulLives {
		if l.Equal(life) {
			return true
		}
	}
	return false
}

// FullBusinessUse is the default business use percentage
var FullBusinessUse = decimal.NewFromInt(100)
