package tax

import (
	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/shopspring/decimal"
)

// ScheduleC is a preview of the Schedule C profit or loss lines.
// Every expense line uses the deductible amount from Classify.
type ScheduleC struct {
	GrossReceipts    decimal.Decimal
	Advertising      decimal.Decimal
	Depreciation     decimal.Decimal
	Insurance        decimal.Decimal
	MortgageInterest decimal.Decimal
	Repairs          decimal.Decimal
	Travel           decimal.Decimal
	Meals            decimal.Decimal
	Utilities        decimal.Decimal
	OtherExpenses    decimal.Decimal
	TotalExpenses    decimal.Decimal
	NetProfit        decimal.Decimal
}

// ScheduleCLine is one printable line of the preview
type ScheduleCLine struct {
	Line   string
	Label  string
	Amount decimal.Decimal
}

// BuildScheduleC maps already filtered entries and assets onto Schedule C lines
func BuildScheduleC(entries []*domain.LedgerEntry, assets []*domain.Asset) ScheduleC {
	sc := ScheduleC{
		GrossReceipts:    Revenue(entries),
		Advertising:      decimal.Zero,
		Depreciation:     TotalDepreciation(entries, assets),
		Insurance:        decimal.Zero,
		MortgageInterest: decimal.Zero,
		Repairs:          decimal.Zero,
		Travel:           decimal.Zero,
		Meals:            decimal.Zero,
		Utilities:        decimal.Zero,
		OtherExpenses:    decimal.Zero,
	}

	for _, e := range entries {
		if e == nil || !e.IsExpense() || e.Capitalize {
			continue
		}
		amount := DeductibleAmount(e)

		switch e.Pillar {
		case domain.PillarGeneralBusiness:
			switch e.Category {
			case domain.CategoryAdvertising:
				sc.Advertising = sc.Advertising.Add(amount)
			case domain.CategoryInsurance:
				sc.Insurance = sc.Insurance.Add(amount)
			default:
				sc.OtherExpenses = sc.OtherExpenses.Add(amount)
			}
		case domain.PillarInterestExpense:
			sc.MortgageInterest = sc.MortgageInterest.Add(amount)
		case domain.PillarRepairs:
			sc.Repairs = sc.Repairs.Add(amount)
		case domain.PillarUtilities:
			sc.Utilities = sc.Utilities.Add(amount)
		case domain.PillarTravels:
			if domain.IsHalfDeductible(e.Category) {
				sc.Meals = sc.Meals.Add(amount)
			} else {
				sc.Travel = sc.Travel.Add(amount)
			}
		default:
			sc.OtherExpenses = sc.OtherExpenses.Add(amount)
		}
	}

	sc.TotalExpenses = decimal.Sum(
		sc.Advertising,
		sc.Depreciation,
		sc.Insurance,
		sc.MortgageInterest,
		sc.Repairs,
		sc.Travel,
		sc.Meals,
		sc.Utilities,
		sc.OtherExpenses,
	)
	sc.NetProfit = sc.GrossReceipts.Sub(sc.TotalExpenses)
	return sc
}

// Lines returns the preview in form order
func (sc ScheduleC) Lines() []ScheduleCLine {
	return []ScheduleCLine{
		{Line: "1", Label: "Gross receipts or sales", Amount: sc.GrossReceipts},
		{Line: "8", Label: "Advertising", Amount: sc.Advertising},
		{Line: "13", Label: "Depreciation and section 179 expense", Amount: sc.Depreciation},
		{Line: "15", Label: "Insurance (other than health)", Amount: sc.Insurance},
		{Line: "16a", Label: "Mortgage interest paid to banks", Amount: sc.MortgageInterest},
		{Line: "21", Label: "Repairs and maintenance", Amount: sc.Repairs},
		{Line: "24a", Label: "Travel", Amount: sc.Travel},
		{Line: "24b", Label: "Deductible meals (50%)", Amount: sc.Meals},
		{Line: "25", Label: "Utilities", Amount: sc.Utilities},
		{Line: "27a", Label: "Other expenses", Amount: sc.OtherExpenses},
		{Line: "28", Label: "Total expenses", Amount: sc.TotalExpenses},
		{Line: "31", Label: "Net profit or (loss)", Amount: sc.NetProfit},
	}
}
