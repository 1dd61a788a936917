package tax

import (
	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AssetBreakdown is the depreciation of one fixed asset for the current year
type AssetBreakdown struct {
	AssetID            string
	Name               string
	Type               domain.AssetType
	PurchaseDate       string
	Cost               decimal.Decimal
	Land               decimal.Decimal
	BusinessUsePercent decimal.Decimal
	UsefulLife         decimal.Decimal
	Basis              decimal.Decimal
	Section179         decimal.Decimal
	SpecialAllowance   decimal.Decimal
	StraightLine       decimal.Decimal
	Override           bool
	Current            decimal.Decimal
	Prior              decimal.Decimal
	Accumulated        decimal.Decimal
}

// DepreciableBasis returns (cost - land) scaled by the business use percentage.
// Land never depreciates.
func DepreciableBasis(a *domain.Asset) decimal.Decimal {
	cost := nonNegative(a.Cost).Sub(nonNegative(a.Land))
	if cost.IsNegative() {
		return decimal.Zero
	}
	pct := clamp(a.BusinessUsePercent, hundred)
	return cost.Mul(pct).Div(hundred)
}

// AssetDepreciation computes the current-year and accumulated depreciation of an
// asset. A manual current figure wins, then section 179, then bonus, then
// straight-line. Computed figures are rounded to whole units; overrides are not.
func AssetDepreciation(a *domain.Asset) AssetBreakdown {
	basis := DepreciableBasis(a)
	life := a.UsefulLife
	if !life.IsPositive() {
		life = domain.DefaultAssetUsefulLife
	}

	b := AssetBreakdown{
		AssetID:            a.ID,
		Name:               a.Name,
		Type:               a.Type,
		Cost:               nonNegative(a.Cost),
		Land:               nonNegative(a.Land),
		BusinessUsePercent: a.BusinessUsePercent,
		UsefulLife:         life,
		Basis:              basis,
		Section179:         decimal.Zero,
		SpecialAllowance:   decimal.Zero,
		StraightLine:       decimal.Zero,
		Prior:              nonNegative(a.PriorDepreciation),
	}
	if !a.PurchaseDate.IsZero() {
		b.PurchaseDate = a.PurchaseDate.Format(domain.DateLayout)
	}

	switch {
	case a.CurrentDepreciation != nil:
		b.Override = true
		b.Current = *a.CurrentDepreciation
	case a.Section179:
		b.Section179 = basis.Round(0)
		b.Current = b.Section179
	case a.BonusDepreciation:
		b.SpecialAllowance = basis.Round(0)
		b.Current = b.SpecialAllowance
	default:
		b.StraightLine = basis.Div(life).Round(0)
		b.Current = b.StraightLine
	}

	b.Accumulated = b.Prior.Add(b.Current)
	return b
}

// ImprovementBreakdown is the depreciation of one capitalized expense
type ImprovementBreakdown struct {
	EntryID     string
	Date        string
	Description string
	Category    string
	Cost        decimal.Decimal
	UsefulLife  decimal.Decimal
	Current     decimal.Decimal
}

// ImprovementDepreciation returns round(amount / capitalizeUsefulLife) for a
// capitalized expense and zero for anything else
func ImprovementDepreciation(e *domain.LedgerEntry) decimal.Decimal {
	if e == nil || !e.IsExpense() || !e.Capitalize {
		return decimal.Zero
	}
	return nonNegative(e.Amount).Div(improvementLife(e)).Round(0)
}

func improvementLife(e *domain.LedgerEntry) decimal.Decimal {
	if e.CapitalizeUsefulLife.IsPositive() {
		return e.CapitalizeUsefulLife
	}
	return domain.DefaultImprovementUsefulLife
}

// TotalDepreciation sums fixed-asset and capitalized-improvement depreciation
// over already filtered inputs
func TotalDepreciation(entries []*domain.LedgerEntry, assets []*domain.Asset) decimal.Decimal {
	return AssetDepreciationTotal(assets).Add(ImprovementDepreciationTotal(entries))
}

// AssetDepreciationTotal sums current-year depreciation over assets
func AssetDepreciationTotal(assets []*domain.Asset) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assets {
		if a == nil {
			continue
		}
		total = total.Add(AssetDepreciation(a).Current)
	}
	return total
}

// ImprovementDepreciationTotal sums current-year depreciation over capitalized entries
func ImprovementDepreciationTotal(entries []*domain.LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(ImprovementDepreciation(e))
	}
	return total
}

// Schedule lists every depreciating item in a view with totals
type Schedule struct {
	Assets       []AssetBreakdown
	Improvements []ImprovementBreakdown

	TotalCost               decimal.Decimal
	TotalLand               decimal.Decimal
	TotalBasis              decimal.Decimal
	TotalPrior              decimal.Decimal
	TotalCurrent            decimal.Decimal
	TotalAccumulated        decimal.Decimal
	ImprovementCost         decimal.Decimal
	ImprovementDepreciation decimal.Decimal
	TotalDepreciation       decimal.Decimal
}

// BuildSchedule itemizes depreciation over already filtered inputs
func BuildSchedule(entries []*domain.LedgerEntry, assets []*domain.Asset) Schedule {
	s := Schedule{
		Assets:                  make([]AssetBreakdown, 0, len(assets)),
		Improvements:            []ImprovementBreakdown{},
		TotalCost:               decimal.Zero,
		TotalLand:               decimal.Zero,
		TotalBasis:              decimal.Zero,
		TotalPrior:              decimal.Zero,
		TotalCurrent:            decimal.Zero,
		TotalAccumulated:        decimal.Zero,
		ImprovementCost:         decimal.Zero,
		ImprovementDepreciation: decimal.Zero,
	}

	for _, a := range assets {
		if a == nil {
			continue
		}
		b := AssetDepreciation(a)
		s.Assets = append(s.Assets, b)
		s.TotalCost = s.TotalCost.Add(b.Cost)
		s.TotalLand = s.TotalLand.Add(b.Land)
		s.TotalBasis = s.TotalBasis.Add(b.Basis)
		s.TotalPrior = s.TotalPrior.Add(b.Prior)
		s.TotalCurrent = s.TotalCurrent.Add(b.Current)
		s.TotalAccumulated = s.TotalAccumulated.Add(b.Accumulated)
	}

	for _, e := range entries {
		if e == nil || !e.IsExpense() || !e.Capitalize {
			continue
		}
		current := ImprovementDepreciation(e)
		s.Improvements = append(s.Improvements, ImprovementBreakdown{
			EntryID:     e.ID,
			Date:        e.DateString(),
			Description: e.Description,
			Category:    e.Category,
			Cost:        nonNegative(e.Amount),
			UsefulLife:  improvementLife(e),
			Current:     current,
		})
		s.ImprovementCost = s.ImprovementCost.Add(nonNegative(e.Amount))
		s.ImprovementDepreciation = s.ImprovementDepreciation.Add(current)
	}

	s.TotalDepreciation = s.TotalCurrent.Add(s.ImprovementDepreciation)
	return s
}
