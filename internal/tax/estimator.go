package tax

import (
	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/shopspring/decimal"
)

// Default composite rates
var (
	DefaultFederalRate = decimal.RequireFromString("0.35")
	DefaultNYStateRate = decimal.RequireFromString("0.065")
)

// Rates holds the flat composite rates used for the liability estimate
type Rates struct {
	Federal decimal.Decimal
	NYState decimal.Decimal
}

// DefaultRates returns the 35% federal and 6.5% New York rates
func DefaultRates() Rates {
	return Rates{Federal: DefaultFederalRate, NYState: DefaultNYStateRate}
}

// Combined returns the sum of both rates
func (r Rates) Combined() decimal.Decimal {
	return r.Federal.Add(r.NYState)
}

// Summary is the tax view of a filtered snapshot.
// Profit figures may be negative; tax figures never are.
type Summary struct {
	Revenue            decimal.Decimal
	GrossExpenses      decimal.Decimal
	DeductibleExpenses decimal.Decimal
	TotalDepreciation  decimal.Decimal
	NetCashProfit      decimal.Decimal
	TaxableProfit      decimal.Decimal
	NYSourceIncome     decimal.Decimal
	FederalTax         decimal.Decimal
	NYStateTax         decimal.Decimal
	TaxLiability       decimal.Decimal
	TaxSavings         decimal.Decimal
}

// Summarize combines classified expenses and depreciation against revenue.
// Inputs must already be filtered to the view being summarized.
func Summarize(entries []*domain.LedgerEntry, assets []*domain.Asset, rates Rates) Summary {
	s := Summary{
		Revenue:            Revenue(entries),
		GrossExpenses:      GrossExpenses(entries),
		DeductibleExpenses: DeductibleExpenses(entries),
		TotalDepreciation:  TotalDepreciation(entries, assets),
	}

	s.NetCashProfit = s.Revenue.Sub(s.GrossExpenses)
	s.TaxableProfit = s.Revenue.Sub(s.DeductibleExpenses).Sub(s.TotalDepreciation)
	s.NYSourceIncome = NYSourceNet(entries).Sub(s.TotalDepreciation)

	s.FederalTax = taxOn(s.TaxableProfit, rates.Federal)
	s.NYStateTax = taxOn(s.NYSourceIncome, rates.NYState)
	s.TaxLiability = s.FederalTax.Add(s.NYStateTax)
	s.TaxSavings = s.DeductibleExpenses.Add(s.TotalDepreciation).Mul(rates.Combined())

	return s
}

// taxOn floors the tax at zero when the base is not positive
func taxOn(base, rate decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return base.Mul(rate)
}
