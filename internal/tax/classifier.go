package tax

import (
	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/shopspring/decimal"
)

// Rule names the deduction rule applied to an entry
type Rule string

const (
	RuleNotExpense      Rule = "not_expense"
	RuleCapitalized     Rule = "capitalized"
	RuleInterestPortion Rule = "interest_portion"
	RuleLoanPrincipal   Rule = "loan_principal"
	RuleHalfDeductible  Rule = "half_deductible"
	RuleNonDeductible   Rule = "non_deductible"
	RuleFull            Rule = "full"
)

var half = decimal.RequireFromString("0.5")

// Classify returns the deductible portion of an entry and the rule that produced it.
// The result always lies in [0, amount]; income entries deduct nothing.
func Classify(e *domain.LedgerEntry) (decimal.Decimal, Rule) {
	if e == nil || !e.IsExpense() {
		return decimal.Zero, RuleNotExpense
	}
	amount := nonNegative(e.Amount)

	if e.Capitalize {
		return decimal.Zero, RuleCapitalized
	}

	switch e.Pillar {
	case domain.PillarInterestExpense:
		if e.Interest != nil {
			return clamp(*e.Interest, amount), RuleInterestPortion
		}
		if e.Category == domain.CategoryLoanPrincipal {
			return decimal.Zero, RuleLoanPrincipal
		}
		return amount, RuleFull
	case domain.PillarTravels:
		if domain.IsHalfDeductible(e.Category) {
			return amount.Mul(half), RuleHalfDeductible
		}
	}

	if e.Category == domain.CategoryEntertainment {
		return decimal.Zero, RuleNonDeductible
	}
	return amount, RuleFull
}

// DeductibleAmount returns the deductible portion of an expense entry
func DeductibleAmount(e *domain.LedgerEntry) decimal.Decimal {
	amount, _ := Classify(e)
	return amount
}

// EntryBreakdown is the itemized deduction of one expense entry
type EntryBreakdown struct {
	EntryID       string
	Date          string
	Description   string
	Pillar        domain.Pillar
	Category      string
	Gross         decimal.Decimal
	Deductible    decimal.Decimal
	NonDeductible decimal.Decimal
	Rule          Rule
	NYSource      bool
}

// ClassifyEntries itemizes every expense entry in input order
func ClassifyEntries(entries []*domain.LedgerEntry) []EntryBreakdown {
	result := make([]EntryBreakdown, 0, len(entries))
	for _, e := range entries {
		if e == nil || !e.IsExpense() {
			continue
		}
		gross := nonNegative(e.Amount)
		deductible, rule := Classify(e)
		result = append(result, EntryBreakdown{
			EntryID:       e.ID,
			Date:          e.DateString(),
			Description:   e.Description,
			Pillar:        e.Pillar,
			Category:      e.Category,
			Gross:         gross,
			Deductible:    deductible,
			NonDeductible: gross.Sub(deductible),
			Rule:          rule,
			NYSource:      e.NYSource,
		})
	}
	return result
}

// Revenue sums income amounts
func Revenue(entries []*domain.LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e != nil && e.IsIncome() {
			total = total.Add(nonNegative(e.Amount))
		}
	}
	return total
}

// GrossExpenses sums expense amounts, leaving out capitalized improvements
// whose cost is recovered through depreciation
func GrossExpenses(entries []*domain.LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e != nil && e.IsExpense() && !e.Capitalize {
			total = total.Add(nonNegative(e.Amount))
		}
	}
	return total
}

// DeductibleExpenses sums the deductible portion of every expense
func DeductibleExpenses(entries []*domain.LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(DeductibleAmount(e))
	}
	return total
}

// NYSourceNet returns NY-source revenue minus NY-source deductible expenses.
// Entries not flagged as NY-source are skipped entirely.
func NYSourceNet(entries []*domain.LedgerEntry) decimal.Decimal {
	revenue, deductible := nySourceTotals(entries)
	return revenue.Sub(deductible)
}

func nySourceTotals(entries []*domain.LedgerEntry) (revenue, deductible decimal.Decimal) {
	revenue, deductible = decimal.Zero, decimal.Zero
	for _, e := range entries {
		if e == nil || !e.NYSource {
			continue
		}
		switch {
		case e.IsIncome():
			revenue = revenue.Add(nonNegative(e.Amount))
		case e.IsExpense():
			deductible = deductible.Add(DeductibleAmount(e))
		}
	}
	return revenue, deductible
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// clamp bounds v to [0, upper]
func clamp(v, upper decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(upper) {
		return upper
	}
	return v
}
