package tax

import (
	"sort"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/shopspring/decimal"
)

// CategoryTotal is the gross and deductible total of one category
type CategoryTotal struct {
	Category   string
	Gross      decimal.Decimal
	Deductible decimal.Decimal
}

// PillarGroup is the expense total of one pillar with its categories
type PillarGroup struct {
	Pillar     domain.Pillar
	Gross      decimal.Decimal
	Deductible decimal.Decimal
	Categories []CategoryTotal
}

// AccountantReport groups a filtered view the way an accountant reads it
type AccountantReport struct {
	Summary          Summary
	IncomeByCategory []CategoryTotal
	ExpensesByPillar []PillarGroup
	NYSourceRevenue  decimal.Decimal
	NYSourceExpenses decimal.Decimal
	NYSourceIncome   decimal.Decimal
}

// BuildAccountantReport builds the report over already filtered inputs.
// Capitalized entries are left out of the pillar groups; they appear in the
// depreciation schedule instead.
func BuildAccountantReport(entries []*domain.LedgerEntry, assets []*domain.Asset, rates Rates) AccountantReport {
	summary := Summarize(entries, assets, rates)
	nyRevenue, nyExpenses := nySourceTotals(entries)

	return AccountantReport{
		Summary:          summary,
		IncomeByCategory: IncomeByCategory(entries),
		ExpensesByPillar: ExpensesByPillar(entries),
		NYSourceRevenue:  nyRevenue,
		NYSourceExpenses: nyExpenses,
		NYSourceIncome:   summary.NYSourceIncome,
	}
}

// IncomeByCategory totals income per category sorted by category name
func IncomeByCategory(entries []*domain.LedgerEntry) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if e == nil || !e.IsIncome() {
			continue
		}
		category := e.Category
		if category == "" {
			category = string(domain.PillarUncategorized)
		}
		totals[category] = totals[category].Add(nonNegative(e.Amount))
	}

	result := make([]CategoryTotal, 0, len(totals))
	for category, amount := range totals {
		result = append(result, CategoryTotal{Category: category, Gross: amount, Deductible: decimal.Zero})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})
	return result
}

// ExpensesByPillar groups non-capitalized expenses by pillar in display order.
// Pillars outside the fixed set follow, sorted by name.
func ExpensesByPillar(entries []*domain.LedgerEntry) []PillarGroup {
	type bucket struct {
		group      PillarGroup
		categories map[string]*CategoryTotal
		order      []string
	}
	buckets := make(map[domain.Pillar]*bucket)

	for _, e := range entries {
		if e == nil || !e.IsExpense() || e.Capitalize {
			continue
		}
		pillar := e.Pillar
		if pillar == "" {
			pillar = domain.PillarUncategorized
		}
		b, ok := buckets[pillar]
		if !ok {
			b = &bucket{
				group:      PillarGroup{Pillar: pillar, Gross: decimal.Zero, Deductible: decimal.Zero},
				categories: make(map[string]*CategoryTotal),
			}
			buckets[pillar] = b
		}

		gross := nonNegative(e.Amount)
		deductible := DeductibleAmount(e)
		b.group.Gross = b.group.Gross.Add(gross)
		b.group.Deductible = b.group.Deductible.Add(deductible)

		ct, ok := b.categories[e.Category]
		if !ok {
			ct = &CategoryTotal{Category: e.Category, Gross: decimal.Zero, Deductible: decimal.Zero}
			b.categories[e.Category] = ct
			b.order = append(b.order, e.Category)
		}
		ct.Gross = ct.Gross.Add(gross)
		ct.Deductible = ct.Deductible.Add(deductible)
	}

	pillars := make([]domain.Pillar, 0, len(buckets))
	for _, p := range domain.PillarOrder {
		if _, ok := buckets[p]; ok {
			pillars = append(pillars, p)
		}
	}
	var extra []domain.Pillar
	for p := range buckets {
		if !domain.IsKnownPillar(p) {
			extra = append(extra, p)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	pillars = append(pillars, extra...)

	result := make([]PillarGroup, 0, len(pillars))
	for _, p := range pillars {
		b := buckets[p]
		b.group.Categories = make([]CategoryTotal, 0, len(b.order))
		for _, c := range b.order {
			b.group.Categories = append(b.group.Categories, *b.categories[c])
		}
		result = append(result, b.group)
	}
	return result
}

// ProjectRank is the profitability of one project
type ProjectRank struct {
	ProjectID string
	Name      string
	Type      domain.ProjectType
	Income    decimal.Decimal
	Expenses  decimal.Decimal
	Net       decimal.Decimal
	Margin    decimal.Decimal
}

// RankProjects ranks the projects in scope by profit margin, highest first.
// Only projects with income are ranked. Entries are matched by project only.
// A limit of zero or less returns every ranked project.
func RankProjects(entries []*domain.LedgerEntry, projects []*domain.Project, year string, limit int) []ProjectRank {
	type totals struct{ income, expenses decimal.Decimal }
	byProject := make(map[string]*totals)
	for _, e := range entries {
		if e == nil || e.ProjectID == "" {
			continue
		}
		t, ok := byProject[e.ProjectID]
		if !ok {
			t = &totals{income: decimal.Zero, expenses: decimal.Zero}
			byProject[e.ProjectID] = t
		}
		switch {
		case e.IsIncome():
			t.income = t.income.Add(nonNegative(e.Amount))
		case e.IsExpense() && !e.Capitalize:
			t.expenses = t.expenses.Add(nonNegative(e.Amount))
		}
	}

	var ranks []ProjectRank
	for _, p := range projects {
		if p == nil || (year != "" && p.YearID != year) {
			continue
		}
		t, ok := byProject[p.ID]
		if !ok || !t.income.IsPositive() {
			continue
		}
		net := t.income.Sub(t.expenses)
		ranks = append(ranks, ProjectRank{
			ProjectID: p.ID,
			Name:      p.Name,
			Type:      p.Type,
			Income:    t.income,
			Expenses:  t.expenses,
			Net:       net,
			Margin:    net.Div(t.income).Mul(hundred).Round(2),
		})
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		if !ranks[i].Margin.Equal(ranks[j].Margin) {
			return ranks[i].Margin.GreaterThan(ranks[j].Margin)
		}
		return ranks[i].Name < ranks[j].Name
	})

	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	if ranks == nil {
		ranks = []ProjectRank{}
	}
	return ranks
}

// MonthlyPoint is the income and gross expense of one calendar month
type MonthlyPoint struct {
	Month    string
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// MonthlySeries totals already filtered entries per YYYY-MM, ascending.
// Undated entries are skipped.
func MonthlySeries(entries []*domain.LedgerEntry) []MonthlyPoint {
	points := make(map[string]*MonthlyPoint)
	for _, e := range entries {
		if e == nil || e.Date.IsZero() {
			continue
		}
		month := e.Date.Format("2006-01")
		p, ok := points[month]
		if !ok {
			p = &MonthlyPoint{Month: month, Income: decimal.Zero, Expenses: decimal.Zero}
			points[month] = p
		}
		switch {
		case e.IsIncome():
			p.Income = p.Income.Add(nonNegative(e.Amount))
		case e.IsExpense() && !e.Capitalize:
			p.Expenses = p.Expenses.Add(nonNegative(e.Amount))
		}
	}

	result := make([]MonthlyPoint, 0, len(points))
	for _, p := range points {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})
	return result
}

// TopExpenseCategories returns the categories with the highest gross expense.
// Ties are broken by category name. A limit of zero or less returns all.
func TopExpenseCategories(entries []*domain.LedgerEntry, limit int) []CategoryTotal {
	totals := make(map[string]*CategoryTotal)
	for _, e := range entries {
		if e == nil || !e.IsExpense() || e.Capitalize {
			continue
		}
		ct, ok := totals[e.Category]
		if !ok {
			ct = &CategoryTotal{Category: e.Category, Gross: decimal.Zero, Deductible: decimal.Zero}
			totals[e.Category] = ct
		}
		ct.Gross = ct.Gross.Add(nonNegative(e.Amount))
		ct.Deductible = ct.Deductible.Add(DeductibleAmount(e))
	}

	result := make([]CategoryTotal, 0, len(totals))
	for _, ct := range totals {
		result = append(result, *ct)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Gross.Equal(result[j].Gross) {
			return result[i].Gross.GreaterThan(result[j].Gross)
		}
		return result[i].Category < result[j].Category
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
