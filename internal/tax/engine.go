package tax

import (
	"github.com/Mavunaku/cvp3sea/internal/domain"
)

// Snapshot is the data a computation reads. The engine never mutates it.
type Snapshot struct {
	Entries  []*domain.LedgerEntry
	Assets   []*domain.Asset
	Projects []*domain.Project
}

// View is a snapshot narrowed to a selection
type View struct {
	Selection domain.Selection
	Entries   []*domain.LedgerEntry
	Assets    []*domain.Asset
	Projects  []*domain.Project
}

// Engine runs the deduction and depreciation calculators with a fixed rate policy.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	rates Rates
}

// NewEngine creates an Engine with the given rates
func NewEngine(rates Rates) *Engine {
	return &Engine{rates: rates}
}

// Rates returns the rate policy in use
func (e *Engine) Rates() Rates {
	return e.rates
}

// View applies the context filter to a snapshot
func (e *Engine) View(snap Snapshot, sel domain.Selection) View {
	return View{
		Selection: sel,
		Entries:   FilterEntries(snap.Entries, snap.Projects, sel),
		Assets:    FilterAssets(snap.Assets, snap.Projects, sel),
		Projects:  snap.Projects,
	}
}

// Estimate filters the snapshot and summarizes the result
func (e *Engine) Estimate(snap Snapshot, sel domain.Selection) Summary {
	v := e.View(snap, sel)
	return Summarize(v.Entries, v.Assets, e.rates)
}

// Deductions itemizes the deductible portion of every expense in the selection
func (e *Engine) Deductions(snap Snapshot, sel domain.Selection) []EntryBreakdown {
	return ClassifyEntries(FilterEntries(snap.Entries, snap.Projects, sel))
}

// Depreciation itemizes depreciation for the selection
func (e *Engine) Depreciation(snap Snapshot, sel domain.Selection) Schedule {
	v := e.View(snap, sel)
	return BuildSchedule(v.Entries, v.Assets)
}

// ScheduleC builds the Schedule C preview for the selection
func (e *Engine) ScheduleC(snap Snapshot, sel domain.Selection) ScheduleC {
	v := e.View(snap, sel)
	return BuildScheduleC(v.Entries, v.Assets)
}

// AccountantReport builds the accountant-facing report for the selection
func (e *Engine) AccountantReport(snap Snapshot, sel domain.Selection) AccountantReport {
	v := e.View(snap, sel)
	return BuildAccountantReport(v.Entries, v.Assets, e.rates)
}

// RankProjects ranks projects by margin. A selected project implies its year;
// callers resolve that before passing the selection.
func (e *Engine) RankProjects(snap Snapshot, sel domain.Selection, limit int) []ProjectRank {
	return RankProjects(snap.Entries, snap.Projects, sel.Year, limit)
}

// MonthlySeries returns per-month income and expense for the selection
func (e *Engine) MonthlySeries(snap Snapshot, sel domain.Selection) []MonthlyPoint {
	return MonthlySeries(FilterEntries(snap.Entries, snap.Projects, sel))
}

// TopExpenseCategories returns the highest spending categories in the selection
func (e *Engine) TopExpenseCategories(snap Snapshot, sel domain.Selection, limit int) []CategoryTotal {
	return TopExpenseCategories(FilterEntries(snap.Entries, snap.Projects, sel), limit)
}
