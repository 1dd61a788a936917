package service

import (
	"fmt"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/Mavunaku/cvp3sea/internal/tax"
)

// DefaultRankingLimit is the number of projects ranked when a request names no limit
const DefaultRankingLimit = 3

// TaxService loads the books and runs the deduction engine over them
type TaxService struct {
	engine      *tax.Engine
	ledgerRepo  domain.LedgerRepository
	assetRepo   domain.AssetRepository
	projectRepo domain.ProjectRepository
	projects    *ProjectService
}

// NewTaxService creates a new TaxService
func NewTaxService(engine *tax.Engine, ledgerRepo domain.LedgerRepository, assetRepo domain.AssetRepository, projectRepo domain.ProjectRepository, projects *ProjectService) *TaxService {
	return &TaxService{
		engine:      engine,
		ledgerRepo:  ledgerRepo,
		assetRepo:   assetRepo,
		projectRepo: projectRepo,
		projects:    projects,
	}
}

// Rates returns the rates the estimates use
func (s *TaxService) Rates() tax.Rates {
	return s.engine.Rates()
}

// load resolves the selection and reads a consistent snapshot of the books
func (s *TaxService) load(sel domain.Selection) (tax.Snapshot, domain.Selection, error) {
	sel, err := s.projects.ResolveSelection(sel)
	if err != nil {
		return tax.Snapshot{}, domain.Selection{}, err
	}

	entries, err := s.ledgerRepo.GetAll()
	if err != nil {
		return tax.Snapshot{}, domain.Selection{}, fmt.Errorf("load entries: %w", err)
	}
	assets, err := s.assetRepo.GetAll()
	if err != nil {
		return tax.Snapshot{}, domain.Selection{}, fmt.Errorf("load assets: %w", err)
	}
	projects, err := s.projectRepo.GetAll()
	if err != nil {
		return tax.Snapshot{}, domain.Selection{}, fmt.Errorf("load projects: %w", err)
	}

	return tax.Snapshot{Entries: entries, Assets: assets, Projects: projects}, sel, nil
}

// Summary estimates the tax position of a selection
func (s *TaxService) Summary(sel domain.Selection) (tax.Summary, domain.Selection, error) {
	snap, sel, err := s.load(sel)
	if err != nil {
		return tax.Summary{}, sel, err
	}
	return s.engine.Estimate(snap, sel), sel, nil
}

// Deductions itemizes the deductible portion of each expense in a selection
func (s *TaxService) Deductions(sel domain.Selection) ([]tax.EntryBreakdown, error) {
	snap, sel, err := s.load(sel)
	if err != nil {
		return nil, err
	}
	return s.engine.Deductions(snap, sel), nil
}

// Depreciation itemizes asset and improvement depreciation in a selection
func (s *TaxService) Depreciation(sel domain.Selection) (tax.Schedule, error) {
	snap, sel, err := s.load(sel)
	if err != nil {
		return tax.Schedule{}, err
	}
	return s.engine.Depreciation(snap, sel), nil
}

// ScheduleC builds the Schedule C preview of a selection
func (s *TaxService) ScheduleC(sel domain.Selection) (tax.ScheduleC, error) {
	snap, sel, err := s.load(sel)
	if err != nil {
		return tax.ScheduleC{}, err
	}
	return s.engine.ScheduleC(snap, sel), nil
}

// AccountantReport builds the accountant report of a selection
func (s *TaxService) AccountantReport(sel domain.Selection) (tax.AccountantReport, error) {
	snap, sel, err := s.load(sel)
	if err != nil {
		return tax.AccountantReport{}, err
	}
	return s.engine.AccountantReport(snap, sel), nil
}

// Rankings ranks the projects of the selected year by margin. A limit of
// zero ranks every project with income.
func (s *TaxService) Rankings(sel domain.Selection, limit int) ([]tax.ProjectRank, error) {
	snap, sel, err := s.load(sel)
	if err != nil {
		return nil, err
	}
	return s.engine.RankProjects(snap, sel, limit), nil
}

// Monthly returns the per-month income and expense series of a selection
func (s *TaxService) Monthly(sel domain.Selection) ([]tax.MonthlyPoint, error) {
	snap, sel, err := s.load(sel)
	if err != nil {
		return nil, err
	}
	return s.engine.MonthlySeries(snap, sel), nil
}

// TopCategories returns the highest spending expense categories of a selection
func (s *TaxService) TopCategories(sel domain.Selection, limit int) ([]tax.CategoryTotal, error) {
	snap, sel, err := s.load(sel)
	if err != nil {
		return nil, err
	}
	return s.engine.TopExpenseCategories(snap, sel, limit), nil
}
