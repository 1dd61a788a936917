package service

import (
	"testing"
	"time"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/Mavunaku/cvp3sea/internal/tax"
	"github.com/Mavunaku/cvp3sea/internal/testutil"
	"github.com/shopspring/decimal"
)

// fixture wires every service over shared mock repositories
type fixture struct {
	years     *testutil.MockFiscalYearRepository
	projects  *testutil.MockProjectRepository
	ledger    *testutil.MockLedgerRepository
	assets    *testutil.MockAssetRepository
	receipts  *testutil.MockReceiptStore
	publisher *testutil.MockEventPublisher

	projectService *ProjectService
	ledgerService  *LedgerService
	assetService   *AssetService
	receiptService *ReceiptService
	taxService     *TaxService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		years:     testutil.NewMockFiscalYearRepository(),
		receipts:  testutil.NewMockReceiptStore(),
		publisher: testutil.NewMockEventPublisher(),
	}
	f.projects = testutil.NewMockProjectRepository(f.years)
	f.ledger = testutil.NewMockLedgerRepository(f.projects)
	f.assets = testutil.NewMockAssetRepository(f.projects)

	f.projectService = NewProjectService(f.years, f.projects, f.ledger, f.assets)
	f.projectService.SetEventPublisher(f.publisher)

	f.ledgerService = NewLedgerService(f.ledger, f.projects, f.projectService)
	f.ledgerService.SetEventPublisher(f.publisher)
	f.ledgerService.SetReceiptStore(f.receipts)

	f.assetService = NewAssetService(f.assets, f.projects, f.projectService)
	f.assetService.SetEventPublisher(f.publisher)

	f.receiptService = NewReceiptService(f.receipts, f.ledger)
	f.receiptService.SetEventPublisher(f.publisher)

	f.taxService = NewTaxService(tax.NewEngine(tax.DefaultRates()), f.ledger, f.assets, f.projects, f.projectService)
	return f
}

// addProject seeds a year and a project in it
func (f *fixture) addProject(year, name string) *domain.Project {
	if _, ok := f.years.Years[year]; !ok {
		f.years.AddYear(year)
	}
	return f.projects.AddProject(&domain.Project{Name: name, Type: domain.ProjectTypeProperty, YearID: year})
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func boolPtr(b bool) *bool {
	return &b
}
