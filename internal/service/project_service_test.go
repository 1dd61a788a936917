package service

import (
	"testing"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddYear(t *testing.T) {
	f := newFixture(t)

	year, err := f.projectService.AddYear(" 2024 ")
	require.NoError(t, err)
	assert.Equal(t, "2024", year.ID)

	again, err := f.projectService.AddYear("2024")
	require.NoError(t, err)
	assert.Equal(t, year.CreatedAt, again.CreatedAt)
	assert.Len(t, f.years.Years, 1)
	assert.Equal(t, []string{"fiscal_year.created"}, f.publisher.Types())
}

func TestAddYear_Invalid(t *testing.T) {
	f := newFixture(t)

	for _, year := range []string{"", "24", "20245", "abcd", "1800"} {
		_, err := f.projectService.AddYear(year)
		assert.ErrorIs(t, err, domain.ErrInvalidYear, "year %q", year)
	}
}

func TestListYears_NewestFirst(t *testing.T) {
	f := newFixture(t)
	f.years.AddYear("2022")
	f.years.AddYear("2024")
	f.years.AddYear("2023")

	years, err := f.projectService.ListYears()
	require.NoError(t, err)
	require.Len(t, years, 3)
	assert.Equal(t, "2024", years[0].ID)
	assert.Equal(t, "2022", years[2].ID)
}

func TestCreateProject(t *testing.T) {
	f := newFixture(t)
	f.years.AddYear("2024")

	project, err := f.projectService.CreateProject(ProjectInput{Name: "  Elm Street  ", Type: domain.ProjectTypeProperty, YearID: "2024"})
	require.NoError(t, err)
	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "Elm Street", project.Name)
	assert.Equal(t, domain.ProjectTypeProperty, project.Type)

	generic, err := f.projectService.CreateProject(ProjectInput{Name: "Misc", YearID: "2024"})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectTypeGeneric, generic.Type)

	assert.Equal(t, []string{"project.created", "project.created"}, f.publisher.Types())
}

func TestCreateProject_Validation(t *testing.T) {
	f := newFixture(t)
	f.years.AddYear("2024")
	f.addProject("2024", "Taken")

	tests := []struct {
		name  string
		input ProjectInput
		want  error
	}{
		{"empty name", ProjectInput{Name: "  ", YearID: "2024"}, domain.ErrNameRequired},
		{"long name", ProjectInput{Name: string(make([]byte, domain.MaxNameLength+1)), YearID: "2024"}, domain.ErrNameTooLong},
		{"bad type", ProjectInput{Name: "X", Type: "Boat", YearID: "2024"}, domain.ErrInvalidProjectType},
		{"bad year", ProjectInput{Name: "X", YearID: "24"}, domain.ErrInvalidYear},
		{"unknown year", ProjectInput{Name: "X", YearID: "2019"}, domain.ErrYearNotFound},
		{"duplicate", ProjectInput{Name: "Taken", YearID: "2024"}, domain.ErrAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.projectService.CreateProject(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateProject(t *testing.T) {
	f := newFixture(t)
	project := f.addProject("2024", "Old")

	updated, err := f.projectService.UpdateProject(project.ID, ProjectInput{Name: "New", Type: domain.ProjectTypeClient, YearID: "2024"})
	require.NoError(t, err)
	assert.Equal(t, project.ID, updated.ID)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, domain.ProjectTypeClient, updated.Type)

	_, err = f.projectService.UpdateProject("missing", ProjectInput{Name: "New", YearID: "2024"})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestDeleteProject_Cascades(t *testing.T) {
	f := newFixture(t)
	keep := f.addProject("2024", "Keep")
	drop := f.addProject("2024", "Drop")

	f.ledger.AddEntry(&domain.LedgerEntry{Type: domain.EntryTypeIncome, Amount: dec("100"), ProjectID: drop.ID})
	f.ledger.AddEntry(&domain.LedgerEntry{Type: domain.EntryTypeExpense, Amount: dec("40"), ProjectID: drop.ID})
	f.ledger.AddEntry(&domain.LedgerEntry{Type: domain.EntryTypeExpense, Amount: dec("10"), ProjectID: keep.ID})
	f.assets.AddAsset(&domain.Asset{Name: "Roof", Cost: dec("5000"), ProjectID: drop.ID})

	result, err := f.projectService.DeleteProject(drop.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ProjectsDeleted)
	assert.Equal(t, int64(2), result.EntriesDeleted)
	assert.Equal(t, int64(1), result.AssetsDeleted)

	assert.Len(t, f.ledger.Entries, 1)
	assert.Empty(t, f.assets.Assets)
	_, err = f.projects.GetByID(drop.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.Equal(t, []string{"project.deleted"}, f.publisher.Types())
}

func TestDeleteYear_Cascades(t *testing.T) {
	f := newFixture(t)
	a := f.addProject("2024", "A")
	b := f.addProject("2024", "B")
	other := f.addProject("2023", "Other")

	f.ledger.AddEntry(&domain.LedgerEntry{Type: domain.EntryTypeIncome, Amount: dec("100"), ProjectID: a.ID})
	f.ledger.AddEntry(&domain.LedgerEntry{Type: domain.EntryTypeIncome, Amount: dec("100"), ProjectID: b.ID})
	f.ledger.AddEntry(&domain.LedgerEntry{Type: domain.EntryTypeIncome, Amount: dec("100"), ProjectID: other.ID})
	f.assets.AddAsset(&domain.Asset{Name: "Van", Cost: dec("20000"), ProjectID: b.ID})

	result, err := f.projectService.DeleteYear("2024")
	require.NoError(t, err)
	assert.Equal(t, 2, result.ProjectsDeleted)
	assert.Equal(t, int64(2), result.EntriesDeleted)
	assert.Equal(t, int64(1), result.AssetsDeleted)

	assert.Len(t, f.projects.Projects, 1)
	assert.Len(t, f.ledger.Entries, 1)
	_, err = f.years.GetByID("2024")
	assert.ErrorIs(t, err, domain.ErrYearNotFound)
	_, err = f.years.GetByID("2023")
	assert.NoError(t, err)

	_, err = f.projectService.DeleteYear("2024")
	assert.ErrorIs(t, err, domain.ErrYearNotFound)
}

func TestResolveSelection(t *testing.T) {
	f := newFixture(t)
	project := f.addProject("2023", "Elm")

	sel, err := f.projectService.ResolveSelection(domain.Selection{ProjectID: project.ID})
	require.NoError(t, err)
	assert.Equal(t, "2023", sel.Year)

	// A selected project wins over a conflicting year
	sel, err = f.projectService.ResolveSelection(domain.Selection{Year: "2024", ProjectID: project.ID})
	require.NoError(t, err)
	assert.Equal(t, "2023", sel.Year)

	sel, err = f.projectService.ResolveSelection(domain.Selection{Year: "2024"})
	require.NoError(t, err)
	assert.Equal(t, domain.Selection{Year: "2024"}, sel)

	sel, err = f.projectService.ResolveSelection(domain.Selection{})
	require.NoError(t, err)
	assert.True(t, sel.All())

	_, err = f.projectService.ResolveSelection(domain.Selection{ProjectID: "missing"})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	_, err = f.projectService.ResolveSelection(domain.Selection{Year: "20x4"})
	assert.ErrorIs(t, err, domain.ErrInvalidYear)
}

func TestEnsureGeneralProject(t *testing.T) {
	f := newFixture(t)

	general, err := f.projectService.EnsureGeneralProject("2024")
	require.NoError(t, err)
	assert.Equal(t, domain.GeneralProjectName, general.Name)
	assert.Equal(t, domain.ProjectTypeGeneric, general.Type)
	assert.Equal(t, "2024", general.YearID)
	_, err = f.years.GetByID("2024")
	assert.NoError(t, err, "year is created on demand")

	again, err := f.projectService.EnsureGeneralProject("2024")
	require.NoError(t, err)
	assert.Equal(t, general.ID, again.ID)
	assert.Len(t, f.projects.Projects, 1)
}

func TestEnsureGeneralProject_ConcurrentCreate(t *testing.T) {
	f := newFixture(t)
	f.years.AddYear("2024")
	winner := &domain.Project{ID: "winner", Name: domain.GeneralProjectName, Type: domain.ProjectTypeGeneric, YearID: "2024"}

	f.projects.CreateFn = func(p *domain.Project) (*domain.Project, error) {
		f.projects.AddProject(winner)
		return nil, domain.ErrAlreadyExists
	}

	general, err := f.projectService.EnsureGeneralProject("2024")
	require.NoError(t, err)
	assert.Equal(t, "winner", general.ID)
}
