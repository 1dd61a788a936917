package service

import (
	"context"
	"testing"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/Mavunaku/cvp3sea/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEntry_AssignsGeneralProjectOfActiveYear(t *testing.T) {
	f := newFixture(t)

	entry, err := f.ledgerService.CreateEntry(EntryInput{
		Date:   day("2023-12-30"),
		Amount: dec("250"),
		Type:   domain.EntryTypeExpense,
		Pillar: domain.PillarRepairs,
	}, "2024")
	require.NoError(t, err)

	project, err := f.projects.GetByID(entry.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, domain.GeneralProjectName, project.Name)
	assert.Equal(t, "2024", project.YearID)
}

func TestCreateEntry_AssignsGeneralProjectOfEntryYear(t *testing.T) {
	f := newFixture(t)

	entry, err := f.ledgerService.CreateEntry(EntryInput{
		Date:   day("2022-03-01"),
		Amount: dec("1000"),
		Type:   domain.EntryTypeIncome,
	}, "")
	require.NoError(t, err)

	project, err := f.projects.GetByID(entry.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, "2022", project.YearID)
	assert.Equal(t, []string{"fiscal_year.created", "project.created", "ledger_entry.created"}, f.publisher.Types())
}

func TestCreateEntry_UndatedWithoutYearStaysUnassigned(t *testing.T) {
	f := newFixture(t)

	entry, err := f.ledgerService.CreateEntry(EntryInput{Amount: dec("5"), Type: domain.EntryTypeExpense}, "")
	require.NoError(t, err)
	assert.Empty(t, entry.ProjectID)
	assert.Empty(t, f.projects.Projects)
}

func TestCreateEntry_Defaults(t *testing.T) {
	f := newFixture(t)
	project := f.addProject("2024", "Elm")

	entry, err := f.ledgerService.CreateEntry(EntryInput{
		Date:        day("2024-05-01"),
		Amount:      dec("80"),
		Type:        domain.EntryTypeExpense,
		Description: "  plumber  ",
		ProjectID:   project.ID,
	}, "")
	require.NoError(t, err)

	assert.Equal(t, project.ID, entry.ProjectID)
	assert.Equal(t, "plumber", entry.Description)
	assert.Equal(t, domain.PillarUncategorized, entry.Pillar)
	assert.True(t, entry.NYSource)
	assert.Equal(t, domain.EntryStatusCleared, entry.Status)
	assert.True(t, entry.CapitalizeUsefulLife.Equal(domain.DefaultImprovementUsefulLife))
}

func TestCreateEntry_CapitalizeIgnoredOnIncome(t *testing.T) {
	f := newFixture(t)
	project := f.addProject("2024", "Elm")

	entry, err := f.ledgerService.CreateEntry(EntryInput{
		Amount: dec("80"), Type: domain.EntryTypeIncome, Capitalize: true, ProjectID: project.ID,
	}, "")
	require.NoError(t, err)
	assert.False(t, entry.Capitalize)
}

func TestCreateEntry_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		input EntryInput
		want  error
	}{
		{"bad type", EntryInput{Amount: dec("1"), Type: "transfer"}, domain.ErrInvalidEntryType},
		{"negative amount", EntryInput{Amount: dec("-1"), Type: domain.EntryTypeExpense}, domain.ErrInvalidAmount},
		{"unknown pillar", EntryInput{Amount: dec("1"), Type: domain.EntryTypeExpense, Pillar: "Snacks"}, domain.ErrInvalidPillar},
		{"negative interest", EntryInput{Amount: dec("1"), Type: domain.EntryTypeExpense, Interest: decPtr("-2")}, domain.ErrInvalidInterest},
		{"negative life", EntryInput{Amount: dec("1"), Type: domain.EntryTypeExpense, CapitalizeUsefulLife: dec("-1")}, domain.ErrInvalidCapitalizeLife},
		{"bad status", EntryInput{Amount: dec("1"), Type: domain.EntryTypeExpense, Status: "Lost"}, domain.ErrInvalidEntryStatus},
		{"long description", EntryInput{Amount: dec("1"), Type: domain.EntryTypeExpense, Description: string(make([]byte, domain.MaxDescriptionLength+1))}, domain.ErrDescriptionTooLong},
		{"unknown project", EntryInput{Amount: dec("1"), Type: domain.EntryTypeExpense, ProjectID: "nope"}, domain.ErrProjectNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ledgerService.CreateEntry(tt.input, "2024")
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.ledger.Entries)
}

func TestUpdateEntry_KeepsReceipt(t *testing.T) {
	f := newFixture(t)
	project := f.addProject("2024", "Elm")
	key := "receipts/e1/a.jpg"
	f.ledger.AddEntry(&domain.LedgerEntry{
		ID: "e1", Type: domain.EntryTypeExpense, Amount: dec("10"), ProjectID: project.ID, ReceiptKey: &key,
	})

	updated, err := f.ledgerService.UpdateEntry("e1", EntryInput{
		Date:      day("2024-02-02"),
		Amount:    dec("12.50"),
		Type:      domain.EntryTypeExpense,
		Pillar:    domain.PillarUtilities,
		NYSource:  boolPtr(false),
		ProjectID: project.ID,
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec("12.50")))
	assert.False(t, updated.NYSource)
	require.True(t, updated.HasReceipt())
	assert.Equal(t, key, *updated.ReceiptKey)
	assert.Equal(t, []string{"ledger_entry.updated"}, f.publisher.Types())

	_, err = f.ledgerService.UpdateEntry("missing", EntryInput{Amount: dec("1"), Type: domain.EntryTypeExpense})
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestDeleteEntry_RemovesReceiptObject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	key := "receipts/e1/a.jpg"
	f.receipts.Objects[key] = testutil.StoredObject{Data: []byte("jpeg"), ContentType: "image/jpeg"}
	f.ledger.AddEntry(&domain.LedgerEntry{ID: "e1", Type: domain.EntryTypeExpense, Amount: dec("10"), ReceiptKey: &key})

	require.NoError(t, f.ledgerService.DeleteEntry(ctx, "e1"))
	assert.Empty(t, f.ledger.Entries)
	assert.NotContains(t, f.receipts.Objects, key)
	assert.Equal(t, []string{"ledger_entry.deleted"}, f.publisher.Types())

	assert.ErrorIs(t, f.ledgerService.DeleteEntry(ctx, "e1"), domain.ErrEntryNotFound)
}

func TestListEntries_BySelection(t *testing.T) {
	f := newFixture(t)
	p24 := f.addProject("2024", "Elm")
	p23 := f.addProject("2023", "Oak")

	f.ledger.AddEntry(&domain.LedgerEntry{ID: "a", Date: day("2024-01-05"), Type: domain.EntryTypeIncome, Amount: dec("1"), ProjectID: p24.ID})
	f.ledger.AddEntry(&domain.LedgerEntry{ID: "b", Date: day("2023-06-05"), Type: domain.EntryTypeIncome, Amount: dec("1"), ProjectID: p23.ID})
	f.ledger.AddEntry(&domain.LedgerEntry{ID: "c", Date: day("2024-09-05"), Type: domain.EntryTypeIncome, Amount: dec("1")})

	all, err := f.ledgerService.ListEntries(domain.Selection{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	year, err := f.ledgerService.ListEntries(domain.Selection{Year: "2024"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "c"}, entryIDs(year))

	project, err := f.ledgerService.ListEntries(domain.Selection{ProjectID: p23.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, entryIDs(project))

	_, err = f.ledgerService.ListEntries(domain.Selection{ProjectID: "missing"})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestSetNYSource(t *testing.T) {
	f := newFixture(t)
	f.ledger.AddEntry(&domain.LedgerEntry{ID: "a", Type: domain.EntryTypeIncome, Amount: dec("1"), NYSource: true})
	f.ledger.AddEntry(&domain.LedgerEntry{ID: "b", Type: domain.EntryTypeExpense, Amount: dec("1"), NYSource: true})
	f.ledger.AddEntry(&domain.LedgerEntry{ID: "c", Type: domain.EntryTypeExpense, Amount: dec("1"), NYSource: true})

	updated, err := f.ledgerService.SetNYSource([]string{"a", "b", "a", " ", "ghost"}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)
	assert.False(t, f.ledger.Entries["a"].NYSource)
	assert.False(t, f.ledger.Entries["b"].NYSource)
	assert.True(t, f.ledger.Entries["c"].NYSource)
	assert.Equal(t, []string{"ledger_entry.bulk_updated"}, f.publisher.Types())

	_, err = f.ledgerService.SetNYSource([]string{" "}, true)
	assert.ErrorIs(t, err, domain.ErrEntryIDsRequired)
}

func entryIDs(entries []*domain.LedgerEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
