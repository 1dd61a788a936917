package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/Mavunaku/cvp3sea/internal/repository/storage"
	"github.com/Mavunaku/cvp3sea/internal/tax"
	"github.com/Mavunaku/cvp3sea/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// LedgerService handles ledger entry business logic
type LedgerService struct {
	ledgerRepo     domain.LedgerRepository
	projectRepo    domain.ProjectRepository
	projects       *ProjectService
	receipts       storage.ReceiptStore
	eventPublisher websocket.EventPublisher
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledgerRepo domain.LedgerRepository, projectRepo domain.ProjectRepository, projects *ProjectService) *LedgerService {
	return &LedgerService{
		ledgerRepo:  ledgerRepo,
		projectRepo: projectRepo,
		projects:    projects,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *LedgerService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// SetReceiptStore lets deletes clean up stored receipts
func (s *LedgerService) SetReceiptStore(store storage.ReceiptStore) {
	s.receipts = store
}

func (s *LedgerService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// EntryInput holds the input for creating or updating a ledger entry
type EntryInput struct {
	Date                 time.Time
	Amount               decimal.Decimal
	Type                 domain.EntryType
	Description          string
	Category             string
	Pillar               domain.Pillar
	Interest             *decimal.Decimal
	Capitalize           bool
	CapitalizeUsefulLife decimal.Decimal
	NYSource             *bool
	Status               domain.EntryStatus
	ProjectID            string
}

func (s *LedgerService) validate(input EntryInput) (*domain.LedgerEntry, error) {
	if input.Type != domain.EntryTypeIncome && input.Type != domain.EntryTypeExpense {
		return nil, domain.ErrInvalidEntryType
	}
	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	description := strings.TrimSpace(input.Description)
	if len(description) > domain.MaxDescriptionLength {
		return nil, domain.ErrDescriptionTooLong
	}

	pillar := domain.Pillar(strings.TrimSpace(string(input.Pillar)))
	if pillar != "" && !domain.IsKnownPillar(pillar) {
		return nil, domain.ErrInvalidPillar
	}

	if input.Interest != nil && input.Interest.IsNegative() {
		return nil, domain.ErrInvalidInterest
	}
	if input.CapitalizeUsefulLife.IsNegative() {
		return nil, domain.ErrInvalidCapitalizeLife
	}
	if input.Status != "" && !input.Status.IsValid() {
		return nil, domain.ErrInvalidEntryStatus
	}

	nySource := true
	if input.NYSource != nil {
		nySource = *input.NYSource
	}

	projectID := strings.TrimSpace(input.ProjectID)
	if projectID != "" {
		if _, err := s.projectRepo.GetByID(projectID); err != nil {
			return nil, err
		}
	}

	entry := &domain.LedgerEntry{
		Date:                 input.Date,
		Amount:               input.Amount,
		Type:                 input.Type,
		Description:          description,
		Category:             strings.TrimSpace(input.Category),
		Pillar:               pillar,
		Interest:             input.Interest,
		Capitalize:           input.Capitalize && input.Type == domain.EntryTypeExpense,
		CapitalizeUsefulLife: input.CapitalizeUsefulLife,
		NYSource:             nySource,
		Status:               input.Status,
		ProjectID:            projectID,
	}
	entry.Normalize()
	return entry, nil
}

// CreateEntry records a new entry. An entry without a project is attached to
// the General project of activeYear, or of its own date's year when no year
// is active.
func (s *LedgerService) CreateEntry(input EntryInput, activeYear string) (*domain.LedgerEntry, error) {
	entry, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	if entry.ProjectID == "" {
		year := activeYear
		if year == "" && !entry.Date.IsZero() {
			year = strconv.Itoa(entry.Date.Year())
		}
		if year != "" {
			general, err := s.projects.EnsureGeneralProject(year)
			if err != nil {
				return nil, err
			}
			entry.ProjectID = general.ID
		}
	}

	created, err := s.ledgerRepo.Create(entry)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("entry_id", created.ID).
		Str("type", string(created.Type)).
		Str("project_id", created.ProjectID).
		Msg("Ledger entry created")

	s.publishEvent(websocket.LedgerEntryCreated(created))
	return created, nil
}

// UpdateEntry replaces the editable fields of an entry
func (s *LedgerService) UpdateEntry(id string, input EntryInput) (*domain.LedgerEntry, error) {
	existing, err := s.ledgerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	entry, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	entry.ID = existing.ID
	entry.ReceiptKey = existing.ReceiptKey
	entry.CreatedAt = existing.CreatedAt

	updated, err := s.ledgerRepo.Update(entry)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.LedgerEntryUpdated(updated))
	return updated, nil
}

// GetEntry retrieves an entry by ID
func (s *LedgerService) GetEntry(id string) (*domain.LedgerEntry, error) {
	return s.ledgerRepo.GetByID(id)
}

// ListEntries returns the entries inside a selection
func (s *LedgerService) ListEntries(sel domain.Selection) ([]*domain.LedgerEntry, error) {
	sel, err := s.projects.ResolveSelection(sel)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.GetAll()
	if err != nil {
		return nil, err
	}
	if sel.All() {
		return entries, nil
	}

	projects, err := s.projectRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return tax.FilterEntries(entries, projects, sel), nil
}

// DeleteEntry removes an entry and its stored receipt
func (s *LedgerService) DeleteEntry(ctx context.Context, id string) error {
	entry, err := s.ledgerRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.ledgerRepo.Delete(id); err != nil {
		return err
	}

	if entry.HasReceipt() && s.receipts != nil {
		if err := s.receipts.Delete(ctx, *entry.ReceiptKey); err != nil {
			log.Warn().Err(err).Str("entry_id", id).Msg("Failed to delete receipt object")
		}
	}

	s.publishEvent(websocket.LedgerEntryDeleted(websocket.DeletedPayload{ID: id}))
	return nil
}

// SetNYSource flags or unflags a set of entries as New York source
func (s *LedgerService) SetNYSource(ids []string, enabled bool) (int64, error) {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return 0, domain.ErrEntryIDsRequired
	}

	updated, err := s.ledgerRepo.SetNYSource(unique, enabled)
	if err != nil {
		return 0, err
	}

	log.Info().Int64("updated", updated).Bool("ny_source", enabled).Msg("NY source flag updated")
	s.publishEvent(websocket.LedgerEntriesBulkUpdated(map[string]interface{}{
		"ids":      unique,
		"nySource": enabled,
		"updated":  updated,
	}))
	return updated, nil
}
