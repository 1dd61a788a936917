package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/Mavunaku/cvp3sea/internal/websocket"
	"github.com/rs/zerolog/log"
)

// CascadeResult counts the records removed along with a project or year
type CascadeResult struct {
	ProjectsDeleted int
	EntriesDeleted  int64
	AssetsDeleted   int64
}

// ProjectService handles fiscal years, projects, and selection resolution
type ProjectService struct {
	yearRepo       domain.FiscalYearRepository
	projectRepo    domain.ProjectRepository
	ledgerRepo     domain.LedgerRepository
	assetRepo      domain.AssetRepository
	eventPublisher websocket.EventPublisher
}

// NewProjectService creates a new ProjectService
func NewProjectService(yearRepo domain.FiscalYearRepository, projectRepo domain.ProjectRepository, ledgerRepo domain.LedgerRepository, assetRepo domain.AssetRepository) *ProjectService {
	return &ProjectService{
		yearRepo:    yearRepo,
		projectRepo: projectRepo,
		ledgerRepo:  ledgerRepo,
		assetRepo:   assetRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ProjectService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *ProjectService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// ListYears returns every fiscal year, newest first
func (s *ProjectService) ListYears() ([]*domain.FiscalYear, error) {
	return s.yearRepo.GetAll()
}

// AddYear adds a fiscal year. Adding an existing year returns it unchanged.
func (s *ProjectService) AddYear(year string) (*domain.FiscalYear, error) {
	year = strings.TrimSpace(year)
	if _, err := domain.ParseYear(year); err != nil {
		return nil, err
	}

	existing, err := s.yearRepo.GetByID(year)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrYearNotFound) {
		return nil, err
	}

	created, err := s.yearRepo.Create(&domain.FiscalYear{ID: year})
	if err != nil {
		return nil, err
	}

	log.Info().Str("year", year).Msg("Fiscal year added")
	s.publishEvent(websocket.FiscalYearCreated(created))
	return created, nil
}

// DeleteYear removes a year with its projects and everything recorded against them
func (s *ProjectService) DeleteYear(year string) (*CascadeResult, error) {
	if _, err := s.yearRepo.GetByID(year); err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.GetByYear(year)
	if err != nil {
		return nil, err
	}

	result := &CascadeResult{}
	for _, p := range projects {
		entries, assets, err := s.deleteProjectCascade(p.ID)
		if err != nil {
			return nil, fmt.Errorf("delete project %s: %w", p.ID, err)
		}
		result.ProjectsDeleted++
		result.EntriesDeleted += entries
		result.AssetsDeleted += assets
	}

	if err := s.yearRepo.Delete(year); err != nil {
		return nil, err
	}

	log.Info().
		Str("year", year).
		Int("projects", result.ProjectsDeleted).
		Int64("entries", result.EntriesDeleted).
		Int64("assets", result.AssetsDeleted).
		Msg("Fiscal year deleted")

	s.publishEvent(websocket.FiscalYearDeleted(websocket.DeletedPayload{
		ID:            year,
		EntriesCount:  result.EntriesDeleted,
		AssetsCount:   result.AssetsDeleted,
		ProjectsCount: result.ProjectsDeleted,
	}))
	return result, nil
}

// ProjectInput holds the input for creating or updating a project
type ProjectInput struct {
	Name   string
	Type   domain.ProjectType
	YearID string
}

func (s *ProjectService) validate(input ProjectInput) (*domain.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}

	projectType := input.Type
	if projectType == "" {
		projectType = domain.ProjectTypeGeneric
	}
	if !projectType.IsValid() {
		return nil, domain.ErrInvalidProjectType
	}

	yearID := strings.TrimSpace(input.YearID)
	if _, err := domain.ParseYear(yearID); err != nil {
		return nil, err
	}
	if _, err := s.yearRepo.GetByID(yearID); err != nil {
		return nil, err
	}

	return &domain.Project{Name: name, Type: projectType, YearID: yearID}, nil
}

// CreateProject creates a project within an existing year
func (s *ProjectService) CreateProject(input ProjectInput) (*domain.Project, error) {
	project, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	created, err := s.projectRepo.Create(project)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.ProjectCreated(created))
	return created, nil
}

// UpdateProject renames, retypes, or moves a project
func (s *ProjectService) UpdateProject(id string, input ProjectInput) (*domain.Project, error) {
	existing, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	project, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	project.ID = existing.ID
	project.CreatedAt = existing.CreatedAt

	updated, err := s.projectRepo.Update(project)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.ProjectUpdated(updated))
	return updated, nil
}

// GetProject retrieves a project by ID
func (s *ProjectService) GetProject(id string) (*domain.Project, error) {
	return s.projectRepo.GetByID(id)
}

// ListProjects returns the projects of a year, or every project when year is empty
func (s *ProjectService) ListProjects(year string) ([]*domain.Project, error) {
	if year == "" {
		return s.projectRepo.GetAll()
	}
	return s.projectRepo.GetByYear(year)
}

// DeleteProject removes a project with its entries and assets
func (s *ProjectService) DeleteProject(id string) (*CascadeResult, error) {
	if _, err := s.projectRepo.GetByID(id); err != nil {
		return nil, err
	}

	entries, assets, err := s.deleteProjectCascade(id)
	if err != nil {
		return nil, err
	}

	result := &CascadeResult{ProjectsDeleted: 1, EntriesDeleted: entries, AssetsDeleted: assets}
	log.Info().
		Str("project_id", id).
		Int64("entries", entries).
		Int64("assets", assets).
		Msg("Project deleted")

	s.publishEvent(websocket.ProjectDeleted(websocket.DeletedPayload{
		ID:           id,
		EntriesCount: entries,
		AssetsCount:  assets,
	}))
	return result, nil
}

func (s *ProjectService) deleteProjectCascade(id string) (entries, assets int64, err error) {
	entries, err = s.ledgerRepo.DeleteByProject(id)
	if err != nil {
		return 0, 0, err
	}
	assets, err = s.assetRepo.DeleteByProject(id)
	if err != nil {
		return 0, 0, err
	}
	if err := s.projectRepo.Delete(id); err != nil {
		return 0, 0, err
	}
	return entries, assets, nil
}

// ResolveSelection validates a selection and fills in the year implied by a
// selected project
func (s *ProjectService) ResolveSelection(sel domain.Selection) (domain.Selection, error) {
	sel.Year = strings.TrimSpace(sel.Year)
	sel.ProjectID = strings.TrimSpace(sel.ProjectID)

	if sel.ProjectID != "" {
		project, err := s.projectRepo.GetByID(sel.ProjectID)
		if err != nil {
			return domain.Selection{}, err
		}
		sel.Year = project.YearID
		return sel, nil
	}

	if sel.Year != "" {
		if _, err := domain.ParseYear(sel.Year); err != nil {
			return domain.Selection{}, err
		}
	}
	return sel, nil
}

// EnsureGeneralProject returns the year's General project, creating the year
// and the project on demand
func (s *ProjectService) EnsureGeneralProject(year string) (*domain.Project, error) {
	project, err := s.projectRepo.GetByName(year, domain.GeneralProjectName)
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, domain.ErrProjectNotFound) {
		return nil, err
	}

	if _, err := s.AddYear(year); err != nil {
		return nil, err
	}

	created, err := s.projectRepo.Create(&domain.Project{
		Name:   domain.GeneralProjectName,
		Type:   domain.ProjectTypeGeneric,
		YearID: year,
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		// Lost a race with a concurrent request
		return s.projectRepo.GetByName(year, domain.GeneralProjectName)
	}
	if err != nil {
		return nil, err
	}

	log.Debug().Str("year", year).Str("project_id", created.ID).Msg("General project created")
	s.publishEvent(websocket.ProjectCreated(created))
	return created, nil
}
