package service

import (
	"strings"
	"time"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/Mavunaku/cvp3sea/internal/tax"
	"github.com/Mavunaku/cvp3sea/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AssetService handles fixed asset business logic
type AssetService struct {
	assetRepo      domain.AssetRepository
	projectRepo    domain.ProjectRepository
	projects       *ProjectService
	eventPublisher websocket.EventPublisher
}

// NewAssetService creates a new AssetService
func NewAssetService(assetRepo domain.AssetRepository, projectRepo domain.ProjectRepository, projects *ProjectService) *AssetService {
	return &AssetService{
		assetRepo:   assetRepo,
		projectRepo: projectRepo,
		projects:    projects,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *AssetService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *AssetService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// AssetInput holds the input for creating or updating an asset
type AssetInput struct {
	Name                string
	Type                domain.AssetType
	PurchaseDate        time.Time
	Cost                decimal.Decimal
	Land                decimal.Decimal
	BusinessUsePercent  *decimal.Decimal
	UsefulLife          decimal.Decimal
	Section179          bool
	BonusDepreciation   bool
	PriorDepreciation   decimal.Decimal
	CurrentDepreciation *decimal.Decimal
	Method              domain.AssetMethod
	Convention          domain.AssetConvention
	Notes               string
	ProjectID           string
}

func (s *AssetService) validate(input AssetInput) (*domain.Asset, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if input.PurchaseDate.IsZero() {
		return nil, domain.ErrPurchaseDateRequired
	}

	if input.Cost.IsNegative() {
		return nil, domain.ErrInvalidCost
	}
	if input.Land.IsNegative() {
		return nil, domain.ErrInvalidLand
	}

	businessUse := domain.FullBusinessUse
	if input.BusinessUsePercent != nil {
		businessUse = *input.BusinessUsePercent
	}
	if businessUse.IsNegative() || businessUse.GreaterThan(domain.FullBusinessUse) {
		return nil, domain.ErrInvalidBusinessUse
	}

	usefulLife := input.UsefulLife
	if usefulLife.IsZero() {
		usefulLife = domain.DefaultAssetUsefulLife
	}
	if !domain.IsValidUsefulLife(usefulLife) {
		return nil, domain.ErrInvalidUsefulLife
	}

	if input.PriorDepreciation.IsNegative() {
		return nil, domain.ErrInvalidDepreciation
	}
	if input.CurrentDepreciation != nil && input.CurrentDepreciation.IsNegative() {
		return nil, domain.ErrInvalidDepreciation
	}

	if input.Type != "" && !input.Type.IsValid() {
		return nil, domain.ErrInvalidAssetType
	}
	if input.Method != "" && !input.Method.IsValid() {
		return nil, domain.ErrInvalidAssetMethod
	}
	if input.Convention != "" && !input.Convention.IsValid() {
		return nil, domain.ErrInvalidConvention
	}

	projectID := strings.TrimSpace(input.ProjectID)
	if projectID != "" {
		if _, err := s.projectRepo.GetByID(projectID); err != nil {
			return nil, err
		}
	}

	asset := &domain.Asset{
		Name:                name,
		Type:                input.Type,
		PurchaseDate:        input.PurchaseDate,
		Cost:                input.Cost,
		Land:                input.Land,
		BusinessUsePercent:  businessUse,
		UsefulLife:          usefulLife,
		Section179:          input.Section179,
		BonusDepreciation:   input.BonusDepreciation,
		PriorDepreciation:   input.PriorDepreciation,
		CurrentDepreciation: input.CurrentDepreciation,
		Method:              input.Method,
		Convention:          input.Convention,
		Notes:               strings.TrimSpace(input.Notes),
		ProjectID:           projectID,
	}
	asset.Normalize()
	return asset, nil
}

// CreateAsset records a new fixed asset
func (s *AssetService) CreateAsset(input AssetInput) (*domain.Asset, error) {
	asset, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	created, err := s.assetRepo.Create(asset)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("asset_id", created.ID).Str("type", string(created.Type)).Msg("Asset created")
	s.publishEvent(websocket.AssetCreated(created))
	return created, nil
}

// UpdateAsset replaces the editable fields of an asset
func (s *AssetService) UpdateAsset(id string, input AssetInput) (*domain.Asset, error) {
	existing, err := s.assetRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	asset, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	asset.ID = existing.ID
	asset.CreatedAt = existing.CreatedAt

	updated, err := s.assetRepo.Update(asset)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.AssetUpdated(updated))
	return updated, nil
}

// GetAsset retrieves an asset by ID
func (s *AssetService) GetAsset(id string) (*domain.Asset, error) {
	return s.assetRepo.GetByID(id)
}

// ListAssets returns the assets inside a selection, including assets still in
// their recovery window for a selected year
func (s *AssetService) ListAssets(sel domain.Selection) ([]*domain.Asset, error) {
	sel, err := s.projects.ResolveSelection(sel)
	if err != nil {
		return nil, err
	}

	assets, err := s.assetRepo.GetAll()
	if err != nil {
		return nil, err
	}
	if sel.All() {
		return assets, nil
	}

	projects, err := s.projectRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return tax.FilterAssets(assets, projects, sel), nil
}

// DeleteAsset removes an asset
func (s *AssetService) DeleteAsset(id string) error {
	if err := s.assetRepo.Delete(id); err != nil {
		return err
	}

	s.publishEvent(websocket.AssetDeleted(websocket.DeletedPayload{ID: id}))
	return nil
}
