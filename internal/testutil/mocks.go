package testutil

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/Mavunaku/cvp3sea/internal/websocket"
	"github.com/google/uuid"
)

// MockFiscalYearRepository is a mock implementation of domain.FiscalYearRepository
type MockFiscalYearRepository struct {
	Years    map[string]*domain.FiscalYear
	CreateFn func(year *domain.FiscalYear) (*domain.FiscalYear, error)
}

// NewMockFiscalYearRepository creates a new MockFiscalYearRepository
func NewMockFiscalYearRepository() *MockFiscalYearRepository {
	return &MockFiscalYearRepository{
		Years: make(map[string]*domain.FiscalYear),
	}
}

// Create inserts a year, returning the existing one when present
func (m *MockFiscalYearRepository) Create(year *domain.FiscalYear) (*domain.FiscalYear, error) {
	if m.CreateFn != nil {
		return m.CreateFn(year)
	}
	if existing, ok := m.Years[year.ID]; ok {
		return existing, nil
	}
	year.CreatedAt = time.Now()
	m.Years[year.ID] = year
	return year, nil
}

// GetByID retrieves a year
func (m *MockFiscalYearRepository) GetByID(id string) (*domain.FiscalYear, error) {
	if year, ok := m.Years[id]; ok {
		return year, nil
	}
	return nil, domain.ErrYearNotFound
}

// GetAll returns every year, newest first
func (m *MockFiscalYearRepository) GetAll() ([]*domain.FiscalYear, error) {
	result := make([]*domain.FiscalYear, 0, len(m.Years))
	for _, year := range m.Years {
		result = append(result, year)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

// Delete removes a year
func (m *MockFiscalYearRepository) Delete(id string) error {
	if _, ok := m.Years[id]; !ok {
		return domain.ErrYearNotFound
	}
	delete(m.Years, id)
	return nil
}

// AddYear adds a year to the mock repository (helper for tests)
func (m *MockFiscalYearRepository) AddYear(id string) *domain.FiscalYear {
	year := &domain.FiscalYear{ID: id, CreatedAt: time.Now()}
	m.Years[id] = year
	return year
}

// MockProjectRepository is a mock implementation of domain.ProjectRepository
type MockProjectRepository struct {
	Projects map[string]*domain.Project
	Years    *MockFiscalYearRepository
	CreateFn func(project *domain.Project) (*domain.Project, error)
}

// NewMockProjectRepository creates a new MockProjectRepository. When years is
// non-nil, Create and Update enforce the year foreign key.
func NewMockProjectRepository(years *MockFiscalYearRepository) *MockProjectRepository {
	return &MockProjectRepository{
		Projects: make(map[string]*domain.Project),
		Years:    years,
	}
}

func (m *MockProjectRepository) checkConstraints(project *domain.Project) error {
	if m.Years != nil {
		if _, ok := m.Years.Years[project.YearID]; !ok {
			return domain.ErrYearNotFound
		}
	}
	for _, p := range m.Projects {
		if p.ID != project.ID && p.YearID == project.YearID && p.Name == project.Name {
			return domain.ErrAlreadyExists
		}
	}
	return nil
}

// Create inserts a project
func (m *MockProjectRepository) Create(project *domain.Project) (*domain.Project, error) {
	if m.CreateFn != nil {
		return m.CreateFn(project)
	}
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	if err := m.checkConstraints(project); err != nil {
		return nil, err
	}
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	m.Projects[project.ID] = project
	return project, nil
}

// GetByID retrieves a project
func (m *MockProjectRepository) GetByID(id string) (*domain.Project, error) {
	if project, ok := m.Projects[id]; ok {
		return project, nil
	}
	return nil, domain.ErrProjectNotFound
}

// GetByName retrieves a project by name within a year
func (m *MockProjectRepository) GetByName(yearID, name string) (*domain.Project, error) {
	for _, p := range m.Projects {
		if p.YearID == yearID && p.Name == name {
			return p, nil
		}
	}
	return nil, domain.ErrProjectNotFound
}

// GetAll returns every project ordered by year desc then name
func (m *MockProjectRepository) GetAll() ([]*domain.Project, error) {
	return m.filter(func(*domain.Project) bool { return true }), nil
}

// GetByYear returns the projects of a year ordered by name
func (m *MockProjectRepository) GetByYear(yearID string) ([]*domain.Project, error) {
	return m.filter(func(p *domain.Project) bool { return p.YearID == yearID }), nil
}

func (m *MockProjectRepository) filter(keep func(*domain.Project) bool) []*domain.Project {
	result := make([]*domain.Project, 0)
	for _, p := range m.Projects {
		if keep(p) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].YearID != result[j].YearID {
			return result[i].YearID > result[j].YearID
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// Update updates a project
func (m *MockProjectRepository) Update(project *domain.Project) (*domain.Project, error) {
	if _, ok := m.Projects[project.ID]; !ok {
		return nil, domain.ErrProjectNotFound
	}
	if err := m.checkConstraints(project); err != nil {
		return nil, err
	}
	project.UpdatedAt = time.Now()
	m.Projects[project.ID] = project
	return project, nil
}

// Delete removes a project
func (m *MockProjectRepository) Delete(id string) error {
	if _, ok := m.Projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(m.Projects, id)
	return nil
}

// AddProject adds a project to the mock repository (helper for tests)
func (m *MockProjectRepository) AddProject(project *domain.Project) *domain.Project {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	m.Projects[project.ID] = project
	return project
}

// MockLedgerRepository is a mock implementation of domain.LedgerRepository
type MockLedgerRepository struct {
	Entries  map[string]*domain.LedgerEntry
	Projects *MockProjectRepository
	CreateFn func(entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	GetAllFn func() ([]*domain.LedgerEntry, error)
}

// NewMockLedgerRepository creates a new MockLedgerRepository. When projects is
// non-nil, Create and Update enforce the project foreign key.
func NewMockLedgerRepository(projects *MockProjectRepository) *MockLedgerRepository {
	return &MockLedgerRepository{
		Entries:  make(map[string]*domain.LedgerEntry),
		Projects: projects,
	}
}

func (m *MockLedgerRepository) checkProject(projectID string) error {
	if projectID == "" || m.Projects == nil {
		return nil
	}
	if _, ok := m.Projects.Projects[projectID]; !ok {
		return domain.ErrProjectNotFound
	}
	return nil
}

// Create inserts an entry
func (m *MockLedgerRepository) Create(entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if m.CreateFn != nil {
		return m.CreateFn(entry)
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if _, exists := m.Entries[entry.ID]; exists {
		return nil, domain.ErrAlreadyExists
	}
	if err := m.checkProject(entry.ProjectID); err != nil {
		return nil, err
	}
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	m.Entries[entry.ID] = entry
	return entry, nil
}

// GetByID retrieves an entry
func (m *MockLedgerRepository) GetByID(id string) (*domain.LedgerEntry, error) {
	if entry, ok := m.Entries[id]; ok {
		return entry, nil
	}
	return nil, domain.ErrEntryNotFound
}

// GetAll returns every entry, newest date first
func (m *MockLedgerRepository) GetAll() ([]*domain.LedgerEntry, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn()
	}
	result := make([]*domain.LedgerEntry, 0, len(m.Entries))
	for _, entry := range m.Entries {
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Update updates an entry
func (m *MockLedgerRepository) Update(entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if _, ok := m.Entries[entry.ID]; !ok {
		return nil, domain.ErrEntryNotFound
	}
	if err := m.checkProject(entry.ProjectID); err != nil {
		return nil, err
	}
	entry.UpdatedAt = time.Now()
	m.Entries[entry.ID] = entry
	return entry, nil
}

// Delete removes an entry
func (m *MockLedgerRepository) Delete(id string) error {
	if _, ok := m.Entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(m.Entries, id)
	return nil
}

// DeleteByProject removes every entry of a project
func (m *MockLedgerRepository) DeleteByProject(projectID string) (int64, error) {
	var count int64
	for id, entry := range m.Entries {
		if entry.ProjectID == projectID {
			delete(m.Entries, id)
			count++
		}
	}
	return count, nil
}

// SetNYSource sets the NY-source flag on the given entries
func (m *MockLedgerRepository) SetNYSource(ids []string, enabled bool) (int64, error) {
	var count int64
	for _, id := range ids {
		if entry, ok := m.Entries[id]; ok {
			entry.NYSource = enabled
			count++
		}
	}
	return count, nil
}

// SetReceiptKey sets or clears the receipt key of an entry
func (m *MockLedgerRepository) SetReceiptKey(id string, key *string) error {
	entry, ok := m.Entries[id]
	if !ok {
		return domain.ErrEntryNotFound
	}
	entry.ReceiptKey = key
	return nil
}

// AddEntry adds an entry to the mock repository (helper for tests)
func (m *MockLedgerRepository) AddEntry(entry *domain.LedgerEntry) *domain.LedgerEntry {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.Normalize()
	m.Entries[entry.ID] = entry
	return entry
}

// MockAssetRepository is a mock implementation of domain.AssetRepository
type MockAssetRepository struct {
	Assets   map[string]*domain.Asset
	Projects *MockProjectRepository
	GetAllFn func() ([]*domain.Asset, error)
}

// NewMockAssetRepository creates a new MockAssetRepository
func NewMockAssetRepository(projects *MockProjectRepository) *MockAssetRepository {
	return &MockAssetRepository{
		Assets:   make(map[string]*domain.Asset),
		Projects: projects,
	}
}

func (m *MockAssetRepository) checkProject(projectID string) error {
	if projectID == "" || m.Projects == nil {
		return nil
	}
	if _, ok := m.Projects.Projects[projectID]; !ok {
		return domain.ErrProjectNotFound
	}
	return nil
}

// Create inserts an asset
func (m *MockAssetRepository) Create(asset *domain.Asset) (*domain.Asset, error) {
	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}
	if _, exists := m.Assets[asset.ID]; exists {
		return nil, domain.ErrAlreadyExists
	}
	if err := m.checkProject(asset.ProjectID); err != nil {
		return nil, err
	}
	asset.CreatedAt = time.Now()
	asset.UpdatedAt = asset.CreatedAt
	m.Assets[asset.ID] = asset
	return asset, nil
}

// GetByID retrieves an asset
func (m *MockAssetRepository) GetByID(id string) (*domain.Asset, error) {
	if asset, ok := m.Assets[id]; ok {
		return asset, nil
	}
	return nil, domain.ErrAssetNotFound
}

// GetAll returns every asset ordered by purchase date
func (m *MockAssetRepository) GetAll() ([]*domain.Asset, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn()
	}
	result := make([]*domain.Asset, 0, len(m.Assets))
	for _, asset := range m.Assets {
		result = append(result, asset)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].PurchaseDate.Equal(result[j].PurchaseDate) {
			return result[i].PurchaseDate.Before(result[j].PurchaseDate)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Update updates an asset
func (m *MockAssetRepository) Update(asset *domain.Asset) (*domain.Asset, error) {
	if _, ok := m.Assets[asset.ID]; !ok {
		return nil, domain.ErrAssetNotFound
	}
	if err := m.checkProject(asset.ProjectID); err != nil {
		return nil, err
	}
	asset.UpdatedAt = time.Now()
	m.Assets[asset.ID] = asset
	return asset, nil
}

// Delete removes an asset
func (m *MockAssetRepository) Delete(id string) error {
	if _, ok := m.Assets[id]; !ok {
		return domain.ErrAssetNotFound
	}
	delete(m.Assets, id)
	return nil
}

// DeleteByProject removes every asset of a project
func (m *MockAssetRepository) DeleteByProject(projectID string) (int64, error) {
	var count int64
	for id, asset := range m.Assets {
		if asset.ProjectID == projectID {
			delete(m.Assets, id)
			count++
		}
	}
	return count, nil
}

// AddAsset adds an asset to the mock repository (helper for tests)
func (m *MockAssetRepository) AddAsset(asset *domain.Asset) *domain.Asset {
	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}
	asset.Normalize()
	m.Assets[asset.ID] = asset
	return asset
}

// StoredObject is a receipt held by MockReceiptStore
type StoredObject struct {
	Data        []byte
	ContentType string
}

// MockReceiptStore is an in-memory storage.ReceiptStore
type MockReceiptStore struct {
	Objects  map[string]StoredObject
	UploadFn func(key string) error
	mu       sync.Mutex
}

// NewMockReceiptStore creates a new MockReceiptStore
func NewMockReceiptStore() *MockReceiptStore {
	return &MockReceiptStore{
		Objects: make(map[string]StoredObject),
	}
}

// Upload stores the object in memory
func (m *MockReceiptStore) Upload(ctx context.Context, key string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadFn != nil {
		if err := m.UploadFn(key); err != nil {
			return "", err
		}
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = StoredObject{Data: body, ContentType: contentType}
	return key, nil
}

// Delete removes the object
func (m *MockReceiptStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	return nil
}

// PresignedURL returns a fake signed URL
func (m *MockReceiptStore) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Objects[key]; !ok {
		return "", fmt.Errorf("object %s not found", key)
	}
	return fmt.Sprintf("https://receipts.example.com/%s?expires=%d", key, int(expiry.Seconds())), nil
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	Events []websocket.Event
	mu     sync.Mutex
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// Types returns the type of every recorded event in order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Type
	}
	return types
}
