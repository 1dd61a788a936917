package domain

import (
	"strconv"
	"time"
)

// GeneralProjectName is the project that collects entries created without a project
const GeneralProjectName = "General"

// ProjectType represents the kind of work a project tracks
type ProjectType string

const (
	ProjectTypeProperty ProjectType = "Property"
	ProjectTypeClient   ProjectType = "Client"
	ProjectTypeGeneric  ProjectType = "Generic"
)

// IsValid reports whether t is a known project type
func (t ProjectType) IsValid() bool {
	switch t {
	case ProjectTypeProperty, ProjectTypeClient, ProjectTypeGeneric:
		return true
	}
	return false
}

// FiscalYear is a tax year; its ID is the four digit year string
type FiscalYear struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// ParseYear parses a four digit year string
func ParseYear(year string) (int, error) {
	if len(year) != 4 {
		return 0, ErrInvalidYear
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < 1900 || y > 2999 {
		return 0, ErrInvalidYear
	}
	return y, nil
}

// Project is a rental property, client, or generic bucket within a fiscal year
type Project struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Type      ProjectType `json:"type"`
	YearID    string      `json:"yearId"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Selection scopes computations to a project, a fiscal year, or everything.
// Empty fields mean no selection.
type Selection struct {
	Year      string `json:"year,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
}

// All reports whether the selection is unscoped
func (s Selection) All() bool {
	return s.Year == "" && s.ProjectID == ""
}

// FiscalYearRepository defines the interface for fiscal year persistence
type FiscalYearRepository interface {
	Create(year *FiscalYear) (*FiscalYear, error)
	GetByID(id string) (*FiscalYear, error)
	GetAll() ([]*FiscalYear, error)
	Delete(id string) error
}

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	Create(project *Project) (*Project, error)
	GetByID(id string) (*Project, error)
	GetAll() ([]*Project, error)
	GetByYear(yearID string) ([]*Project, error)
	GetByName(yearID, name string) (*Project, error)
	Update(project *Project) (*Project, error)
	Delete(id string) error
}
