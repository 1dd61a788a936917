package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/Mavunaku/cvp3sea/internal/service"
	"github.com/labstack/echo/v4"
)

// ProjectHandler handles fiscal year and project HTTP requests
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// YearRequest represents the add fiscal year request body
type YearRequest struct {
	Year string `json:"year"`
}

// YearResponse represents a fiscal year in API responses
type YearResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
}

// ProjectRequest represents the create and update project request body
type ProjectRequest struct {
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	YearID string `json:"yearId"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	YearID    string `json:"yearId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CascadeResponse reports the records removed by a cascading delete
type CascadeResponse struct {
	ProjectsDeleted int   `json:"projectsDeleted"`
	EntriesDeleted  int64 `json:"entriesDeleted"`
	AssetsDeleted   int64 `json:"assetsDeleted"`
}

func toYearResponse(y *domain.FiscalYear) YearResponse {
	return YearResponse{ID: y.ID, CreatedAt: y.CreatedAt.Format(time.RFC3339)}
}

func toProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		Type:      string(p.Type),
		YearID:    p.YearID,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

func toCascadeResponse(r *service.CascadeResult) CascadeResponse {
	return CascadeResponse{
		ProjectsDeleted: r.ProjectsDeleted,
		EntriesDeleted:  r.EntriesDeleted,
		AssetsDeleted:   r.AssetsDeleted,
	}
}

// GetYears godoc
// @Summary List fiscal years
// @Tags years
// @Produce json
// @Security BearerAuth
// @Success 200 {array} YearResponse
// @Router /years [get]
func (h *ProjectHandler) GetYears(c echo.Context) error {
	years, err := h.projectService.ListYears()
	if err != nil {
		return handleDomainError(c, err, "list fiscal years")
	}

	response := make([]YearResponse, len(years))
	for i, y := range years {
		response[i] = toYearResponse(y)
	}
	return c.JSON(http.StatusOK, response)
}

// CreateYear godoc
// @Summary Add a fiscal year
// @Description Adding a year that already exists returns it unchanged
// @Tags years
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body YearRequest true "Year"
// @Success 201 {object} YearResponse
// @Failure 400 {object} ProblemDetails
// @Router /years [post]
func (h *ProjectHandler) CreateYear(c echo.Context) error {
	var req YearRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	year, err := h.projectService.AddYear(req.Year)
	if err != nil {
		return handleDomainError(c, err, "add fiscal year")
	}
	return c.JSON(http.StatusCreated, toYearResponse(year))
}

// DeleteYear godoc
// @Summary Delete a fiscal year
// @Description Removes the year with its projects, entries and assets
// @Tags years
// @Produce json
// @Security BearerAuth
// @Param year path string true "Year"
// @Success 200 {object} CascadeResponse
// @Failure 404 {object} ProblemDetails
// @Router /years/{year} [delete]
func (h *ProjectHandler) DeleteYear(c echo.Context) error {
	result, err := h.projectService.DeleteYear(strings.TrimSpace(c.Param("year")))
	if err != nil {
		return handleDomainError(c, err, "delete fiscal year")
	}
	return c.JSON(http.StatusOK, toCascadeResponse(result))
}

// GetProjects godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param year query string false "Fiscal year"
// @Success 200 {array} ProjectResponse
// @Failure 400 {object} ProblemDetails
// @Router /projects [get]
func (h *ProjectHandler) GetProjects(c echo.Context) error {
	year := strings.TrimSpace(c.QueryParam("year"))
	if year != "" {
		if _, err := domain.ParseYear(year); err != nil {
			return handleDomainError(c, err, "list projects")
		}
	}

	projects, err := h.projectService.ListProjects(year)
	if err != nil {
		return handleDomainError(c, err, "list projects")
	}

	response := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		response[i] = toProjectResponse(p)
	}
	return c.JSON(http.StatusOK, response)
}

// CreateProject godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProjectRequest true "Project"
// @Success 201 {object} ProjectResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req ProjectRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	project, err := h.projectService.CreateProject(service.ProjectInput{
		Name:   req.Name,
		Type:   domain.ProjectType(req.Type),
		YearID: req.YearID,
	})
	if err != nil {
		return handleDomainError(c, err, "create project")
	}
	return c.JSON(http.StatusCreated, toProjectResponse(project))
}

// GetProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} ProjectResponse
// @Failure 404 {object} ProblemDetails
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c echo.Context) error {
	project, err := h.projectService.GetProject(c.Param("id"))
	if err != nil {
		return handleDomainError(c, err, "get project")
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body ProjectRequest true "Project"
// @Success 200 {object} ProjectResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	var req ProjectRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	project, err := h.projectService.UpdateProject(c.Param("id"), service.ProjectInput{
		Name:   req.Name,
		Type:   domain.ProjectType(req.Type),
		YearID: req.YearID,
	})
	if err != nil {
		return handleDomainError(c, err, "update project")
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// DeleteProject godoc
// @Summary Delete a project
// @Description Removes the project with its entries and assets
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} CascadeResponse
// @Failure 404 {object} ProblemDetails
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	result, err := h.projectService.DeleteProject(c.Param("id"))
	if err != nil {
		return handleDomainError(c, err, "delete project")
	}
	return c.JSON(http.StatusOK, toCascadeResponse(result))
}
