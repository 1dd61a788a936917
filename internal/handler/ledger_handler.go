package handler

import (
	"net/http"
	"time"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/Mavunaku/cvp3sea/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// LedgerHandler handles ledger entry HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// EntryRequest represents the create and update ledger entry request body
type EntryRequest struct {
	Date                 string  `json:"date"`
	Amount               string  `json:"amount"`
	Type                 string  `json:"type"`
	Description          string  `json:"description"`
	Category             string  `json:"category"`
	Pillar               string  `json:"pillar,omitempty"`
	Interest             *string `json:"interest,omitempty"`
	Capitalize           bool    `json:"capitalize"`
	CapitalizeUsefulLife *string `json:"capitalizeUsefulLife,omitempty"`
	NYSource             *bool   `json:"nySource,omitempty"`
	Status               string  `json:"status,omitempty"`
	ProjectID            string  `json:"projectId,omitempty"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID                   string  `json:"id"`
	Date                 string  `json:"date"`
	Amount               string  `json:"amount"`
	Type                 string  `json:"type"`
	Description          string  `json:"description"`
	Category             string  `json:"category"`
	Pillar               string  `json:"pillar,omitempty"`
	Interest             *string `json:"interest,omitempty"`
	Capitalize           bool    `json:"capitalize"`
	CapitalizeUsefulLife string  `json:"capitalizeUsefulLife"`
	NYSource             bool    `json:"nySource"`
	Status               string  `json:"status"`
	ProjectID            string  `json:"projectId,omitempty"`
	ReceiptAvailable     bool    `json:"receiptAvailable"`
	CreatedAt            string  `json:"createdAt"`
	UpdatedAt            string  `json:"updatedAt"`
}

// NYSourceRequest represents the bulk NY-source toggle request body
type NYSourceRequest struct {
	IDs      []string `json:"ids"`
	NYSource bool     `json:"nySource"`
}

// NYSourceResponse reports how many entries were updated
type NYSourceResponse struct {
	Updated int64 `json:"updated"`
}

func toEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		ID:                   e.ID,
		Date:                 formatDate(e.Date),
		Amount:               formatMoney(e.Amount),
		Type:                 string(e.Type),
		Description:          e.Description,
		Category:             e.Category,
		Pillar:               string(e.Pillar),
		Interest:             formatOptionalMoney(e.Interest),
		Capitalize:           e.Capitalize,
		CapitalizeUsefulLife: e.CapitalizeUsefulLife.String(),
		NYSource:             e.NYSource,
		Status:               string(e.Status),
		ProjectID:            e.ProjectID,
		ReceiptAvailable:     e.HasReceipt(),
		CreatedAt:            e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            e.UpdatedAt.Format(time.RFC3339),
	}
}

func toEntryResponses(entries []*domain.LedgerEntry) []EntryResponse {
	result := make([]EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = toEntryResponse(e)
	}
	return result
}

// parseEntryRequest converts a request body into service input
func parseEntryRequest(req EntryRequest) (service.EntryInput, []ValidationError) {
	var p fieldParser
	input := service.EntryInput{
		Date:                 p.date("date", req.Date),
		Amount:               p.decimal("amount", req.Amount),
		Type:                 domain.EntryType(req.Type),
		Description:          req.Description,
		Category:             req.Category,
		Pillar:               domain.Pillar(req.Pillar),
		Interest:             p.optionalDecimal("interest", req.Interest),
		Capitalize:           req.Capitalize,
		CapitalizeUsefulLife: p.decimalOrZero("capitalizeUsefulLife", req.CapitalizeUsefulLife),
		NYSource:             req.NYSource,
		Status:               domain.EntryStatus(req.Status),
		ProjectID:            req.ProjectID,
	}
	return input, p.errors
}

// CreateEntry godoc
// @Summary Create a ledger entry
// @Description Record an income or expense. Entries without a project join the General project of the active year.
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param year query string false "Active fiscal year"
// @Param request body EntryRequest true "Ledger entry"
// @Success 201 {object} EntryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /ledger [post]
func (h *LedgerHandler) CreateEntry(c echo.Context) error {
	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, fieldErrs := parseEntryRequest(req)
	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Validation failed", fieldErrs)
	}

	entry, err := h.ledgerService.CreateEntry(input, c.QueryParam("year"))
	if err != nil {
		return handleDomainError(c, err, "create ledger entry")
	}

	return c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// GetEntries godoc
// @Summary List ledger entries
// @Description List entries in the selected project, fiscal year, or everything
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param year query string false "Fiscal year"
// @Param projectId query string false "Project ID"
// @Success 200 {array} EntryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /ledger [get]
func (h *LedgerHandler) GetEntries(c echo.Context) error {
	entries, err := h.ledgerService.ListEntries(selectionFromQuery(c))
	if err != nil {
		return handleDomainError(c, err, "list ledger entries")
	}
	return c.JSON(http.StatusOK, toEntryResponses(entries))
}

// GetEntry godoc
// @Summary Get a ledger entry
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} EntryResponse
// @Failure 404 {object} ProblemDetails
// @Router /ledger/{id} [get]
func (h *LedgerHandler) GetEntry(c echo.Context) error {
	entry, err := h.ledgerService.GetEntry(c.Param("id"))
	if err != nil {
		return handleDomainError(c, err, "get ledger entry")
	}
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// UpdateEntry godoc
// @Summary Update a ledger entry
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param request body EntryRequest true "Ledger entry"
// @Success 200 {object} EntryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /ledger/{id} [put]
func (h *LedgerHandler) UpdateEntry(c echo.Context) error {
	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, fieldErrs := parseEntryRequest(req)
	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Validation failed", fieldErrs)
	}

	entry, err := h.ledgerService.UpdateEntry(c.Param("id"), input)
	if err != nil {
		return handleDomainError(c, err, "update ledger entry")
	}
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// DeleteEntry godoc
// @Summary Delete a ledger entry
// @Tags ledger
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /ledger/{id} [delete]
func (h *LedgerHandler) DeleteEntry(c echo.Context) error {
	id := c.Param("id")
	if err := h.ledgerService.DeleteEntry(c.Request().Context(), id); err != nil {
		return handleDomainError(c, err, "delete ledger entry")
	}

	log.Info().Str("entry_id", id).Msg("Ledger entry deleted")
	return c.NoContent(http.StatusNoContent)
}

// SetNYSource godoc
// @Summary Flag entries as New York source
// @Description Set or clear the NY-source flag on many entries at once
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NYSourceRequest true "Entry IDs and flag"
// @Success 200 {object} NYSourceResponse
// @Failure 400 {object} ProblemDetails
// @Router /ledger/ny-source [patch]
func (h *LedgerHandler) SetNYSource(c echo.Context) error {
	var req NYSourceRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	updated, err := h.ledgerService.SetNYSource(req.IDs, req.NYSource)
	if err != nil {
		return handleDomainError(c, err, "update NY source flags")
	}
	return c.JSON(http.StatusOK, NYSourceResponse{Updated: updated})
}
