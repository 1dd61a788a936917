package handler

import (
	"net/http"
	"time"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/Mavunaku/cvp3sea/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AssetHandler handles fixed asset HTTP requests
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// AssetRequest represents the create and update asset request body
type AssetRequest struct {
	Name                string  `json:"name"`
	Type                string  `json:"type,omitempty"`
	PurchaseDate        string  `json:"purchaseDate"`
	Cost                string  `json:"cost"`
	Land                *string `json:"land,omitempty"`
	BusinessUsePercent  *string `json:"businessUsePercent,omitempty"`
	UsefulLife          *string `json:"usefulLife,omitempty"`
	Section179          bool    `json:"section179"`
	BonusDepreciation   bool    `json:"bonusDepreciation"`
	PriorDepreciation   *string `json:"priorDepreciation,omitempty"`
	CurrentDepreciation *string `json:"currentDepreciation,omitempty"`
	Method              string  `json:"method,omitempty"`
	Convention          string  `json:"convention,omitempty"`
	Notes               string  `json:"notes,omitempty"`
	ProjectID           string  `json:"projectId,omitempty"`
}

// AssetResponse represents an asset in API responses
type AssetResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Type                string  `json:"type"`
	PurchaseDate        string  `json:"purchaseDate"`
	Cost                string  `json:"cost"`
	Land                string  `json:"land"`
	BusinessUsePercent  string  `json:"businessUsePercent"`
	UsefulLife          string  `json:"usefulLife"`
	Section179          bool    `json:"section179"`
	BonusDepreciation   bool    `json:"bonusDepreciation"`
	PriorDepreciation   string  `json:"priorDepreciation"`
	CurrentDepreciation *string `json:"currentDepreciation,omitempty"`
	Method              string  `json:"method"`
	Convention          string  `json:"convention"`
	Notes               string  `json:"notes,omitempty"`
	ProjectID           string  `json:"projectId,omitempty"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

func toAssetResponse(a *domain.Asset) AssetResponse {
	return AssetResponse{
		ID:                  a.ID,
		Name:                a.Name,
		Type:                string(a.Type),
		PurchaseDate:        formatDate(a.PurchaseDate),
		Cost:                formatMoney(a.Cost),
		Land:                formatMoney(a.Land),
		BusinessUsePercent:  a.BusinessUsePercent.String(),
		UsefulLife:          a.UsefulLife.String(),
		Section179:          a.Section179,
		BonusDepreciation:   a.BonusDepreciation,
		PriorDepreciation:   formatMoney(a.PriorDepreciation),
		CurrentDepreciation: formatOptionalMoney(a.CurrentDepreciation),
		Method:              string(a.Method),
		Convention:          string(a.Convention),
		Notes:               a.Notes,
		ProjectID:           a.ProjectID,
		CreatedAt:           a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           a.UpdatedAt.Format(time.RFC3339),
	}
}

func parseAssetRequest(req AssetRequest) (service.AssetInput, []ValidationError) {
	var p fieldParser
	input := service.AssetInput{
		Name:                req.Name,
		Type:                domain.AssetType(req.Type),
		PurchaseDate:        p.date("purchaseDate", req.PurchaseDate),
		Cost:                p.decimal("cost", req.Cost),
		Land:                p.decimalOrZero("land", req.Land),
		BusinessUsePercent:  p.optionalDecimal("businessUsePercent", req.BusinessUsePercent),
		UsefulLife:          p.decimalOrZero("usefulLife", req.UsefulLife),
		Section179:          req.Section179,
		BonusDepreciation:   req.BonusDepreciation,
		PriorDepreciation:   p.decimalOrZero("priorDepreciation", req.PriorDepreciation),
		CurrentDepreciation: p.optionalDecimal("currentDepreciation", req.CurrentDepreciation),
		Method:              domain.AssetMethod(req.Method),
		Convention:          domain.AssetConvention(req.Convention),
		Notes:               req.Notes,
		ProjectID:           req.ProjectID,
	}
	return input, p.errors
}

// CreateAsset godoc
// @Summary Create a fixed asset
// @Tags assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AssetRequest true "Asset"
// @Success 201 {object} AssetResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /assets [post]
func (h *AssetHandler) CreateAsset(c echo.Context) error {
	var req AssetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, fieldErrs := parseAssetRequest(req)
	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Validation failed", fieldErrs)
	}

	asset, err := h.assetService.CreateAsset(input)
	if err != nil {
		return handleDomainError(c, err, "create asset")
	}
	return c.JSON(http.StatusCreated, toAssetResponse(asset))
}

// GetAssets godoc
// @Summary List fixed assets
// @Description A year selection includes assets still depreciating in that year
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param year query string false "Fiscal year"
// @Param projectId query string false "Project ID"
// @Success 200 {array} AssetResponse
// @Failure 400 {object} ProblemDetails
// @Router /assets [get]
func (h *AssetHandler) GetAssets(c echo.Context) error {
	assets, err := h.assetService.ListAssets(selectionFromQuery(c))
	if err != nil {
		return handleDomainError(c, err, "list assets")
	}

	response := make([]AssetResponse, len(assets))
	for i, a := range assets {
		response[i] = toAssetResponse(a)
	}
	return c.JSON(http.StatusOK, response)
}

// GetAsset godoc
// @Summary Get a fixed asset
// @Tags assets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Asset ID"
// @Success 200 {object} AssetResponse
// @Failure 404 {object} ProblemDetails
// @Router /assets/{id} [get]
func (h *AssetHandler) GetAsset(c echo.Context) error {
	asset, err := h.assetService.GetAsset(c.Param("id"))
	if err != nil {
		return handleDomainError(c, err, "get asset")
	}
	return c.JSON(http.StatusOK, toAssetResponse(asset))
}

// UpdateAsset godoc
// @Summary Update a fixed asset
// @Tags assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Asset ID"
// @Param request body AssetRequest true "Asset"
// @Success 200 {object} AssetResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c echo.Context) error {
	var req AssetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input, fieldErrs := parseAssetRequest(req)
	if len(fieldErrs) > 0 {
		return NewValidationError(c, "Validation failed", fieldErrs)
	}

	asset, err := h.assetService.UpdateAsset(c.Param("id"), input)
	if err != nil {
		return handleDomainError(c, err, "update asset")
	}
	return c.JSON(http.StatusOK, toAssetResponse(asset))
}

// DeleteAsset godoc
// @Summary Delete a fixed asset
// @Tags assets
// @Security BearerAuth
// @Param id path string true "Asset ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c echo.Context) error {
	id := c.Param("id")
	if err := h.assetService.DeleteAsset(id); err != nil {
		return handleDomainError(c, err, "delete asset")
	}

	log.Info().Str("asset_id", id).Msg("Asset deleted")
	return c.NoContent(http.StatusNoContent)
}
