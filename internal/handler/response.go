package handler

import (
	"errors"
	"net/http"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation  = "https://cvp3sea.app/errors/validation"
	ErrorTypeNotFound    = "https://cvp3sea.app/errors/not-found"
	ErrorTypeConflict    = "https://cvp3sea.app/errors/conflict"
	ErrorTypeInternal    = "https://cvp3sea.app/errors/internal"
	ErrorTypeUnavailable = "https://cvp3sea.app/errors/service-unavailable"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewServiceUnavailableError creates a service unavailable error response
func NewServiceUnavailableError(c echo.Context, detail string) error {
	return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
		Type:     ErrorTypeUnavailable,
		Title:    "Service Unavailable",
		Status:   http.StatusServiceUnavailable,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// handleDomainError maps domain sentinel errors onto problem responses.
// Anything unrecognized is logged and reported as an internal error.
func handleDomainError(c echo.Context, err error, action string) error {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound):
		return NewNotFoundError(c, "Ledger entry not found")
	case errors.Is(err, domain.ErrAssetNotFound):
		return NewNotFoundError(c, "Asset not found")
	case errors.Is(err, domain.ErrProjectNotFound):
		return NewNotFoundError(c, "Project not found")
	case errors.Is(err, domain.ErrYearNotFound):
		return NewNotFoundError(c, "Fiscal year not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		return NewConflictError(c, "A record with the same name already exists")
	}

	if field, ok := fieldErrors[rootError(err)]; ok {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: field, Message: err.Error()},
		})
	}

	log.Error().Err(err).Str("action", action).Msg("Request failed")
	return NewInternalError(c, "Failed to "+action)
}

// fieldErrors maps validation sentinels to the request field they describe
var fieldErrors = map[error]string{
	domain.ErrInvalidAmount:          "amount",
	domain.ErrInvalidEntryType:       "type",
	domain.ErrInvalidPillar:          "pillar",
	domain.ErrInvalidInterest:        "interest",
	domain.ErrInvalidCapitalizeLife:  "capitalizeUsefulLife",
	domain.ErrInvalidEntryStatus:     "status",
	domain.ErrDescriptionTooLong:     "description",
	domain.ErrEntryIDsRequired:       "ids",
	domain.ErrReceiptRequiresExpense: "id",
	domain.ErrInvalidCost:            "cost",
	domain.ErrInvalidLand:            "land",
	domain.ErrInvalidBusinessUse:     "businessUsePercent",
	domain.ErrInvalidUsefulLife:      "usefulLife",
	domain.ErrInvalidDepreciation:    "priorDepreciation",
	domain.ErrInvalidAssetType:       "type",
	domain.ErrInvalidAssetMethod:     "method",
	domain.ErrInvalidConvention:      "convention",
	domain.ErrPurchaseDateRequired:   "purchaseDate",
	domain.ErrInvalidYear:            "year",
	domain.ErrInvalidProjectType:     "type",
	domain.ErrNameRequired:           "name",
	domain.ErrNameTooLong:            "name",
}

// rootError returns the first error in the chain that is a known validation sentinel
func rootError(err error) error {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if _, ok := fieldErrors[e]; ok {
			return e
		}
	}
	return err
}
