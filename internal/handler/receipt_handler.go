package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/Mavunaku/cvp3sea/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ReceiptHandler handles receipt uploads for ledger entries
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// ReceiptURLResponse holds a short-lived download link
type ReceiptURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"`
}

// UploadReceipt godoc
// @Summary Attach a receipt to an expense
// @Description Upload a JPEG, PNG or PDF receipt. Images are resized and stored as JPEG.
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param file formData file true "Receipt file"
// @Success 200 {object} EntryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /ledger/{id}/receipt [post]
func (h *ReceiptHandler) UploadReceipt(c echo.Context) error {
	if !h.receiptService.IsEnabled() {
		return NewServiceUnavailableError(c, "Receipt uploads are disabled (storage not configured)")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}
	if file.Size > service.MaxReceiptSize {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "file", Message: service.ErrReceiptTooLarge.Error()},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded receipt")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, service.MaxReceiptSize+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded receipt")
		return NewInternalError(c, "Failed to read file")
	}

	entry, err := h.receiptService.Upload(c.Request().Context(), c.Param("id"), data, file.Filename)
	if err != nil {
		return h.receiptError(c, err, "upload receipt")
	}
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// GetReceipt godoc
// @Summary Get a receipt download link
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} ReceiptURLResponse
// @Failure 404 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /ledger/{id}/receipt [get]
func (h *ReceiptHandler) GetReceipt(c echo.Context) error {
	url, err := h.receiptService.DownloadURL(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.receiptError(c, err, "get receipt")
	}
	return c.JSON(http.StatusOK, ReceiptURLResponse{
		URL:       url,
		ExpiresIn: int(service.ReceiptURLExpiry.Seconds()),
	})
}

// DeleteReceipt godoc
// @Summary Remove a receipt
// @Tags receipts
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /ledger/{id}/receipt [delete]
func (h *ReceiptHandler) DeleteReceipt(c echo.Context) error {
	if err := h.receiptService.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return h.receiptError(c, err, "delete receipt")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ReceiptHandler) receiptError(c echo.Context, err error, action string) error {
	switch {
	case errors.Is(err, service.ErrReceiptStorageNotConfigured):
		return NewServiceUnavailableError(c, "Receipt uploads are disabled (storage not configured)")
	case errors.Is(err, service.ErrReceiptNotFound):
		return NewNotFoundError(c, "Receipt not found")
	case errors.Is(err, service.ErrReceiptTooLarge),
		errors.Is(err, service.ErrInvalidReceiptFormat),
		errors.Is(err, service.ErrInvalidReceiptData):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "file", Message: err.Error()},
		})
	}
	return handleDomainError(c, err, action)
}
