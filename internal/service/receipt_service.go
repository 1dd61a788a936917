package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/Mavunaku/cvp3sea/internal/repository/storage"
	"github.com/Mavunaku/cvp3sea/internal/websocket"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	MaxReceiptSize     = 10 * 1024 * 1024 // 10MB
	MaxReceiptWidth    = 1600
	ReceiptJPEGQuality = 85
	ReceiptURLExpiry   = 15 * time.Minute
	contentTypeJPEG    = "image/jpeg"
	contentTypePDF     = "application/pdf"
)

var (
	ErrReceiptTooLarge             = errors.New("file too large. Maximum size is 10MB")
	ErrInvalidReceiptFormat        = errors.New("invalid format. Supported: JPEG, PNG, PDF")
	ErrInvalidReceiptData          = errors.New("invalid receipt data")
	ErrReceiptNotFound             = errors.New("entry has no receipt")
	ErrReceiptStorageNotConfigured = errors.New("receipt storage not configured")
)

// AllowedReceiptExtensions maps extensions to content types
var AllowedReceiptExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  contentTypePDF,
}

// ReceiptService stores receipt images and PDFs for expense entries
type ReceiptService struct {
	storage        storage.ReceiptStore
	ledgerRepo     domain.LedgerRepository
	eventPublisher websocket.EventPublisher
}

// NewReceiptService creates a new ReceiptService. A nil store disables uploads.
func NewReceiptService(store storage.ReceiptStore, ledgerRepo domain.LedgerRepository) *ReceiptService {
	return &ReceiptService{storage: store, ledgerRepo: ledgerRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ReceiptService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// IsEnabled indicates whether receipt storage is configured
func (s *ReceiptService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// prepare validates a receipt and returns the bytes to store with their content type.
// Images are re-encoded as JPEG no wider than MaxReceiptWidth.
func (s *ReceiptService) prepare(data []byte, filename string) ([]byte, string, error) {
	if len(data) > MaxReceiptSize {
		return nil, "", ErrReceiptTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := AllowedReceiptExtensions[ext]
	if !ok {
		return nil, "", ErrInvalidReceiptFormat
	}

	if contentType == contentTypePDF {
		if !bytes.HasPrefix(data, []byte("%PDF-")) {
			return nil, "", ErrInvalidReceiptData
		}
		return data, contentTypePDF, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", ErrInvalidReceiptData
	}
	if img.Bounds().Dx() > MaxReceiptWidth {
		img = imaging.Resize(img, MaxReceiptWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(ReceiptJPEGQuality)); err != nil {
		return nil, "", fmt.Errorf("failed to encode receipt: %w", err)
	}
	return buf.Bytes(), contentTypeJPEG, nil
}

// Upload stores a receipt for an expense entry, replacing any previous one
func (s *ReceiptService) Upload(ctx context.Context, entryID string, data []byte, filename string) (*domain.LedgerEntry, error) {
	if !s.IsEnabled() {
		return nil, ErrReceiptStorageNotConfigured
	}

	entry, err := s.ledgerRepo.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsExpense() {
		return nil, domain.ErrReceiptRequiresExpense
	}

	body, contentType, err := s.prepare(data, filename)
	if err != nil {
		return nil, err
	}

	ext := ".jpg"
	if contentType == contentTypePDF {
		ext = ".pdf"
	}
	key := fmt.Sprintf("receipts/%s/%s%s", entry.ID, uuid.NewString(), ext)

	// Repositories may hand back the stored record, so read the old key first
	var previous string
	if entry.HasReceipt() {
		previous = *entry.ReceiptKey
	}

	if _, err := s.storage.Upload(ctx, key, bytes.NewReader(body), contentType, int64(len(body))); err != nil {
		return nil, fmt.Errorf("failed to upload receipt: %w", err)
	}

	if err := s.ledgerRepo.SetReceiptKey(entry.ID, &key); err != nil {
		_ = s.storage.Delete(ctx, key)
		return nil, err
	}

	if previous != "" && previous != key {
		if err := s.storage.Delete(ctx, previous); err != nil {
			log.Warn().Err(err).Str("entry_id", entry.ID).Msg("Failed to delete replaced receipt")
		}
	}
	entry.ReceiptKey = &key

	log.Info().Str("entry_id", entry.ID).Str("content_type", contentType).Int("size", len(body)).Msg("Receipt stored")
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(websocket.LedgerEntryUpdated(entry))
	}
	return entry, nil
}

// DownloadURL returns a short-lived URL for an entry's receipt
func (s *ReceiptService) DownloadURL(ctx context.Context, entryID string) (string, error) {
	if !s.IsEnabled() {
		return "", ErrReceiptStorageNotConfigured
	}

	entry, err := s.ledgerRepo.GetByID(entryID)
	if err != nil {
		return "", err
	}
	if !entry.HasReceipt() {
		return "", ErrReceiptNotFound
	}

	return s.storage.PresignedURL(ctx, *entry.ReceiptKey, ReceiptURLExpiry)
}

// Remove deletes an entry's receipt
func (s *ReceiptService) Remove(ctx context.Context, entryID string) error {
	if !s.IsEnabled() {
		return ErrReceiptStorageNotConfigured
	}

	entry, err := s.ledgerRepo.GetByID(entryID)
	if err != nil {
		return err
	}
	if !entry.HasReceipt() {
		return ErrReceiptNotFound
	}

	if err := s.storage.Delete(ctx, *entry.ReceiptKey); err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	if err := s.ledgerRepo.SetReceiptKey(entry.ID, nil); err != nil {
		return err
	}
	entry.ReceiptKey = nil

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(websocket.LedgerEntryUpdated(entry))
	}
	return nil
}
