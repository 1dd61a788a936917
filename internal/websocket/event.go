package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the kind of change
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
	EventTypeBulk    EventType = "bulk_updated"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeLedgerEntry EntityType = "ledger_entry"
	EntityTypeAsset       EntityType = "asset"
	EntityTypeProject     EntityType = "project"
	EntityTypeFiscalYear  EntityType = "fiscal_year"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "ledger_entry.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "ledger_entry"
	Payload   interface{} `json:"payload"`   // Entity data or identifiers
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// DeletedPayload identifies a removed entity and anything removed with it
type DeletedPayload struct {
	ID            string `json:"id"`
	EntriesCount  int64  `json:"entriesDeleted,omitempty"`
	AssetsCount   int64  `json:"assetsDeleted,omitempty"`
	ProjectsCount int    `json:"projectsDeleted,omitempty"`
}

// LedgerEntryCreated creates a ledger_entry.created event
func LedgerEntryCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeLedgerEntry, payload)
}

// LedgerEntryUpdated creates a ledger_entry.updated event
func LedgerEntryUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeLedgerEntry, payload)
}

// LedgerEntryDeleted creates a ledger_entry.deleted event
func LedgerEntryDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeLedgerEntry, payload)
}

// LedgerEntriesBulkUpdated creates a ledger_entry.bulk_updated event
func LedgerEntriesBulkUpdated(payload interface{}) Event {
	return NewEvent(EventTypeBulk, EntityTypeLedgerEntry, payload)
}

// AssetCreated creates an asset.created event
func AssetCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeAsset, payload)
}

// AssetUpdated creates an asset.updated event
func AssetUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeAsset, payload)
}

// AssetDeleted creates an asset.deleted event
func AssetDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeAsset, payload)
}

// ProjectCreated creates a project.created event
func ProjectCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeProject, payload)
}

// ProjectUpdated creates a project.updated event
func ProjectUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeProject, payload)
}

// ProjectDeleted creates a project.deleted event
func ProjectDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeProject, payload)
}

// FiscalYearCreated creates a fiscal_year.created event
func FiscalYearCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeFiscalYear, payload)
}

// FiscalYearDeleted creates a fiscal_year.deleted event
func FiscalYearDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeFiscalYear, payload)
}
