package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used on the wire and for year matching
const DateLayout = "2006-01-02"

// EntryType represents the direction of a ledger entry
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

// EntryStatus represents the bank reconciliation state of an entry
type EntryStatus string

const (
	EntryStatusPending    EntryStatus = "Pending"
	EntryStatusCleared    EntryStatus = "Cleared"
	EntryStatusReconciled EntryStatus = "Reconciled"
)

// IsValid reports whether s is a known entry status
func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryStatusPending, EntryStatusCleared, EntryStatusReconciled:
		return true
	}
	return false
}

// LedgerEntry is a single income or expense event
type LedgerEntry struct {
	ID                   string           `json:"id"`
	Date                 time.Time        `json:"date"`
	Amount               decimal.Decimal  `json:"amount"`
	Type                 EntryType        `json:"type"`
	Description          string           `json:"description"`
	Category             string           `json:"category"`
	Pillar               Pillar           `json:"pillar,omitempty"`
	Interest             *decimal.Decimal `json:"interest,omitempty"`
	Capitalize           bool             `json:"capitalize"`
	CapitalizeUsefulLife decimal.Decimal  `json:"capitalizeUsefulLife"`
	NYSource             bool             `json:"nySource"`
	Status               EntryStatus      `json:"status"`
	ProjectID            string           `json:"projectId,omitempty"`
	ReceiptKey           *string          `json:"receiptKey,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

// IsIncome reports whether the entry is income
func (e *LedgerEntry) IsIncome() bool {
	return e.Type == EntryTypeIncome
}

// IsExpense reports whether the entry is an expense
func (e *LedgerEntry) IsExpense() bool {
	return e.Type == EntryTypeExpense
}

// DateString returns the entry date as YYYY-MM-DD
func (e *LedgerEntry) DateString() string {
	return e.Date.Format(DateLayout)
}

// InYear reports whether the entry date starts with the given year string
func (e *LedgerEntry) InYear(year string) bool {
	return year != "" && !e.Date.IsZero() && strings.HasPrefix(e.DateString(), year)
}

// Normalize applies field defaults so calculators can rely on populated values.
// nySource cannot be defaulted here since false is a meaningful value; decoders
// default it to true when the field is absent.
func (e *LedgerEntry) Normalize() {
	if e.Amount.IsNegative() {
		e.Amount = decimal.Zero
	}
	if e.Interest != nil && e.Interest.IsNegative() {
		zero := decimal.Zero
		e.Interest = &zero
	}
	if e.IsExpense() && strings.TrimSpace(string(e.Pillar)) == "" {
		e.Pillar = PillarUncategorized
	}
	if !e.CapitalizeUsefulLife.IsPositive() {
		e.CapitalizeUsefulLife = DefaultImprovementUsefulLife
	}
	if e.Status == "" {
		e.Status = EntryStatusCleared
	}
}

// HasReceipt reports whether a receipt has been stored for the entry
func (e *LedgerEntry) HasReceipt() bool {
	return e.ReceiptKey != nil && *e.ReceiptKey != ""
}

// LedgerRepository defines the interface for ledger entry persistence
type LedgerRepository interface {
	Create(entry *LedgerEntry) (*LedgerEntry, error)
	GetByID(id string) (*LedgerEntry, error)
	GetAll() ([]*LedgerEntry, error)
	Update(entry *LedgerEntry) (*LedgerEntry, error)
	Delete(id string) error
	DeleteByProject(projectID string) (int64, error)
	SetNYSource(ids []string, enabled bool) (int64, error)
	SetReceiptKey(id string, key *string) error
}
