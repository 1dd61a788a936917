package domain

import "errors"

// ErrAlreadyExists is returned when a unique name is already taken
var ErrAlreadyExists = errors.New("resource already exists")

// Ledger errors
var (
	ErrEntryNotFound          = errors.New("ledger entry not found")
	ErrInvalidAmount          = errors.New("amount must not be negative")
	ErrInvalidEntryType       = errors.New("entry type must be income or expense")
	ErrInvalidPillar          = errors.New("unknown expense pillar")
	ErrInvalidInterest        = errors.New("interest must be between zero and the entry amount")
	ErrInvalidCapitalizeLife  = errors.New("capitalize useful life must be positive")
	ErrInvalidEntryStatus     = errors.New("invalid entry status")
	ErrDescriptionTooLong     = errors.New("description exceeds maximum length")
	ErrEntryIDsRequired       = errors.New("at least one entry id is required")
	ErrReceiptRequiresExpense = errors.New("receipts can only be attached to expenses")
)

// Asset errors
var (
	ErrAssetNotFound        = errors.New("asset not found")
	ErrInvalidCost          = errors.New("cost must not be negative")
	ErrInvalidLand          = errors.New("land value must be between zero and cost")
	ErrInvalidBusinessUse   = errors.New("business use percent must be between 0 and 100")
	ErrInvalidUsefulLife    = errors.New("useful life must be one of 3, 5, 7, 15, 27.5, 39")
	ErrInvalidDepreciation  = errors.New("depreciation must not be negative")
	ErrInvalidAssetType     = errors.New("invalid asset type")
	ErrInvalidAssetMethod   = errors.New("invalid depreciation method")
	ErrInvalidConvention    = errors.New("invalid depreciation convention")
	ErrPurchaseDateRequired = errors.New("purchase date is required")
)

// Project and year errors
var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrYearNotFound       = errors.New("fiscal year not found")
	ErrInvalidYear        = errors.New("year must be a four digit year")
	ErrInvalidProjectType = errors.New("project type must be Property, Client or Generic")
	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name exceeds maximum length")
)

// Validation constants
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 1000
)
