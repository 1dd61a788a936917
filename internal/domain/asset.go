package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType classifies a fixed asset
type AssetType string

const (
	AssetTypeComputer    AssetType = "Computer/Electronics"
	AssetTypeFurniture   AssetType = "Office Furniture"
	AssetTypeEquipment   AssetType = "Equipment"
	AssetTypeVehicle     AssetType = "Vehicle"
	AssetTypeImprovement AssetType = "Property Improvement"
	AssetTypeOther       AssetType = "Other"
)

// IsValid reports whether t is a known asset type
func (t AssetType) IsValid() bool {
	switch t {
	case AssetTypeComputer, AssetTypeFurniture, AssetTypeEquipment, AssetTypeVehicle, AssetTypeImprovement, AssetTypeOther:
		return true
	}
	return false
}

// AssetMethod is the depreciation method recorded for reporting.
// The current-year figure always follows the section 179, bonus, straight-line order.
type AssetMethod string

const (
	AssetMethodMACRS        AssetMethod = "MACRS"
	AssetMethodStraightLine AssetMethod = "Straight Line"
	AssetMethodSLMidMonth   AssetMethod = "S/L (Mid-Mo)"
	AssetMethodSLHalfYear   AssetMethod = "S/L (Half-Yr)"
)

// IsValid reports whether m is a known method
func (m AssetMethod) IsValid() bool {
	switch m {
	case AssetMethodMACRS, AssetMethodStraightLine, AssetMethodSLMidMonth, AssetMethodSLHalfYear:
		return true
	}
	return false
}

// AssetConvention is the averaging convention recorded for reporting
type AssetConvention string

const (
	ConventionHalfYear   AssetConvention = "HY"
	ConventionMidQuarter AssetConvention = "MQ"
	ConventionMidMonth   AssetConvention = "MM"
)

// IsValid reports whether c is a known convention
func (c AssetConvention) IsValid() bool {
	switch c {
	case ConventionHalfYear, ConventionMidQuarter, ConventionMidMonth:
		return true
	}
	return false
}

// Asset is a depreciable fixed asset
type Asset struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Type                AssetType        `json:"type"`
	PurchaseDate        time.Time        `json:"purchaseDate"`
	Cost                decimal.Decimal  `json:"cost"`
	Land                decimal.Decimal  `json:"land"`
	BusinessUsePercent  decimal.Decimal  `json:"businessUsePercent"`
	UsefulLife          decimal.Decimal  `json:"usefulLife"`
	Section179          bool             `json:"section179"`
	BonusDepreciation   bool             `json:"bonusDepreciation"`
	PriorDepreciation   decimal.Decimal  `json:"priorDepreciation"`
	CurrentDepreciation *decimal.Decimal `json:"currentDepreciation,omitempty"`
	Method              AssetMethod      `json:"method"`
	Convention          AssetConvention  `json:"convention"`
	Notes               string           `json:"notes,omitempty"`
	ProjectID           string           `json:"projectId,omitempty"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// PurchaseYear returns the calendar year of purchase, or 0 when unknown
func (a *Asset) PurchaseYear() int {
	if a.PurchaseDate.IsZero() {
		return 0
	}
	return a.PurchaseDate.Year()
}

// Normalize applies field defaults so calculators can rely on populated values.
// An absent business use percentage is defaulted to 100 by decoders.
func (a *Asset) Normalize() {
	if a.Cost.IsNegative() {
		a.Cost = decimal.Zero
	}
	if a.Land.IsNegative() {
		a.Land = decimal.Zero
	}
	if a.BusinessUsePercent.IsNegative() {
		a.BusinessUsePercent = decimal.Zero
	}
	if a.BusinessUsePercent.GreaterThan(FullBusinessUse) {
		a.BusinessUsePercent = FullBusinessUse
	}
	if !IsValidUsefulLife(a.UsefulLife) {
		a.UsefulLife = DefaultAssetUsefulLife
	}
	if a.PriorDepreciation.IsNegative() {
		a.PriorDepreciation = decimal.Zero
	}
	if a.Type == "" {
		a.Type = AssetTypeOther
	}
	if a.Method == "" {
		a.Method = AssetMethodMACRS
	}
	if a.Convention == "" {
		a.Convention = ConventionHalfYear
	}
}

// AssetRepository defines the interface for asset persistence
type AssetRepository interface {
	Create(asset *Asset) (*Asset, error)
	GetByID(id string) (*Asset, error)
	GetAll() ([]*Asset, error)
	Update(asset *Asset) (*Asset, error)
	Delete(id string) error
	DeleteByProject(projectID string) (int64, error)
}
