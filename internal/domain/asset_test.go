package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAssetNormalize(t *testing.T) {
	a := &Asset{
		Cost:               decimal.NewFromInt(-1),
		Land:               decimal.NewFromInt(-1),
		BusinessUsePercent: decimal.NewFromInt(150),
		PriorDepreciation:  decimal.NewFromInt(-20),
	}
	a.Normalize()

	if !a.Cost.IsZero() || !a.Land.IsZero() || !a.PriorDepreciation.IsZero() {
		t.Errorf("negative amounts not zeroed: cost=%s land=%s prior=%s", a.Cost, a.Land, a.PriorDepreciation)
	}
	if !a.BusinessUsePercent.Equal(FullBusinessUse) {
		t.Errorf("BusinessUsePercent = %s, want 100", a.BusinessUsePercent)
	}
	if !a.UsefulLife.Equal(DefaultAssetUsefulLife) {
		t.Errorf("UsefulLife = %s, want 5", a.UsefulLife)
	}
	if a.Type != AssetTypeOther || a.Method != AssetMethodMACRS || a.Convention != ConventionHalfYear {
		t.Errorf("defaults = %q %q %q", a.Type, a.Method, a.Convention)
	}
}

func TestAssetNormalize_KeepsZeroBusinessUse(t *testing.T) {
	a := &Asset{BusinessUsePercent: decimal.Zero, UsefulLife: decimal.NewFromInt(7)}
	a.Normalize()

	if !a.BusinessUsePercent.IsZero() {
		t.Errorf("BusinessUsePercent = %s, want 0", a.BusinessUsePercent)
	}
	if !a.UsefulLife.Equal(decimal.NewFromInt(7)) {
		t.Errorf("UsefulLife = %s, want 7", a.UsefulLife)
	}
}

func TestAssetNormalize_UsefulLifeOutsideEnumeration(t *testing.T) {
	for _, life := range []string{"10", "4.5", "-3", "0"} {
		a := &Asset{UsefulLife: decimal.RequireFromString(life), BusinessUsePercent: FullBusinessUse}
		a.Normalize()
		if !a.UsefulLife.Equal(DefaultAssetUsefulLife) {
			t.Errorf("life %s: UsefulLife = %s, want 5", life, a.UsefulLife)
		}
	}

	a := &Asset{UsefulLife: decimal.RequireFromString("27.5"), BusinessUsePercent: FullBusinessUse}
	a.Normalize()
	if !a.UsefulLife.Equal(decimal.RequireFromString("27.5")) {
		t.Errorf("UsefulLife = %s, want 27.5", a.UsefulLife)
	}
}

func TestIsValidUsefulLife(t *testing.T) {
	tests := []struct {
		life string
		want bool
	}{
		{"3", true},
		{"5", true},
		{"7", true},
		{"15", true},
		{"27.5", true},
		{"39", true},
		{"10", false},
		{"0", false},
		{"27.50", true},
	}
	for _, tt := range tests {
		if got := IsValidUsefulLife(decimal.RequireFromString(tt.life)); got != tt.want {
			t.Errorf("IsValidUsefulLife(%s) = %v, want %v", tt.life, got, tt.want)
		}
	}
}

func TestPillarCategoriesCoverEveryPillar(t *testing.T) {
	for _, p := range PillarOrder {
		if p == PillarUncategorized {
			continue
		}
		if len(PillarCategories[p]) == 0 {
			t.Errorf("pillar %q has no categories", p)
		}
	}
	if !IsHalfDeductible(CategoryBusinessMeals) || !IsHalfDeductible(CategoryTravelMeals) {
		t.Error("meal categories should be half deductible")
	}
	if IsHalfDeductible(CategoryEntertainment) {
		t.Error("entertainment is not half deductible")
	}
}
