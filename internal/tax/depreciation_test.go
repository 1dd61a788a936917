package tax

import (
	"testing"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetDepreciation(t *testing.T) {
	t.Run("manual override wins", func(t *testing.T) {
		for _, flags := range [][2]bool{{false, false}, {true, false}, {false, true}, {true, true}} {
			a := asset("a", "2024-01-01", "10000", "39")
			a.Section179 = flags[0]
			a.BonusDepreciation = flags[1]
			a.CurrentDepreciation = decPtr("500")

			b := AssetDepreciation(a)
			assertDecimal(t, "500", b.Current)
			assert.True(t, b.Override)
		}
	})

	t.Run("override is not rounded", func(t *testing.T) {
		a := asset("a", "2024-01-01", "10000", "5")
		a.CurrentDepreciation = decPtr("333.33")
		a.PriorDepreciation = dec("100")

		b := AssetDepreciation(a)
		assertDecimal(t, "333.33", b.Current)
		assertDecimal(t, "433.33", b.Accumulated)
	})

	t.Run("section 179 writes off business basis", func(t *testing.T) {
		a := asset("a", "2024-01-01", "10000", "5")
		a.BusinessUsePercent = dec("80")
		a.Section179 = true

		b := AssetDepreciation(a)
		assertDecimal(t, "8000", b.Basis)
		assertDecimal(t, "8000", b.Section179)
		assertDecimal(t, "0", b.SpecialAllowance)
		assertDecimal(t, "8000", b.Current)
	})

	t.Run("bonus writes off basis", func(t *testing.T) {
		a := asset("a", "2024-01-01", "4500", "7")
		a.BonusDepreciation = true

		b := AssetDepreciation(a)
		assertDecimal(t, "4500", b.SpecialAllowance)
		assertDecimal(t, "0", b.Section179)
		assertDecimal(t, "4500", b.Current)
	})

	t.Run("straight line", func(t *testing.T) {
		b := AssetDepreciation(asset("a", "2024-01-01", "5000", "5"))
		assertDecimal(t, "1000", b.StraightLine)
		assertDecimal(t, "1000", b.Current)
		assertDecimal(t, "1000", b.Accumulated)
		assert.False(t, b.Override)
	})

	t.Run("straight line rounds to whole units", func(t *testing.T) {
		b := AssetDepreciation(asset("a", "2024-01-01", "1000", "3"))
		assertDecimal(t, "333", b.Current)

		b = AssetDepreciation(asset("b", "2024-01-01", "2500", "3"))
		assertDecimal(t, "833", b.Current)

		b = AssetDepreciation(asset("c", "2024-01-01", "1001", "7"))
		assertDecimal(t, "143", b.Current)
	})

	t.Run("land is excluded from basis", func(t *testing.T) {
		a := asset("a", "2020-01-01", "300000", "27.5")
		a.Land = dec("25000")
		a.PriorDepreciation = dec("40000")

		b := AssetDepreciation(a)
		assertDecimal(t, "275000", b.Basis)
		assertDecimal(t, "10000", b.Current)
		assertDecimal(t, "50000", b.Accumulated)
		assert.Equal(t, "2020-01-01", b.PurchaseDate)
	})

	t.Run("land above cost leaves no basis", func(t *testing.T) {
		a := asset("a", "2020-01-01", "100", "5")
		a.Land = dec("150")
		assertDecimal(t, "0", AssetDepreciation(a).Current)
	})

	t.Run("malformed fields degrade to defaults", func(t *testing.T) {
		a := &domain.Asset{ID: "bad", Cost: dec("-100"), BusinessUsePercent: dec("250")}
		b := AssetDepreciation(a)
		assertDecimal(t, "0", b.Current)
		assertDecimal(t, "5", b.UsefulLife)

		a = &domain.Asset{ID: "nolife", Cost: dec("1000"), BusinessUsePercent: dec("250")}
		assertDecimal(t, "200", AssetDepreciation(a).Current)
	})
}

func TestImprovementDepreciation(t *testing.T) {
	e := expense("cap", "2024-01-01", "2750", domain.PillarRepairs, "Roof")
	e.Capitalize = true
	assertDecimal(t, "100", ImprovementDepreciation(e))

	e.CapitalizeUsefulLife = dec("15")
	assertDecimal(t, "183", ImprovementDepreciation(e))

	e.CapitalizeUsefulLife = dec("0")
	assertDecimal(t, "100", ImprovementDepreciation(e))

	notCapitalized := expense("n", "2024-01-01", "2750", domain.PillarRepairs, "Roof")
	assertDecimal(t, "0", ImprovementDepreciation(notCapitalized))
}

func TestTotalDepreciation(t *testing.T) {
	cap1 := expense("cap", "2024-01-01", "2750", domain.PillarRepairs, "Roof")
	cap1.Capitalize = true
	entries := []*domain.LedgerEntry{cap1, expense("x", "2024-01-01", "10", domain.PillarRepairs, "Roof")}
	assets := []*domain.Asset{asset("a", "2024-01-01", "2000", "5"), nil}

	assertDecimal(t, "400", AssetDepreciationTotal(assets))
	assertDecimal(t, "100", ImprovementDepreciationTotal(entries))
	assertDecimal(t, "500", TotalDepreciation(entries, assets))
}

func TestBuildSchedule(t *testing.T) {
	cap1 := expense("cap", "2024-05-01", "2750", domain.PillarRepairs, "Roof")
	cap1.Capitalize = true
	cap1.Description = "New roof"

	building := asset("bldg", "2020-01-01", "300000", "27.5")
	building.Land = dec("25000")
	building.PriorDepreciation = dec("40000")
	laptop := asset("laptop", "2024-03-01", "2000", "5")
	laptop.Section179 = true

	s := BuildSchedule([]*domain.LedgerEntry{cap1}, []*domain.Asset{building, laptop})

	require.Len(t, s.Assets, 2)
	require.Len(t, s.Improvements, 1)
	assertDecimal(t, "302000", s.TotalCost)
	assertDecimal(t, "25000", s.TotalLand)
	assertDecimal(t, "277000", s.TotalBasis)
	assertDecimal(t, "40000", s.TotalPrior)
	assertDecimal(t, "12000", s.TotalCurrent)
	assertDecimal(t, "52000", s.TotalAccumulated)
	assertDecimal(t, "2750", s.ImprovementCost)
	assertDecimal(t, "100", s.ImprovementDepreciation)
	assertDecimal(t, "12100", s.TotalDepreciation)

	assert.Equal(t, "New roof", s.Improvements[0].Description)
	assertDecimal(t, "27.5", s.Improvements[0].UsefulLife)
}
