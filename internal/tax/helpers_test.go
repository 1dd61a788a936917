package tax

import (
	"testing"
	"time"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func income(id, day, amount string) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:       id,
		Date:     date(day),
		Amount:   dec(amount),
		Type:     domain.EntryTypeIncome,
		Category: "Services",
		NYSource: true,
		Status:   domain.EntryStatusCleared,
	}
}

func expense(id, day, amount string, pillar domain.Pillar, category string) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:                   id,
		Date:                 date(day),
		Amount:               dec(amount),
		Type:                 domain.EntryTypeExpense,
		Pillar:               pillar,
		Category:             category,
		CapitalizeUsefulLife: domain.DefaultImprovementUsefulLife,
		NYSource:             true,
		Status:               domain.EntryStatusCleared,
	}
}

func asset(id, purchased, cost string, life string) *domain.Asset {
	return &domain.Asset{
		ID:                 id,
		Name:               "Asset " + id,
		Type:               domain.AssetTypeEquipment,
		PurchaseDate:       date(purchased),
		Cost:               dec(cost),
		Land:               decimal.Zero,
		BusinessUsePercent: domain.FullBusinessUse,
		UsefulLife:         dec(life),
		PriorDepreciation:  decimal.Zero,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}
