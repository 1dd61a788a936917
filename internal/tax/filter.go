package tax

import (
	"strconv"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/shopspring/decimal"
)

// projectYears maps project ID to the fiscal year it belongs to
func projectYears(projects []*domain.Project) map[string]string {
	years := make(map[string]string, len(projects))
	for _, p := range projects {
		if p == nil {
			continue
		}
		years[p.ID] = p.YearID
	}
	return years
}

// FilterEntries narrows entries to the selection. A selected project wins over a
// selected year. Year matching falls back to the entry date for entries whose
// project is unknown or belongs to another year. Input order is preserved.
func FilterEntries(entries []*domain.LedgerEntry, projects []*domain.Project, sel domain.Selection) []*domain.LedgerEntry {
	result := make([]*domain.LedgerEntry, 0, len(entries))
	years := projectYears(projects)

	for _, e := range entries {
		if e == nil {
			continue
		}
		switch {
		case sel.ProjectID != "":
			if e.ProjectID != sel.ProjectID {
				continue
			}
		case sel.Year != "":
			if years[e.ProjectID] != sel.Year && !e.InYear(sel.Year) {
				continue
			}
		}
		result = append(result, e)
	}
	return result
}

// FilterAssets narrows assets to the selection. For a selected year an asset is
// kept when its project belongs to the year, it was purchased in the year, or
// it was purchased earlier and is still inside its recovery window.
func FilterAssets(assets []*domain.Asset, projects []*domain.Project, sel domain.Selection) []*domain.Asset {
	result := make([]*domain.Asset, 0, len(assets))
	years := projectYears(projects)
	selectedYear, yearErr := strconv.Atoi(sel.Year)

	for _, a := range assets {
		if a == nil {
			continue
		}
		switch {
		case sel.ProjectID != "":
			if a.ProjectID != sel.ProjectID {
				continue
			}
		case sel.Year != "":
			inProjectYear := a.ProjectID != "" && years[a.ProjectID] == sel.Year
			if !inProjectYear && (yearErr != nil || !InRecoveryWindow(a, selectedYear)) {
				continue
			}
		}
		result = append(result, a)
	}
	return result
}

// InRecoveryWindow reports whether an asset purchased in or before year is still
// being depreciated in that year: purchaseYear + usefulLife > year
func InRecoveryWindow(a *domain.Asset, year int) bool {
	purchaseYear := a.PurchaseYear()
	if purchaseYear == 0 || purchaseYear > year {
		return false
	}
	if purchaseYear == year {
		return true
	}
	life := a.UsefulLife
	if !life.IsPositive() {
		life = domain.DefaultAssetUsefulLife
	}
	return decimal.NewFromInt(int64(purchaseYear)).Add(life).GreaterThan(decimal.NewFromInt(int64(year)))
}
