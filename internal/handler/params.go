package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// selectionFromQuery reads the ?year= and ?projectId= filters
func selectionFromQuery(c echo.Context) domain.Selection {
	return domain.Selection{
		Year:      strings.TrimSpace(c.QueryParam("year")),
		ProjectID: strings.TrimSpace(c.QueryParam("projectId")),
	}
}

// limitFromQuery reads ?limit=, returning fallback when absent and false when
// malformed. An explicit 0 is kept and means no limit.
func limitFromQuery(c echo.Context, fallback int) (int, bool) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return fallback, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, false
	}
	return limit, true
}

// fieldParser collects field validation errors while parsing a request body
type fieldParser struct {
	errors []ValidationError
}

func (p *fieldParser) fail(field, message string) {
	p.errors = append(p.errors, ValidationError{Field: field, Message: message})
}

// decimal parses a required decimal string
func (p *fieldParser) decimal(field, value string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		p.fail(field, "Must be a valid decimal number")
		return decimal.Zero
	}
	return d
}

// optionalDecimal parses a decimal string that may be absent or empty
func (p *fieldParser) optionalDecimal(field string, value *string) *decimal.Decimal {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	d := p.decimal(field, *value)
	return &d
}

// decimalOrZero parses an optional decimal, treating absence as zero
func (p *fieldParser) decimalOrZero(field string, value *string) decimal.Decimal {
	if d := p.optionalDecimal(field, value); d != nil {
		return *d
	}
	return decimal.Zero
}

// date parses a YYYY-MM-DD date; an empty value yields the zero time
func (p *fieldParser) date(field, value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		p.fail(field, "Must be in YYYY-MM-DD format")
		return time.Time{}
	}
	return parsed
}

// ok reports whether every field parsed
func (p *fieldParser) ok() bool {
	return len(p.errors) == 0
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatOptionalMoney(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}
