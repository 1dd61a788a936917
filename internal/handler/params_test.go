package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryContext(query string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestLimitFromQuery(t *testing.T) {
	tests := []struct {
		query string
		limit int
		ok    bool
	}{
		{"", 3, true},
		{"limit=5", 5, true},
		{"limit=0", 0, true},
		{"limit=-1", 0, false},
		{"limit=ten", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			limit, ok := limitFromQuery(queryContext(tt.query), 3)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.limit, limit)
		})
	}
}

func TestSelectionFromQuery(t *testing.T) {
	sel := selectionFromQuery(queryContext("year=%202024%20&projectId=p1"))
	assert.Equal(t, "2024", sel.Year)
	assert.Equal(t, "p1", sel.ProjectID)
}

func TestFieldParser(t *testing.T) {
	var p fieldParser

	assert.Equal(t, "12.5", p.decimal("amount", " 12.50 ").String())
	assert.Nil(t, p.optionalDecimal("interest", nil))
	empty := ""
	assert.Nil(t, p.optionalDecimal("interest", &empty))
	assert.True(t, p.decimalOrZero("land", nil).IsZero())
	assert.True(t, p.date("date", "").IsZero())
	assert.Equal(t, 2024, p.date("date", "2024-05-06").Year())
	require.True(t, p.ok())

	bad := "abc"
	p.optionalDecimal("interest", &bad)
	p.date("date", "05/06/2024")
	require.False(t, p.ok())
	require.Len(t, p.errors, 2)
	assert.Equal(t, "interest", p.errors[0].Field)
	assert.Equal(t, "date", p.errors[1].Field)
}
