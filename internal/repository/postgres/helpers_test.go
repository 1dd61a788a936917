package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "27.5", "1234.56", "-0.01", "10000"} {
		t.Run(s, func(t *testing.T) {
			num, err := decimalToPgNumeric(decimal.RequireFromString(s))
			require.NoError(t, err)
			assert.True(t, num.Valid)
			assert.True(t, decimal.RequireFromString(s).Equal(pgNumericToDecimal(num)))
		})
	}
}

func TestOptionalNumeric(t *testing.T) {
	num, err := optionalDecimalToPgNumeric(nil)
	require.NoError(t, err)
	assert.False(t, num.Valid)
	assert.Nil(t, pgNumericToOptionalDecimal(num))
	assert.True(t, pgNumericToDecimal(num).IsZero())

	d := decimal.RequireFromString("300")
	num, err = optionalDecimalToPgNumeric(&d)
	require.NoError(t, err)
	got := pgNumericToOptionalDecimal(num)
	require.NotNil(t, got)
	assert.True(t, d.Equal(*got))
}

func TestOptionalText(t *testing.T) {
	assert.False(t, textOrNull("").Valid)
	assert.False(t, optionalText(nil).Valid)

	key := "receipts/abc.jpg"
	text := optionalText(&key)
	assert.Equal(t, pgtype.Text{String: key, Valid: true}, text)
	assert.Equal(t, &key, pgTextToOptional(text))
	assert.Nil(t, pgTextToOptional(pgtype.Text{}))
}

func TestPgErrorCode(t *testing.T) {
	unique := fmt.Errorf("insert project: %w", &pgconn.PgError{Code: "23505"})
	foreign := &pgconn.PgError{Code: "23503"}

	assert.True(t, isPgUniqueViolation(unique))
	assert.False(t, isPgForeignKeyViolation(unique))
	assert.True(t, isPgForeignKeyViolation(foreign))
	assert.Empty(t, pgErrorCode(nil))
	assert.Empty(t, pgErrorCode(fmt.Errorf("plain")))
}
