package postgres

import (
	"context"
	"errors"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FiscalYearRepository implements domain.FiscalYearRepository using PostgreSQL
type FiscalYearRepository struct {
	pool *pgxpool.Pool
}

// NewFiscalYearRepository creates a new FiscalYearRepository
func NewFiscalYearRepository(pool *pgxpool.Pool) *FiscalYearRepository {
	return &FiscalYearRepository{pool: pool}
}

// Create inserts a fiscal year, returning the existing row when it is already present
func (r *FiscalYearRepository) Create(year *domain.FiscalYear) (*domain.FiscalYear, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO fiscal_years (id) VALUES ($1)
		ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		RETURNING id, created_at`, year.ID)

	var created domain.FiscalYear
	if err := row.Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID retrieves a fiscal year
func (r *FiscalYearRepository) GetByID(id string) (*domain.FiscalYear, error) {
	ctx := context.Background()
	var year domain.FiscalYear
	err := r.pool.QueryRow(ctx, `SELECT id, created_at FROM fiscal_years WHERE id = $1`, id).
		Scan(&year.ID, &year.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrYearNotFound
		}
		return nil, err
	}
	return &year, nil
}

// GetAll retrieves every fiscal year, newest first
func (r *FiscalYearRepository) GetAll() ([]*domain.FiscalYear, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT id, created_at FROM fiscal_years ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []*domain.FiscalYear
	for rows.Next() {
		var year domain.FiscalYear
		if err := rows.Scan(&year.ID, &year.CreatedAt); err != nil {
			return nil, err
		}
		years = append(years, &year)
	}
	return years, rows.Err()
}

// Delete removes a fiscal year. Its projects must already be gone.
func (r *FiscalYearRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM fiscal_years WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrYearNotFound
	}
	return nil
}
