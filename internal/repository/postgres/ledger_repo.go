package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ledgerColumns = `id, date, amount, type, description, category, pillar, interest,
	capitalize, capitalize_useful_life, ny_source, status, project_id, receipt_key,
	created_at, updated_at`

// LedgerRepository implements domain.LedgerRepository using PostgreSQL
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// ledgerParams holds the converted column values of an entry
type ledgerParams struct {
	amount     pgtype.Numeric
	interest   pgtype.Numeric
	usefulLife pgtype.Numeric
	projectID  pgtype.Text
	receiptKey pgtype.Text
}

func toLedgerParams(entry *domain.LedgerEntry) (*ledgerParams, error) {
	amount, err := decimalToPgNumeric(entry.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	interest, err := optionalDecimalToPgNumeric(entry.Interest)
	if err != nil {
		return nil, fmt.Errorf("invalid interest: %w", err)
	}
	usefulLife, err := decimalToPgNumeric(entry.CapitalizeUsefulLife)
	if err != nil {
		return nil, fmt.Errorf("invalid capitalize useful life: %w", err)
	}
	return &ledgerParams{
		amount:     amount,
		interest:   interest,
		usefulLife: usefulLife,
		projectID:  textOrNull(entry.ProjectID),
		receiptKey: optionalText(entry.ReceiptKey),
	}, nil
}

// Create inserts a ledger entry
func (r *LedgerRepository) Create(entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	ctx := context.Background()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	p, err := toLedgerParams(entry)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO ledger_entries (id, date, amount, type, description, category, pillar, interest,
			capitalize, capitalize_useful_life, ny_source, status, project_id, receipt_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+ledgerColumns,
		entry.ID, entry.Date, p.amount, string(entry.Type), entry.Description, entry.Category,
		string(entry.Pillar), p.interest, entry.Capitalize, p.usefulLife, entry.NYSource,
		string(entry.Status), p.projectID, p.receiptKey)

	created, err := scanLedgerEntry(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		if isPgForeignKeyViolation(err) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a ledger entry
func (r *LedgerRepository) GetByID(id string) (*domain.LedgerEntry, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+ledgerColumns+` FROM ledger_entries WHERE id = $1`, id)
	entry, err := scanLedgerEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// GetAll retrieves every ledger entry in a stable order
func (r *LedgerRepository) GetAll() ([]*domain.LedgerEntry, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+ledgerColumns+` FROM ledger_entries ORDER BY date DESC, created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Update replaces every editable field of an entry
func (r *LedgerRepository) Update(entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	ctx := context.Background()
	p, err := toLedgerParams(entry)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE ledger_entries SET
			date = $2, amount = $3, type = $4, description = $5, category = $6, pillar = $7,
			interest = $8, capitalize = $9, capitalize_useful_life = $10, ny_source = $11,
			status = $12, project_id = $13, receipt_key = $14, updated_at = now()
		WHERE id = $1
		RETURNING `+ledgerColumns,
		entry.ID, entry.Date, p.amount, string(entry.Type), entry.Description, entry.Category,
		string(entry.Pillar), p.interest, entry.Capitalize, p.usefulLife, entry.NYSource,
		string(entry.Status), p.projectID, p.receiptKey)

	updated, err := scanLedgerEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		if isPgForeignKeyViolation(err) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a ledger entry
func (r *LedgerRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM ledger_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// DeleteByProject removes every entry of a project
func (r *LedgerRepository) DeleteByProject(projectID string) (int64, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM ledger_entries WHERE project_id = $1`, projectID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SetNYSource sets the NY-source flag on the given entries
func (r *LedgerRepository) SetNYSource(ids []string, enabled bool) (int64, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		UPDATE ledger_entries SET ny_source = $1, updated_at = now()
		WHERE id = ANY($2)`, enabled, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SetReceiptKey stores or clears the receipt object key of an entry
func (r *LedgerRepository) SetReceiptKey(id string, key *string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		UPDATE ledger_entries SET receipt_key = $2, updated_at = now()
		WHERE id = $1`, id, optionalText(key))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func scanLedgerEntry(row rowScanner) (*domain.LedgerEntry, error) {
	var (
		e          domain.LedgerEntry
		date       pgtype.Date
		amount     pgtype.Numeric
		interest   pgtype.Numeric
		usefulLife pgtype.Numeric
		entryType  string
		pillar     string
		status     string
		projectID  pgtype.Text
		receiptKey pgtype.Text
	)
	err := row.Scan(&e.ID, &date, &amount, &entryType, &e.Description, &e.Category, &pillar,
		&interest, &e.Capitalize, &usefulLife, &e.NYSource, &status, &projectID, &receiptKey,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if date.Valid {
		e.Date = date.Time
	}
	e.Amount = pgNumericToDecimal(amount)
	e.Type = domain.EntryType(entryType)
	e.Pillar = domain.Pillar(pillar)
	e.Interest = pgNumericToOptionalDecimal(interest)
	e.CapitalizeUsefulLife = pgNumericToDecimal(usefulLife)
	e.Status = domain.EntryStatus(status)
	e.ProjectID = projectID.String
	e.ReceiptKey = pgTextToOptional(receiptKey)
	e.Normalize()
	return &e, nil
}
