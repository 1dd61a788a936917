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

const assetColumns = `id, name, type, purchase_date, cost, land, business_use_percent, useful_life,
	section179, bonus_depreciation, prior_depreciation, current_depreciation, method, convention,
	notes, project_id, created_at, updated_at`

// AssetRepository implements domain.AssetRepository using PostgreSQL
type AssetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository creates a new AssetRepository
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}

// assetParams holds the converted column values of an asset
type assetParams struct {
	purchaseDate pgtype.Date
	cost         pgtype.Numeric
	land         pgtype.Numeric
	businessUse  pgtype.Numeric
	usefulLife   pgtype.Numeric
	prior        pgtype.Numeric
	current      pgtype.Numeric
	projectID    pgtype.Text
}

func toAssetParams(a *domain.Asset) (*assetParams, error) {
	var (
		p   assetParams
		err error
	)
	p.purchaseDate = pgtype.Date{Time: a.PurchaseDate, Valid: !a.PurchaseDate.IsZero()}
	if p.cost, err = decimalToPgNumeric(a.Cost); err != nil {
		return nil, fmt.Errorf("invalid cost: %w", err)
	}
	if p.land, err = decimalToPgNumeric(a.Land); err != nil {
		return nil, fmt.Errorf("invalid land: %w", err)
	}
	if p.businessUse, err = decimalToPgNumeric(a.BusinessUsePercent); err != nil {
		return nil, fmt.Errorf("invalid business use percent: %w", err)
	}
	if p.usefulLife, err = decimalToPgNumeric(a.UsefulLife); err != nil {
		return nil, fmt.Errorf("invalid useful life: %w", err)
	}
	if p.prior, err = decimalToPgNumeric(a.PriorDepreciation); err != nil {
		return nil, fmt.Errorf("invalid prior depreciation: %w", err)
	}
	if p.current, err = optionalDecimalToPgNumeric(a.CurrentDepreciation); err != nil {
		return nil, fmt.Errorf("invalid current depreciation: %w", err)
	}
	p.projectID = textOrNull(a.ProjectID)
	return &p, nil
}

// Create inserts an asset
func (r *AssetRepository) Create(asset *domain.Asset) (*domain.Asset, error) {
	ctx := context.Background()
	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}
	p, err := toAssetParams(asset)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO assets (id, name, type, purchase_date, cost, land, business_use_percent, useful_life,
			section179, bonus_depreciation, prior_depreciation, current_depreciation, method, convention,
			notes, project_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING `+assetColumns,
		asset.ID, asset.Name, string(asset.Type), p.purchaseDate, p.cost, p.land, p.businessUse,
		p.usefulLife, asset.Section179, asset.BonusDepreciation, p.prior, p.current,
		string(asset.Method), string(asset.Convention), asset.Notes, p.projectID)

	created, err := scanAsset(row)
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

// GetByID retrieves an asset
func (r *AssetRepository) GetByID(id string) (*domain.Asset, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
	asset, err := scanAsset(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

// GetAll retrieves every asset ordered by purchase date
func (r *AssetRepository) GetAll() ([]*domain.Asset, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY purchase_date NULLS LAST, created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

// Update replaces every editable field of an asset
func (r *AssetRepository) Update(asset *domain.Asset) (*domain.Asset, error) {
	ctx := context.Background()
	p, err := toAssetParams(asset)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE assets SET
			name = $2, type = $3, purchase_date = $4, cost = $5, land = $6, business_use_percent = $7,
			useful_life = $8, section179 = $9, bonus_depreciation = $10, prior_depreciation = $11,
			current_depreciation = $12, method = $13, convention = $14, notes = $15, project_id = $16,
			updated_at = now()
		WHERE id = $1
		RETURNING `+assetColumns,
		asset.ID, asset.Name, string(asset.Type), p.purchaseDate, p.cost, p.land, p.businessUse,
		p.usefulLife, asset.Section179, asset.BonusDepreciation, p.prior, p.current,
		string(asset.Method), string(asset.Convention), asset.Notes, p.projectID)

	updated, err := scanAsset(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}
		if isPgForeignKeyViolation(err) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes an asset
func (r *AssetRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

// DeleteByProject removes every asset of a project
func (r *AssetRepository) DeleteByProject(projectID string) (int64, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE project_id = $1`, projectID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanAsset(row rowScanner) (*domain.Asset, error) {
	var (
		a            domain.Asset
		assetType    string
		purchaseDate pgtype.Date
		cost         pgtype.Numeric
		land         pgtype.Numeric
		businessUse  pgtype.Numeric
		usefulLife   pgtype.Numeric
		prior        pgtype.Numeric
		current      pgtype.Numeric
		method       string
		convention   string
		projectID    pgtype.Text
	)
	err := row.Scan(&a.ID, &a.Name, &assetType, &purchaseDate, &cost, &land, &businessUse, &usefulLife,
		&a.Section179, &a.BonusDepreciation, &prior, &current, &method, &convention, &a.Notes, &projectID,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if purchaseDate.Valid {
		a.PurchaseDate = purchaseDate.Time
	}
	a.Type = domain.AssetType(assetType)
	a.Cost = pgNumericToDecimal(cost)
	a.Land = pgNumericToDecimal(land)
	a.BusinessUsePercent = pgNumericToDecimal(businessUse)
	a.UsefulLife = pgNumericToDecimal(usefulLife)
	a.PriorDepreciation = pgNumericToDecimal(prior)
	a.CurrentDepreciation = pgNumericToOptionalDecimal(current)
	a.Method = domain.AssetMethod(method)
	a.Convention = domain.AssetConvention(convention)
	a.ProjectID = projectID.String
	a.Normalize()
	return &a, nil
}
