package postgres

import (
	"context"
	"errors"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const projectColumns = `id, name, type, year_id, created_at, updated_at`

// ProjectRepository implements domain.ProjectRepository using PostgreSQL
type ProjectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

// Create inserts a project
func (r *ProjectRepository) Create(project *domain.Project) (*domain.Project, error) {
	ctx := context.Background()
	if project.ID == "" {
		project.ID = uuid.NewString()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO projects (id, name, type, year_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+projectColumns,
		project.ID, project.Name, string(project.Type), project.YearID)

	created, err := scanProject(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		if isPgForeignKeyViolation(err) {
			return nil, domain.ErrYearNotFound
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a project
func (r *ProjectRepository) GetByID(id string) (*domain.Project, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// GetByName retrieves a project by name within a fiscal year
func (r *ProjectRepository) GetByName(yearID, name string) (*domain.Project, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE year_id = $1 AND name = $2`, yearID, name)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// GetAll retrieves every project ordered by year then name
func (r *ProjectRepository) GetAll() ([]*domain.Project, error) {
	return r.query(`SELECT ` + projectColumns + ` FROM projects ORDER BY year_id DESC, name`)
}

// GetByYear retrieves the projects of a fiscal year
func (r *ProjectRepository) GetByYear(yearID string) ([]*domain.Project, error) {
	return r.query(`SELECT `+projectColumns+` FROM projects WHERE year_id = $1 ORDER BY name`, yearID)
}

// Update changes a project's name, type, and year
func (r *ProjectRepository) Update(project *domain.Project) (*domain.Project, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE projects SET name = $2, type = $3, year_id = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+projectColumns,
		project.ID, project.Name, string(project.Type), project.YearID)

	updated, err := scanProject(row)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, domain.ErrProjectNotFound
		case isPgUniqueViolation(err):
			return nil, domain.ErrAlreadyExists
		case isPgForeignKeyViolation(err):
			return nil, domain.ErrYearNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a project. Its entries and assets must already be gone.
func (r *ProjectRepository) Delete(id string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) query(sql string, args ...any) ([]*domain.Project, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var projectType string
	if err := row.Scan(&p.ID, &p.Name, &projectType, &p.YearID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Type = domain.ProjectType(projectType)
	return &p, nil
}
