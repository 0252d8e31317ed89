package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/measured-tracker/measured-backend/internal/projects/domain"
)

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List returns all projects ordered by ascending id.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	const q = `
SELECT id, name
FROM projects
ORDER BY id ASC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Seed inserts the given project names, skipping any that already exist.
// Used by the bootstrap seeder, not by the API surface.
func (r *ProjectRepository) Seed(ctx context.Context, names []string) error {
	const q = `
INSERT INTO projects (name)
VALUES ($1)
ON CONFLICT (name) DO NOTHING;
`
	for _, name := range names {
		if _, err := r.db.ExecContext(ctx, q, name); err != nil {
			return fmt.Errorf("failed to seed project %q: %w", name, err)
		}
	}
	return nil
}
