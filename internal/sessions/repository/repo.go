package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/measured-tracker/measured-backend/internal/pagination"
	projdomain "github.com/measured-tracker/measured-backend/internal/projects/domain"
	"github.com/measured-tracker/measured-backend/internal/sessions/domain"
)

// SessionRepository provides persistence operations for sessions
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session after verifying the project exists. The full
// row is re-read from storage so the server-assigned id and created_at are
// returned, never client-echoed values.
func (r *SessionRepository) Create(ctx context.Context, projectID int64, start domain.Timestamp, end *domain.Timestamp) (*domain.Session, error) {
	exists, err := r.projectExists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, projdomain.ErrProjectNotFound
	}

	const q = `
INSERT INTO sessions (project_id, start_time, end_time)
VALUES ($1, $2, $3)
RETURNING id;
`
	var endArg any
	if end != nil {
		endArg = end.String()
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, q, projectID, start.String(), endArg).Scan(&id); err != nil {
		// The project may have vanished between the existence check and the
		// insert; the foreign key violation maps to the same signal.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, projdomain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return r.Get(ctx, id)
}

// Get returns the session with the given id.
func (r *SessionRepository) Get(ctx context.Context, id int64) (*domain.Session, error) {
	const q = `
SELECT id, project_id, start_time, end_time, created_at
FROM sessions
WHERE id = $1;
`
	s, err := scanSession(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// List returns one page of sessions ordered by created_at descending (id
// breaks ties) together with the total row count across all pages. The
// total comes from an independent COUNT so a page past the end of the data
// yields an empty slice with the true total.
func (r *SessionRepository) List(ctx context.Context, page, pageSize int) ([]domain.Session, int64, error) {
	const countQ = `SELECT COUNT(*) FROM sessions;`

	var total int64
	if err := r.db.QueryRowContext(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	const q = `
SELECT id, project_id, start_time, end_time, created_at
FROM sessions
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2;
`
	offset, limit := pagination.Window(page, pageSize)

	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Session, 0, limit)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update replaces a session's start and end times. created_at and
// project_id are never touched. The updated row is re-read from storage.
func (r *SessionRepository) Update(ctx context.Context, id int64, start domain.Timestamp, end *domain.Timestamp) (*domain.Session, error) {
	const q = `
UPDATE sessions
SET start_time = $2, end_time = $3
WHERE id = $1
RETURNING id;
`
	var endArg any
	if end != nil {
		endArg = end.String()
	}

	var updatedID int64
	if err := r.db.QueryRowContext(ctx, q, id, start.String(), endArg).Scan(&updatedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return r.Get(ctx, updatedID)
}

func (r *SessionRepository) projectExists(ctx context.Context, projectID int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1);`

	var exists bool
	if err := r.db.QueryRowContext(ctx, q, projectID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check if project exists: %w", err)
	}
	return exists, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSession converts a generic result row into a Session, keeping
// driver-level column access out of the domain and handlers.
func scanSession(row rowScanner) (*domain.Session, error) {
	var (
		s     domain.Session
		start string
		end   sql.NullString
	)
	if err := row.Scan(&s.ID, &s.ProjectID, &start, &end, &s.CreatedAt); err != nil {
		return nil, err
	}

	parsedStart, err := domain.ParseTimestamp(start)
	if err != nil {
		return nil, fmt.Errorf("stored start_time is malformed: %w", err)
	}
	s.StartTime = parsedStart

	if end.Valid {
		parsedEnd, err := domain.ParseTimestamp(end.String)
		if err != nil {
			return nil, fmt.Errorf("stored end_time is malformed: %w", err)
		}
		s.EndTime = &parsedEnd
	}

	return &s, nil
}
