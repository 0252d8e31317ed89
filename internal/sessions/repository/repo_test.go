package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	projdomain "github.com/measured-tracker/measured-backend/internal/projects/domain"
	"github.com/measured-tracker/measured-backend/internal/sessions/domain"
)

func setupSessionRepo(t *testing.T) (*SessionRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewSessionRepository(db)
	return repo, mock, db
}

func mustParse(t *testing.T, s string) domain.Timestamp {
	ts, err := domain.ParseTimestamp(s)
	require.NoError(t, err)
	return ts
}

func sessionColumns() []string {
	return []string{"id", "project_id", "start_time", "end_time", "created_at"}
}

func TestSessionRepository_Create(t *testing.T) {
	repo, mock, db := setupSessionRepo(t)
	defer db.Close()

	t.Run("creates an open session and re-reads the row", func(t *testing.T) {
		createdAt := time.Now().UTC()
		start := mustParse(t, "2024-03-01T09:30:00+05:30")

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		mock.ExpectQuery(`INSERT INTO sessions`).
			WithArgs(int64(3), "2024-03-01T09:30:00+05:30", nil).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		mock.ExpectQuery(`SELECT id, project_id, start_time`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(sessionColumns()).
				AddRow(int64(7), int64(3), "2024-03-01T09:30:00+05:30", nil, createdAt))

		s, err := repo.Create(context.Background(), 3, start, nil)
		require.NoError(t, err)

		assert.Equal(t, int64(7), s.ID)
		assert.Equal(t, int64(3), s.ProjectID)
		assert.Equal(t, "2024-03-01T09:30:00+05:30", s.StartTime.String())
		assert.Nil(t, s.EndTime)
		assert.True(t, s.Open())
		assert.Equal(t, createdAt, s.CreatedAt)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creates a closed session when an end time is supplied", func(t *testing.T) {
		start := mustParse(t, "2024-03-01T09:30:00")
		end := mustParse(t, "2024-03-01T11:00:00")

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		mock.ExpectQuery(`INSERT INTO sessions`).
			WithArgs(int64(3), "2024-03-01T09:30:00", "2024-03-01T11:00:00").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))

		mock.ExpectQuery(`SELECT id, project_id, start_time`).
			WithArgs(int64(8)).
			WillReturnRows(sqlmock.NewRows(sessionColumns()).
				AddRow(int64(8), int64(3), "2024-03-01T09:30:00", "2024-03-01T11:00:00", time.Now()))

		s, err := repo.Create(context.Background(), 3, start, &end)
		require.NoError(t, err)
		require.NotNil(t, s.EndTime)
		assert.Equal(t, "2024-03-01T11:00:00", s.EndTime.String())
		assert.False(t, s.Open())

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a non-existent project without inserting", func(t *testing.T) {
		start := mustParse(t, "2024-03-01T09:30:00")

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(int64(99999)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := repo.Create(context.Background(), 99999, start, nil)
		assert.ErrorIs(t, err, projdomain.ErrProjectNotFound)

		// No INSERT expectation was registered; this fails if one ran.
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionRepository_Get(t *testing.T) {
	repo, mock, db := setupSessionRepo(t)
	defer db.Close()

	t.Run("returns the session", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, project_id, start_time`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(sessionColumns()).
				AddRow(int64(7), int64(3), "2024-03-01T09:30:00", nil, time.Now()))

		s, err := repo.Get(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), s.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("signals not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, project_id, start_time`).
			WithArgs(int64(99999)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), 99999)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionRepository_List(t *testing.T) {
	repo, mock, db := setupSessionRepo(t)
	defer db.Close()

	now := time.Now().UTC()

	t.Run("returns a full page with the independent total", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))

		mock.ExpectQuery(`SELECT id, project_id, start_time`).
			WithArgs(2, 0).
			WillReturnRows(sqlmock.NewRows(sessionColumns()).
				AddRow(int64(5), int64(1), "2024-03-05T09:00:00", nil, now).
				AddRow(int64(4), int64(1), "2024-03-04T09:00:00", nil, now.Add(-time.Hour)))

		items, total, err := repo.List(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, int64(5), total)

		// Most recently created first.
		assert.Equal(t, int64(5), items[0].ID)
		assert.Equal(t, int64(4), items[1].ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("computes the offset from the page number", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))

		mock.ExpectQuery(`SELECT id, project_id, start_time`).
			WithArgs(2, 4).
			WillReturnRows(sqlmock.NewRows(sessionColumns()).
				AddRow(int64(1), int64(1), "2024-03-01T09:00:00", nil, now))

		items, total, err := repo.List(context.Background(), 3, 2)
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, int64(5), total)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a page past the end is empty with the true total", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))

		mock.ExpectQuery(`SELECT id, project_id, start_time`).
			WithArgs(2, 18).
			WillReturnRows(sqlmock.NewRows(sessionColumns()))

		items, total, err := repo.List(context.Background(), 10, 2)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		assert.Equal(t, int64(5), total)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionRepository_Update(t *testing.T) {
	repo, mock, db := setupSessionRepo(t)
	defer db.Close()

	t.Run("replaces the times and re-reads the row", func(t *testing.T) {
		createdAt := time.Now().UTC()
		start := mustParse(t, "2024-03-01T09:30:00")
		end := mustParse(t, "2024-03-01T12:00:00")

		mock.ExpectQuery(`UPDATE sessions`).
			WithArgs(int64(7), "2024-03-01T09:30:00", "2024-03-01T12:00:00").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		mock.ExpectQuery(`SELECT id, project_id, start_time`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(sessionColumns()).
				AddRow(int64(7), int64(3), "2024-03-01T09:30:00", "2024-03-01T12:00:00", createdAt))

		s, err := repo.Update(context.Background(), 7, start, &end)
		require.NoError(t, err)

		// created_at and project_id come back from storage untouched.
		assert.Equal(t, createdAt, s.CreatedAt)
		assert.Equal(t, int64(3), s.ProjectID)
		require.NotNil(t, s.EndTime)
		assert.Equal(t, "2024-03-01T12:00:00", s.EndTime.String())

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reopens a session when the end time is cleared", func(t *testing.T) {
		start := mustParse(t, "2024-03-01T09:30:00")

		mock.ExpectQuery(`UPDATE sessions`).
			WithArgs(int64(7), "2024-03-01T09:30:00", nil).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		mock.ExpectQuery(`SELECT id, project_id, start_time`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(sessionColumns()).
				AddRow(int64(7), int64(3), "2024-03-01T09:30:00", nil, time.Now()))

		s, err := repo.Update(context.Background(), 7, start, nil)
		require.NoError(t, err)
		assert.True(t, s.Open())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("signals not found and performs no mutation", func(t *testing.T) {
		start := mustParse(t, "2024-03-01T09:30:00")

		mock.ExpectQuery(`UPDATE sessions`).
			WithArgs(int64(99999), "2024-03-01T09:30:00", nil).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(context.Background(), 99999, start, nil)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		start := mustParse(t, "2024-03-01T09:30:00")

		mock.ExpectQuery(`UPDATE sessions`).
			WithArgs(int64(7), "2024-03-01T09:30:00", nil).
			WillReturnError(fmt.Errorf("connection reset"))

		_, err := repo.Update(context.Background(), 7, start, nil)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
