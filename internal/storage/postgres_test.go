package storage_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/storage"
)

func newMockStorage(t *testing.T) (*storage.PostgresStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return storage.NewPostgresStorage(db), mock
}

var projectCols = []string{"id", "title", "description", "image", "technologies", "demo_link", "code_link", "created_at", "updated_at"}

func TestPostgresStorage_CreateProject(t *testing.T) {
	store, mock := newMockStorage(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO projects (title, description, image, technologies, demo_link, code_link)")).
		WithArgs("X", "desc", "img", sqlmock.AnyArg(), "demo", "code").
		WillReturnRows(sqlmock.NewRows(projectCols).
			AddRow(1, "X", "desc", "img", []byte(`["A","B"]`), "demo", "code", now, now))

	p, err := store.CreateProject(context.Background(), models.InsertProject{
		Title:        "X",
		Description:  "desc",
		Image:        "img",
		Technologies: []string{"A", "B"},
		DemoLink:     "demo",
		CodeLink:     "code",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, []string{"A", "B"}, p.Technologies)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_GetProject_NotFound(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM projects")).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetProject(context.Background(), 42)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_UpdateProject_Partial(t *testing.T) {
	store, mock := newMockStorage(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE projects")).
		WithArgs("Renamed", 1).
		WillReturnRows(sqlmock.NewRows(projectCols).
			AddRow(1, "Renamed", "desc", "img", []byte(`["A"]`), "demo", "code", now.Add(-time.Hour), now))

	title := "Renamed"
	p, err := store.UpdateProject(context.Background(), 1, models.UpdateProject{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Title)
	assert.True(t, p.UpdatedAt.After(p.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_UpdateProject_NotFound(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE projects")).
		WithArgs("Renamed", 42).
		WillReturnError(sql.ErrNoRows)

	title := "Renamed"
	_, err := store.UpdateProject(context.Background(), 42, models.UpdateProject{Title: &title})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_DeleteProject(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM projects WHERE id = $1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := store.DeleteProject(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM projects WHERE id = $1")).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err = store.DeleteProject(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_ListSkillsByCategory(t *testing.T) {
	store, mock := newMockStorage(t)
	now := time.Now()
	cols := []string{"id", "name", "category", "level", "icon", "created_at", "updated_at"}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE category = $1")).
		WithArgs("frontend").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "React", "frontend", 90, "react-icon", now, now).
			AddRow(2, "CSS", "frontend", 80, "", now, now))

	skills, err := store.ListSkillsByCategory(context.Background(), "frontend")
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, "frontend", skills[0].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_ListProjects_Empty(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM projects")).
		WillReturnRows(sqlmock.NewRows(projectCols))

	projects, err := store.ListProjects(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_MarkMessageRead(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE messages")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	marked, err := store.MarkMessageRead(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, marked)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE messages")).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	marked, err = store.MarkMessageRead(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, marked)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_CreateMessage_DefaultsUnread(t *testing.T) {
	store, mock := newMockStorage(t)
	now := time.Now()
	cols := []string{"id", "name", "email", "message", "read", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO messages (name, email, message)")).
		WithArgs("Jordan", "jordan@example.com", "Hi").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(7, "Jordan", "jordan@example.com", "Hi", 0, now))

	msg, err := store.CreateMessage(context.Background(), models.InsertMessage{
		Name:    "Jordan",
		Email:   "jordan@example.com",
		Message: "Hi",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, msg.ID)
	assert.Equal(t, 0, msg.Read)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_ListResumeEntries_Ordered(t *testing.T) {
	store, mock := newMockStorage(t)
	now := time.Now()
	cols := []string{"id", "title", "organization", "period", "description", "type", "sort_order", "created_at", "updated_at"}

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY sort_order, id")).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(2, "first", "Org", "2019", "d", "experience", 1, now, now).
			AddRow(1, "second", "Org", "2021", "d", "education", 2, now, now))

	entries, err := store.ListResumeEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_GetUserByUsername(t *testing.T) {
	store, mock := newMockStorage(t)
	now := time.Now()
	cols := []string{"id", "username", "password", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1")).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "admin", "hash", now))

	u, err := store.GetUserByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err = store.GetUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
