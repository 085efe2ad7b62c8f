package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/schedulo-api/internal/models"
)

func TestClassRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewClassRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT id, name, size, created_at, updated_at FROM classes").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "size", "created_at", "updated_at"}).
			AddRow("class-1", "X-A", 32, now, now).
			AddRow("class-2", "X-B", 0, now, now))

	classes, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Equal(t, 32, classes[0].Size)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryListAssignments(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewClassRepository(db)

	columns := []string{"class_id", "subject_id", "subject_name", "subject_code", "kind", "sessions_per_week", "lab_length", "faculty_ids"}
	mock.ExpectQuery("FROM class_subjects cs\\s+JOIN subjects s").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("class-1", "math", "Mathematics", "MTH", "lecture", 4, 0, "{fac-1,fac-2}").
			AddRow("class-1", "chem", "Chemistry Lab", "CHL", "lab", 1, 3, "{}"))

	assignments, err := repo.ListAssignments(context.Background())
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	assert.Equal(t, pq.StringArray{"fac-1", "fac-2"}, assignments[0].FacultyIDs)
	assert.Equal(t, models.SubjectKindLab, assignments[1].Kind)
	assert.Empty(t, assignments[1].FacultyIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryListError(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery("FROM classes").WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list classes")
}
