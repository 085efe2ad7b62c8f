package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/schedulo-api/internal/models"
)

func TestFacultyRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, name, max_periods_per_day, weekly_load_limit, availability FROM faculty").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "max_periods_per_day", "weekly_load_limit", "availability"}).
			AddRow("fac-1", "Ana", 4, 20, `{"Mon":[1,2,3]}`))

	faculty, err := NewFacultyRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, faculty, 1)
	assert.JSONEq(t, `{"Mon":[1,2,3]}`, faculty[0].Availability.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, name, kind, capacity, availability FROM rooms").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "kind", "capacity", "availability"}).
			AddRow("room-1", "Lab 1", "lab", 30, nil))

	rooms, err := NewRoomRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, models.RoomKindLab, rooms[0].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryList(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery("FROM subjects ORDER BY code").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "kind", "sessions_per_week", "lab_length"}).
			AddRow("math", "MTH", "Mathematics", "lecture", 4, 0))

	subjects, err := NewSubjectRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, 4, subjects[0].SessionsPerWeek)
	assert.NoError(t, mock.ExpectationsWereMet())
}
