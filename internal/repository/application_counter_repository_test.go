package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestApplicationCounterRepositoryNext(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewApplicationCounterRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO cu_application_counters")).
		WithArgs("2025").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(1))

	value, err := repo.Next(context.Background(), "2025")
	require.NoError(t, err)
	require.Equal(t, int64(1), value)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO cu_application_counters")).
		WithArgs("2025").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(2))

	value, err = repo.Next(context.Background(), "2025")
	require.NoError(t, err)
	require.Equal(t, int64(2), value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationCounterRepositoryCurrentUnused(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewApplicationCounterRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT last_value FROM cu_application_counters")).
		WithArgs("2026").
		WillReturnError(sql.ErrNoRows)

	value, err := repo.Current(context.Background(), "2026")
	require.NoError(t, err)
	require.Zero(t, value)
	require.NoError(t, mock.ExpectationsWereMet())
}
