package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/edunexus-dev/cu-admissions-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func correctionRequestRows(id int64, number *string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "student_id", "status",
		"gender_correction", "nationality_correction", "aadhaar_correction", "apaar_correction", "subjects_correction",
		"introductory_declared", "personal_info_declared", "address_declared", "subjects_declared", "documents_declared",
		"online_registration_done", "physically_registered", "application_number", "remarks", "created_at", "updated_at",
	}).AddRow(id, int64(7), "PENDING",
		false, false, false, false, false,
		true, true, true, true, true,
		true, false, number, nil, time.Now(), time.Now())
}

func TestCorrectionRequestRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewCorrectionRequestRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, student_id, status")).
		WithArgs(int64(42)).
		WillReturnRows(correctionRequestRows(42, nil))

	req, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, int64(42), req.ID)
	require.Equal(t, models.CorrectionStatusPending, req.Status)
	require.True(t, req.AllDeclarationsDone())
	require.Nil(t, req.ApplicationNumber)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCorrectionRequestRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewCorrectionRequestRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, student_id, status")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCorrectionRequestRepositoryApplySubmission(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewCorrectionRequestRepository(db)
	number := "0170001"
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE cu_correction_requests SET")).
		WithArgs(int64(42), "APPROVED",
			false, false, false, false, false,
			true, true, number).
		WillReturnRows(correctionRequestRows(42, &number))

	req, err := repo.ApplySubmission(context.Background(), 42, models.CorrectionRequestUpdate{
		Status:                 models.CorrectionStatusApproved,
		DeclareAll:             true,
		OnlineRegistrationDone: true,
		ApplicationNumber:      &number,
	})
	require.NoError(t, err)
	require.NotNil(t, req.ApplicationNumber)
	require.Equal(t, number, *req.ApplicationNumber)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCorrectionRequestRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewCorrectionRequestRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM cu_correction_requests r JOIN students s")).
		WithArgs("APPROVED", "%rahul%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM cu_correction_requests r JOIN students s")).
		WithArgs("APPROVED", "%rahul%").
		WillReturnRows(correctionRequestRows(42, nil))

	records, total, err := repo.List(context.Background(), models.CorrectionRequestFilter{
		Status: models.CorrectionStatusApproved,
		Search: "rahul",
		Page:   1,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCorrectionRequestRepositoryMarkPhysicallyRegistered(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewCorrectionRequestRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE cu_correction_requests SET physically_registered = TRUE")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.MarkPhysicallyRegistered(context.Background(), 42))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE cu_correction_requests SET physically_registered = TRUE")).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.MarkPhysicallyRegistered(context.Background(), 99), sql.ErrNoRows)
}
