package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/edunexus-dev/cu-admissions-api/internal/models"
)

func TestStudentRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	rows := sqlmock.NewRows([]string{
		"id", "uid", "full_name", "email", "phone", "course_code", "gender", "nationality",
		"aadhaar_number", "apaar_id", "residential_address", "mailing_address", "created_at", "updated_at",
	}).AddRow(int64(7), "1012250042", "Rahul Sen", "rahul@example.edu", nil, nil, nil, nil,
		nil, nil, nil, nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, uid, full_name")).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	student, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "1012250042", student.UID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryApplyCorrectionsPartial(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	gender := "FEMALE"
	aadhaar := "123412341234"

	// Only the provided columns appear in the statement.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET gender = $2, aadhaar_number = $3")).
		WithArgs(int64(7), gender, aadhaar).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ApplyCorrections(context.Background(), 7, models.StudentCorrections{
		Gender:        &gender,
		AadhaarNumber: &aadhaar,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryApplyCorrectionsEmptyIsNoop(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewStudentRepository(db)
	require.NoError(t, repo.ApplyCorrections(context.Background(), 7, models.StudentCorrections{}))
	require.NoError(t, mock.ExpectationsWereMet())
}
