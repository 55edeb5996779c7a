package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/edunexus-dev/cu-admissions-api/internal/models"
)

const studentColumns = `id, uid, full_name, email, phone, course_code, gender, nationality,
       aadhaar_number, apaar_id, residential_address, mailing_address, created_at, updated_at`

// StudentRepository handles student profile persistence.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// GetByID retrieves one student row.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// GetByUID retrieves a student by admission identifier.
func (r *StudentRepository) GetByUID(ctx context.Context, uid string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE uid = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, uid); err != nil {
		return nil, err
	}
	return &student, nil
}

// ApplyCorrections writes the supplied profile values onto a student row.
// Nil fields are untouched; an empty corrections value is a no-op.
func (r *StudentRepository) ApplyCorrections(ctx context.Context, id int64, c models.StudentCorrections) error {
	if c.Empty() {
		return nil
	}
	sets := make([]string, 0, 6)
	args := make([]interface{}, 0, 7)
	args = append(args, id)

	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("gender", c.Gender)
	add("nationality", c.Nationality)
	add("aadhaar_number", c.AadhaarNumber)
	add("apaar_id", c.ApaarID)
	add("residential_address", c.ResidentialAddress)
	add("mailing_address", c.MailingAddress)
	if len(sets) == 0 {
		return nil
	}

	query := `UPDATE students SET ` + strings.Join(sets, ", ") + `, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("apply student corrections: %w", err)
	}
	return nil
}
