package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/edunexus-dev/cu-admissions-api/internal/models"
)

const correctionRequestColumns = `id, student_id, status,
       gender_correction, nationality_correction, aadhaar_correction, apaar_correction, subjects_correction,
       introductory_declared, personal_info_declared, address_declared, subjects_declared, documents_declared,
       online_registration_done, physically_registered, application_number, remarks, created_at, updated_at`

// CorrectionRequestRepository handles registration request persistence.
type CorrectionRequestRepository struct {
	db *sqlx.DB
}

// NewCorrectionRequestRepository constructs the repository.
func NewCorrectionRequestRepository(db *sqlx.DB) *CorrectionRequestRepository {
	return &CorrectionRequestRepository{db: db}
}

// GetByID retrieves one correction request row.
func (r *CorrectionRequestRepository) GetByID(ctx context.Context, id int64) (*models.CorrectionRequest, error) {
	query := `SELECT ` + correctionRequestColumns + ` FROM cu_correction_requests WHERE id = $1`
	var req models.CorrectionRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		return nil, err
	}
	return &req, nil
}

// GetByStudentID retrieves the request belonging to a student, if any.
func (r *CorrectionRequestRepository) GetByStudentID(ctx context.Context, studentID int64) (*models.CorrectionRequest, error) {
	query := `SELECT ` + correctionRequestColumns + ` FROM cu_correction_requests WHERE student_id = $1`
	var req models.CorrectionRequest
	if err := r.db.GetContext(ctx, &req, query, studentID); err != nil {
		return nil, err
	}
	return &req, nil
}

// List returns requests matching the filter plus the total match count.
func (r *CorrectionRequestRepository) List(ctx context.Context, filter models.CorrectionRequestFilter) ([]models.CorrectionRequest, int64, error) {
	args := make([]interface{}, 0, 4)
	conditions := make([]string, 0, 4)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(s.full_name ILIKE $%d OR s.uid ILIKE $%d OR r.application_number ILIKE $%d)", n, n, n))
	}
	if filter.DeclarationsComplete != nil {
		cond := "(r.introductory_declared AND r.personal_info_declared AND r.address_declared AND r.subjects_declared AND r.documents_declared)"
		if !*filter.DeclarationsComplete {
			cond = "NOT " + cond
		}
		conditions = append(conditions, cond)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `SELECT COUNT(*) FROM cu_correction_requests r JOIN students s ON s.id = r.student_id` + where
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count correction requests: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 20
	}

	builder := strings.Builder{}
	builder.WriteString(`SELECT `)
	builder.WriteString(prefixColumns("r", correctionRequestColumns))
	builder.WriteString(` FROM cu_correction_requests r JOIN students s ON s.id = r.student_id`)
	builder.WriteString(where)
	builder.WriteString(" ORDER BY r.updated_at DESC")
	builder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", size, (page-1)*size))

	var records []models.CorrectionRequest
	if err := r.db.SelectContext(ctx, &records, builder.String(), args...); err != nil {
		return nil, 0, fmt.Errorf("list correction requests: %w", err)
	}
	return records, total, nil
}

// ApplySubmission records a batch submission. Correction flags replace the
// stored ones, declaration flags only ever move to true, and the
// application number is written once: a later submission never overwrites
// an assigned number.
func (r *CorrectionRequestRepository) ApplySubmission(ctx context.Context, id int64, upd models.CorrectionRequestUpdate) (*models.CorrectionRequest, error) {
	query := `UPDATE cu_correction_requests SET
		status = $2,
		gender_correction = $3,
		nationality_correction = $4,
		aadhaar_correction = $5,
		apaar_correction = $6,
		subjects_correction = $7,
		introductory_declared = introductory_declared OR $8,
		personal_info_declared = personal_info_declared OR $8,
		address_declared = address_declared OR $8,
		subjects_declared = subjects_declared OR $8,
		documents_declared = documents_declared OR $8,
		online_registration_done = online_registration_done OR $9,
		application_number = COALESCE(application_number, $10),
		updated_at = NOW()
	WHERE id = $1
	RETURNING ` + correctionRequestColumns
	var req models.CorrectionRequest
	err := r.db.GetContext(ctx, &req, query, id,
		upd.Status,
		upd.Flags.Gender, upd.Flags.Nationality, upd.Flags.AadhaarNumber, upd.Flags.ApaarID, upd.Flags.Subjects,
		upd.DeclareAll, upd.OnlineRegistrationDone, upd.ApplicationNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("apply submission: %w", err)
	}
	return &req, nil
}

// MarkPhysicallyRegistered flips the on-campus verification flag.
func (r *CorrectionRequestRepository) MarkPhysicallyRegistered(ctx context.Context, id int64) error {
	const query = `UPDATE cu_correction_requests SET physically_registered = TRUE, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark physically registered: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check physically registered rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// prefixColumns qualifies a comma separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
