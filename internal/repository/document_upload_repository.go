package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edunexus-dev/cu-admissions-api/internal/models"
)

// DocumentUploadRepository persists stored file records.
type DocumentUploadRepository struct {
	db *sqlx.DB
}

// NewDocumentUploadRepository constructs the repository.
func NewDocumentUploadRepository(db *sqlx.DB) *DocumentUploadRepository {
	return &DocumentUploadRepository{db: db}
}

// Create stores the record for one uploaded file.
func (r *DocumentUploadRepository) Create(ctx context.Context, upload *models.DocumentUpload) error {
	if upload.ID == "" {
		upload.ID = uuid.NewString()
	}
	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO cu_document_uploads
	(id, correction_request_id, document_id, file_name, file_type, file_size_bytes, storage_key, document_url, remarks, created_at)
	VALUES (:id, :correction_request_id, :document_id, :file_name, :file_type, :file_size_bytes, :storage_key, :document_url, :remarks, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, upload); err != nil {
		return fmt.Errorf("create document upload: %w", err)
	}
	return nil
}

// GetByID retrieves one upload record.
func (r *DocumentUploadRepository) GetByID(ctx context.Context, id string) (*models.DocumentUpload, error) {
	const query = `SELECT id, correction_request_id, document_id, file_name, file_type, file_size_bytes,
       storage_key, document_url, remarks, created_at
	FROM cu_document_uploads WHERE id = $1`
	var upload models.DocumentUpload
	if err := r.db.GetContext(ctx, &upload, query, id); err != nil {
		return nil, err
	}
	return &upload, nil
}

// ListByRequest returns the uploads attached to a correction request.
func (r *DocumentUploadRepository) ListByRequest(ctx context.Context, requestID int64) ([]models.DocumentUpload, error) {
	const query = `SELECT id, correction_request_id, document_id, file_name, file_type, file_size_bytes,
       storage_key, document_url, remarks, created_at
	FROM cu_document_uploads WHERE correction_request_id = $1 ORDER BY created_at ASC`
	var uploads []models.DocumentUpload
	if err := r.db.SelectContext(ctx, &uploads, query, requestID); err != nil {
		return nil, fmt.Errorf("list document uploads: %w", err)
	}
	return uploads, nil
}
