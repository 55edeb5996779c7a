package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/edunexus-dev/cu-admissions-api/internal/models"
)

// DocumentRepository reads the registration document catalogue.
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository constructs the repository.
func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// FindByName looks up a catalogue entry by its display name.
func (r *DocumentRepository) FindByName(ctx context.Context, name string) (*models.Document, error) {
	const query = `SELECT id, name, code, description, created_at, updated_at FROM documents WHERE name = $1`
	var doc models.Document
	if err := r.db.GetContext(ctx, &doc, query, name); err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindByID looks up a catalogue entry by primary key.
func (r *DocumentRepository) FindByID(ctx context.Context, id int64) (*models.Document, error) {
	const query = `SELECT id, name, code, description, created_at, updated_at FROM documents WHERE id = $1`
	var doc models.Document
	if err := r.db.GetContext(ctx, &doc, query, id); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListAll returns the full catalogue ordered by name.
func (r *DocumentRepository) ListAll(ctx context.Context) ([]models.Document, error) {
	const query = `SELECT id, name, code, description, created_at, updated_at FROM documents ORDER BY name ASC`
	var docs []models.Document
	if err := r.db.SelectContext(ctx, &docs, query); err != nil {
		return nil, err
	}
	return docs, nil
}
