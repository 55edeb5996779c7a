package models

import "time"

// Document is a catalogue entry for a kind of registration document.
type Document struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Code        string    `db:"code" json:"code"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// DocumentUpload records one stored file tied to a correction request.
type DocumentUpload struct {
	ID                  string    `db:"id" json:"id"`
	CorrectionRequestID int64     `db:"correction_request_id" json:"correctionRequestId"`
	DocumentID          int64     `db:"document_id" json:"documentId"`
	FileName            string    `db:"file_name" json:"fileName"`
	FileType            string    `db:"file_type" json:"fileType"`
	FileSizeBytes       int64     `db:"file_size_bytes" json:"fileSizeBytes"`
	StorageKey          string    `db:"storage_key" json:"storageKey"`
	DocumentURL         string    `db:"document_url" json:"documentUrl"`
	Remarks             *string   `db:"remarks" json:"remarks,omitempty"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
}
