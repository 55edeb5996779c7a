package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/edunexus-dev/cu-admissions-api/internal/dto"
	"github.com/edunexus-dev/cu-admissions-api/internal/models"
	appErrors "github.com/edunexus-dev/cu-admissions-api/pkg/errors"
)

type correctionRequestStore interface {
	GetByID(ctx context.Context, id int64) (*models.CorrectionRequest, error)
	List(ctx context.Context, filter models.CorrectionRequestFilter) ([]models.CorrectionRequest, int64, error)
	ApplySubmission(ctx context.Context, id int64, upd models.CorrectionRequestUpdate) (*models.CorrectionRequest, error)
	MarkPhysicallyRegistered(ctx context.Context, id int64) error
}

type studentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	ApplyCorrections(ctx context.Context, id int64, c models.StudentCorrections) error
}

type documentCatalog interface {
	FindByName(ctx context.Context, name string) (*models.Document, error)
}

type documentUploadStore interface {
	Create(ctx context.Context, upload *models.DocumentUpload) error
	ListByRequest(ctx context.Context, requestID int64) ([]models.DocumentUpload, error)
}

type numberAllocator interface {
	Allocate(ctx context.Context) (string, error)
}

type imageConverter interface {
	Convert(data []byte, settings ConversionSettings) ([]byte, error)
}

type fileUploader interface {
	Store(ctx context.Context, key string, data []byte, contentType string) (StoredFile, error)
}

type formRenderer interface {
	RenderRegistrationForm(data RegistrationFormData) ([]byte, error)
}

type registrationNotifier interface {
	NotifyRegistered(student *models.Student, applicationNumber string, formPDF []byte, formURL string) bool
}

type registrationMetrics interface {
	RecordSubmission(outcome string)
	RecordDocumentStored()
}

// SubmittedFile is one multipart file from a batch submission.
type SubmittedFile struct {
	FileName string
	Data     []byte
}

// RegistrationService orchestrates the batch submission pipeline: it
// updates the correction request, allocates the application number,
// stores converted documents and triggers post-submission side effects.
type RegistrationService struct {
	requests  correctionRequestStore
	students  studentStore
	catalog   documentCatalog
	uploads   documentUploadStore
	allocator numberAllocator
	paths     *DocumentPathService
	images    imageConverter
	files     fileUploader
	pdf       formRenderer
	notifier  registrationNotifier
	metrics   registrationMetrics
	logger    *zap.Logger
}

// NewRegistrationService constructs the orchestrator.
func NewRegistrationService(
	requests correctionRequestStore,
	students studentStore,
	catalog documentCatalog,
	uploads documentUploadStore,
	allocator numberAllocator,
	paths *DocumentPathService,
	images imageConverter,
	files fileUploader,
	pdf formRenderer,
	logger *zap.Logger,
) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		requests:  requests,
		students:  students,
		catalog:   catalog,
		uploads:   uploads,
		allocator: allocator,
		paths:     paths,
		images:    images,
		files:     files,
		pdf:       pdf,
		logger:    logger,
	}
}

// WithNotifier attaches the confirmation mail sender.
func (s *RegistrationService) WithNotifier(n registrationNotifier) *RegistrationService {
	s.notifier = n
	return s
}

// WithMetrics attaches domain counters.
func (s *RegistrationService) WithMetrics(m registrationMetrics) *RegistrationService {
	s.metrics = m
	return s
}

// Get returns one correction request with its uploads.
func (s *RegistrationService) Get(ctx context.Context, id int64) (*dto.BatchSubmitResponse, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrCorrectionRequestNotFound
		}
		return nil, appErrors.ErrDatabaseOperation.Wrap(err)
	}
	uploads, err := s.uploads.ListByRequest(ctx, id)
	if err != nil {
		return nil, appErrors.ErrDatabaseOperation.Wrap(err)
	}
	outcomes := make([]dto.UploadOutcome, 0, len(uploads))
	for i := range uploads {
		outcomes = append(outcomes, dto.UploadOutcome{
			FileName: uploads[i].FileName,
			Stored:   true,
			Upload:   &uploads[i],
		})
	}
	return &dto.BatchSubmitResponse{Request: req, Uploads: outcomes}, nil
}

// List returns correction requests matching the filter.
func (s *RegistrationService) List(ctx context.Context, filter models.CorrectionRequestFilter) ([]models.CorrectionRequest, int64, error) {
	records, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.ErrDatabaseOperation.Wrap(err)
	}
	return records, total, nil
}

// MarkPhysicallyRegistered records on-campus verification.
func (s *RegistrationService) MarkPhysicallyRegistered(ctx context.Context, id int64) error {
	if err := s.requests.MarkPhysicallyRegistered(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrCorrectionRequestNotFound
		}
		return appErrors.ErrDatabaseOperation.Wrap(err)
	}
	return nil
}

// BatchSubmit runs the full submission pipeline. File failures are
// isolated: one bad document never sinks the submission. The returned
// meta lists every side effect and how it fared.
func (s *RegistrationService) BatchSubmit(ctx context.Context, form dto.BatchSubmitForm, files []SubmittedFile) (*dto.BatchSubmitResponse, *dto.BatchSubmitMeta, error) {
	req, err := s.requests.GetByID(ctx, form.CorrectionRequestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.recordSubmission("rejected")
			return nil, nil, appErrors.ErrCorrectionRequestNotFound
		}
		return nil, nil, appErrors.ErrDatabaseOperation.Wrap(err)
	}
	if req.PhysicallyRegistered {
		s.recordSubmission("rejected")
		return nil, nil, appErrors.ErrRequestFinalized
	}

	student, err := s.students.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.ErrNotFound.Wrap(fmt.Errorf("student %d", req.StudentID))
		}
		return nil, nil, appErrors.ErrDatabaseOperation.Wrap(err)
	}

	// The number must exist before any document path can be resolved.
	applicationNumber := ""
	if req.ApplicationNumber != nil {
		applicationNumber = *req.ApplicationNumber
	} else {
		applicationNumber, err = s.allocator.Allocate(ctx)
		if err != nil {
			s.recordSubmission("failed")
			return nil, nil, err
		}
	}

	status := models.CorrectionStatusApproved
	if form.Flags.Any() {
		status = models.CorrectionStatusRequestCorrection
	}
	alreadyFinalized := req.OnlineRegistrationDone

	updated, err := s.requests.ApplySubmission(ctx, req.ID, models.CorrectionRequestUpdate{
		Flags:                  form.Flags,
		Status:                 status,
		DeclareAll:             true,
		OnlineRegistrationDone: true,
		ApplicationNumber:      &applicationNumber,
	})
	if err != nil {
		s.recordSubmission("failed")
		return nil, nil, appErrors.ErrDatabaseOperation.Wrap(err)
	}

	meta := &dto.BatchSubmitMeta{}
	s.syncStudent(ctx, student, form, meta)

	course := ""
	if student.CourseCode != nil {
		course = *student.CourseCode
	}

	outcomes := make([]dto.UploadOutcome, 0, len(files))
	for i, file := range files {
		outcome := s.storeDocument(ctx, updated, student, course, applicationNumber, form, i, file)
		outcomes = append(outcomes, outcome)
	}

	if !form.Flags.Any() {
		s.finalize(ctx, updated, student, course, applicationNumber, alreadyFinalized, meta)
	} else {
		meta.SideEffects = append(meta.SideEffects,
			dto.SideEffect{Kind: dto.SideEffectPDF, Status: dto.SideEffectSkipped, Detail: "corrections requested"},
			dto.SideEffect{Kind: dto.SideEffectNotification, Status: dto.SideEffectSkipped, Detail: "corrections requested"},
		)
	}

	s.recordSubmission("accepted")
	return &dto.BatchSubmitResponse{Request: updated, Uploads: outcomes}, meta, nil
}

func (s *RegistrationService) syncStudent(ctx context.Context, student *models.Student, form dto.BatchSubmitForm, meta *dto.BatchSubmitMeta) {
	corrections := form.StudentCorrections()
	if corrections.Empty() {
		meta.SideEffects = append(meta.SideEffects,
			dto.SideEffect{Kind: dto.SideEffectStudentSync, Status: dto.SideEffectSkipped, Detail: "no profile changes"})
		return
	}
	if err := s.students.ApplyCorrections(ctx, student.ID, corrections); err != nil {
		s.logger.Warn("student profile sync failed",
			zap.Int64("student_id", student.ID), zap.Error(err))
		meta.SideEffects = append(meta.SideEffects,
			dto.SideEffect{Kind: dto.SideEffectStudentSync, Status: dto.SideEffectFailed, Detail: err.Error()})
		return
	}
	meta.SideEffects = append(meta.SideEffects,
		dto.SideEffect{Kind: dto.SideEffectStudentSync, Status: dto.SideEffectDone})
}

func (s *RegistrationService) storeDocument(ctx context.Context, req *models.CorrectionRequest, student *models.Student, course, applicationNumber string, form dto.BatchSubmitForm, index int, file SubmittedFile) dto.UploadOutcome {
	outcome := dto.UploadOutcome{FileName: file.FileName}

	documentName := ""
	var remarks *string
	if docs := form.Payload.Documents; docs != nil && index < len(docs.Items) {
		documentName = docs.Items[index].DocumentName
		remarks = docs.Items[index].Remarks
	}
	if documentName == "" {
		outcome.Error = "no document metadata for file"
		return outcome
	}

	doc, err := s.catalog.FindByName(ctx, documentName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			outcome.Error = fmt.Sprintf("unknown document %q", documentName)
		} else {
			outcome.Error = err.Error()
		}
		return outcome
	}

	converted, err := s.images.Convert(file.Data, SettingsForCode(doc.Code))
	if err != nil {
		s.logger.Warn("document conversion failed",
			zap.String("file", file.FileName), zap.Error(err))
		outcome.Error = err.Error()
		return outcome
	}

	key, err := s.paths.DocumentKey(student.UID, course, doc.Name, applicationNumber)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	stored, err := s.files.Store(ctx, key, converted, "image/jpeg")
	if err != nil {
		s.logger.Warn("document storage failed",
			zap.String("key", key), zap.Error(err))
		outcome.Error = err.Error()
		return outcome
	}

	upload := &models.DocumentUpload{
		CorrectionRequestID: req.ID,
		DocumentID:          doc.ID,
		FileName:            file.FileName,
		FileType:            "image/jpeg",
		FileSizeBytes:       int64(len(converted)),
		StorageKey:          stored.Key,
		DocumentURL:         stored.URL,
		Remarks:             remarks,
	}
	if err := s.uploads.Create(ctx, upload); err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	if s.metrics != nil {
		s.metrics.RecordDocumentStored()
	}
	outcome.Stored = true
	outcome.Upload = upload
	return outcome
}

func (s *RegistrationService) finalize(ctx context.Context, req *models.CorrectionRequest, student *models.Student, course, applicationNumber string, alreadyFinalized bool, meta *dto.BatchSubmitMeta) {
	if alreadyFinalized {
		meta.SideEffects = append(meta.SideEffects,
			dto.SideEffect{Kind: dto.SideEffectPDF, Status: dto.SideEffectSkipped, Detail: "already generated"},
			dto.SideEffect{Kind: dto.SideEffectNotification, Status: dto.SideEffectSkipped, Detail: "already sent"},
		)
		return
	}

	uploads, err := s.uploads.ListByRequest(ctx, req.ID)
	if err != nil {
		uploads = nil
	}

	// The confirmation email references the generated form, so it is
	// dispatched only after the form has been rendered and stored.
	var formPDF []byte
	var formURL string
	form, err := s.pdf.RenderRegistrationForm(RegistrationFormData{
		Student:           student,
		Request:           req,
		ApplicationNumber: applicationNumber,
		Uploads:           uploads,
	})
	if err != nil {
		s.logger.Error("registration form rendering failed",
			zap.Int64("request_id", req.ID), zap.Error(err))
		meta.SideEffects = append(meta.SideEffects,
			dto.SideEffect{Kind: dto.SideEffectPDF, Status: dto.SideEffectFailed, Detail: err.Error()})
	} else {
		key, keyErr := s.paths.FormKey(student.UID, course, applicationNumber)
		var stored StoredFile
		if keyErr == nil {
			stored, keyErr = s.files.Store(ctx, key, form, "application/pdf")
		}
		if keyErr != nil {
			s.logger.Error("registration form storage failed",
				zap.Int64("request_id", req.ID), zap.Error(keyErr))
			meta.SideEffects = append(meta.SideEffects,
				dto.SideEffect{Kind: dto.SideEffectPDF, Status: dto.SideEffectFailed, Detail: keyErr.Error()})
		} else {
			formPDF, formURL = form, stored.URL
			meta.SideEffects = append(meta.SideEffects,
				dto.SideEffect{Kind: dto.SideEffectPDF, Status: dto.SideEffectDone})
		}
	}

	if formPDF == nil {
		meta.SideEffects = append(meta.SideEffects,
			dto.SideEffect{Kind: dto.SideEffectNotification, Status: dto.SideEffectSkipped, Detail: "registration form not generated"})
		return
	}
	if s.notifier == nil {
		meta.SideEffects = append(meta.SideEffects,
			dto.SideEffect{Kind: dto.SideEffectNotification, Status: dto.SideEffectSkipped, Detail: "notifications disabled"})
		return
	}
	if s.notifier.NotifyRegistered(student, applicationNumber, formPDF, formURL) {
		meta.SideEffects = append(meta.SideEffects,
			dto.SideEffect{Kind: dto.SideEffectNotification, Status: dto.SideEffectDone})
	} else {
		meta.SideEffects = append(meta.SideEffects,
			dto.SideEffect{Kind: dto.SideEffectNotification, Status: dto.SideEffectSkipped, Detail: "notifications disabled"})
	}
}

func (s *RegistrationService) recordSubmission(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordSubmission(outcome)
	}
}
