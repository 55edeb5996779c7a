package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edunexus-dev/cu-admissions-api/internal/dto"
	"github.com/edunexus-dev/cu-admissions-api/internal/models"
	"github.com/edunexus-dev/cu-admissions-api/internal/service"
	appErrors "github.com/edunexus-dev/cu-admissions-api/pkg/errors"
	"github.com/edunexus-dev/cu-admissions-api/pkg/response"
)

type registrationService interface {
	BatchSubmit(ctx context.Context, form dto.BatchSubmitForm, files []service.SubmittedFile) (*dto.BatchSubmitResponse, *dto.BatchSubmitMeta, error)
	Get(ctx context.Context, id int64) (*dto.BatchSubmitResponse, error)
	List(ctx context.Context, filter models.CorrectionRequestFilter) ([]models.CorrectionRequest, int64, error)
	MarkPhysicallyRegistered(ctx context.Context, id int64) error
}

type applicationNumberStats interface {
	Stats(ctx context.Context) (*dto.ApplicationNumberStats, error)
}

// RegistrationHandler manages correction request HTTP endpoints.
type RegistrationHandler struct {
	service     registrationService
	numbers     applicationNumberStats
	maxFileSize int64
}

// NewRegistrationHandler constructs the handler.
func NewRegistrationHandler(service registrationService, numbers applicationNumberStats, maxFileSize int64) *RegistrationHandler {
	if maxFileSize <= 0 {
		maxFileSize = 10 << 20
	}
	return &RegistrationHandler{service: service, numbers: numbers, maxFileSize: maxFileSize}
}

// BatchSubmit godoc
// @Summary Submit registration declarations and documents
// @Tags Registration
// @Accept multipart/form-data
// @Produce json
// @Param correctionRequestId formData int true "Correction request ID"
// @Param flags formData string false "Correction flags JSON"
// @Param payload formData string false "Registration payload JSON"
// @Param files formData file false "Documents"
// @Success 200 {object} response.Envelope
// @Router /admissions/cu-registration/batch-submit [post]
func (h *RegistrationHandler) BatchSubmit(c *gin.Context) {
	rawID := c.PostForm("correctionRequestId")
	if rawID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "correctionRequestId is required"))
		return
	}
	requestID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || requestID <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "correctionRequestId must be a positive integer"))
		return
	}

	form, err := dto.DecodeBatchSubmitForm(requestID, c.PostForm("flags"), c.PostForm("payload"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed flags or payload"))
		return
	}

	files, err := h.readFiles(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, meta, err := h.service.BatchSubmit(c.Request.Context(), form, files)
	if err != nil {
		response.Error(c, err)
		return
	}
	metaMap := map[string]interface{}{"sideEffects": meta.SideEffects}
	response.JSON(c, http.StatusOK, result, "registration submitted", nil, metaMap)
}

// Get godoc
// @Summary Get one correction request with uploads
// @Tags Registration
// @Produce json
// @Param id path int true "Correction request ID"
// @Success 200 {object} response.Envelope
// @Router /admissions/cu-registration/correction-requests/{id} [get]
func (h *RegistrationHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid correction request id"))
		return
	}
	result, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, "", nil)
}

// List godoc
// @Summary List correction requests
// @Tags Registration
// @Produce json
// @Param status query string false "Status filter"
// @Param search query string false "Name, UID or application number search"
// @Param declarationsComplete query bool false "Declarations completeness filter"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admissions/cu-registration/correction-requests [get]
func (h *RegistrationHandler) List(c *gin.Context) {
	var query dto.CorrectionRequestListFilter
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid listing filters"))
		return
	}

	filter := models.CorrectionRequestFilter{
		Status:   models.CorrectionRequestStatus(query.Status),
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.DeclarationsComplete != "" {
		complete, err := strconv.ParseBool(query.DeclarationsComplete)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "declarationsComplete must be a boolean"))
			return
		}
		filter.DeclarationsComplete = &complete
	}

	records, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagination := &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: int(total),
	}
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.PageSize <= 0 {
		pagination.PageSize = 20
	}
	response.JSON(c, http.StatusOK, records, "", pagination)
}

// MarkPhysicallyRegistered godoc
// @Summary Record on-campus physical registration
// @Tags Registration
// @Produce json
// @Param id path int true "Correction request ID"
// @Success 200 {object} response.Envelope
// @Router /admissions/cu-registration/correction-requests/{id}/physical-registration [patch]
func (h *RegistrationHandler) MarkPhysicallyRegistered(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid correction request id"))
		return
	}
	if err := h.service.MarkPhysicallyRegistered(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": id, "physicallyRegistered": true}, "physical registration recorded", nil)
}

// NumberStats godoc
// @Summary Application number counter stats
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admissions/cu-registration/application-numbers/stats [get]
func (h *RegistrationHandler) NumberStats(c *gin.Context) {
	if h.numbers == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "number stats not configured"))
		return
	}
	stats, err := h.numbers.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, "", nil)
}

func (h *RegistrationHandler) readFiles(c *gin.Context) ([]service.SubmittedFile, error) {
	multipartForm, err := c.MultipartForm()
	if err != nil {
		if err == http.ErrNotMultipart {
			return nil, appErrors.Clone(appErrors.ErrValidation, "expected multipart form data")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed multipart form")
	}
	headers := multipartForm.File["files"]
	files := make([]service.SubmittedFile, 0, len(headers))
	for _, header := range headers {
		if header.Size > h.maxFileSize {
			return nil, appErrors.Clone(appErrors.ErrValidation, "file "+header.Filename+" exceeds the size limit")
		}
		data, err := readMultipartFile(header)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read uploaded file")
		}
		files = append(files, service.SubmittedFile{FileName: header.Filename, Data: data})
	}
	return files, nil
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close() //nolint:errcheck
	return io.ReadAll(src)
}
