package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edunexus-dev/cu-admissions-api/internal/dto"
	"github.com/edunexus-dev/cu-admissions-api/internal/models"
	appErrors "github.com/edunexus-dev/cu-admissions-api/pkg/errors"
	"github.com/edunexus-dev/cu-admissions-api/pkg/response"
)

type documentUploadReader interface {
	GetByID(ctx context.Context, id string) (*models.DocumentUpload, error)
}

type documentCatalogReader interface {
	ListAll(ctx context.Context) ([]models.Document, error)
}

type documentFetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

type downloadSigner interface {
	Generate(documentID, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (documentID, relPath string, expiresAt time.Time, err error)
}

// DocumentHandler serves the catalogue and stored document downloads.
type DocumentHandler struct {
	uploads   documentUploadReader
	catalog   documentCatalogReader
	files     documentFetcher
	signer    downloadSigner
	apiPrefix string
}

// NewDocumentHandler constructs the handler.
func NewDocumentHandler(uploads documentUploadReader, catalog documentCatalogReader, files documentFetcher, signer downloadSigner, apiPrefix string) *DocumentHandler {
	return &DocumentHandler{uploads: uploads, catalog: catalog, files: files, signer: signer, apiPrefix: apiPrefix}
}

// Catalogue godoc
// @Summary List the registration document catalogue
// @Tags Documents
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admissions/cu-registration/documents/catalogue [get]
func (h *DocumentHandler) Catalogue(c *gin.Context) {
	docs, err := h.catalog.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load catalogue"))
		return
	}
	response.JSON(c, http.StatusOK, docs, "", nil)
}

// DownloadURL godoc
// @Summary Issue a signed download URL for a stored document
// @Tags Documents
// @Produce json
// @Param id path string true "Upload ID"
// @Success 200 {object} response.Envelope
// @Router /admissions/cu-registration/documents/{id}/download-url [get]
func (h *DocumentHandler) DownloadURL(c *gin.Context) {
	id := c.Param("id")
	upload, err := h.uploads.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "document not found"))
		return
	}
	token, expiresAt, err := h.signer.Generate(upload.ID, upload.StorageKey)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download"))
		return
	}
	payload := dto.DocumentDownloadResponse{
		DocumentUpload: *upload,
		DownloadURL:    h.apiPrefix + "/admissions/cu-registration/documents/" + upload.ID + "/download?token=" + token,
	}
	response.JSON(c, http.StatusOK, payload, "", nil, map[string]interface{}{"expiresAt": expiresAt})
}

// Download godoc
// @Summary Stream a stored document
// @Tags Documents
// @Produce octet-stream
// @Param id path string true "Upload ID"
// @Param token query string true "Signed token"
// @Success 200 {file} binary
// @Router /admissions/cu-registration/documents/{id}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	id := c.Param("id")
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "download token is required"))
		return
	}
	signedID, relPath, _, err := h.signer.Parse(token, false)
	if err != nil || signedID != id {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token"))
		return
	}
	upload, err := h.uploads.GetByID(c.Request.Context(), id)
	if err != nil || upload.StorageKey != relPath {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "document not found"))
		return
	}
	data, err := h.files.Fetch(c.Request.Context(), upload.StorageKey)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "stored file missing"))
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+upload.FileName+"\"")
	c.Data(http.StatusOK, upload.FileType, data)
}
