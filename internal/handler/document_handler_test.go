package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/edunexus-dev/cu-admissions-api/internal/models"
)

type uploadReaderMock struct {
	upload *models.DocumentUpload
	err    error
}

func (m *uploadReaderMock) GetByID(_ context.Context, _ string) (*models.DocumentUpload, error) {
	return m.upload, m.err
}

type signerMock struct{}

func (signerMock) Generate(documentID, relPath string) (string, time.Time, error) {
	return "signed-token", time.Now().Add(30 * time.Minute), nil
}

func (signerMock) Parse(token string, allowExpired bool) (string, string, time.Time, error) {
	return "", "", time.Time{}, nil
}

func TestDocumentHandler_DownloadURLPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	uploads := &uploadReaderMock{upload: &models.DocumentUpload{
		ID:         "5f2b8f2e-1111-2222-3333-444455556666",
		StorageKey: "2025/CCF/adm-reg-docs/Photo/P0170001.jpg",
		FileName:   "P0170001.jpg",
	}}
	h := NewDocumentHandler(uploads, nil, nil, signerMock{}, "/api/v1")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet,
		"/admissions/cu-registration/documents/5f2b8f2e-1111-2222-3333-444455556666/download-url", nil)
	c.Params = gin.Params{{Key: "id", Value: "5f2b8f2e-1111-2222-3333-444455556666"}}

	h.DownloadURL(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Payload struct {
			DownloadURL string `json:"downloadUrl"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t,
		"/api/v1/admissions/cu-registration/documents/5f2b8f2e-1111-2222-3333-444455556666/download?token=signed-token",
		envelope.Payload.DownloadURL)
}
