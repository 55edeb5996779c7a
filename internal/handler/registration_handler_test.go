package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/edunexus-dev/cu-admissions-api/internal/dto"
	"github.com/edunexus-dev/cu-admissions-api/internal/models"
	"github.com/edunexus-dev/cu-admissions-api/internal/service"
	"github.com/edunexus-dev/cu-admissions-api/pkg/response"
)

type registrationServiceMock struct {
	submitResp *dto.BatchSubmitResponse
	submitMeta *dto.BatchSubmitMeta
	submitErr  error
	submitForm dto.BatchSubmitForm
	files      []service.SubmittedFile
	getResp    *dto.BatchSubmitResponse
	getErr     error
}

func (m *registrationServiceMock) BatchSubmit(ctx context.Context, form dto.BatchSubmitForm, files []service.SubmittedFile) (*dto.BatchSubmitResponse, *dto.BatchSubmitMeta, error) {
	m.submitForm = form
	m.files = files
	return m.submitResp, m.submitMeta, m.submitErr
}

func (m *registrationServiceMock) Get(ctx context.Context, id int64) (*dto.BatchSubmitResponse, error) {
	return m.getResp, m.getErr
}

func (m *registrationServiceMock) List(ctx context.Context, filter models.CorrectionRequestFilter) ([]models.CorrectionRequest, int64, error) {
	return nil, 0, nil
}

func (m *registrationServiceMock) MarkPhysicallyRegistered(ctx context.Context, id int64) error {
	return nil
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for name, data := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func newMultipartContext(t *testing.T, fields map[string]string, files map[string][]byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	body, contentType := multipartBody(t, fields, files)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, "/admissions/cu-registration/batch-submit", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	c.Request = req
	return c, w
}

func TestBatchSubmitHandlerRequiresRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRegistrationHandler(&registrationServiceMock{}, nil, 0)

	c, w := newMultipartContext(t, map[string]string{}, nil)
	handler.BatchSubmit(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, response.StatusError, envelope.Status)
}

func TestBatchSubmitHandlerRejectsUnknownFlagKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRegistrationHandler(&registrationServiceMock{}, nil, 0)

	c, w := newMultipartContext(t, map[string]string{
		"correctionRequestId": "42",
		"flags":               `{"gender":true,"bogusField":1}`,
	}, nil)
	handler.BatchSubmit(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBatchSubmitHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	number := "0170001"
	mockSvc := &registrationServiceMock{
		submitResp: &dto.BatchSubmitResponse{
			Request: &models.CorrectionRequest{ID: 42, Status: models.CorrectionStatusApproved, ApplicationNumber: &number},
		},
		submitMeta: &dto.BatchSubmitMeta{SideEffects: []dto.SideEffect{
			{Kind: dto.SideEffectPDF, Status: dto.SideEffectDone},
		}},
	}
	handler := NewRegistrationHandler(mockSvc, nil, 0)

	c, w := newMultipartContext(t, map[string]string{
		"correctionRequestId": "42",
		"flags":               `{"gender":false}`,
		"payload":             `{"documents":{"items":[{"documentName":"Photo"}]}}`,
	}, map[string][]byte{"me.jpg": []byte("fake-bytes")})

	handler.BatchSubmit(c)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, int64(42), mockSvc.submitForm.CorrectionRequestID)
	require.Len(t, mockSvc.files, 1)
	require.Equal(t, "me.jpg", mockSvc.files[0].FileName)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, response.StatusSuccess, envelope.Status)
	require.Contains(t, envelope.Meta, "sideEffects")
}

func TestBatchSubmitHandlerEnforcesFileSizeLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRegistrationHandler(&registrationServiceMock{}, nil, 4)

	c, w := newMultipartContext(t, map[string]string{
		"correctionRequestId": "42",
	}, map[string][]byte{"huge.jpg": []byte("way past the limit")})

	handler.BatchSubmit(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegistrationHandlerGetInvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRegistrationHandler(&registrationServiceMock{}, nil, 0)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admissions/cu-registration/correction-requests/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.Get(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
