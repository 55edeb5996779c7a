package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edunexus-dev/cu-admissions-api/internal/models"
	appErrors "github.com/edunexus-dev/cu-admissions-api/pkg/errors"
)

const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

// Envelope represents the common response contract.
type Envelope struct {
	StatusCode int                    `json:"statusCode"`
	Status     string                 `json:"status"`
	Payload    interface{}            `json:"payload,omitempty"`
	Message    string                 `json:"message,omitempty"`
	Error      *appErrors.Error       `json:"error,omitempty"`
	Pagination *models.Pagination     `json:"pagination,omitempty"`
	Meta       map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success response with optional pagination metadata.
func JSON(c *gin.Context, status int, payload interface{}, message string, pagination *models.Pagination, meta ...map[string]interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	envelope := Envelope{
		StatusCode: status,
		Status:     StatusSuccess,
		Payload:    payload,
		Message:    message,
		Pagination: pagination,
	}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, payload interface{}, message string) {
	JSON(c, http.StatusCreated, payload, message, nil)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{
		StatusCode: appErr.Status,
		Status:     StatusError,
		Message:    appErr.Message,
		Error:      appErr,
	})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
