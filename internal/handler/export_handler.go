package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edunexus-dev/cu-admissions-api/internal/models"
	appErrors "github.com/edunexus-dev/cu-admissions-api/pkg/errors"
	"github.com/edunexus-dev/cu-admissions-api/pkg/export"
	"github.com/edunexus-dev/cu-admissions-api/pkg/response"
)

const exportPageSize = 200

type registrationLister interface {
	List(ctx context.Context, filter models.CorrectionRequestFilter) ([]models.CorrectionRequest, int64, error)
}

// ExportHandler produces the registration register as CSV.
type ExportHandler struct {
	service  registrationLister
	exporter *export.CSVExporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(service registrationLister) *ExportHandler {
	return &ExportHandler{service: service, exporter: export.NewCSVExporter()}
}

// Register godoc
// @Summary Export correction requests as CSV
// @Tags Exports
// @Produce text/csv
// @Param status query string false "Status filter"
// @Success 200 {file} binary
// @Router /admissions/cu-registration/export [get]
func (h *ExportHandler) Register(c *gin.Context) {
	filter := models.CorrectionRequestFilter{
		Status:   models.CorrectionRequestStatus(c.Query("status")),
		PageSize: exportPageSize,
	}

	rows := make([]map[string]string, 0, exportPageSize)
	for page := 1; ; page++ {
		filter.Page = page
		records, total, err := h.service.List(c.Request.Context(), filter)
		if err != nil {
			response.Error(c, err)
			return
		}
		for _, req := range records {
			rows = append(rows, registerRow(req))
		}
		if int64(page*exportPageSize) >= total || len(records) == 0 {
			break
		}
	}

	data, err := h.exporter.Render(export.Dataset{
		Headers: []string{"Request ID", "Student ID", "Application Number", "Status", "Declarations Complete", "Online Registration", "Physically Registered", "Updated At"},
		Rows:    rows,
	})
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export"))
		return
	}

	filename := export.Filename("cu-registration-register", time.Now())
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Data(http.StatusOK, "text/csv", data)
}

func registerRow(req models.CorrectionRequest) map[string]string {
	number := ""
	if req.ApplicationNumber != nil {
		number = *req.ApplicationNumber
	}
	return map[string]string{
		"Request ID":            fmt.Sprintf("%d", req.ID),
		"Student ID":            fmt.Sprintf("%d", req.StudentID),
		"Application Number":    number,
		"Status":                string(req.Status),
		"Declarations Complete": fmt.Sprintf("%t", req.AllDeclarationsDone()),
		"Online Registration":   fmt.Sprintf("%t", req.OnlineRegistrationDone),
		"Physically Registered": fmt.Sprintf("%t", req.PhysicallyRegistered),
		"Updated At":            req.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
