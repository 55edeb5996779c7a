package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/edunexus-dev/cu-admissions-api/internal/models"
)

// RegistrationFormData gathers everything rendered onto the form.
type RegistrationFormData struct {
	Student           *models.Student
	Request           *models.CorrectionRequest
	ApplicationNumber string
	Uploads           []models.DocumentUpload
	GeneratedAt       time.Time
}

// PDFService renders the CU registration form.
type PDFService struct{}

// NewPDFService constructs the renderer.
func NewPDFService() *PDFService {
	return &PDFService{}
}

// RenderRegistrationForm produces the printable registration form PDF.
func (s *PDFService) RenderRegistrationForm(data RegistrationFormData) ([]byte, error) {
	if data.Student == nil || data.Request == nil {
		return nil, fmt.Errorf("registration form requires student and request")
	}
	if data.ApplicationNumber == "" {
		return nil, fmt.Errorf("registration form requires an application number")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "CU REGISTRATION FORM", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Application Number: %s", data.ApplicationNumber), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	s.section(pdf, "Candidate Details")
	s.field(pdf, "UID", data.Student.UID)
	s.field(pdf, "Full Name", data.Student.FullName)
	s.field(pdf, "Email", data.Student.Email)
	s.field(pdf, "Gender", deref(data.Student.Gender))
	s.field(pdf, "Nationality", deref(data.Student.Nationality))
	s.field(pdf, "Aadhaar Number", deref(data.Student.AadhaarNumber))
	s.field(pdf, "APAAR ID", deref(data.Student.ApaarID))
	pdf.Ln(2)

	s.section(pdf, "Address")
	s.field(pdf, "Residential", deref(data.Student.ResidentialAddress))
	s.field(pdf, "Mailing", deref(data.Student.MailingAddress))
	pdf.Ln(2)

	s.section(pdf, "Submitted Documents")
	if len(data.Uploads) == 0 {
		pdf.SetFont("Arial", "I", 9)
		pdf.CellFormat(0, 6, "No documents on record", "", 1, "", false, 0, "")
	} else {
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(90, 7, "File", "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 7, "Type", "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 7, "Size (KB)", "1", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, upload := range data.Uploads {
			pdf.CellFormat(90, 6, upload.FileName, "1", 0, "", false, 0, "")
			pdf.CellFormat(45, 6, upload.FileType, "1", 0, "", false, 0, "")
			pdf.CellFormat(45, 6, fmt.Sprintf("%.1f", float64(upload.FileSizeBytes)/1024), "1", 1, "R", false, 0, "")
		}
	}
	pdf.Ln(6)

	generatedAt := data.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated on %s", generatedAt.Format("02 Jan 2006 15:04 MST")), "", 1, "R", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render registration form: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *PDFService) section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, title, "B", 1, "", false, 0, "")
	pdf.Ln(1)
}

func (s *PDFService) field(pdf *gofpdf.Fpdf, label, value string) {
	if value == "" {
		value = "-"
	}
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(45, 6, label, "", 0, "", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, value, "", 1, "", false, 0, "")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
