package service

import (
	"fmt"
	"strings"
)

// Document code abbreviations keyed by catalogue name. Names not listed
// fall back to a generic code.
var documentCodes = map[string]string{
	"Class XII Marksheet":   "M",
	"Aadhaar Card":          "AD",
	"APAAR ID Card":         "ABC",
	"Father Photo ID":       "FP",
	"Mother Photo ID":       "MP",
	"EWS Certificate":       "EWS",
	"Migration Certificate": "MC",
	"Photo":                 "P",
	"Signature":             "S",
	"Admission Form":        "C",
	"Admission Receipt":     "R",
}

// Storage subfolders keyed by document code.
var documentSubfolders = map[string]string{
	"P":   "Photo",
	"S":   "Signature",
	"A":   "Aadhaar",
	"AD":  "Aadhaar",
	"M":   "Marksheet",
	"C":   "AdmissionForm",
	"R":   "AdmissionReceipt",
	"AA":  "AadhaarCard",
	"ABC": "ABCID",
	"FP":  "ParentPhotoId",
	"MP":  "ParentPhotoId",
	"EWS": "EwsCertificate",
	"MC":  "MigrationCertificate",
}

const (
	fallbackDocumentCode = "DOC"
	fallbackSubfolder    = "Others"
)

// DocumentPathService resolves storage locations for registration
// documents and forms. Paths are deterministic: the same inputs always
// yield the same location.
type DocumentPathService struct {
	defaultCourse string
}

// NewDocumentPathService constructs the resolver.
func NewDocumentPathService(defaultCourse string) *DocumentPathService {
	if defaultCourse == "" {
		defaultCourse = "CCF"
	}
	return &DocumentPathService{defaultCourse: defaultCourse}
}

// CodeForDocument returns the filename abbreviation for a catalogue name.
func (s *DocumentPathService) CodeForDocument(name string) string {
	if code, ok := documentCodes[name]; ok {
		return code
	}
	return fallbackDocumentCode
}

// SubfolderForCode returns the storage subfolder for a document code.
func (s *DocumentPathService) SubfolderForCode(code string) string {
	if folder, ok := documentSubfolders[code]; ok {
		return folder
	}
	return fallbackSubfolder
}

// AdmissionYear extracts the four digit admission year from a student
// UID. Characters five and six encode the two digit year.
func (s *DocumentPathService) AdmissionYear(uid string) (string, error) {
	if len(uid) < 6 {
		return "", fmt.Errorf("uid %q too short to carry an admission year", uid)
	}
	yy := uid[4:6]
	if !isDigits(yy) {
		return "", fmt.Errorf("uid %q has a non numeric year segment", uid)
	}
	return "20" + yy, nil
}

// DocumentKey builds the storage key for an uploaded document image.
// Layout: {year}/{course}/adm-reg-docs/{subfolder}/{code}{appNumber}.jpg
func (s *DocumentPathService) DocumentKey(uid, course, documentName, applicationNumber string) (string, error) {
	year, err := s.AdmissionYear(uid)
	if err != nil {
		return "", err
	}
	if course == "" {
		course = s.defaultCourse
	}
	code := s.CodeForDocument(documentName)
	subfolder := s.SubfolderForCode(code)
	return strings.Join([]string{year, course, "adm-reg-docs", subfolder, code + applicationNumber + ".jpg"}, "/"), nil
}

// FormKey builds the storage key for a generated registration form PDF.
// Layout: {year}/{course}/students/{uid}/adm-reg-forms/{appNumber}.pdf
func (s *DocumentPathService) FormKey(uid, course, applicationNumber string) (string, error) {
	year, err := s.AdmissionYear(uid)
	if err != nil {
		return "", err
	}
	if course == "" {
		course = s.defaultCourse
	}
	return strings.Join([]string{year, course, "students", uid, "adm-reg-forms", applicationNumber + ".pdf"}, "/"), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
