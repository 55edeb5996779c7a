package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/edunexus-dev/cu-admissions-api/internal/models"
)

// BatchSubmitForm captures the non-file fields of a batch submission.
// Flags and payload arrive as JSON blobs inside the multipart form and are
// decoded strictly: an unknown key anywhere rejects the whole request.
type BatchSubmitForm struct {
	CorrectionRequestID int64                  `json:"correctionRequestId"`
	Flags               models.CorrectionFlags `json:"flags"`
	Payload             RegistrationPayload    `json:"payload"`
}

// RegistrationPayload groups the declared sections of the submission.
type RegistrationPayload struct {
	PersonalInfo *PersonalInfoSection `json:"personalInfo,omitempty"`
	AddressInfo  *AddressInfoSection  `json:"addressInfo,omitempty"`
	Subjects     *SubjectsSection     `json:"subjects,omitempty"`
	Documents    *DocumentsSection    `json:"documents,omitempty"`
}

// PersonalInfoSection carries the corrected identity values, if any.
type PersonalInfoSection struct {
	Gender        *string `json:"gender,omitempty"`
	Nationality   *string `json:"nationality,omitempty"`
	AadhaarNumber *string `json:"aadhaarNumber,omitempty"`
	ApaarID       *string `json:"apaarId,omitempty"`
}

// AddressInfoSection carries the corrected address values, if any.
type AddressInfoSection struct {
	ResidentialAddress *string `json:"residentialAddress,omitempty"`
	MailingAddress     *string `json:"mailingAddress,omitempty"`
}

// SubjectsSection lists the chosen subject combination.
type SubjectsSection struct {
	Subjects []string `json:"subjects"`
}

// DocumentsSection annotates the uploaded files. Entries are matched to
// files by position in the multipart form.
type DocumentsSection struct {
	Items []DocumentMeta `json:"items"`
}

// DocumentMeta names the catalogue entry a file belongs to.
type DocumentMeta struct {
	DocumentName string  `json:"documentName"`
	Remarks      *string `json:"remarks,omitempty"`
}

// DecodeBatchSubmitForm parses the flags and payload form values. Unknown
// fields are an error so malformed client shapes fail fast instead of
// silently dropping data.
func DecodeBatchSubmitForm(correctionRequestID int64, flagsJSON, payloadJSON string) (BatchSubmitForm, error) {
	form := BatchSubmitForm{CorrectionRequestID: correctionRequestID}
	if strings.TrimSpace(flagsJSON) != "" {
		if err := decodeStrict(flagsJSON, &form.Flags); err != nil {
			return BatchSubmitForm{}, err
		}
	}
	if strings.TrimSpace(payloadJSON) != "" {
		if err := decodeStrict(payloadJSON, &form.Payload); err != nil {
			return BatchSubmitForm{}, err
		}
	}
	return form, nil
}

func decodeStrict(raw string, out any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

// StudentCorrections projects the payload onto the student profile. Only
// sections whose correction flag is raised contribute values.
func (f BatchSubmitForm) StudentCorrections() models.StudentCorrections {
	var c models.StudentCorrections
	if p := f.Payload.PersonalInfo; p != nil {
		if f.Flags.Gender {
			c.Gender = p.Gender
		}
		if f.Flags.Nationality {
			c.Nationality = p.Nationality
		}
		if f.Flags.AadhaarNumber {
			c.AadhaarNumber = p.AadhaarNumber
		}
		if f.Flags.ApaarID {
			c.ApaarID = p.ApaarID
		}
	}
	if a := f.Payload.AddressInfo; a != nil {
		c.ResidentialAddress = a.ResidentialAddress
		c.MailingAddress = a.MailingAddress
	}
	return c
}

// SideEffect reports the outcome of one post-submission action.
type SideEffect struct {
	Kind   string `json:"kind"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Side-effect kinds and statuses surfaced in the response meta.
const (
	SideEffectPDF          = "PDF_GENERATION"
	SideEffectNotification = "NOTIFICATION"
	SideEffectStudentSync  = "STUDENT_SYNC"

	SideEffectDone    = "DONE"
	SideEffectFailed  = "FAILED"
	SideEffectSkipped = "SKIPPED"
)

// UploadOutcome describes what happened to a single submitted file.
type UploadOutcome struct {
	FileName string                 `json:"fileName"`
	Stored   bool                   `json:"stored"`
	Error    string                 `json:"error,omitempty"`
	Upload   *models.DocumentUpload `json:"upload,omitempty"`
}

// BatchSubmitResponse is the payload returned by a batch submission.
type BatchSubmitResponse struct {
	Request *models.CorrectionRequest `json:"request"`
	Uploads []UploadOutcome           `json:"uploads"`
}

// BatchSubmitMeta is attached to the response envelope meta field.
type BatchSubmitMeta struct {
	SideEffects []SideEffect `json:"sideEffects"`
}

// CorrectionRequestListFilter captures listing query parameters.
type CorrectionRequestListFilter struct {
	Status               string `form:"status"`
	Search               string `form:"search"`
	DeclarationsComplete string `form:"declarationsComplete"`
	Page                 int    `form:"page,default=1"`
	PageSize             int    `form:"pageSize,default=20"`
}

// DocumentDownloadResponse enriches an upload with a signed URL.
type DocumentDownloadResponse struct {
	models.DocumentUpload
	DownloadURL string `json:"downloadUrl"`
}

// ApplicationNumberStats summarizes counter usage for a cycle.
type ApplicationNumberStats struct {
	TotalIssued   int64   `json:"totalIssued"`
	LastIssued    *string `json:"lastIssued,omitempty"`
	NextAvailable *string `json:"nextAvailable,omitempty"`
	Remaining     int64   `json:"remaining"`
}
