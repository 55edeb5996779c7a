package models

import "time"

// CorrectionRequestStatus tracks where a request sits in the review workflow.
type CorrectionRequestStatus string

const (
	CorrectionStatusPending           CorrectionRequestStatus = "PENDING"
	CorrectionStatusRequestCorrection CorrectionRequestStatus = "REQUEST_CORRECTION"
	CorrectionStatusApproved          CorrectionRequestStatus = "APPROVED"
)

// CorrectionFlags marks the fields a student is asking the university to fix.
type CorrectionFlags struct {
	Gender        bool `json:"gender"`
	Nationality   bool `json:"nationality"`
	AadhaarNumber bool `json:"aadhaarNumber"`
	ApaarID       bool `json:"apaarId"`
	Subjects      bool `json:"subjects"`
}

// Any reports whether at least one correction is requested.
func (f CorrectionFlags) Any() bool {
	return f.Gender || f.Nationality || f.AadhaarNumber || f.ApaarID || f.Subjects
}

// CorrectionRequest is the per-student, per-cycle registration record.
// Declaration flags are monotonic: once true they are never reset. The
// application number is assigned at most once and never changed.
type CorrectionRequest struct {
	ID        int64                   `db:"id" json:"id"`
	StudentID int64                   `db:"student_id" json:"studentId"`
	Status    CorrectionRequestStatus `db:"status" json:"status"`

	GenderCorrection      bool `db:"gender_correction" json:"genderCorrectionRequest"`
	NationalityCorrection bool `db:"nationality_correction" json:"nationalityCorrectionRequest"`
	AadhaarCorrection     bool `db:"aadhaar_correction" json:"aadhaarCardNumberCorrectionRequest"`
	ApaarCorrection       bool `db:"apaar_correction" json:"apaarIdCorrectionRequest"`
	SubjectsCorrection    bool `db:"subjects_correction" json:"subjectsCorrectionRequest"`

	IntroductoryDeclared bool `db:"introductory_declared" json:"introductoryDeclaration"`
	PersonalInfoDeclared bool `db:"personal_info_declared" json:"personalInfoDeclaration"`
	AddressDeclared      bool `db:"address_declared" json:"addressInfoDeclaration"`
	SubjectsDeclared     bool `db:"subjects_declared" json:"subjectsDeclaration"`
	DocumentsDeclared    bool `db:"documents_declared" json:"documentsDeclaration"`

	OnlineRegistrationDone bool    `db:"online_registration_done" json:"onlineRegistrationDone"`
	PhysicallyRegistered   bool    `db:"physically_registered" json:"physicallyRegistered"`
	ApplicationNumber      *string `db:"application_number" json:"cuRegistrationApplicationNumber,omitempty"`
	Remarks                *string `db:"remarks" json:"remarks,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Flags assembles the stored correction columns into a CorrectionFlags value.
func (r *CorrectionRequest) Flags() CorrectionFlags {
	return CorrectionFlags{
		Gender:        r.GenderCorrection,
		Nationality:   r.NationalityCorrection,
		AadhaarNumber: r.AadhaarCorrection,
		ApaarID:       r.ApaarCorrection,
		Subjects:      r.SubjectsCorrection,
	}
}

// AllDeclarationsDone reports whether every declaration step is confirmed.
func (r *CorrectionRequest) AllDeclarationsDone() bool {
	return r.IntroductoryDeclared &&
		r.PersonalInfoDeclared &&
		r.AddressDeclared &&
		r.SubjectsDeclared &&
		r.DocumentsDeclared
}

// CorrectionRequestUpdate carries the batch-submit mutation of a request.
type CorrectionRequestUpdate struct {
	Flags                  CorrectionFlags
	Status                 CorrectionRequestStatus
	DeclareAll             bool
	OnlineRegistrationDone bool
	ApplicationNumber      *string
}

// CorrectionRequestFilter narrows listing queries.
type CorrectionRequestFilter struct {
	Status               CorrectionRequestStatus
	Search               string
	DeclarationsComplete *bool
	Page                 int
	PageSize             int
}
