package models

import "time"

// Student holds the admission-side profile a correction request refers to.
// UID is the ten character admission identifier; characters five and six
// encode the admission year.
type Student struct {
	ID                 int64     `db:"id" json:"id"`
	UID                string    `db:"uid" json:"uid"`
	FullName           string    `db:"full_name" json:"fullName"`
	Email              string    `db:"email" json:"email"`
	Phone              *string   `db:"phone" json:"phone,omitempty"`
	CourseCode         *string   `db:"course_code" json:"courseCode,omitempty"`
	Gender             *string   `db:"gender" json:"gender,omitempty"`
	Nationality        *string   `db:"nationality" json:"nationality,omitempty"`
	AadhaarNumber      *string   `db:"aadhaar_number" json:"aadhaarNumber,omitempty"`
	ApaarID            *string   `db:"apaar_id" json:"apaarId,omitempty"`
	ResidentialAddress *string   `db:"residential_address" json:"residentialAddress,omitempty"`
	MailingAddress     *string   `db:"mailing_address" json:"mailingAddress,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// StudentCorrections carries the profile values a batch submission may
// sync onto the student row. Nil fields are left untouched.
type StudentCorrections struct {
	Gender             *string
	Nationality        *string
	AadhaarNumber      *string
	ApaarID            *string
	ResidentialAddress *string
	MailingAddress     *string
}

// Empty reports whether there is nothing to apply.
func (c StudentCorrections) Empty() bool {
	return c.Gender == nil && c.Nationality == nil && c.AadhaarNumber == nil &&
		c.ApaarID == nil && c.ResidentialAddress == nil && c.MailingAddress == nil
}
