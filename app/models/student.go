package models

import "time"

// Student is the identity record everything else hangs off. Fees and results
// reference it by id; deleting a student cascades to both and removes the
// stored Aadhaar image.
type Student struct {
	ID             string    `json:"id" validate:"omitempty,uuid"`
	Name           string    `json:"name" validate:"required"`
	FatherName     string    `json:"fathername" validate:"required"`
	MotherName     string    `json:"mothername" validate:"required"`
	StudentMob     string    `json:"studentMob" validate:"required"`
	ParentsMob     string    `json:"parentsMob" validate:"required"`
	AadharCard     string    `json:"aadharcard,omitempty"`
	AadharImageID  string    `json:"-"`
	AadharImageURL string    `json:"aadharImageUrl,omitempty"`
	Enrollment     string    `json:"enrollment,omitempty"`
	Session        string    `json:"session" validate:"required"`
	Course         string    `json:"course,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// HasAadharImage reports whether an identity document has already been
// uploaded. Upload is write-once; the reference is cleared only when the
// student is deleted.
func (s *Student) HasAadharImage() bool {
	return s.AadharImageID != ""
}

// StudentFilters represents filtering options for student lookups. String
// fields match case-insensitively as substrings; Session matches exactly.
type StudentFilters struct {
	Name       string
	FatherName string
	MotherName string
	StudentMob string
	ParentsMob string
	AadharCard string
	Enrollment string
	Course     string
	Session    string
}
