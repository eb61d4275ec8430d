package models

// ResultResponse extends the base Result with student details for display
// and export, mirroring what list endpoints join in.
type ResultResponse struct {
	Result
	StudentName       string `json:"student_name,omitempty"`
	StudentEnrollment string `json:"student_enrollment,omitempty"`
}
