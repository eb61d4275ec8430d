package models

import "time"

// CTMark holds one class test score. OutOf75 is the raw score entered by the
// caller; OutOf5 is derived (raw / 15, rounded) before every save and never
// trusted from input.
type CTMark struct {
	OutOf75 *float64 `json:"outOf75,omitempty"`
	OutOf5  *float64 `json:"outOf5,omitempty"`
}

// OtherMarks are the 0-5 sub-scores contributing to a subject's 25-point
// total alongside the two class tests.
type OtherMarks struct {
	Assignment      *float64 `json:"assignment,omitempty"`
	ExtraCurricular *float64 `json:"extraCurricular,omitempty"`
	Attendance      *float64 `json:"attendance,omitempty"`
}

// SubjectMarks is the nested mark block of one subject. TotalOutOf25 is
// derived on every save.
type SubjectMarks struct {
	CT1          CTMark     `json:"ct1"`
	CT2          CTMark     `json:"ct2"`
	OtherMarks   OtherMarks `json:"otherMarks"`
	TotalOutOf25 *float64   `json:"totalOutOf25,omitempty"`
}

// Subject is one name-keyed entry in a result. Names are unique within a
// result; a second write to the same name merges into the existing entry.
type Subject struct {
	Name  string       `json:"name"`
	Marks SubjectMarks `json:"marks"`
}

// Practical is one name-keyed lab assessment entry, scored out of 100.
type Practical struct {
	Name  string   `json:"name"`
	Marks *float64 `json:"marks,omitempty"`
}

// Result aggregates a student's marks for one (student, session, year)
// triple. Year is "first" or "second". Subjects and practicals keep their
// insertion order.
type Result struct {
	ID         string      `json:"id"`
	StudentID  string      `json:"student"`
	Session    string      `json:"session"`
	Year       string      `json:"year"`
	Subjects   []Subject   `json:"subjects"`
	Practicals []Practical `json:"practicals"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Academic years a result can belong to.
const (
	YearFirst  = "first"
	YearSecond = "second"
)

// ValidYear reports whether year is one of the two program years.
func ValidYear(year string) bool {
	return year == YearFirst || year == YearSecond
}

// ResultFilters represents filtering options for result lookups. Session
// matches as a case-insensitive substring, SessionExact exactly (for the
// export, which targets one cohort), Year exactly; Name and Enrollment filter
// on the joined student row and drop results whose student fails the match.
type ResultFilters struct {
	Session      string
	SessionExact string
	Year         string
	Name         string
	Enrollment   string
}
