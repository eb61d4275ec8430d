package models

import "time"

// Fee is the per-student fee ledger row. Deposited only ever changes through
// incremental deposits; Remaining is derived and must equal Fee - Deposited
// after every mutation.
type Fee struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student"`
	Code      string    `json:"code"`
	Session   string    `json:"session"`
	Fee       float64   `json:"fee"`
	Deposited float64   `json:"deposited"`
	Remaining float64   `json:"remaining"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Populated on reads that join the student row.
	Student *Student `json:"student_info,omitempty"`
}

// Recalculate restores the ledger invariant after a mutation.
func (f *Fee) Recalculate() {
	f.Remaining = f.Fee - f.Deposited
}
