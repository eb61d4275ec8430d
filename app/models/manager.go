package models

import "time"

// Manager is the administrative login account. There is no self-service
// signup; accounts are seeded through cmd/addmanager.
type Manager struct {
	ID        string    `json:"id" validate:"required,uuid"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"-" validate:"required,min=8"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
