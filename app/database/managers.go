package database

import (
	"database/sql"

	"github.com/adeebkhans/StudentManagementExe/app/models"
	"golang.org/x/crypto/bcrypt"
)

func GetManagerByEmail(db *sql.DB, email string) (*models.Manager, error) {
	manager := &models.Manager{}
	query := `SELECT id, email, password, created_at, updated_at
			  FROM managers WHERE email = $1`

	err := db.QueryRow(query, email).Scan(
		&manager.ID, &manager.Email, &manager.Password,
		&manager.CreatedAt, &manager.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return manager, nil
}

// CreateManager hashes the password and inserts a manager account. The email
// is unique; inserting a duplicate surfaces the constraint violation.
func CreateManager(db *sql.DB, manager *models.Manager) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(manager.Password), 14)
	if err != nil {
		return err
	}

	query := `INSERT INTO managers (email, password)
			  VALUES ($1, $2)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, manager.Email, string(hashed)).Scan(
		&manager.ID, &manager.CreatedAt, &manager.UpdatedAt,
	)
}
