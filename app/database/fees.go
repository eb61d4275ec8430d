package database

import (
	"database/sql"
	"fmt"

	"github.com/adeebkhans/StudentManagementExe/app/models"
	"github.com/lib/pq"
)

// FeeFilters represents filtering options for fee lookups. Name and
// Enrollment are resolved against students first; Session matches exactly.
type FeeFilters struct {
	Name       string
	Enrollment string
	Session    string
	StudentIDs []string
}

const feeSelect = `
	SELECT f.id, f.student_id, f.code, f.session, f.fee, f.deposited, f.remaining, f.updated_at,
		   s.id, s.name, s.fathername, s.mothername, s.student_mob, s.parents_mob,
		   COALESCE(s.aadharcard, ''), COALESCE(s.aadhar_image_id, ''), COALESCE(s.aadhar_image_url, ''),
		   COALESCE(s.enrollment, ''), s.session, COALESCE(s.course, ''), s.created_at
	FROM fees f
	JOIN students s ON f.student_id = s.id`

func scanFee(row interface{ Scan(...interface{}) error }) (*models.Fee, error) {
	fee := &models.Fee{}
	student := &models.Student{}
	err := row.Scan(
		&fee.ID, &fee.StudentID, &fee.Code, &fee.Session,
		&fee.Fee, &fee.Deposited, &fee.Remaining, &fee.UpdatedAt,
		&student.ID, &student.Name, &student.FatherName, &student.MotherName,
		&student.StudentMob, &student.ParentsMob, &student.AadharCard,
		&student.AadharImageID, &student.AadharImageURL,
		&student.Enrollment, &student.Session, &student.Course, &student.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	fee.Student = student
	return fee, nil
}

func CreateFee(db *sql.DB, fee *models.Fee) error {
	query := `INSERT INTO fees (student_id, code, session, fee, deposited, remaining)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, updated_at`

	err := db.QueryRow(query,
		fee.StudentID, fee.Code, fee.Session, fee.Fee, fee.Deposited, fee.Remaining,
	).Scan(&fee.ID, &fee.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create fee: %w", err)
	}
	return nil
}

// FeeExistsForStudent implements the create-time uniqueness check. With an
// empty session the scope is the student alone; otherwise student+session.
func FeeExistsForStudent(db *sql.DB, studentID, session string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM fees WHERE student_id = $1`
	args := []interface{}{studentID}
	if session != "" {
		query += ` AND session = $2`
		args = append(args, session)
	}
	query += `)`

	var exists bool
	if err := db.QueryRow(query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check fee uniqueness: %w", err)
	}
	return exists, nil
}

func GetFeeByID(db *sql.DB, feeID string) (*models.Fee, error) {
	fee, err := scanFee(db.QueryRow(feeSelect+` WHERE f.id = $1`, feeID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fee: %w", err)
	}
	return fee, nil
}

func GetFeesByStudentID(db *sql.DB, studentID string) ([]*models.Fee, error) {
	rows, err := db.Query(feeSelect+` WHERE f.student_id = $1 ORDER BY f.updated_at DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fees: %w", err)
	}
	defer rows.Close()
	return collectFees(rows)
}

// GetAllFees lists fees joined with their student. StudentIDs, when set,
// restricts to the resolved id set from a name/enrollment filter.
func GetAllFees(db *sql.DB, filters FeeFilters) ([]*models.Fee, error) {
	query := feeSelect + ` WHERE 1=1`
	var args []interface{}

	if filters.Session != "" {
		args = append(args, filters.Session)
		query += fmt.Sprintf(" AND f.session = $%d", len(args))
	}
	if filters.StudentIDs != nil {
		args = append(args, pq.Array(filters.StudentIDs))
		query += fmt.Sprintf(" AND f.student_id = ANY($%d)", len(args))
	}
	query += " ORDER BY f.updated_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fees: %w", err)
	}
	defer rows.Close()
	return collectFees(rows)
}

func collectFees(rows *sql.Rows) ([]*models.Fee, error) {
	var fees []*models.Fee
	for rows.Next() {
		fee, err := scanFee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fee: %w", err)
		}
		fees = append(fees, fee)
	}
	return fees, rows.Err()
}

// UpdateFeeDeposit persists the ledger after a deposit has been applied.
func UpdateFeeDeposit(db *sql.DB, fee *models.Fee) error {
	query := `UPDATE fees SET deposited = $1, remaining = $2, updated_at = NOW()
			  WHERE id = $3 RETURNING updated_at`

	err := db.QueryRow(query, fee.Deposited, fee.Remaining, fee.ID).Scan(&fee.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update fee: %w", err)
	}
	return nil
}

func DeleteFee(db *sql.DB, feeID string) (bool, error) {
	result, err := db.Exec(`DELETE FROM fees WHERE id = $1`, feeID)
	if err != nil {
		return false, fmt.Errorf("failed to delete fee: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetStudentsWithoutFees returns the students of a session that have no fee
// record for it, i.e. the backlog for fee creation.
func GetStudentsWithoutFees(db *sql.DB, session string) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students
			  WHERE session = $1
			  AND id NOT IN (SELECT student_id FROM fees WHERE session = $1)
			  ORDER BY name`

	rows, err := db.Query(query, session)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch students without fees: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, student)
	}
	return students, rows.Err()
}
