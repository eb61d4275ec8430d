package database

import (
	"database/sql"
	"fmt"

	"github.com/adeebkhans/StudentManagementExe/app/models"
)

const studentColumns = `id, name, fathername, mothername, student_mob, parents_mob,
	COALESCE(aadharcard, ''), COALESCE(aadhar_image_id, ''), COALESCE(aadhar_image_url, ''),
	COALESCE(enrollment, ''), session, COALESCE(course, ''), created_at`

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID, &student.Name, &student.FatherName, &student.MotherName,
		&student.StudentMob, &student.ParentsMob, &student.AadharCard,
		&student.AadharImageID, &student.AadharImageURL,
		&student.Enrollment, &student.Session, &student.Course, &student.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return student, nil
}

func CreateStudent(db *sql.DB, student *models.Student) error {
	query := `INSERT INTO students (name, fathername, mothername, student_mob, parents_mob,
			  aadharcard, enrollment, session, course)
			  VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, NULLIF($9, ''))
			  RETURNING id, created_at`

	err := db.QueryRow(query,
		student.Name, student.FatherName, student.MotherName,
		student.StudentMob, student.ParentsMob,
		student.AadharCard, student.Enrollment, student.Session, student.Course,
	).Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	student, err := scanStudent(db.QueryRow(query, studentID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}
	return student, nil
}

// StudentExists is the referential check performed before writing fee or
// result rows that point at a student.
func StudentExists(db *sql.DB, studentID string) (bool, error) {
	var exists bool
	err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM students WHERE id = $1)`, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check student: %w", err)
	}
	return exists, nil
}

// GetAllStudents lists students newest first, applying the optional filters.
func GetAllStudents(db *sql.DB, filters models.StudentFilters) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE 1=1`
	var args []interface{}

	addLike := func(column, value string) {
		if value != "" {
			args = append(args, "%"+value+"%")
			query += fmt.Sprintf(" AND %s ILIKE $%d", column, len(args))
		}
	}
	addLike("name", filters.Name)
	addLike("fathername", filters.FatherName)
	addLike("mothername", filters.MotherName)
	addLike("student_mob", filters.StudentMob)
	addLike("parents_mob", filters.ParentsMob)
	addLike("aadharcard", filters.AadharCard)
	addLike("enrollment", filters.Enrollment)
	addLike("course", filters.Course)
	if filters.Session != "" {
		args = append(args, filters.Session)
		query += fmt.Sprintf(" AND session = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch students: %w", err)
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

// GetStudentsBySession lists all students of one session sorted by name,
// used by the export and the fee backlog lookup.
func GetStudentsBySession(db *sql.DB, session string) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students`
	var args []interface{}
	if session != "" {
		query += ` WHERE session = $1`
		args = append(args, session)
	}
	query += ` ORDER BY name`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch students: %w", err)
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

// FindStudentIDs resolves the id set for fee/result queries that filter on
// student name or enrollment.
func FindStudentIDs(db *sql.DB, name, enrollment string) ([]string, error) {
	query := `SELECT id FROM students WHERE 1=1`
	var args []interface{}
	if name != "" {
		args = append(args, "%"+name+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if enrollment != "" {
		args = append(args, "%"+enrollment+"%")
		query += fmt.Sprintf(" AND enrollment ILIKE $%d", len(args))
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve students: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// StudentUpdate carries the mutable student fields for a partial update.
// The Aadhaar image reference is deliberately absent: it is write-once
// through the upload endpoint and cleared only on deletion.
type StudentUpdate struct {
	Name       *string `json:"name"`
	FatherName *string `json:"fathername"`
	MotherName *string `json:"mothername"`
	StudentMob *string `json:"studentMob"`
	ParentsMob *string `json:"parentsMob"`
	AadharCard *string `json:"aadharcard"`
	Enrollment *string `json:"enrollment"`
	Session    *string `json:"session"`
	Course     *string `json:"course"`
}

// UpdateStudent applies the non-nil fields of update to the student row.
// Returns the updated row, or nil when the id does not resolve.
func UpdateStudent(db *sql.DB, studentID string, update StudentUpdate) (*models.Student, error) {
	set := ""
	var args []interface{}

	addSet := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", column, len(args))
	}
	addSet("name", update.Name)
	addSet("fathername", update.FatherName)
	addSet("mothername", update.MotherName)
	addSet("student_mob", update.StudentMob)
	addSet("parents_mob", update.ParentsMob)
	addSet("aadharcard", update.AadharCard)
	addSet("enrollment", update.Enrollment)
	addSet("session", update.Session)
	addSet("course", update.Course)

	if set == "" {
		return GetStudentByID(db, studentID)
	}

	args = append(args, studentID)
	query := fmt.Sprintf(`UPDATE students SET %s WHERE id = $%d RETURNING `+studentColumns, set, len(args))

	student, err := scanStudent(db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update student: %w", err)
	}
	return student, nil
}

// SetAadharImage records the uploaded identity document reference.
func SetAadharImage(db *sql.DB, studentID, imageID, imageURL string) (*models.Student, error) {
	query := `UPDATE students SET aadhar_image_id = $1, aadhar_image_url = $2
			  WHERE id = $3 RETURNING ` + studentColumns

	student, err := scanStudent(db.QueryRow(query, imageID, imageURL, studentID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store aadhaar reference: %w", err)
	}
	return student, nil
}

// DeleteStudent removes the student row; fees and results go with it via
// ON DELETE CASCADE. The caller is responsible for deleting the stored
// Aadhaar image using the reference returned by a prior GetStudentByID.
func DeleteStudent(db *sql.DB, studentID string) (bool, error) {
	result, err := db.Exec(`DELETE FROM students WHERE id = $1`, studentID)
	if err != nil {
		return false, fmt.Errorf("failed to delete student: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
