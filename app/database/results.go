package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/adeebkhans/StudentManagementExe/app/models"
)

// Results persist their subject and practical collections as JSONB so the
// name-keyed merge semantics stay in application code and ordering survives
// round trips.

func marshalMarks(r *models.Result) ([]byte, []byte, error) {
	subjects := r.Subjects
	if subjects == nil {
		subjects = []models.Subject{}
	}
	practicals := r.Practicals
	if practicals == nil {
		practicals = []models.Practical{}
	}

	subjectsJSON, err := json.Marshal(subjects)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode subjects: %w", err)
	}
	practicalsJSON, err := json.Marshal(practicals)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode practicals: %w", err)
	}
	return subjectsJSON, practicalsJSON, nil
}

func unmarshalMarks(r *models.Result, subjectsJSON, practicalsJSON []byte) error {
	if err := json.Unmarshal(subjectsJSON, &r.Subjects); err != nil {
		return fmt.Errorf("failed to decode subjects: %w", err)
	}
	if err := json.Unmarshal(practicalsJSON, &r.Practicals); err != nil {
		return fmt.Errorf("failed to decode practicals: %w", err)
	}
	return nil
}

// GetResultByKey fetches the result for an exact (student, session, year)
// triple. Returns nil when none exists yet.
func GetResultByKey(db *sql.DB, studentID, session, year string) (*models.Result, error) {
	query := `SELECT id, student_id, session, year, subjects, practicals, created_at
			  FROM results WHERE student_id = $1 AND session = $2 AND year = $3`

	result := &models.Result{}
	var subjectsJSON, practicalsJSON []byte
	err := db.QueryRow(query, studentID, session, year).Scan(
		&result.ID, &result.StudentID, &result.Session, &result.Year,
		&subjectsJSON, &practicalsJSON, &result.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch result: %w", err)
	}
	if err := unmarshalMarks(result, subjectsJSON, practicalsJSON); err != nil {
		return nil, err
	}
	return result, nil
}

func CreateResult(db *sql.DB, result *models.Result) error {
	subjectsJSON, practicalsJSON, err := marshalMarks(result)
	if err != nil {
		return err
	}

	query := `INSERT INTO results (student_id, session, year, subjects, practicals)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at`
	err = db.QueryRow(query,
		result.StudentID, result.Session, result.Year, subjectsJSON, practicalsJSON,
	).Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create result: %w", err)
	}
	return nil
}

func UpdateResult(db *sql.DB, result *models.Result) error {
	subjectsJSON, practicalsJSON, err := marshalMarks(result)
	if err != nil {
		return err
	}

	_, err = db.Exec(`UPDATE results SET subjects = $1, practicals = $2 WHERE id = $3`,
		subjectsJSON, practicalsJSON, result.ID)
	if err != nil {
		return fmt.Errorf("failed to update result: %w", err)
	}
	return nil
}

const resultSelect = `
	SELECT r.id, r.student_id, r.session, r.year, r.subjects, r.practicals, r.created_at,
		   s.name, COALESCE(s.enrollment, '')
	FROM results r
	JOIN students s ON r.student_id = s.id`

func scanResultResponse(row interface{ Scan(...interface{}) error }) (*models.ResultResponse, error) {
	result := &models.ResultResponse{}
	var subjectsJSON, practicalsJSON []byte
	err := row.Scan(
		&result.ID, &result.StudentID, &result.Session, &result.Year,
		&subjectsJSON, &practicalsJSON, &result.CreatedAt,
		&result.StudentName, &result.StudentEnrollment,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalMarks(&result.Result, subjectsJSON, practicalsJSON); err != nil {
		return nil, err
	}
	return result, nil
}

func GetResultByID(db *sql.DB, resultID string) (*models.ResultResponse, error) {
	result, err := scanResultResponse(db.QueryRow(resultSelect+` WHERE r.id = $1`, resultID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch result: %w", err)
	}
	return result, nil
}

// resultFilterClause builds the WHERE tail for result list queries. Session
// matches as a case-insensitive substring, SessionExact and Year exactly.
func resultFilterClause(filters models.ResultFilters) (string, []interface{}) {
	clause := ""
	var args []interface{}

	if filters.Session != "" {
		args = append(args, "%"+filters.Session+"%")
		clause += fmt.Sprintf(" AND r.session ILIKE $%d", len(args))
	}
	if filters.SessionExact != "" {
		args = append(args, filters.SessionExact)
		clause += fmt.Sprintf(" AND r.session = $%d", len(args))
	}
	if filters.Year != "" {
		args = append(args, filters.Year)
		clause += fmt.Sprintf(" AND r.year = $%d", len(args))
	}
	if filters.Name != "" {
		args = append(args, "%"+filters.Name+"%")
		clause += fmt.Sprintf(" AND s.name ILIKE $%d", len(args))
	}
	if filters.Enrollment != "" {
		args = append(args, "%"+filters.Enrollment+"%")
		clause += fmt.Sprintf(" AND s.enrollment ILIKE $%d", len(args))
	}
	return clause, args
}

// GetAllResults lists results joined with student name and enrollment.
// Results whose student fails the name/enrollment sub-filter are dropped by
// the join conditions.
func GetAllResults(db *sql.DB, filters models.ResultFilters) ([]*models.ResultResponse, error) {
	clause, args := resultFilterClause(filters)
	query := resultSelect + ` WHERE 1=1` + clause + " ORDER BY r.created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}
	defer rows.Close()

	var results []*models.ResultResponse
	for rows.Next() {
		result, err := scanResultResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// GetResultsByStudentID fetches a student's results, optionally limited to
// one academic year.
func GetResultsByStudentID(db *sql.DB, studentID, year string) ([]*models.Result, error) {
	query := `SELECT id, student_id, session, year, subjects, practicals, created_at
			  FROM results WHERE student_id = $1`
	args := []interface{}{studentID}
	if year != "" {
		args = append(args, year)
		query += fmt.Sprintf(" AND year = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}
	defer rows.Close()

	var results []*models.Result
	for rows.Next() {
		result := &models.Result{}
		var subjectsJSON, practicalsJSON []byte
		err := rows.Scan(
			&result.ID, &result.StudentID, &result.Session, &result.Year,
			&subjectsJSON, &practicalsJSON, &result.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		if err := unmarshalMarks(result, subjectsJSON, practicalsJSON); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func DeleteResult(db *sql.DB, resultID string) (bool, error) {
	result, err := db.Exec(`DELETE FROM results WHERE id = $1`, resultID)
	if err != nil {
		return false, fmt.Errorf("failed to delete result: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
