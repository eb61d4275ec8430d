package results

import (
	"database/sql"
	"log"

	"github.com/adeebkhans/StudentManagementExe/app/database"
	"github.com/adeebkhans/StudentManagementExe/app/models"
	"github.com/gofiber/fiber/v2"
)

// MergeRequest is the create-or-update wire shape: partial subject and
// practical patches for one (student, session, year) triple.
type MergeRequest struct {
	Student    string           `json:"student"`
	Session    string           `json:"session"`
	Year       string           `json:"year"`
	Subjects   []SubjectPatch   `json:"subjects"`
	Practicals []PracticalPatch `json:"practicals"`
}

// CreateUpdateResultAPI merges a partial mark submission into the student's
// result for the session and year, creating the document on first contact.
func CreateUpdateResultAPI(c *fiber.Ctx, db *sql.DB) error {
	var req MergeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Student == "" || req.Session == "" || req.Year == "" {
		return fiber.NewError(fiber.StatusBadRequest, "student, session, and year are required")
	}
	if !models.ValidYear(req.Year) {
		return fiber.NewError(fiber.StatusBadRequest, "year must be 'first' or 'second'")
	}

	exists, err := database.StudentExists(db, req.Student)
	if err != nil {
		log.Printf("CreateUpdateResult error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save result")
	}
	if !exists {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	result, err := saveMerge(db, req.Student, req.Session, req.Year, req.Subjects, req.Practicals)
	if err != nil {
		log.Printf("CreateUpdateResult error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save result")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Result saved successfully",
		"data":    result,
	})
}

// MassUpdate is one element of a bulk mark submission: a single subject or
// practical patch targeted at a (student, session, year) triple.
type MassUpdate struct {
	Student   string          `json:"student"`
	Session   string          `json:"session"`
	Year      string          `json:"year"`
	Subject   *SubjectPatch   `json:"subject"`
	Practical *PracticalPatch `json:"practical"`
}

// MassUpdateOutcome reports what happened to one entry of a bulk submission.
type MassUpdateOutcome struct {
	Index    int    `json:"index"`
	Status   string `json:"status"` // "ok", "skipped" or "failed"
	Error    string `json:"error,omitempty"`
	ResultID string `json:"result_id,omitempty"`
}

// MassUpdateResultsAPI applies merges sequentially, one per entry. Malformed
// entries are reported as skipped rather than silently dropped; a storage
// failure aborts the remaining entries. Already-applied merges stay applied
// (no rollback).
func MassUpdateResultsAPI(c *fiber.Ctx, db *sql.DB) error {
	var updates []MassUpdate
	if err := c.BodyParser(&updates); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Request body must be an array of updates")
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Request body must be a non-empty array")
	}

	outcomes := make([]MassUpdateOutcome, 0, len(updates))
	aborted := false

	for i, update := range updates {
		outcome := MassUpdateOutcome{Index: i, Status: "ok"}

		switch {
		case update.Student == "" || update.Session == "" || update.Year == "":
			outcome.Status = "skipped"
			outcome.Error = "student, session, and year are required"
		case !models.ValidYear(update.Year):
			outcome.Status = "skipped"
			outcome.Error = "year must be 'first' or 'second'"
		case update.Subject == nil && update.Practical == nil:
			outcome.Status = "skipped"
			outcome.Error = "entry has neither subject nor practical"
		}
		if outcome.Status == "skipped" {
			outcomes = append(outcomes, outcome)
			continue
		}

		exists, err := database.StudentExists(db, update.Student)
		if err != nil {
			log.Printf("MassUpdateResults error: %v", err)
			outcome.Status = "failed"
			outcome.Error = "storage error"
			outcomes = append(outcomes, outcome)
			aborted = true
			break
		}
		if !exists {
			outcome.Status = "failed"
			outcome.Error = "student not found"
			outcomes = append(outcomes, outcome)
			continue
		}

		var subjects []SubjectPatch
		var practicals []PracticalPatch
		if update.Subject != nil {
			subjects = append(subjects, *update.Subject)
		}
		if update.Practical != nil {
			practicals = append(practicals, *update.Practical)
		}

		result, err := saveMerge(db, update.Student, update.Session, update.Year, subjects, practicals)
		if err != nil {
			log.Printf("MassUpdateResults error: %v", err)
			outcome.Status = "failed"
			outcome.Error = "storage error"
			outcomes = append(outcomes, outcome)
			aborted = true
			break
		}

		outcome.ResultID = result.ID
		outcomes = append(outcomes, outcome)
	}

	status := fiber.StatusOK
	message := "Results updated successfully"
	if aborted {
		status = fiber.StatusInternalServerError
		message = "Mass update aborted by a storage error; earlier entries were applied"
	}

	return c.Status(status).JSON(fiber.Map{
		"success": !aborted,
		"message": message,
		"results": outcomes,
	})
}

// GetAllResultsAPI lists results with student name and enrollment joined in.
// Session filters as a case-insensitive substring, year exactly; name and
// enrollment filter on the student and drop non-matching results.
func GetAllResultsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := models.ResultFilters{
		Session:    c.Query("session"),
		Year:       c.Query("year"),
		Name:       c.Query("name"),
		Enrollment: c.Query("enrollment"),
	}

	results, err := database.GetAllResults(db, filters)
	if err != nil {
		log.Printf("GetAllResults error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch results")
	}
	if results == nil {
		results = []*models.ResultResponse{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"results": results,
	})
}

// GetResultsByStudentAPI returns a student's results, optionally limited to
// one academic year.
func GetResultsByStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("studentId")
	year := c.Query("year")

	results, err := database.GetResultsByStudentID(db, studentID, year)
	if err != nil {
		log.Printf("GetResultsByStudentId error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch results")
	}
	if results == nil {
		results = []*models.Result{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"results": results,
	})
}

// GetResultByIDAPI returns one result document by id
func GetResultByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	result, err := database.GetResultByID(db, c.Params("id"))
	if err != nil {
		log.Printf("GetResultById error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch result")
	}
	if result == nil {
		return fiber.NewError(fiber.StatusNotFound, "Result not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"result":  result,
	})
}

// DeleteResultAPI removes a result document. Deletion is the only way a
// result ever goes away; merges never delete.
func DeleteResultAPI(c *fiber.Ctx, db *sql.DB) error {
	deleted, err := database.DeleteResult(db, c.Params("id"))
	if err != nil {
		log.Printf("DeleteResultById error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete result")
	}
	if !deleted {
		return fiber.NewError(fiber.StatusNotFound, "Result not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Result deleted successfully",
	})
}
