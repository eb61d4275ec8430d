package fees

import (
	"database/sql"
	"encoding/json"
	"log"

	"github.com/adeebkhans/StudentManagementExe/app/config"
	"github.com/adeebkhans/StudentManagementExe/app/database"
	"github.com/adeebkhans/StudentManagementExe/app/models"
	"github.com/adeebkhans/StudentManagementExe/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// feeLocks serializes deposits per fee id so concurrent updates cannot lose
// each other's writes.
var feeLocks = services.NewKeyedMutex()

// CreateFeeRequest is the fee creation wire shape. Fee and Deposited are
// pointers so zero amounts are distinguishable from missing fields.
type CreateFeeRequest struct {
	Student   string   `json:"student" validate:"required"`
	Code      string   `json:"code" validate:"required"`
	Fee       *float64 `json:"fee" validate:"required"`
	Deposited *float64 `json:"deposited" validate:"required"`
	Session   string   `json:"session" validate:"required"`
}

// CreateFeeAPI creates the ledger row for a student. Uniqueness is enforced
// per student or per student+session depending on configuration.
func CreateFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}

	exists, err := database.StudentExists(db, req.Student)
	if err != nil {
		log.Printf("Create fee error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee record")
	}
	if !exists {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	scopeSession := ""
	if config.AppConfig.FeeUniqueScope == config.FeeScopeStudentSession {
		scopeSession = req.Session
	}
	duplicate, err := database.FeeExistsForStudent(db, req.Student, scopeSession)
	if err != nil {
		log.Printf("Create fee error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee record")
	}
	if duplicate {
		return fiber.NewError(fiber.StatusConflict,
			"Fee record already exists for this student. Please use the update endpoint")
	}

	fee := newFee(req.Student, req.Code, req.Session, *req.Fee, *req.Deposited)
	if err := database.CreateFee(db, fee); err != nil {
		log.Printf("Create fee error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee record")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Fee record created successfully",
		"data":    fee,
	})
}

// UpdateFeeAPI applies an incremental deposit. Deposited only ever changes
// additively through this endpoint; remaining is recomputed and persisted on
// every call even when the delta is absent.
func UpdateFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	feeID := c.Params("id")

	var req struct {
		NewDeposit json.RawMessage `json:"newDeposit"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	feeLocks.Lock(feeID)
	defer feeLocks.Unlock(feeID)

	fee, err := database.GetFeeByID(db, feeID)
	if err != nil {
		log.Printf("Update fee error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update fee record")
	}
	if fee == nil {
		return fiber.NewError(fiber.StatusNotFound, "Fee record not found")
	}

	applyDeposit(fee, req.NewDeposit)

	if err := database.UpdateFeeDeposit(db, fee); err != nil {
		log.Printf("Update fee error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update fee record")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Fee record updated successfully",
		"data":    fee,
	})
}

// GetFeesAPI lists fees. Name and enrollment filters resolve students first;
// no matching students yields an empty list, not an error.
func GetFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.FeeFilters{
		Name:       c.Query("name"),
		Enrollment: c.Query("enrollment"),
		Session:    c.Query("session"),
	}

	if filters.Name != "" || filters.Enrollment != "" {
		ids, err := database.FindStudentIDs(db, filters.Name, filters.Enrollment)
		if err != nil {
			log.Printf("Get all fees error: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee records")
		}
		if len(ids) == 0 {
			return c.JSON(fiber.Map{
				"success": true,
				"message": "Fee records fetched successfully. No matching students found.",
				"data":    []*models.Fee{},
			})
		}
		filters.StudentIDs = ids
	}

	fees, err := database.GetAllFees(db, filters)
	if err != nil {
		log.Printf("Get all fees error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee records")
	}
	if fees == nil {
		fees = []*models.Fee{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Fee records fetched successfully",
		"data":    fees,
	})
}

// GetFeeByIDAPI returns a single fee with its student
func GetFeeByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	fee, err := database.GetFeeByID(db, c.Params("id"))
	if err != nil {
		log.Printf("Get fee by ID error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee record")
	}
	if fee == nil {
		return fiber.NewError(fiber.StatusNotFound, "Fee record not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Fee record fetched successfully",
		"data":    fee,
	})
}

// GetFeesByStudentAPI returns all fees of one student
func GetFeesByStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	fees, err := database.GetFeesByStudentID(db, c.Params("studentId"))
	if err != nil {
		log.Printf("Get fees by student error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee records for student")
	}
	if fees == nil {
		fees = []*models.Fee{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Fee records fetched successfully for student",
		"data":    fees,
	})
}

// GetNewStudentsAPI lists students of a session that have no fee record yet
func GetNewStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	session := c.Query("session")
	if session == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Session is required")
	}

	students, err := database.GetStudentsWithoutFees(db, session)
	if err != nil {
		log.Printf("Get new students error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students without fee records")
	}
	if students == nil {
		students = []*models.Student{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Students with no fee records for the session fetched successfully",
		"data":    students,
	})
}

// DeleteFeeAPI removes a fee record
func DeleteFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	deleted, err := database.DeleteFee(db, c.Params("id"))
	if err != nil {
		log.Printf("Delete fee error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete fee record")
	}
	if !deleted {
		return fiber.NewError(fiber.StatusNotFound, "Fee record not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Fee record deleted successfully",
	})
}
