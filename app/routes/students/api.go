package students

import (
	"log"

	"github.com/adeebkhans/StudentManagementExe/app/config"
	"github.com/adeebkhans/StudentManagementExe/app/database"
	"github.com/adeebkhans/StudentManagementExe/app/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateStudentAPI registers a new student
func CreateStudentAPI(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	student.ID = ""
	student.AadharImageID = ""
	student.AadharImageURL = ""

	if err := validate.Struct(&student); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}

	if err := database.CreateStudent(config.GetDB(), &student); err != nil {
		log.Printf("Create student error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Student created successfully",
		"data":    student,
	})
}

// GetStudentsAPI returns all students with optional filters
func GetStudentsAPI(c *fiber.Ctx) error {
	filters := models.StudentFilters{
		Name:       c.Query("name"),
		FatherName: c.Query("fathername"),
		MotherName: c.Query("mothername"),
		StudentMob: c.Query("studentMob"),
		ParentsMob: c.Query("parentsMob"),
		AadharCard: c.Query("aadharcard"),
		Enrollment: c.Query("enrollment"),
		Course:     c.Query("course"),
		Session:    c.Query("session"),
	}

	students, err := database.GetAllStudents(config.GetDB(), filters)
	if err != nil {
		log.Printf("Get all students error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}
	if students == nil {
		students = []*models.Student{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Students fetched successfully",
		"data":    students,
	})
}

// GetStudentByIDAPI returns a single student
func GetStudentByIDAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		log.Printf("Get student by ID error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}
	if student == nil {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Student fetched successfully",
		"data":    student,
	})
}

// UpdateStudentAPI applies a partial update. The Aadhaar image reference is
// not updatable here, only through the upload endpoint.
func UpdateStudentAPI(c *fiber.Ctx) error {
	var update database.StudentUpdate
	if err := c.BodyParser(&update); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	student, err := database.UpdateStudent(config.GetDB(), c.Params("id"), update)
	if err != nil {
		log.Printf("Update student error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}
	if student == nil {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Student updated successfully",
		"data":    student,
	})
}

// deleteStudentRecord removes the row, then the stored image. The image only
// goes once the delete is known to have happened, so a failed delete never
// leaves a student pointing at a removed file.
func deleteStudentRecord(student *models.Student,
	deleteRow func(string) (bool, error),
	removeImage func(string) error,
) (bool, error) {
	deleted, err := deleteRow(student.ID)
	if err != nil || !deleted {
		return deleted, err
	}
	if student.HasAadharImage() {
		if err := removeImage(student.AadharImageID); err != nil {
			// The record is already gone; an orphaned file is the lesser
			// problem and only gets logged.
			log.Printf("Aadhaar image delete error: %v", err)
		}
	}
	return true, nil
}

// DeleteStudentAPI removes a student; fees and results cascade with it and
// the stored Aadhaar image is cleaned up.
func DeleteStudentAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	studentID := c.Params("id")

	student, err := database.GetStudentByID(db, studentID)
	if err != nil {
		log.Printf("Delete student error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}
	if student == nil {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	deleted, err := deleteStudentRecord(student,
		func(id string) (bool, error) { return database.DeleteStudent(db, id) },
		imageStore.Delete)
	if err != nil {
		log.Printf("Delete student error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}
	if !deleted {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Student and associated Aadhaar image deleted successfully",
	})
}
