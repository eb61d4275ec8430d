package students

import (
	"errors"
	"io"
	"log"
	"strings"

	"github.com/adeebkhans/StudentManagementExe/app/config"
	"github.com/adeebkhans/StudentManagementExe/app/database"
	"github.com/adeebkhans/StudentManagementExe/app/models"
	"github.com/adeebkhans/StudentManagementExe/app/services"
	"github.com/adeebkhans/StudentManagementExe/app/storage"
	"github.com/gofiber/fiber/v2"
)

const maxUploadSize = 5 * 1024 * 1024

// uploadLocks serializes uploads per student so the write-once check and the
// reference write cannot interleave across concurrent requests.
var uploadLocks = services.NewKeyedMutex()

var (
	errStudentNotFound = errors.New("student not found")
	errImageExists     = errors.New("aadhaar image already uploaded")
)

// attachAadharImage runs the write-once upload sequence under the student's
// lock: re-check the reference, store the file, record the reference, and
// remove the file again if recording fails. Of two concurrent uploads for the
// same student exactly one can win.
func attachAadharImage(
	store storage.ImageStore,
	studentID, filename string,
	content io.Reader,
	fetch func(string) (*models.Student, error),
	record func(studentID, imageID, imageURL string) (*models.Student, error),
) (*storage.SavedImage, *models.Student, error) {
	uploadLocks.Lock(studentID)
	defer uploadLocks.Unlock(studentID)

	student, err := fetch(studentID)
	if err != nil {
		return nil, nil, err
	}
	if student == nil {
		return nil, nil, errStudentNotFound
	}
	if student.HasAadharImage() {
		return nil, nil, errImageExists
	}

	saved, err := store.Save("aadhaar", filename, content)
	if err != nil {
		return nil, nil, err
	}

	updated, err := record(studentID, saved.ID, saved.URL)
	if err != nil || updated == nil {
		// Roll the file back so the student is not left pointing nowhere.
		store.Delete(saved.ID)
		if err == nil {
			err = errStudentNotFound
		}
		return nil, nil, err
	}
	return saved, updated, nil
}

// UploadAadharAPI stores the identity document image for a student. Upload
// is write-once: while a reference exists, further uploads are rejected; the
// reference is cleared only when the student is deleted.
func UploadAadharAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	studentID := c.Params("id")

	fileHeader, err := c.FormFile("aadhar")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
	}
	if fileHeader.Size > maxUploadSize {
		return fiber.NewError(fiber.StatusBadRequest, "File exceeds the 5MB limit")
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		return fiber.NewError(fiber.StatusBadRequest, "Only image uploads are accepted")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to read upload")
	}
	defer file.Close()

	saved, updated, err := attachAadharImage(imageStore, studentID, fileHeader.Filename, file,
		func(id string) (*models.Student, error) {
			return database.GetStudentByID(db, id)
		},
		func(id, imageID, imageURL string) (*models.Student, error) {
			return database.SetAadharImage(db, id, imageID, imageURL)
		})
	switch {
	case errors.Is(err, errStudentNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	case errors.Is(err, errImageExists):
		return fiber.NewError(fiber.StatusConflict, "Aadhaar image already uploaded")
	case err != nil:
		log.Printf("Aadhaar upload error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to store image")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Aadhaar image uploaded successfully",
		"data": fiber.Map{
			"public_id":  saved.ID,
			"secure_url": saved.URL,
			"student":    updated,
		},
	})
}
