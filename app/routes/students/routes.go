package students

import (
	"github.com/adeebkhans/StudentManagementExe/app/routes/auth"
	"github.com/adeebkhans/StudentManagementExe/app/storage"
	"github.com/gofiber/fiber/v2"
)

// imageStore holds uploaded Aadhaar documents; set once during route setup.
var imageStore storage.ImageStore

func SetupStudentsRoutes(app *fiber.App, store storage.ImageStore) {
	imageStore = store

	api := app.Group("/api/v1/students")
	api.Use(auth.AuthMiddleware)

	api.Post("/", CreateStudentAPI)          // Create new student
	api.Get("/", GetStudentsAPI)             // Get all students with filters
	api.Get("/export", ExportStudentsAPI)    // Export students to Excel
	api.Get("/:id", GetStudentByIDAPI)       // Get single student by ID
	api.Put("/:id", UpdateStudentAPI)        // Update existing student
	api.Delete("/:id", DeleteStudentAPI)     // Delete student (cascades)
	api.Post("/:id/aadhar", UploadAadharAPI) // Aadhaar image upload (write-once)
}
