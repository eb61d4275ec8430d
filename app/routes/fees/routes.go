package fees

import (
	"database/sql"

	"github.com/adeebkhans/StudentManagementExe/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

func SetupFeesRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/v1/fees")
	api.Use(auth.AuthMiddleware)

	api.Post("/", func(c *fiber.Ctx) error { return CreateFeeAPI(c, db) })
	api.Get("/", func(c *fiber.Ctx) error { return GetFeesAPI(c, db) })
	api.Get("/newstudents", func(c *fiber.Ctx) error { return GetNewStudentsAPI(c, db) })
	api.Get("/student/:studentId", func(c *fiber.Ctx) error { return GetFeesByStudentAPI(c, db) })
	api.Get("/export", func(c *fiber.Ctx) error { return ExportFeesAPI(c, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetFeeByIDAPI(c, db) })
	api.Put("/:id", func(c *fiber.Ctx) error { return UpdateFeeAPI(c, db) })
	api.Delete("/:id", func(c *fiber.Ctx) error { return DeleteFeeAPI(c, db) })
}
