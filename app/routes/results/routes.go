package results

import (
	"database/sql"

	"github.com/adeebkhans/StudentManagementExe/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

func SetupResultsRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/v1/result")
	api.Use(auth.AuthMiddleware)

	api.Post("/", func(c *fiber.Ctx) error { return CreateUpdateResultAPI(c, db) })
	api.Post("/subjects", func(c *fiber.Ctx) error { return MassUpdateResultsAPI(c, db) })
	api.Get("/", func(c *fiber.Ctx) error { return GetAllResultsAPI(c, db) })
	api.Get("/student/:studentId", func(c *fiber.Ctx) error { return GetResultsByStudentAPI(c, db) })
	api.Get("/export", func(c *fiber.Ctx) error { return ExportResultsAPI(c, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetResultByIDAPI(c, db) })
	api.Delete("/:id", func(c *fiber.Ctx) error { return DeleteResultAPI(c, db) })
}
