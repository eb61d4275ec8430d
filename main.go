package main

import (
	"log"

	"github.com/adeebkhans/StudentManagementExe/app/config"
	"github.com/adeebkhans/StudentManagementExe/app/database"
	"github.com/adeebkhans/StudentManagementExe/app/routes/auth"
	"github.com/adeebkhans/StudentManagementExe/app/routes/fees"
	"github.com/adeebkhans/StudentManagementExe/app/routes/results"
	"github.com/adeebkhans/StudentManagementExe/app/routes/students"
	"github.com/adeebkhans/StudentManagementExe/app/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// apiErrorHandler turns errors into the JSON envelope every endpoint uses.
func apiErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	config.Load()
	db := config.GetDB()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migrations failed: ", err)
	}

	imageStore, err := storage.NewDiskStore(config.AppConfig.UploadDir, "/uploads")
	if err != nil {
		log.Fatal("Failed to initialise upload storage: ", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Institute Admin",
		ErrorHandler: apiErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "http://localhost:5173",
		AllowHeaders:  "Content-Type, Authorization",
		AllowMethods:  "GET, POST, PUT, DELETE",
		ExposeHeaders: "Content-Disposition",
	}))

	// Uploaded Aadhaar images are served as static files; the URLs stored on
	// student records point here.
	app.Static("/uploads", config.AppConfig.UploadDir)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Server is running")
	})

	auth.SetupAuthRoutes(app)
	students.SetupStudentsRoutes(app, imageStore)
	fees.SetupFeesRoutes(app, db)
	results.SetupResultsRoutes(app, db)

	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	addr := ":" + config.AppConfig.Port
	log.Printf("Server started on http://localhost%s", addr)
	log.Fatal(app.Listen(addr))
}
