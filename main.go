package main

import (
	"log"

	"eduface/app/config"
	"eduface/app/database"
	"eduface/app/recognition"
	"eduface/app/routes/attendance"
	"eduface/app/routes/auth"
	"eduface/app/routes/metrics"
	"eduface/app/routes/reports"
	"eduface/app/routes/students"
	"eduface/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// customErrorHandler renders every error as JSON; this service has no HTML
// surface.
func customErrorHandler(c *fiber.Ctx, err error) error {
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
	cfg := config.Load()

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	if err := database.InitSchema(config.GetDB()); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	store := database.NewStore(config.GetDB())
	engine := recognition.NewEngineClient(cfg.EngineURL, cfg.FaceModel, cfg.FaceDetector)
	ledger := services.NewLedger(store, store, cfg.Cutoff)
	aggregator := services.NewAggregator(store, cfg.Cutoff)

	hooks := &services.DeletionHooks{}
	hooks.Register(services.FileCleanup(cfg.MediaDir, cfg.GalleryDir))

	// Start background scheduler
	services.StartScheduler(aggregator)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Student display photos
	app.Static("/media/students", cfg.MediaDir)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "model": engine.Model()})
	})

	// Setup auth routes
	auth.SetupAuthRoutes(app)

	// Setup students routes
	students.SetupStudentsRoutes(app, hooks)

	// Setup attendance and recognition routes
	attendance.SetupAttendanceRoutes(app, engine, ledger, hooks)

	// Setup metrics routes
	metrics.SetupMetricsRoutes(app, aggregator)

	// Setup reports routes
	reports.SetupReportsRoutes(app, store)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Start server
	log.Println("Server starting on :" + cfg.ServerPort)
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
