package students

import (
	"eduface/app/routes/auth"
	"eduface/app/services"

	"github.com/gofiber/fiber/v2"
)

var deletionHooks *services.DeletionHooks

func SetupStudentsRoutes(app *fiber.App, hooks *services.DeletionHooks) {
	deletionHooks = hooks

	api := app.Group("/api/students")
	api.Get("/", GetStudentsAPI)                  // List students (?grade=&section=&q=)
	api.Get("/:id", GetStudentByIDAPI)            // Get single student by ID
	api.Get("/:id/attendance", GetHistoryAPI)     // Attendance history (?limit=)
	api.Post("/", auth.AuthMiddleware, CreateStudentAPI)          // Create from JSON
	api.Post("/form", auth.AuthMiddleware, CreateStudentFormAPI)  // Create from form-data with photo
	api.Put("/:id", auth.AuthMiddleware, UpdateStudentAPI)        // Update from JSON
	api.Put("/:id/form", auth.AuthMiddleware, UpdateStudentFormAPI) // Update from form-data with photo
	api.Delete("/:id", auth.AuthMiddleware, DeleteStudentAPI)     // Delete student (runs cleanup hooks)
}
