package attendance

import (
	"eduface/app/recognition"
	"eduface/app/routes/auth"
	"eduface/app/services"

	"github.com/gofiber/fiber/v2"
)

var (
	engine        *recognition.EngineClient
	ledger        *services.Ledger
	deletionHooks *services.DeletionHooks
)

func SetupAttendanceRoutes(app *fiber.App, e *recognition.EngineClient, l *services.Ledger, hooks *services.DeletionHooks) {
	engine = e
	ledger = l
	deletionHooks = hooks

	api := app.Group("/api/attendance")
	api.Post("/mark", MarkAttendanceAPI) // Recognize a face and record attendance
	api.Get("/today", GetTodayAPI)
	api.Get("/recent", GetRecentAPI) // ?limit=

	app.Post("/api/recognition/resolve", ResolveAPI) // Decide on a raw candidate list

	admin := app.Group("/api/admin", auth.AuthMiddleware)
	admin.Get("/counts", GetCountsAPI)
	admin.Post("/attendance/clear-today", ClearTodayAPI)
	admin.Post("/attendance/clear-date", ClearDateAPI)
	admin.Post("/attendance/clear-all", ClearAllAttendanceAPI)
	admin.Post("/students/clear-all", ClearAllStudentsAPI)
}
