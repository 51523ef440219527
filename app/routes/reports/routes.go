package reports

import (
	"eduface/app/services"

	"github.com/gofiber/fiber/v2"
)

var store services.ReportStore

func SetupReportsRoutes(app *fiber.App, s services.ReportStore) {
	store = s

	api := app.Group("/api/reports")
	api.Get("/attendance", GetAttendanceReportAPI) // ?date=&grade=&section=&status=
}
