package metrics

import (
	"eduface/app/services"

	"github.com/gofiber/fiber/v2"
)

var aggregator *services.Aggregator

func SetupMetricsRoutes(app *fiber.App, agg *services.Aggregator) {
	aggregator = agg

	api := app.Group("/api/metrics")
	api.Get("/today", GetTodayMetricsAPI)
	api.Get("/summary", GetSummaryAPI)   // ?period=&start=&end=&grade=&section=
	api.Get("/weekly", GetWeeklyAPI)
	api.Get("/by-grade", GetByGradeAPI)  // ?date=
	api.Get("/detailed", GetDetailedAPI) // ?period=&start=&end=&grade=&section=
}
