package reports

import (
	"time"

	"eduface/app/models"
	"eduface/app/services"

	"github.com/gofiber/fiber/v2"
)

func GetAttendanceReportAPI(c *fiber.Ctx) error {
	day := services.DateOf(time.Now())
	if v := c.Query("date"); v != "" {
		parsed, err := services.ParseDate(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		day = parsed
	}

	var statusFilter models.AttendanceStatus
	switch s := c.Query("status"); s {
	case "":
	case string(models.OnTime), string(models.Late), string(models.Absent):
		statusFilter = models.AttendanceStatus(s)
	default:
		return c.Status(400).JSON(fiber.Map{"error": "Invalid status filter"})
	}

	rows, err := services.BuildReportRows(store, day, c.Query("grade"), c.Query("section"), statusFilter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
	}

	return c.JSON(fiber.Map{
		"date":  day.Format("2006-01-02"),
		"rows":  rows,
		"count": len(rows),
	})
}
