package metrics

import (
	"errors"
	"time"

	"eduface/app/services"

	"github.com/gofiber/fiber/v2"
)

func GetTodayMetricsAPI(c *fiber.Ctx) error {
	m, err := aggregator.Today()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute metrics"})
	}
	return c.JSON(m)
}

func GetSummaryAPI(c *fiber.Ctx) error {
	r, err := services.ResolveRange(c.Query("start"), c.Query("end"), c.Query("period"), time.Now())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	m, err := aggregator.Summary(r, c.Query("grade"), c.Query("section"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute metrics"})
	}
	return c.JSON(m)
}

func GetWeeklyAPI(c *fiber.Ctx) error {
	m, err := aggregator.Weekly(7)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute metrics"})
	}
	return c.JSON(m)
}

func GetByGradeAPI(c *fiber.Ctx) error {
	day := services.DateOf(time.Now())
	if v := c.Query("date"); v != "" {
		parsed, err := services.ParseDate(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		day = parsed
	}

	counts, err := aggregator.ByGrade(day)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute metrics"})
	}
	return c.JSON(fiber.Map{"date": day.Format("2006-01-02"), "by_grade": counts})
}

func GetDetailedAPI(c *fiber.Ctx) error {
	r, err := services.ResolveRange(c.Query("start"), c.Query("end"), c.Query("period"), time.Now())
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) || errors.Is(err, services.ErrInvalidDate) || errors.Is(err, services.ErrInvalidRange) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": "Invalid range"})
	}

	m, err := aggregator.Detailed(r, c.Query("grade"), c.Query("section"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute metrics"})
	}
	return c.JSON(m)
}
