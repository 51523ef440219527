package attendance

import (
	"errors"
	"log"
	"time"

	"eduface/app/config"
	"eduface/app/database"
	"eduface/app/models"
	"eduface/app/recognition"
	"eduface/app/services"

	"github.com/gofiber/fiber/v2"
)

// MarkAttendanceAPI receives a probe image, asks the face engine for
// candidates, resolves them into an accept/unknown decision and records
// attendance for accepted matches. Unknown is a normal 200 response.
func MarkAttendanceAPI(c *fiber.Ctx) error {
	file, err := c.FormFile("img")
	if err != nil || file == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Image file 'img' is required"})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot read uploaded image"})
	}
	defer src.Close()

	cfg := config.AppConfig
	params := recognition.ParamsForModel(engine.Model(), cfg.MaxDistance, cfg.MinMargin)

	candidates, err := engine.Find(file.Filename, src, cfg.GalleryDir, params.Metric)
	if err != nil {
		if errors.Is(err, recognition.ErrEngineUnavailable) {
			return c.Status(503).JSON(fiber.Map{"error": "Face engine unavailable"})
		}
		return c.Status(502).JSON(fiber.Map{"error": "Face engine returned an invalid response"})
	}

	decision := recognition.Resolve(candidates, params)
	if !decision.Accepted {
		log.Printf("[recognition] decision=unknown reason=%s distance=%.4f margin=%.4f candidates=%d",
			decision.Reason, decision.Distance, decision.Margin, len(candidates))
		return c.JSON(fiber.Map{
			"status":   "unknown",
			"reason":   decision.Reason,
			"distance": decision.Distance,
			"margin":   decision.Margin,
		})
	}

	code := recognition.IdentityCode(decision.Identity)
	log.Printf("[recognition] decision=accepted code=%s distance=%.4f", code, decision.Distance)

	record, wasNew, err := ledger.MarkAttendance(code, time.Now())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record attendance"})
	}

	st, err := database.GetStudentByCode(config.GetDB(), code)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	return c.JSON(fiber.Map{
		"status":         "marked",
		"already_marked": !wasNew,
		"student": fiber.Map{
			"id":   st.ID,
			"code": st.Code,
			"name": st.Name,
		},
		"attendance": fiber.Map{
			"date":   record.Date.Format("2006-01-02"),
			"time":   record.Time.Format("15:04:05"),
			"status": record.Status,
		},
		"distance": decision.Distance,
	})
}

// ResolveAPI applies the decision rule to a caller-supplied candidate list
// without touching the ledger. Useful for tuning thresholds against logged
// engine output.
func ResolveAPI(c *fiber.Ctx) error {
	type ResolveRequest struct {
		Candidates  []recognition.Candidate `json:"candidates"`
		Model       string                  `json:"model"`
		MaxDistance float64                 `json:"max_distance"`
		MinMargin   float64                 `json:"min_margin"`
	}

	var req ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	model := req.Model
	if model == "" {
		model = engine.Model()
	}
	params := recognition.ParamsForModel(model, req.MaxDistance, req.MinMargin)

	return c.JSON(fiber.Map{
		"decision": recognition.Resolve(req.Candidates, params),
		"params":   params,
	})
}

func GetTodayAPI(c *fiber.Ctx) error {
	records, err := database.GetAttendanceForDate(config.GetDB(), services.DateOf(time.Now()))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}
	if records == nil {
		records = []*models.AttendanceWithStudent{}
	}
	return c.JSON(fiber.Map{"records": records, "count": len(records)})
}

func GetRecentAPI(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 200 {
		return c.Status(400).JSON(fiber.Map{"error": "limit must be between 1 and 200"})
	}

	records, err := database.GetRecentAttendance(config.GetDB(), limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}
	if records == nil {
		records = []*models.AttendanceWithStudent{}
	}
	return c.JSON(fiber.Map{"records": records, "count": len(records)})
}

func GetCountsAPI(c *fiber.Ctx) error {
	db := config.GetDB()

	students, err := database.CountStudents(db, "", "")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to count students"})
	}
	total, today, err := database.CountAttendanceRecords(db, services.DateOf(time.Now()))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to count attendance"})
	}

	return c.JSON(fiber.Map{
		"students":         students,
		"attendance_total": total,
		"attendance_today": today,
	})
}

func ClearTodayAPI(c *fiber.Ctx) error {
	deleted, err := database.ClearAttendanceByDate(config.GetDB(), services.DateOf(time.Now()))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to clear attendance"})
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

func ClearDateAPI(c *fiber.Ctx) error {
	target := c.FormValue("date")
	if target == "" {
		var req struct {
			Date string `json:"date"`
		}
		if err := c.BodyParser(&req); err == nil {
			target = req.Date
		}
	}
	if target == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Date is required"})
	}

	day, err := services.ParseDate(target)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	deleted, err := database.ClearAttendanceByDate(config.GetDB(), day)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to clear attendance"})
	}
	return c.JSON(fiber.Map{"deleted": deleted, "date": day.Format("2006-01-02")})
}

func ClearAllAttendanceAPI(c *fiber.Ctx) error {
	deleted, err := database.ClearAllAttendance(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to clear attendance"})
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

// ClearAllStudentsAPI wipes the registry along with attendance and runs the
// photo cleanup hook per student so the media and gallery dirs stay in sync.
func ClearAllStudentsAPI(c *fiber.Ctx) error {
	db := config.GetDB()

	students, err := database.GetAllStudents(db, models.StudentFilters{})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	deleted, err := database.ClearAllStudents(db)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to clear students"})
	}

	if deletionHooks != nil {
		for _, st := range students {
			deletionHooks.Run(st)
		}
	}

	return c.JSON(fiber.Map{"deleted": deleted})
}
