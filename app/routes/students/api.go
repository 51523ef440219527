package students

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"eduface/app/config"
	"eduface/app/database"
	"eduface/app/models"
	"eduface/app/services"

	"github.com/gofiber/fiber/v2"
)

func GetStudentsAPI(c *fiber.Ctx) error {
	filters := models.StudentFilters{
		Grade:   c.Query("grade"),
		Section: c.Query("section"),
		Search:  c.Query("q"),
	}

	students, err := database.GetAllStudents(config.GetDB(), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"count":    len(students),
	})
}

func GetStudentByIDAPI(c *fiber.Ctx) error {
	st, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	return c.JSON(st)
}

func GetHistoryAPI(c *fiber.Ctx) error {
	st, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	limit := c.QueryInt("limit", 30)
	if limit < 1 || limit > 500 {
		return c.Status(400).JSON(fiber.Map{"error": "limit must be between 1 and 500"})
	}

	records, err := database.GetStudentHistory(config.GetDB(), st.ID, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch history"})
	}

	history := make([]models.HistoryEntry, 0, len(records))
	for _, att := range records {
		history = append(history, models.HistoryEntry{
			Date:   att.Date.Format("2006-01-02"),
			Time:   att.Time.Format("15:04:05"),
			Status: att.Status,
		})
	}
	return c.JSON(history)
}

func CreateStudentAPI(c *fiber.Ctx) error {
	type StudentRequest struct {
		Code             string `json:"code"`
		Name             string `json:"name"`
		Grade            string `json:"grade"`
		Section          string `json:"section"`
		Gender           string `json:"gender"`
		RegistrationDate string `json:"registration_date"`
		PhotoPath        string `json:"photo_path"`
	}

	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Code == "" || req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Code and name are required"})
	}

	st := &models.Student{
		Code:      req.Code,
		Name:      req.Name,
		Grade:     req.Grade,
		Section:   req.Section,
		Gender:    req.Gender,
		PhotoPath: req.PhotoPath,
	}
	if req.RegistrationDate != "" {
		regDate, err := services.ParseDate(req.RegistrationDate)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		st.RegistrationDate = &regDate
	}

	if err := database.CreateStudent(config.GetDB(), st); err != nil {
		if err == database.ErrDuplicateCode {
			return c.Status(409).JSON(fiber.Map{"error": "Code already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create student"})
	}
	return c.Status(201).JSON(st)
}

func CreateStudentFormAPI(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}

	code := strings.TrimSpace(c.FormValue("code"))
	if code == "" {
		code = makeCode(name)
	}
	if code == "" {
		code = fmt.Sprintf("student_%d", time.Now().Unix())
	}

	st := &models.Student{
		Code:    code,
		Name:    name,
		Grade:   c.FormValue("grade"),
		Section: c.FormValue("section"),
		Gender:  c.FormValue("gender"),
	}
	if reg := c.FormValue("registration_date"); reg != "" {
		regDate, err := services.ParseDate(reg)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		st.RegistrationDate = &regDate
	}

	if file, err := c.FormFile("photo"); err == nil && file != nil {
		photoPath, err := savePhoto(c, file, code)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to store photo"})
		}
		st.PhotoPath = photoPath
	}

	if err := database.CreateStudent(config.GetDB(), st); err != nil {
		if err == database.ErrDuplicateCode {
			return c.Status(409).JSON(fiber.Map{"error": "Code already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create student"})
	}
	return c.Status(201).JSON(st)
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	st, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	type StudentUpdate struct {
		Name             *string `json:"name"`
		Grade            *string `json:"grade"`
		Section          *string `json:"section"`
		Gender           *string `json:"gender"`
		RegistrationDate *string `json:"registration_date"`
		PhotoPath        *string `json:"photo_path"`
	}

	var req StudentUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Grade != nil {
		st.Grade = *req.Grade
	}
	if req.Section != nil {
		st.Section = *req.Section
	}
	if req.Gender != nil {
		st.Gender = *req.Gender
	}
	if req.PhotoPath != nil {
		st.PhotoPath = *req.PhotoPath
	}
	if req.RegistrationDate != nil && *req.RegistrationDate != "" {
		regDate, err := services.ParseDate(*req.RegistrationDate)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		st.RegistrationDate = &regDate
	}

	if err := database.UpdateStudent(config.GetDB(), st); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update student"})
	}
	return c.JSON(st)
}

func UpdateStudentFormAPI(c *fiber.Ctx) error {
	st, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	if v := c.FormValue("name"); v != "" {
		st.Name = v
	}
	if v := c.FormValue("grade"); v != "" {
		st.Grade = v
	}
	if v := c.FormValue("section"); v != "" {
		st.Section = v
	}
	if v := c.FormValue("gender"); v != "" {
		st.Gender = v
	}
	if v := c.FormValue("registration_date"); v != "" {
		regDate, err := services.ParseDate(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		st.RegistrationDate = &regDate
	}

	if file, err := c.FormFile("photo"); err == nil && file != nil {
		photoPath, err := savePhoto(c, file, st.Code)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to store photo"})
		}
		st.PhotoPath = photoPath
	}

	if err := database.UpdateStudent(config.GetDB(), st); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update student"})
	}
	return c.JSON(st)
}

func DeleteStudentAPI(c *fiber.Ctx) error {
	st, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == database.ErrNotFound {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	if err := database.DeleteStudent(config.GetDB(), st.ID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete student"})
	}

	// Gallery and photo cleanup is best-effort; the deletion already succeeded.
	if deletionHooks != nil {
		deletionHooks.Run(st)
	}

	return c.JSON(fiber.Map{"deleted": true})
}

var codePattern = regexp.MustCompile(`[^a-z0-9_]`)

// makeCode derives a gallery-safe student code from a display name.
func makeCode(name string) string {
	code := strings.ToLower(strings.TrimSpace(name))
	code = strings.Join(strings.Fields(code), "_")
	return codePattern.ReplaceAllString(code, "")
}

// savePhoto stores the uploaded display photo under the media dir and
// mirrors it into the engine gallery folder for the student.
func savePhoto(c *fiber.Ctx, file *multipart.FileHeader, code string) (string, error) {
	cfg := config.AppConfig

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}

	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		return "", err
	}
	dest := filepath.Join(cfg.MediaDir, code+ext)
	if err := c.SaveFile(file, dest); err != nil {
		return "", err
	}

	// Mirror into the recognition gallery so the engine can match the face.
	galleryFolder := filepath.Join(cfg.GalleryDir, code)
	if err := os.MkdirAll(galleryFolder, 0o755); err != nil {
		log.Printf("[students] failed to create gallery folder %s: %v", galleryFolder, err)
	} else if err := c.SaveFile(file, filepath.Join(galleryFolder, "profile"+ext)); err != nil {
		log.Printf("[students] failed to mirror photo into gallery for %s: %v", code, err)
	}

	return "/media/students/" + code + ext, nil
}
