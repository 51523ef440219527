package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB         *sql.DB
	ServerPort string

	// Face engine
	EngineURL    string
	FaceModel    string
	FaceDetector string
	GalleryDir   string
	MediaDir     string

	// Recognition decision overrides (zero MaxDistance means "use model default")
	MaxDistance float64
	MinMargin   float64

	// Attendance
	Cutoff time.Time // time-of-day boundary between on-time and late
}

var AppConfig *Config

// Load reads configuration from the environment (.env is honored when present).
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		EngineURL:    getEnv("FACE_ENGINE_URL", "http://localhost:8100"),
		FaceModel:    getEnv("FACE_MODEL", "ArcFace"),
		FaceDetector: getEnv("FACE_DETECTOR", "opencv"),
		GalleryDir:   getEnv("GALLERY_DIR", "db"),
		MediaDir:     getEnv("MEDIA_DIR", "students"),
		MaxDistance:  getEnvAsFloat("FACE_MAX_DISTANCE", 0),
		MinMargin:    getEnvAsFloat("FACE_MIN_MARGIN", 0.04),
	}

	cutoffStr := getEnv("ATTENDANCE_CUTOFF", "07:30:00")
	cutoff, err := time.Parse("15:04:05", cutoffStr)
	if err != nil {
		log.Fatalf("Invalid ATTENDANCE_CUTOFF %q: %v", cutoffStr, err)
	}
	cfg.Cutoff = cutoff

	AppConfig = cfg
	return cfg
}

// InitDB opens the PostgreSQL connection pool and verifies connectivity.
func InitDB() {
	if AppConfig == nil {
		Load()
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "")
	dbname := getEnv("DB_NAME", "eduface")
	sslmode := getEnv("DB_SSLMODE", "disable")

	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s connect_timeout=10",
		host, port, user, dbname, sslmode)
	if password != "" {
		psqlInfo += " password=" + password
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Fatalf("Cannot establish database connection to %s:%s/%s: %v", host, port, dbname, err)
	}

	AppConfig.DB = db
	log.Println("Database connection established")
}

// GetDB returns the shared database handle.
func GetDB() *sql.DB {
	if AppConfig == nil {
		return nil
	}
	return AppConfig.DB
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Warning: ignoring non-numeric %s=%q", key, v)
		return fallback
	}
	return f
}
