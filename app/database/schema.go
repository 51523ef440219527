package database

import (
	"database/sql"
	"log"
)

// InitSchema creates the tables when they do not exist yet and applies
// the lightweight column migrations.
func InitSchema(db *sql.DB) error {
	log.Println("Running database migrations...")

	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			code VARCHAR(100) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			grade VARCHAR(50),
			section VARCHAR(50),
			gender VARCHAR(20),
			registration_date DATE,
			photo_path VARCHAR(500),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS attendances (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			time TIMESTAMPTZ NOT NULL,
			status VARCHAR(20) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT uq_attendance_student_date UNIQUE (student_id, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attendances_date ON attendances(date)`,
		`CREATE INDEX IF NOT EXISTS idx_students_grade_section ON students(grade, section)`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	if err := addRegistrationColumns(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// addRegistrationColumns upgrades databases created before the registry
// carried registration dates and photo pointers.
func addRegistrationColumns(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'students'
				AND column_name = 'registration_date'
			) THEN
				ALTER TABLE students ADD COLUMN registration_date DATE;
			END IF;
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'students'
				AND column_name = 'photo_path'
			) THEN
				ALTER TABLE students ADD COLUMN photo_path VARCHAR(500);
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for student registry columns: %v", err)
	}
	return err
}
