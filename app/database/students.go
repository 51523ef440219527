package database

import (
	"database/sql"
	"fmt"
	"strings"

	"eduface/app/models"
)

const studentColumns = `id, code, name, COALESCE(grade, ''), COALESCE(section, ''), COALESCE(gender, ''),
			  registration_date, COALESCE(photo_path, ''), created_at, updated_at`

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	st := &models.Student{}
	var regDate sql.NullTime
	err := row.Scan(
		&st.ID, &st.Code, &st.Name, &st.Grade, &st.Section, &st.Gender,
		&regDate, &st.PhotoPath, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if regDate.Valid {
		st.RegistrationDate = &regDate.Time
	}
	return st, nil
}

// GetAllStudents lists students ordered by name, honoring the optional filters.
func GetAllStudents(db *sql.DB, filters models.StudentFilters) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students`
	conditions := []string{}
	args := []interface{}{}

	if filters.Grade != "" {
		args = append(args, filters.Grade)
		conditions = append(conditions, fmt.Sprintf("grade = $%d", len(args)))
	}
	if filters.Section != "" {
		args = append(args, filters.Section)
		conditions = append(conditions, fmt.Sprintf("section = $%d", len(args)))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d)", len(args), len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

// GetStudentByID fetches a single student by id.
func GetStudentByID(db *sql.DB, id string) (*models.Student, error) {
	row := db.QueryRow(`SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	st, err := scanStudent(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return st, err
}

// GetStudentByCode fetches a single student by their unique code.
func GetStudentByCode(db *sql.DB, code string) (*models.Student, error) {
	row := db.QueryRow(`SELECT `+studentColumns+` FROM students WHERE code = $1`, code)
	st, err := scanStudent(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return st, err
}

// CreateStudent inserts a new student. A taken code yields ErrDuplicateCode
// with no partial write.
func CreateStudent(db *sql.DB, st *models.Student) error {
	query := `INSERT INTO students (id, code, name, grade, section, gender, registration_date, photo_path, created_at, updated_at)
			  VALUES (gen_random_uuid(), $1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, NULLIF($7, ''), NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	var regDate interface{}
	if st.RegistrationDate != nil {
		regDate = *st.RegistrationDate
	}
	err := db.QueryRow(query, st.Code, st.Name, st.Grade, st.Section, st.Gender, regDate, st.PhotoPath).
		Scan(&st.ID, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCode
		}
		return err
	}
	return nil
}

// UpdateStudent persists the mutable fields of an existing student.
func UpdateStudent(db *sql.DB, st *models.Student) error {
	query := `UPDATE students
			  SET name = $1, grade = NULLIF($2, ''), section = NULLIF($3, ''), gender = NULLIF($4, ''),
				  registration_date = $5, photo_path = NULLIF($6, ''), updated_at = NOW()
			  WHERE id = $7`

	var regDate interface{}
	if st.RegistrationDate != nil {
		regDate = *st.RegistrationDate
	}
	res, err := db.Exec(query, st.Name, st.Grade, st.Section, st.Gender, regDate, st.PhotoPath, st.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteStudent removes a student; attendance rows cascade.
func DeleteStudent(db *sql.DB, id string) error {
	res, err := db.Exec(`DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearAllStudents removes every student and returns how many were deleted.
func ClearAllStudents(db *sql.DB) (int64, error) {
	res, err := db.Exec(`DELETE FROM students`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
