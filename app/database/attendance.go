package database

import (
	"database/sql"
	"time"

	"eduface/app/models"
)

// InsertAttendanceOnce inserts an attendance record guarded by the
// UNIQUE(student_id, date) constraint. It returns false when another record
// already holds the (student, date) slot; the caller re-reads the winner.
func InsertAttendanceOnce(db *sql.DB, att *models.Attendance) (bool, error) {
	query := `INSERT INTO attendances (id, student_id, date, time, status, created_at)
			  VALUES (gen_random_uuid(), $1, $2, $3, $4, NOW())
			  ON CONFLICT (student_id, date) DO NOTHING
			  RETURNING id, created_at`

	err := db.QueryRow(query, att.StudentID, att.Date, att.Time, att.Status).
		Scan(&att.ID, &att.CreatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetAttendanceByStudentAndDate fetches the record for one student on one day.
func GetAttendanceByStudentAndDate(db *sql.DB, studentID string, day time.Time) (*models.Attendance, error) {
	att := &models.Attendance{}
	query := `SELECT id, student_id, date, time, status, created_at
			  FROM attendances WHERE student_id = $1 AND date = $2`

	err := db.QueryRow(query, studentID, day).
		Scan(&att.ID, &att.StudentID, &att.Date, &att.Time, &att.Status, &att.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return att, nil
}

const joinedColumns = `a.id, a.student_id, a.date, a.time, a.status, a.created_at,
			  s.code, s.name, COALESCE(s.grade, ''), COALESCE(s.section, ''), COALESCE(s.gender, '')`

func scanJoined(rows *sql.Rows) (*models.AttendanceWithStudent, error) {
	rec := &models.AttendanceWithStudent{}
	err := rows.Scan(
		&rec.ID, &rec.StudentID, &rec.Date, &rec.Time, &rec.Status, &rec.CreatedAt,
		&rec.Code, &rec.Name, &rec.Grade, &rec.Section, &rec.Gender,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetAttendanceForDate lists a day's records with student display fields,
// most recent first.
func GetAttendanceForDate(db *sql.DB, day time.Time) ([]*models.AttendanceWithStudent, error) {
	query := `SELECT ` + joinedColumns + `
			  FROM attendances a
			  JOIN students s ON s.id = a.student_id
			  WHERE a.date = $1
			  ORDER BY a.time DESC`

	rows, err := db.Query(query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.AttendanceWithStudent
	for rows.Next() {
		rec, err := scanJoined(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetRecentAttendance lists the latest records across all days.
func GetRecentAttendance(db *sql.DB, limit int) ([]*models.AttendanceWithStudent, error) {
	query := `SELECT ` + joinedColumns + `
			  FROM attendances a
			  JOIN students s ON s.id = a.student_id
			  ORDER BY a.time DESC
			  LIMIT $1`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.AttendanceWithStudent
	for rows.Next() {
		rec, err := scanJoined(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetStudentHistory lists one student's records, most recent first.
func GetStudentHistory(db *sql.DB, studentID string, limit int) ([]*models.Attendance, error) {
	query := `SELECT id, student_id, date, time, status, created_at
			  FROM attendances
			  WHERE student_id = $1
			  ORDER BY time DESC
			  LIMIT $2`

	rows, err := db.Query(query, studentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		att := &models.Attendance{}
		if err := rows.Scan(&att.ID, &att.StudentID, &att.Date, &att.Time, &att.Status, &att.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, att)
	}
	return records, rows.Err()
}

// ClearAttendanceByDate deletes every record for the given day.
func ClearAttendanceByDate(db *sql.DB, day time.Time) (int64, error) {
	res, err := db.Exec(`DELETE FROM attendances WHERE date = $1`, day)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ClearAllAttendance deletes every attendance record.
func ClearAllAttendance(db *sql.DB) (int64, error) {
	res, err := db.Exec(`DELETE FROM attendances`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountAttendanceRecords returns the overall and per-day record counts.
func CountAttendanceRecords(db *sql.DB, day time.Time) (total int, onDay int, err error) {
	if err = db.QueryRow(`SELECT COUNT(*) FROM attendances`).Scan(&total); err != nil {
		return 0, 0, err
	}
	if err = db.QueryRow(`SELECT COUNT(*) FROM attendances WHERE date = $1`, day).Scan(&onDay); err != nil {
		return 0, 0, err
	}
	return total, onDay, nil
}
