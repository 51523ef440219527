package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"eduface/app/models"
)

// metricConditions builds the shared WHERE clause for metric queries over
// the attendances-students join.
func metricConditions(r models.DateRange, grade, section string) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if r.Start != nil {
		args = append(args, *r.Start)
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", len(args)))
	}
	if r.End != nil {
		args = append(args, *r.End)
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", len(args)))
	}
	if grade != "" {
		args = append(args, grade)
		conditions = append(conditions, fmt.Sprintf("s.grade = $%d", len(args)))
	}
	if section != "" {
		args = append(args, section)
		conditions = append(conditions, fmt.Sprintf("s.section = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// CountStudents counts registered students matching the group filters.
func CountStudents(db *sql.DB, grade, section string) (int, error) {
	query := `SELECT COUNT(*) FROM students`
	conditions := []string{}
	args := []interface{}{}

	if grade != "" {
		args = append(args, grade)
		conditions = append(conditions, fmt.Sprintf("grade = $%d", len(args)))
	}
	if section != "" {
		args = append(args, section)
		conditions = append(conditions, fmt.Sprintf("section = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	err := db.QueryRow(query, args...).Scan(&count)
	return count, err
}

// CountAttendance counts records in the range matching the filters. An empty
// status counts every record regardless of status.
func CountAttendance(db *sql.DB, r models.DateRange, grade, section string, status models.AttendanceStatus) (int, error) {
	where, args := metricConditions(r, grade, section)
	query := `SELECT COUNT(*) FROM attendances a JOIN students s ON s.id = a.student_id` + where

	if status != "" {
		args = append(args, status)
		if where == "" {
			query += fmt.Sprintf(" WHERE a.status = $%d", len(args))
		} else {
			query += fmt.Sprintf(" AND a.status = $%d", len(args))
		}
	}

	var count int
	err := db.QueryRow(query, args...).Scan(&count)
	return count, err
}

// CountStudentsWithAttendance counts distinct students having at least one
// record in the range. This is the single definition of presence used by
// the absence computation: with an unbounded range it means "ever attended".
func CountStudentsWithAttendance(db *sql.DB, r models.DateRange, grade, section string) (int, error) {
	where, args := metricConditions(r, grade, section)
	query := `SELECT COUNT(DISTINCT a.student_id) FROM attendances a JOIN students s ON s.id = a.student_id` + where

	var count int
	err := db.QueryRow(query, args...).Scan(&count)
	return count, err
}

// CountAttendanceOnDate counts records on a single day, all students.
func CountAttendanceOnDate(db *sql.DB, day time.Time) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM attendances WHERE date = $1`, day).Scan(&count)
	return count, err
}

// CountByGradeOnDate groups a day's record counts by the student grade label.
// Students without a grade fall into the models.NoGrade bucket.
func CountByGradeOnDate(db *sql.DB, day time.Time) (map[string]int, error) {
	query := `SELECT COALESCE(NULLIF(s.grade, ''), $1), COUNT(*)
			  FROM attendances a
			  JOIN students s ON s.id = a.student_id
			  WHERE a.date = $2
			  GROUP BY 1`

	rows, err := db.Query(query, models.NoGrade, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var grade string
		var count int
		if err := rows.Scan(&grade, &count); err != nil {
			return nil, err
		}
		counts[grade] = count
	}
	return counts, rows.Err()
}

// GetAttendanceDetails lists the joined records in the range for the
// detailed-metrics aggregation, most recent first.
func GetAttendanceDetails(db *sql.DB, r models.DateRange, grade, section string) ([]*models.AttendanceWithStudent, error) {
	where, args := metricConditions(r, grade, section)
	query := `SELECT ` + joinedColumns + `
			  FROM attendances a
			  JOIN students s ON s.id = a.student_id` + where + `
			  ORDER BY a.time DESC`

	rows, err := db.Query(query, args...)
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
