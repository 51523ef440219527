package database

import (
	"database/sql"
	"time"

	"eduface/app/models"
)

// Store adapts the query functions to the interfaces the services consume.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// StudentByCode returns (nil, nil) when no student carries the code.
func (s *Store) StudentByCode(code string) (*models.Student, error) {
	st, err := GetStudentByCode(s.DB, code)
	if err == ErrNotFound {
		return nil, nil
	}
	return st, err
}

func (s *Store) CreateStudent(st *models.Student) error {
	return CreateStudent(s.DB, st)
}

// AttendanceOn returns (nil, nil) when the student has no record that day.
func (s *Store) AttendanceOn(studentID string, day time.Time) (*models.Attendance, error) {
	att, err := GetAttendanceByStudentAndDate(s.DB, studentID, day)
	if err == ErrNotFound {
		return nil, nil
	}
	return att, err
}

func (s *Store) InsertAttendanceOnce(att *models.Attendance) (bool, error) {
	return InsertAttendanceOnce(s.DB, att)
}

func (s *Store) CountStudents(grade, section string) (int, error) {
	return CountStudents(s.DB, grade, section)
}

func (s *Store) CountAttendance(r models.DateRange, grade, section string, status models.AttendanceStatus) (int, error) {
	return CountAttendance(s.DB, r, grade, section, status)
}

func (s *Store) CountStudentsWithAttendance(r models.DateRange, grade, section string) (int, error) {
	return CountStudentsWithAttendance(s.DB, r, grade, section)
}

func (s *Store) CountAttendanceOnDate(day time.Time) (int, error) {
	return CountAttendanceOnDate(s.DB, day)
}

func (s *Store) CountByGradeOnDate(day time.Time) (map[string]int, error) {
	return CountByGradeOnDate(s.DB, day)
}

func (s *Store) AttendanceDetails(r models.DateRange, grade, section string) ([]*models.AttendanceWithStudent, error) {
	return GetAttendanceDetails(s.DB, r, grade, section)
}

func (s *Store) Students(filters models.StudentFilters) ([]*models.Student, error) {
	return GetAllStudents(s.DB, filters)
}
