package services

import (
	"log"
	"time"

	"eduface/app/models"
)

// StudentDirectory is the registry surface the ledger needs. Lookups return
// (nil, nil) when no student matches.
type StudentDirectory interface {
	StudentByCode(code string) (*models.Student, error)
	CreateStudent(st *models.Student) error
}

// AttendanceLog is the attendance storage surface the ledger writes through.
// InsertAttendanceOnce returns false when the (student, date) slot is already
// taken; AttendanceOn returns (nil, nil) when no record exists.
type AttendanceLog interface {
	AttendanceOn(studentID string, day time.Time) (*models.Attendance, error)
	InsertAttendanceOnce(att *models.Attendance) (bool, error)
}

// Ledger enforces at-most-one attendance record per student per day and
// classifies punctuality against the cutoff. It is the sole writer of
// attendance records.
type Ledger struct {
	students StudentDirectory
	log      AttendanceLog
	cutoff   time.Time
}

func NewLedger(students StudentDirectory, attendanceLog AttendanceLog, cutoff time.Time) *Ledger {
	return &Ledger{students: students, log: attendanceLog, cutoff: cutoff}
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}

// Classify returns Late when the local time-of-day is strictly after the
// cutoff; arriving exactly at the cutoff still counts as on time.
func (l *Ledger) Classify(ts time.Time) models.AttendanceStatus {
	arrival := ts.Hour()*3600 + ts.Minute()*60 + ts.Second()
	cutoff := l.cutoff.Hour()*3600 + l.cutoff.Minute()*60 + l.cutoff.Second()
	if arrival > cutoff {
		return models.Late
	}
	return models.OnTime
}

// ResolveOrRegister fetches the student with the given code, enrolling a
// placeholder (code doubles as display name) when the code was accepted by
// the resolver but never enrolled. The second return reports whether the
// student was newly registered.
func (l *Ledger) ResolveOrRegister(code string) (*models.Student, bool, error) {
	st, err := l.students.StudentByCode(code)
	if err != nil {
		return nil, false, err
	}
	if st != nil {
		return st, false, nil
	}

	st = &models.Student{Code: code, Name: code}
	if err := l.students.CreateStudent(st); err != nil {
		// Lost a creation race; the winner's row is authoritative.
		existing, lookupErr := l.students.StudentByCode(code)
		if lookupErr == nil && existing != nil {
			return existing, false, nil
		}
		return nil, false, err
	}
	log.Printf("[ledger] auto-registered student code=%s", code)
	return st, true, nil
}

// MarkAttendance records the student's attendance for the timestamp's
// calendar date. A repeated recognition on the same date returns the
// existing record untouched; the boolean reports whether a record was
// created by this call. Callers must only pass codes from accepted
// recognition decisions.
func (l *Ledger) MarkAttendance(code string, ts time.Time) (*models.Attendance, bool, error) {
	st, _, err := l.ResolveOrRegister(code)
	if err != nil {
		return nil, false, err
	}

	day := DateOf(ts)
	existing, err := l.log.AttendanceOn(st.ID, day)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	att := &models.Attendance{
		StudentID: st.ID,
		Date:      day,
		Time:      ts,
		Status:    l.Classify(ts),
	}
	inserted, err := l.log.InsertAttendanceOnce(att)
	if err != nil {
		return nil, false, err
	}
	if !inserted {
		// Lost the daily-uniqueness race; return the winner's record.
		winner, err := l.log.AttendanceOn(st.ID, day)
		if err != nil {
			return nil, false, err
		}
		return winner, false, nil
	}
	return att, true, nil
}
