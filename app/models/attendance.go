package models

import "time"

// Attendance is one student's attendance record for one calendar day.
// At most one row exists per (student, date); the ledger never updates
// a row after creation.
type Attendance struct {
	ID        string           `json:"id"`
	StudentID string           `json:"student_id"`
	Date      time.Time        `json:"date"`
	Time      time.Time        `json:"time"`
	Status    AttendanceStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// AttendanceWithStudent joins a record with the student display fields.
type AttendanceWithStudent struct {
	Attendance
	Code    string `json:"code"`
	Name    string `json:"name"`
	Grade   string `json:"grade,omitempty"`
	Section string `json:"section,omitempty"`
	Gender  string `json:"gender,omitempty"`
}

// HistoryEntry is one row of a student's attendance history.
type HistoryEntry struct {
	Date   string           `json:"date"`
	Time   string           `json:"time"`
	Status AttendanceStatus `json:"status"`
}

// ReportRow is one flat row handed to the report renderer. Synthesized
// absence rows carry AbsentTimePlaceholder as their time.
type ReportRow struct {
	Sequence int              `json:"sequence"`
	Code     string           `json:"code"`
	Name     string           `json:"name"`
	Grade    string           `json:"grade"`
	Section  string           `json:"section"`
	Status   AttendanceStatus `json:"status"`
	Time     string           `json:"time"`
}

// AbsentTimePlaceholder is rendered in place of a clock time on absence rows.
const AbsentTimePlaceholder = "--:--"
