package models

// AttendanceStatus defines the possible status values for an attendance record.
type AttendanceStatus string

const (
	OnTime AttendanceStatus = "on_time"
	Late   AttendanceStatus = "late"
	// Absent is never persisted; it only appears on rows synthesized at
	// report time for students without a record in the queried range.
	Absent AttendanceStatus = "absent"
)

// Gender defines the possible gender values for a student.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// UnspecifiedGender is the distribution bucket for students without a gender value.
const UnspecifiedGender = "-"

// NoGrade is the by-grade bucket for students without a grade label.
const NoGrade = "no_grade"
