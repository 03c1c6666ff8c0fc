package models

import (
	"time"
)

// ClassSession defines a recurring training slot based on the
// 'class_sessions' table.
type ClassSession struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" example:"Adult No-Gi"`
	Weekday   int       `json:"weekday" db:"weekday"` // 0 = Sunday .. 6 = Saturday
	StartTime string    `json:"startTime" db:"start_time"`
	EndTime   string    `json:"endTime" db:"end_time"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// AttendanceRecord defines one check-in based on the 'attendance_records'
// table. Only the present flag and the date feed rate aggregation.
type AttendanceRecord struct {
	ID             int64     `json:"id" db:"id"`
	StudentID      int64     `json:"studentId" db:"student_id"`
	ClassSessionID *int64    `json:"classSessionId,omitempty" db:"class_session_id"`
	Date           time.Time `json:"date" db:"date"`
	Present        bool      `json:"present" db:"present"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
