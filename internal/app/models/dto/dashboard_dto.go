package dto

import (
	"time"
)

// DashboardOverview aggregates counts derived from five independent
// reads. Each figure reflects a slightly different instant; a single
// failed read aborts the whole aggregate and no partial figures are
// returned.
type DashboardOverview struct {
	TotalStudents        int     `json:"totalStudents"`
	ActiveStudents       int     `json:"activeStudents"`
	GraduationsThisMonth int     `json:"graduationsThisMonth"`
	ActiveClasses        int     `json:"activeClasses"`
	UnreadMessages       int     `json:"unreadMessages"`
	EstimatedRevenue     float64 `json:"estimatedRevenue"`
	AttendanceRate       int     `json:"attendanceRate"` // Integer percentage in [0,100]
}

// ActivityEntry is the uniform shape of the recent-activity feed.
type ActivityEntry struct {
	ID          string    `json:"id"`
	Type        string    `json:"type" example:"graduation"` // "graduation" or "student"
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
