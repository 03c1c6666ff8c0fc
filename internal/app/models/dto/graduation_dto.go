package dto

import (
	"time"
)

// CreateGraduationRequest is the payload for POST /graduations. The
// insert is followed by an unconditional overwrite of the student's
// current belt fields.
type CreateGraduationRequest struct {
	StudentID      int64   `json:"studentId" binding:"required,gt=0"`
	BeltColor      string  `json:"beltColor" binding:"required" example:"blue"`
	BeltDegree     int     `json:"beltDegree" binding:"gte=0"`
	GraduationDate *string `json:"graduationDate,omitempty" example:"2025-06-14"` // Defaults to today
	Notes          *string `json:"notes,omitempty"`
}

// GraduationResponse is the read shape for promotion history entries
type GraduationResponse struct {
	ID             int64     `json:"id"`
	StudentID      int64     `json:"studentId"`
	StudentName    string    `json:"studentName"`
	BeltColor      string    `json:"beltColor"`
	BeltDegree     int       `json:"beltDegree"`
	GraduationDate time.Time `json:"graduationDate"`
	InstructorName string    `json:"instructorName,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
