package dto

import (
	"time"
)

// CreateStudentRequest is the payload for POST /students. Creation is a
// two-step write: a profile row is inserted first, then the student row
// referencing it.
type CreateStudentRequest struct {
	FullName         string   `json:"fullName" binding:"required,min=2" example:"Ana Souza"`
	Email            string   `json:"email" binding:"required,email"`
	Phone            *string  `json:"phone,omitempty"`
	BeltColor        string   `json:"beltColor" binding:"required" example:"white"`
	BeltDegree       int      `json:"beltDegree" binding:"gte=0" example:"0"`
	JoinDate         *string  `json:"joinDate,omitempty" example:"2025-02-01"` // Defaults to today
	MonthlyFee       float64  `json:"monthlyFee" binding:"gte=0"`
	MedicalNotes     *string  `json:"medicalNotes,omitempty"`
	EmergencyContact *string  `json:"emergencyContact,omitempty"`
}

// UpdateStudentRequest is the payload for PUT /students/:id. Fields split
// into a profile subset (fullName, email, phone) and a student subset;
// each present subset issues one UPDATE.
type UpdateStudentRequest struct {
	FullName         *string  `json:"fullName,omitempty" binding:"omitempty,min=2"`
	Email            *string  `json:"email,omitempty" binding:"omitempty,email"`
	Phone            *string  `json:"phone,omitempty"`
	BeltColor        *string  `json:"beltColor,omitempty"`
	BeltDegree       *int     `json:"beltDegree,omitempty" binding:"omitempty,gte=0"`
	MonthlyFee       *float64 `json:"monthlyFee,omitempty" binding:"omitempty,gte=0"`
	MedicalNotes     *string  `json:"medicalNotes,omitempty"`
	EmergencyContact *string  `json:"emergencyContact,omitempty"`
}

// StudentResponse is the read shape for roster entries
type StudentResponse struct {
	ID          int64     `json:"id"`
	ProfileID   *string   `json:"profileId,omitempty"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	BeltColor   string    `json:"beltColor"`
	BeltDegree  int       `json:"beltDegree"`
	JoinDate    time.Time `json:"joinDate"`
	Active      bool      `json:"active"`
	MonthlyFee  float64   `json:"monthlyFee"`
	CreatedAt   time.Time `json:"createdAt"`
}
