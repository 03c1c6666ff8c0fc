package models

import (
	"time"
)

// Student defines the roster record based on the 'students' table.
// A student is linked one-to-one with a Profile; a student whose profile
// row is missing is rendered with placeholder fields, never treated as
// an error. Deletion is a soft delete: active is set to false and the
// row stays retrievable by direct id lookup.
type Student struct {
	ID               int64     `json:"id" db:"id"`
	ProfileID        *string   `json:"profileId,omitempty" db:"profile_id"` // NULL after the profile row is removed
	BeltColor        BeltColor `json:"beltColor" db:"belt_color" example:"blue"`
	BeltDegree       int       `json:"beltDegree" db:"belt_degree" example:"2"` // Sub-rank within the color, >= 0
	JoinDate         time.Time `json:"joinDate" db:"join_date"`
	Active           bool      `json:"active" db:"active"`
	MonthlyFee       float64   `json:"monthlyFee" db:"monthly_fee"`
	MedicalNotes     *string   `json:"medicalNotes,omitempty" db:"medical_notes"`
	EmergencyContact *string   `json:"emergencyContact,omitempty" db:"emergency_contact"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`

	// Relation (populated by joined reads, no db tag)
	Profile *Profile `json:"profile,omitempty"`
}

// PlaceholderName is substituted for the display name of a student whose
// linked profile row could not be resolved.
const PlaceholderName = "Aluno sem perfil"

// DisplayName returns the linked profile's name or the placeholder.
func (s *Student) DisplayName() string {
	if s.Profile == nil || s.Profile.FullName == "" {
		return PlaceholderName
	}
	return s.Profile.FullName
}
