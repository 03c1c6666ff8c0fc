package models

import (
	"time"
)

// Graduation defines a belt promotion record based on the 'graduations'
// table. The history is append-only: recording a graduation overwrites
// the student's current belt fields, but deleting one does not roll the
// student back to the previous rank.
type Graduation struct {
	ID             int64     `json:"id" db:"id"`
	StudentID      int64     `json:"studentId" db:"student_id"`
	BeltColor      BeltColor `json:"beltColor" db:"belt_color"`
	BeltDegree     int       `json:"beltDegree" db:"belt_degree"`
	GraduationDate time.Time `json:"graduationDate" db:"graduation_date"`
	InstructorID   *string   `json:"instructorId,omitempty" db:"instructor_id"` // Profile id of the awarding instructor
	Notes          *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated by joined reads, no db tag)
	Student    *Student `json:"student,omitempty"`
	Instructor *Profile `json:"instructor,omitempty"`
}
