package repositories

import (
	"testing"
	"time"

	"github.com/tatame/academy/internal/app/models"
)

// stubStudentRow plays back one joined roster row. Pointer targets for
// columns it does not set stay nil, the same shape pgx produces for
// NULL columns.
type stubStudentRow struct {
	profileID *string
	profile   *models.Profile
}

func (r stubStudentRow) Scan(dest ...any) error {
	stamp := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	*(dest[0].(*int64)) = 7
	*(dest[1].(**string)) = r.profileID
	*(dest[2].(*models.BeltColor)) = models.BeltWhite
	*(dest[3].(*int)) = 1
	*(dest[4].(*time.Time)) = stamp
	*(dest[5].(*bool)) = true
	*(dest[6].(*float64)) = 150
	*(dest[9].(*time.Time)) = stamp
	*(dest[10].(*time.Time)) = stamp
	if r.profile != nil {
		*(dest[11].(**string)) = &r.profile.ID
		*(dest[12].(**models.RoleType)) = &r.profile.Role
		*(dest[13].(**string)) = &r.profile.FullName
		*(dest[14].(**string)) = &r.profile.Email
		*(dest[17].(**time.Time)) = &r.profile.CreatedAt
		*(dest[18].(**time.Time)) = &r.profile.UpdatedAt
	}
	return nil
}

func TestScanStudentRowMissingProfile(t *testing.T) {
	s, err := scanStudentRow(stubStudentRow{})
	if err != nil {
		t.Fatalf("scanStudentRow: %v", err)
	}
	if s.ProfileID != nil {
		t.Errorf("ProfileID = %v, want nil for an orphaned student", s.ProfileID)
	}
	if s.Profile != nil {
		t.Errorf("Profile = %+v, want nil", s.Profile)
	}
	if got := s.DisplayName(); got != models.PlaceholderName {
		t.Errorf("DisplayName() = %q, want %q", got, models.PlaceholderName)
	}
}

func TestScanStudentRowLinkedProfile(t *testing.T) {
	pid := "00000000-0000-0000-0000-000000000001"
	p := &models.Profile{
		ID:       pid,
		Role:     models.RoleStudent,
		FullName: "Maria Silva",
		Email:    "maria@tatame.app",
	}

	s, err := scanStudentRow(stubStudentRow{profileID: &pid, profile: p})
	if err != nil {
		t.Fatalf("scanStudentRow: %v", err)
	}
	if s.ProfileID == nil || *s.ProfileID != pid {
		t.Errorf("ProfileID = %v, want %q", s.ProfileID, pid)
	}
	if s.Profile == nil {
		t.Fatal("expected the joined profile to be populated")
	}
	if got := s.DisplayName(); got != "Maria Silva" {
		t.Errorf("DisplayName() = %q, want the profile name", got)
	}
}
