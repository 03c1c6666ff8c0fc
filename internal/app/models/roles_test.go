package models

import (
	"testing"
)

func TestRoleTypeValid(t *testing.T) {
	for _, r := range []RoleType{RolePrincipalInstructor, RoleStudent, RoleGuardian} {
		if !r.Valid() {
			t.Errorf("role %q should be valid", r)
		}
	}
	for _, r := range []RoleType{"", "ADMIN", "principal_instructor", "student"} {
		if r.Valid() {
			t.Errorf("role %q should be invalid", r)
		}
	}
}

func TestBeltColorValid(t *testing.T) {
	for _, b := range AllBeltColors() {
		if !b.Valid() {
			t.Errorf("belt %q should be valid", b)
		}
	}
	for _, b := range []BeltColor{"", "red", "White", "BLACK"} {
		if b.Valid() {
			t.Errorf("belt %q should be invalid", b)
		}
	}
}

func TestBeltPaletteOrder(t *testing.T) {
	palette := AllBeltColors()
	if len(palette) != 9 {
		t.Fatalf("palette size = %d, want 9", len(palette))
	}
	if palette[0] != BeltWhite || palette[len(palette)-1] != BeltBlack {
		t.Errorf("palette must run white to black, got %v", palette)
	}
}

func TestStudentDisplayName(t *testing.T) {
	s := &Student{Profile: &Profile{FullName: "Carlos Ribeiro"}}
	if got := s.DisplayName(); got != "Carlos Ribeiro" {
		t.Errorf("DisplayName = %q, want the profile name", got)
	}

	for _, s := range []*Student{
		{},
		{Profile: &Profile{}},
	} {
		if got := s.DisplayName(); got != PlaceholderName {
			t.Errorf("DisplayName = %q, want placeholder", got)
		}
	}
}
