package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(uniqueViolation("profiles_email_key")) {
		t.Error("unique violation should be detected")
	}
	if !IsUniqueViolation(fmt.Errorf("wrapped: %w", uniqueViolation("x"))) {
		t.Error("wrapped unique violation should be detected")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation is not a unique violation")
	}
	if IsUniqueViolation(errors.New("plain error")) {
		t.Error("plain errors are not unique violations")
	}
}

func TestIsDuplicateConstraintError(t *testing.T) {
	err := uniqueViolation("students_profile_id_key")
	if !IsDuplicateConstraintError(err, "students_profile_id_key") {
		t.Error("matching constraint should be detected")
	}
	if IsDuplicateConstraintError(err, "profiles_email_key") {
		t.Error("a different constraint must not match")
	}
}
