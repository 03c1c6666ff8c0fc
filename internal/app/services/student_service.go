package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tatame/academy/internal/app/models"
	"github.com/tatame/academy/internal/app/models/dto"
	"github.com/tatame/academy/internal/pkg/apperrors"
	"github.com/tatame/academy/internal/pkg/validation"
)

// Common student errors
var (
	ErrStudentValidation = errors.New("student validation failed")
)

// WarnProfileUpdateFailed is returned alongside a successful student
// update whose profile sub-update failed.
const WarnProfileUpdateFailed = "student updated, but the linked profile could not be updated"

// profileStore is the subset of ProfileRepository the student service
// needs.
type profileStore interface {
	Create(ctx context.Context, profile *models.Profile) error
	UpdateContact(ctx context.Context, id string, fullName, email, phone, avatarURL *string) error
	Delete(ctx context.Context, id string) error
}

// studentStore is the subset of StudentRepository the student service
// needs.
type studentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByProfileID(ctx context.Context, profileID string) (*models.Student, error)
	ListActive(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, id int64, beltColor *models.BeltColor, beltDegree *int, monthlyFee *float64, medicalNotes, emergencyContact *string) error
	Deactivate(ctx context.Context, id int64) error
}

// StudentService handles roster operations
type StudentService struct {
	profiles profileStore
	students studentStore
	logger   zerolog.Logger
}

// NewStudentService creates a new student service
func NewStudentService(profiles profileStore, students studentStore, logger zerolog.Logger) *StudentService {
	return &StudentService{
		profiles: profiles,
		students: students,
		logger:   logger,
	}
}

// ListStudents retrieves active students, newest first
func (s *StudentService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.students.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	return students, nil
}

// GetStudent retrieves a student by id, including deactivated ones
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", ErrStudentValidation)
	}
	return s.students.GetByID(ctx, id)
}

// GetStudentByProfile retrieves the student record owned by a profile
func (s *StudentService) GetStudentByProfile(ctx context.Context, profileID string) (*models.Student, error) {
	return s.students.GetByProfileID(ctx, profileID)
}

// CreateStudent performs the two-step creation: a profile row is
// inserted under a freshly generated id, then the student row
// referencing it. There is no wrapping transaction; if the second
// insert fails the just-created profile is deleted as a compensating
// action so no orphan remains, and the whole operation reports failure.
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	belt := models.BeltColor(req.BeltColor)
	if !belt.Valid() {
		return nil, apperrors.ErrInvalidBelt
	}
	if !validation.ValidBeltDegree(req.BeltDegree) {
		return nil, fmt.Errorf("%w: belt degree out of range", ErrStudentValidation)
	}
	if !validation.ValidName(req.FullName) {
		return nil, fmt.Errorf("%w: invalid full name", ErrStudentValidation)
	}
	if !validation.ValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: invalid email address", ErrStudentValidation)
	}
	if !validation.ValidPhone(req.Phone) {
		return nil, fmt.Errorf("%w: invalid phone number", ErrStudentValidation)
	}

	joinDate := time.Now()
	if req.JoinDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.JoinDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid join date", ErrStudentValidation)
		}
		joinDate = parsed
	}

	profile := &models.Profile{
		ID:       uuid.New().String(),
		Role:     models.RoleStudent,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("error creating profile: %w", err)
	}

	student := &models.Student{
		ProfileID:        &profile.ID,
		BeltColor:        belt,
		BeltDegree:       req.BeltDegree,
		JoinDate:         joinDate,
		Active:           true,
		MonthlyFee:       req.MonthlyFee,
		MedicalNotes:     req.MedicalNotes,
		EmergencyContact: req.EmergencyContact,
	}

	if err := s.students.Create(ctx, student); err != nil {
		// Best-effort compensation targeting the exact profile just
		// created; its own failure is logged but not surfaced.
		if delErr := s.profiles.Delete(ctx, profile.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("profileID", profile.ID).Msg("Failed to delete orphaned profile after student insert failure")
		}
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	student.Profile = profile
	return student, nil
}

// UpdateStudent splits the request into a student-owned subset and a
// profile-owned subset and issues at most two updates. The student
// update is the primary write; a failed profile sub-update downgrades
// the result to success-with-warning. An unknown id fails before any
// write is issued.
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, string, error) {
	current, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	var belt *models.BeltColor
	if req.BeltColor != nil {
		b := models.BeltColor(*req.BeltColor)
		if !b.Valid() {
			return nil, "", apperrors.ErrInvalidBelt
		}
		belt = &b
	}

	hasStudentFields := belt != nil || req.BeltDegree != nil || req.MonthlyFee != nil ||
		req.MedicalNotes != nil || req.EmergencyContact != nil
	hasProfileFields := req.FullName != nil || req.Email != nil || req.Phone != nil

	if hasStudentFields {
		if err := s.students.Update(ctx, id, belt, req.BeltDegree, req.MonthlyFee, req.MedicalNotes, req.EmergencyContact); err != nil {
			return nil, "", fmt.Errorf("error updating student: %w", err)
		}
	}

	warning := ""
	if hasProfileFields {
		// An orphaned student has no profile row to write to; treated
		// the same as a failed profile sub-update.
		err := apperrors.ErrProfileNotFound
		if current.ProfileID != nil {
			err = s.profiles.UpdateContact(ctx, *current.ProfileID, req.FullName, req.Email, req.Phone, nil)
		}
		if err != nil {
			if hasStudentFields {
				s.logger.Warn().Err(err).Int64("studentID", id).Msg("Profile sub-update failed after student update")
				warning = WarnProfileUpdateFailed
			} else {
				return nil, "", fmt.Errorf("error updating student profile: %w", err)
			}
		}
	}

	updated, err := s.students.GetByID(ctx, id)
	if err != nil {
		// The writes landed; reread failure should not mask that.
		s.logger.Warn().Err(err).Int64("studentID", id).Msg("Failed to reread student after update")
		return current, warning, nil
	}

	return updated, warning, nil
}

// DeleteStudent soft-deletes a student. The row stays retrievable by
// direct id lookup and only disappears from the active listing.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid student ID", ErrStudentValidation)
	}
	return s.students.Deactivate(ctx, id)
}
