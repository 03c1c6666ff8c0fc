package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tatame/academy/internal/app/models"
	"github.com/tatame/academy/internal/app/models/dto"
	"github.com/tatame/academy/internal/pkg/apperrors"
	"github.com/tatame/academy/internal/pkg/validation"
)

// Common graduation errors
var (
	ErrGraduationValidation = errors.New("graduation validation failed")
)

// WarnBeltUpdateFailed is returned alongside a successfully recorded
// graduation whose belt overwrite on the student failed.
const WarnBeltUpdateFailed = "graduation recorded, but the student's current belt could not be updated"

// graduationStore is the subset of GraduationRepository the graduation
// service needs.
type graduationStore interface {
	Create(ctx context.Context, graduation *models.Graduation) error
	GetByID(ctx context.Context, id int64) (*models.Graduation, error)
	List(ctx context.Context) ([]*models.Graduation, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Graduation, error)
	Delete(ctx context.Context, id int64) error
}

// beltStore is the subset of StudentRepository the graduation service
// needs.
type beltStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	UpdateBelt(ctx context.Context, id int64, beltColor models.BeltColor, beltDegree int) error
}

// GraduationService handles belt promotion operations
type GraduationService struct {
	graduations graduationStore
	students    beltStore
	logger      zerolog.Logger
}

// NewGraduationService creates a new graduation service
func NewGraduationService(graduations graduationStore, students beltStore, logger zerolog.Logger) *GraduationService {
	return &GraduationService{
		graduations: graduations,
		students:    students,
		logger:      logger,
	}
}

// ListGraduations retrieves the promotion history, most recent first
func (s *GraduationService) ListGraduations(ctx context.Context) ([]*models.Graduation, error) {
	graduations, err := s.graduations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing graduations: %w", err)
	}
	return graduations, nil
}

// GetGraduation retrieves a single promotion record
func (s *GraduationService) GetGraduation(ctx context.Context, id int64) (*models.Graduation, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid graduation ID", ErrGraduationValidation)
	}
	return s.graduations.GetByID(ctx, id)
}

// ListByStudent retrieves one student's promotion history
func (s *GraduationService) ListByStudent(ctx context.Context, studentID int64) ([]*models.Graduation, error) {
	if studentID <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", ErrGraduationValidation)
	}
	return s.graduations.ListByStudent(ctx, studentID)
}

// RecordGraduation inserts a graduation and then unconditionally
// overwrites the student's current belt fields with the awarded values.
// The insert is the primary write: a failed belt overwrite downgrades
// the result to success-with-warning rather than failing the operation.
func (s *GraduationService) RecordGraduation(ctx context.Context, instructorID string, req *dto.CreateGraduationRequest) (*models.Graduation, string, error) {
	belt := models.BeltColor(req.BeltColor)
	if !belt.Valid() {
		return nil, "", apperrors.ErrInvalidBelt
	}
	if !validation.ValidBeltDegree(req.BeltDegree) {
		return nil, "", fmt.Errorf("%w: belt degree out of range", ErrGraduationValidation)
	}

	if _, err := s.students.GetByID(ctx, req.StudentID); err != nil {
		return nil, "", err
	}

	gradDate := time.Now()
	if req.GraduationDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.GraduationDate)
		if err != nil {
			return nil, "", fmt.Errorf("%w: invalid graduation date", ErrGraduationValidation)
		}
		gradDate = parsed
	}

	graduation := &models.Graduation{
		StudentID:      req.StudentID,
		BeltColor:      belt,
		BeltDegree:     req.BeltDegree,
		GraduationDate: gradDate,
		Notes:          req.Notes,
	}
	if instructorID != "" {
		graduation.InstructorID = &instructorID
	}

	if err := s.graduations.Create(ctx, graduation); err != nil {
		return nil, "", fmt.Errorf("error recording graduation: %w", err)
	}

	warning := ""
	if err := s.students.UpdateBelt(ctx, req.StudentID, belt, req.BeltDegree); err != nil {
		s.logger.Warn().Err(err).Int64("studentID", req.StudentID).Msg("Belt overwrite failed after graduation insert")
		warning = WarnBeltUpdateFailed
	}

	return graduation, warning, nil
}

// DeleteGraduation physically removes a graduation record. The
// student's current belt fields are not reverted to the previous
// promotion's values.
func (s *GraduationService) DeleteGraduation(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid graduation ID", ErrGraduationValidation)
	}
	return s.graduations.Delete(ctx, id)
}
