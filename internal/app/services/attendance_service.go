package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tatame/academy/internal/app/models"
	"github.com/tatame/academy/internal/app/models/dto"
	"github.com/tatame/academy/internal/pkg/helpers"
)

var (
	ErrAttendanceValidation = errors.New("attendance validation failed")
)

// attendanceStore is the subset of AttendanceRepository the attendance
// service needs.
type attendanceStore interface {
	Create(ctx context.Context, studentID int64, classSessionID *int64, date time.Time, present bool) (int64, error)
	ListByStudentSince(ctx context.Context, studentID int64, since time.Time) (present, total int, err error)
}

// attendanceStudentStore validates the student before recording
type attendanceStudentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// classSessionStore is the subset of ClassSessionRepository the
// attendance service needs for schedule management.
type classSessionStore interface {
	Create(ctx context.Context, session *models.ClassSession) error
	ListActive(ctx context.Context) ([]*models.ClassSession, error)
}

// AttendanceService records check-ins, manages the weekly class
// schedule and derives per-student rates
type AttendanceService struct {
	attendance attendanceStore
	students   attendanceStudentStore
	sessions   classSessionStore
	now        func() time.Time
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(attendance attendanceStore, students attendanceStudentStore, sessions classSessionStore) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		students:   students,
		sessions:   sessions,
		now:        time.Now,
	}
}

// Record stores one attendance mark for a student
func (s *AttendanceService) Record(ctx context.Context, req *dto.RecordAttendanceRequest) (int64, error) {
	if _, err := s.students.GetByID(ctx, req.StudentID); err != nil {
		return 0, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid date", ErrAttendanceValidation)
	}

	id, err := s.attendance.Create(ctx, req.StudentID, req.ClassSessionID, date, req.Present)
	if err != nil {
		return 0, fmt.Errorf("error recording attendance: %w", err)
	}

	return id, nil
}

// CreateClassSession adds a recurring slot to the weekly schedule
func (s *AttendanceService) CreateClassSession(ctx context.Context, req *dto.CreateClassSessionRequest) (*models.ClassSession, error) {
	if req.Weekday < 0 || req.Weekday > 6 {
		return nil, fmt.Errorf("%w: weekday out of range", ErrAttendanceValidation)
	}
	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time", ErrAttendanceValidation)
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time", ErrAttendanceValidation)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end time must come after start time", ErrAttendanceValidation)
	}

	session := &models.ClassSession{
		Name:      req.Name,
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Active:    true,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating class session: %w", err)
	}

	return session, nil
}

// ListClassSessions returns the active weekly schedule
func (s *AttendanceService) ListClassSessions(ctx context.Context) ([]*models.ClassSession, error) {
	sessions, err := s.sessions.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing class sessions: %w", err)
	}
	return sessions, nil
}

// StudentRate derives a student's 30-day attendance percentage
func (s *AttendanceService) StudentRate(ctx context.Context, studentID int64) (int, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return 0, err
	}

	since := helpers.DaysAgo(s.now(), attendanceWindow)
	present, total, err := s.attendance.ListByStudentSince(ctx, studentID, since)
	if err != nil {
		return 0, fmt.Errorf("error deriving attendance rate: %w", err)
	}

	return AttendanceRate(present, total), nil
}
