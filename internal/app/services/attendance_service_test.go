package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tatame/academy/internal/app/models"
	"github.com/tatame/academy/internal/app/models/dto"
	"github.com/tatame/academy/internal/pkg/apperrors"
)

type fakeAttendanceStore struct {
	records        []time.Time
	present, total int
	lastSince      time.Time
}

func (f *fakeAttendanceStore) Create(ctx context.Context, studentID int64, classSessionID *int64, date time.Time, present bool) (int64, error) {
	f.records = append(f.records, date)
	return int64(len(f.records)), nil
}

func (f *fakeAttendanceStore) ListByStudentSince(ctx context.Context, studentID int64, since time.Time) (int, int, error) {
	f.lastSince = since
	return f.present, f.total, nil
}

type fakeClassSessionStore struct {
	created []*models.ClassSession
}

func (f *fakeClassSessionStore) Create(ctx context.Context, session *models.ClassSession) error {
	session.ID = int64(len(f.created) + 1)
	f.created = append(f.created, session)
	return nil
}

func (f *fakeClassSessionStore) ListActive(ctx context.Context) ([]*models.ClassSession, error) {
	return f.created, nil
}

type fakeAttendanceStudents struct {
	known map[int64]bool
}

func (f *fakeAttendanceStudents) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	if f.known[id] {
		return &models.Student{ID: id, Active: true}, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func TestRecordAttendance(t *testing.T) {
	store := &fakeAttendanceStore{}
	svc := NewAttendanceService(store, &fakeAttendanceStudents{known: map[int64]bool{1: true}}, &fakeClassSessionStore{})

	id, err := svc.Record(context.Background(), &dto.RecordAttendanceRequest{
		StudentID: 1,
		Date:      "2026-08-30",
		Present:   true,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if id != 1 {
		t.Errorf("id = %d, want 1", id)
	}
	if len(store.records) != 1 {
		t.Fatalf("records = %d, want 1", len(store.records))
	}
}

func TestRecordAttendanceRejectsBadInput(t *testing.T) {
	store := &fakeAttendanceStore{}
	svc := NewAttendanceService(store, &fakeAttendanceStudents{known: map[int64]bool{1: true}}, &fakeClassSessionStore{})

	if _, err := svc.Record(context.Background(), &dto.RecordAttendanceRequest{
		StudentID: 99, Date: "2026-08-30",
	}); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("unknown student: err = %v, want ErrStudentNotFound", err)
	}

	if _, err := svc.Record(context.Background(), &dto.RecordAttendanceRequest{
		StudentID: 1, Date: "30/08/2026",
	}); !errors.Is(err, ErrAttendanceValidation) {
		t.Errorf("bad date: err = %v, want ErrAttendanceValidation", err)
	}

	if len(store.records) != 0 {
		t.Errorf("no record should be written on rejection, got %d", len(store.records))
	}
}

func TestCreateClassSession(t *testing.T) {
	sessions := &fakeClassSessionStore{}
	svc := NewAttendanceService(&fakeAttendanceStore{}, &fakeAttendanceStudents{}, sessions)

	session, err := svc.CreateClassSession(context.Background(), &dto.CreateClassSessionRequest{
		Name:      "Adult No-Gi",
		Weekday:   2,
		StartTime: "19:00",
		EndTime:   "20:30",
	})
	if err != nil {
		t.Fatalf("CreateClassSession: %v", err)
	}
	if session.ID == 0 {
		t.Error("session should carry the generated id")
	}
	if !session.Active {
		t.Error("new sessions should start active")
	}
	if len(sessions.created) != 1 {
		t.Fatalf("created = %d, want 1", len(sessions.created))
	}
}

func TestCreateClassSessionRejectsBadSchedule(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateClassSessionRequest
	}{
		{"weekday out of range", dto.CreateClassSessionRequest{Name: "Gi", Weekday: 7, StartTime: "19:00", EndTime: "20:00"}},
		{"bad start time", dto.CreateClassSessionRequest{Name: "Gi", Weekday: 1, StartTime: "7pm", EndTime: "20:00"}},
		{"bad end time", dto.CreateClassSessionRequest{Name: "Gi", Weekday: 1, StartTime: "19:00", EndTime: "25:61"}},
		{"end before start", dto.CreateClassSessionRequest{Name: "Gi", Weekday: 1, StartTime: "20:00", EndTime: "19:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &fakeClassSessionStore{}
			svc := NewAttendanceService(&fakeAttendanceStore{}, &fakeAttendanceStudents{}, sessions)

			if _, err := svc.CreateClassSession(context.Background(), &tt.req); !errors.Is(err, ErrAttendanceValidation) {
				t.Errorf("err = %v, want ErrAttendanceValidation", err)
			}
			if len(sessions.created) != 0 {
				t.Errorf("nothing should be stored on rejection, got %d", len(sessions.created))
			}
		})
	}
}

func TestStudentRateWindowAndRounding(t *testing.T) {
	store := &fakeAttendanceStore{present: 2, total: 3}
	svc := NewAttendanceService(store, &fakeAttendanceStudents{known: map[int64]bool{1: true}}, &fakeClassSessionStore{})

	fixed := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	rate, err := svc.StudentRate(context.Background(), 1)
	if err != nil {
		t.Fatalf("StudentRate: %v", err)
	}
	if rate != 67 {
		t.Errorf("rate = %d, want 67", rate)
	}
	want := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	if !store.lastSince.Equal(want) {
		t.Errorf("since = %v, want %v", store.lastSince, want)
	}
}

func TestStudentRateNoRecords(t *testing.T) {
	store := &fakeAttendanceStore{}
	svc := NewAttendanceService(store, &fakeAttendanceStudents{known: map[int64]bool{1: true}}, &fakeClassSessionStore{})

	rate, err := svc.StudentRate(context.Background(), 1)
	if err != nil {
		t.Fatalf("StudentRate: %v", err)
	}
	if rate != 0 {
		t.Errorf("rate = %d, want 0 when nothing is recorded", rate)
	}
}
