package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tatame/academy/internal/app/models"
	"github.com/tatame/academy/internal/app/models/dto"
	"github.com/tatame/academy/internal/pkg/apperrors"
)

type fakeGraduationStore struct {
	created   []*models.Graduation
	deleted   []int64
	createErr error
}

func (f *fakeGraduationStore) Create(ctx context.Context, graduation *models.Graduation) error {
	if f.createErr != nil {
		return f.createErr
	}
	graduation.ID = int64(len(f.created) + 1)
	graduation.CreatedAt = time.Now()
	f.created = append(f.created, graduation)
	return nil
}

func (f *fakeGraduationStore) GetByID(ctx context.Context, id int64) (*models.Graduation, error) {
	for _, g := range f.created {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, apperrors.ErrGraduationNotFound
}

func (f *fakeGraduationStore) List(ctx context.Context) ([]*models.Graduation, error) {
	return f.created, nil
}

func (f *fakeGraduationStore) ListByStudent(ctx context.Context, studentID int64) ([]*models.Graduation, error) {
	var out []*models.Graduation
	for _, g := range f.created {
		if g.StudentID == studentID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGraduationStore) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeBeltStore struct {
	students      map[int64]*models.Student
	beltUpdateErr error
}

func (f *fakeBeltStore) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := f.students[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeBeltStore) UpdateBelt(ctx context.Context, id int64, beltColor models.BeltColor, beltDegree int) error {
	if f.beltUpdateErr != nil {
		return f.beltUpdateErr
	}
	s, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.BeltColor = beltColor
	s.BeltDegree = beltDegree
	return nil
}

func TestRecordGraduationOverwritesBelt(t *testing.T) {
	student := &models.Student{ID: 1, BeltColor: models.BeltWhite, BeltDegree: 3}
	belts := &fakeBeltStore{students: map[int64]*models.Student{1: student}}
	grads := &fakeGraduationStore{}
	svc := NewGraduationService(grads, belts, zerolog.Nop())

	grad, warning, err := svc.RecordGraduation(context.Background(), "instr-1", &dto.CreateGraduationRequest{
		StudentID:  1,
		BeltColor:  "blue",
		BeltDegree: 0,
	})
	if err != nil {
		t.Fatalf("RecordGraduation: %v", err)
	}
	if warning != "" {
		t.Errorf("unexpected warning %q", warning)
	}

	if student.BeltColor != models.BeltBlue || student.BeltDegree != 0 {
		t.Errorf("student belt = %s/%d, want blue/0", student.BeltColor, student.BeltDegree)
	}
	if grad.InstructorID == nil || *grad.InstructorID != "instr-1" {
		t.Error("graduation should record the awarding instructor")
	}
	if len(grads.created) != 1 {
		t.Fatalf("expected 1 graduation, got %d", len(grads.created))
	}
}

func TestRecordGraduationBeltFailureIsWarning(t *testing.T) {
	student := &models.Student{ID: 1, BeltColor: models.BeltWhite}
	belts := &fakeBeltStore{
		students:      map[int64]*models.Student{1: student},
		beltUpdateErr: errors.New("update failed"),
	}
	grads := &fakeGraduationStore{}
	svc := NewGraduationService(grads, belts, zerolog.Nop())

	grad, warning, err := svc.RecordGraduation(context.Background(), "instr-1", &dto.CreateGraduationRequest{
		StudentID: 1,
		BeltColor: "blue",
	})
	if err != nil {
		t.Fatalf("the insert succeeded, the operation must not fail: %v", err)
	}
	if grad == nil {
		t.Fatal("expected the recorded graduation back")
	}
	if warning != WarnBeltUpdateFailed {
		t.Errorf("warning = %q, want %q", warning, WarnBeltUpdateFailed)
	}
	if student.BeltColor != models.BeltWhite {
		t.Error("belt must be untouched when the overwrite fails")
	}
}

func TestRecordGraduationInsertFailureWritesNoBelt(t *testing.T) {
	student := &models.Student{ID: 1, BeltColor: models.BeltWhite}
	belts := &fakeBeltStore{students: map[int64]*models.Student{1: student}}
	grads := &fakeGraduationStore{createErr: errors.New("insert failed")}
	svc := NewGraduationService(grads, belts, zerolog.Nop())

	_, _, err := svc.RecordGraduation(context.Background(), "", &dto.CreateGraduationRequest{
		StudentID: 1,
		BeltColor: "blue",
	})
	if err == nil {
		t.Fatal("expected error when the insert fails")
	}
	if student.BeltColor != models.BeltWhite {
		t.Error("belt must not change when the insert fails")
	}
}

func TestRecordGraduationUnknownStudent(t *testing.T) {
	belts := &fakeBeltStore{students: map[int64]*models.Student{}}
	grads := &fakeGraduationStore{}
	svc := NewGraduationService(grads, belts, zerolog.Nop())

	_, _, err := svc.RecordGraduation(context.Background(), "", &dto.CreateGraduationRequest{
		StudentID: 99,
		BeltColor: "blue",
	})
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("err = %v, want ErrStudentNotFound", err)
	}
	if len(grads.created) != 0 {
		t.Error("no graduation should be recorded for an unknown student")
	}
}

func TestDeleteGraduationDoesNotRevertBelt(t *testing.T) {
	student := &models.Student{ID: 1, BeltColor: models.BeltBlue, BeltDegree: 1}
	belts := &fakeBeltStore{students: map[int64]*models.Student{1: student}}
	grads := &fakeGraduationStore{created: []*models.Graduation{
		{ID: 5, StudentID: 1, BeltColor: models.BeltBlue, BeltDegree: 1},
	}}
	svc := NewGraduationService(grads, belts, zerolog.Nop())

	if err := svc.DeleteGraduation(context.Background(), 5); err != nil {
		t.Fatalf("DeleteGraduation: %v", err)
	}
	if len(grads.deleted) != 1 || grads.deleted[0] != 5 {
		t.Fatalf("deleted = %v, want [5]", grads.deleted)
	}
	if student.BeltColor != models.BeltBlue || student.BeltDegree != 1 {
		t.Error("deleting a graduation must not touch the student's current belt")
	}
}

func TestGetGraduation(t *testing.T) {
	grads := &fakeGraduationStore{created: []*models.Graduation{
		{ID: 5, StudentID: 1, BeltColor: models.BeltBlue, BeltDegree: 1},
	}}
	svc := NewGraduationService(grads, &fakeBeltStore{}, zerolog.Nop())

	grad, err := svc.GetGraduation(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetGraduation: %v", err)
	}
	if grad.ID != 5 || grad.BeltColor != models.BeltBlue {
		t.Errorf("grad = %+v, want the recorded promotion", grad)
	}

	if _, err := svc.GetGraduation(context.Background(), 99); !errors.Is(err, apperrors.ErrGraduationNotFound) {
		t.Errorf("unknown id: err = %v, want ErrGraduationNotFound", err)
	}
	if _, err := svc.GetGraduation(context.Background(), 0); !errors.Is(err, ErrGraduationValidation) {
		t.Errorf("zero id: err = %v, want ErrGraduationValidation", err)
	}
}
