package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tatame/academy/internal/app/models"
	"github.com/tatame/academy/internal/app/models/dto"
	"github.com/tatame/academy/internal/pkg/apperrors"
)

type fakeProfileStore struct {
	created       []*models.Profile
	deleted       []string
	updated       []string
	createErr     error
	updateErr     error
	deleteErr     error
}

func (f *fakeProfileStore) Create(ctx context.Context, profile *models.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, profile)
	return nil
}

func (f *fakeProfileStore) UpdateContact(ctx context.Context, id string, fullName, email, phone, avatarURL *string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, id)
	return nil
}

func (f *fakeProfileStore) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

type fakeStudentStore struct {
	byID      map[int64]*models.Student
	created   []*models.Student
	updates   int
	createErr error
	updateErr error
}

func (f *fakeStudentStore) Create(ctx context.Context, student *models.Student) error {
	if f.createErr != nil {
		return f.createErr
	}
	student.ID = int64(len(f.created) + 1)
	f.created = append(f.created, student)
	return nil
}

func (f *fakeStudentStore) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) GetByProfileID(ctx context.Context, profileID string) (*models.Student, error) {
	for _, s := range f.byID {
		if s.ProfileID != nil && *s.ProfileID == profileID {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) ListActive(ctx context.Context) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range f.byID {
		if s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) Update(ctx context.Context, id int64, beltColor *models.BeltColor, beltDegree *int, monthlyFee *float64, medicalNotes, emergencyContact *string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates++
	return nil
}

func (f *fakeStudentStore) Deactivate(ctx context.Context, id int64) error {
	s, ok := f.byID[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.Active = false
	return nil
}

func newStudentService(profiles *fakeProfileStore, students *fakeStudentStore) *StudentService {
	return NewStudentService(profiles, students, zerolog.Nop())
}

func validCreateRequest() *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		FullName:   "Ana Souza",
		Email:      "ana@tatame.app",
		BeltColor:  "white",
		MonthlyFee: 150,
	}
}

func TestCreateStudentLinksFreshProfile(t *testing.T) {
	profiles := &fakeProfileStore{}
	students := &fakeStudentStore{}
	svc := newStudentService(profiles, students)

	student, err := svc.CreateStudent(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}

	if len(profiles.created) != 1 {
		t.Fatalf("expected 1 profile created, got %d", len(profiles.created))
	}
	profile := profiles.created[0]
	if profile.ID == "" {
		t.Error("profile id was not generated")
	}
	if profile.Role != models.RoleStudent {
		t.Errorf("profile role = %q, want %q", profile.Role, models.RoleStudent)
	}
	if student.ProfileID == nil || *student.ProfileID != profile.ID {
		t.Errorf("student.ProfileID = %v, want %q", student.ProfileID, profile.ID)
	}
	if !student.Active {
		t.Error("new student should be active")
	}
}

func TestCreateStudentCompensatesExactProfile(t *testing.T) {
	profiles := &fakeProfileStore{}
	students := &fakeStudentStore{createErr: errors.New("insert failed")}
	svc := newStudentService(profiles, students)

	_, err := svc.CreateStudent(context.Background(), validCreateRequest())
	if err == nil {
		t.Fatal("expected error when student insert fails")
	}

	if len(profiles.created) != 1 {
		t.Fatalf("expected 1 profile created, got %d", len(profiles.created))
	}
	if len(profiles.deleted) != 1 {
		t.Fatalf("expected 1 compensating delete, got %d", len(profiles.deleted))
	}
	if profiles.deleted[0] != profiles.created[0].ID {
		t.Errorf("compensation deleted %q, want the created profile %q",
			profiles.deleted[0], profiles.created[0].ID)
	}
}

func TestCreateStudentCompensationFailureStillFails(t *testing.T) {
	profiles := &fakeProfileStore{deleteErr: errors.New("delete failed")}
	students := &fakeStudentStore{createErr: errors.New("insert failed")}
	svc := newStudentService(profiles, students)

	_, err := svc.CreateStudent(context.Background(), validCreateRequest())
	if err == nil {
		t.Fatal("expected the original error to surface")
	}
	if len(profiles.deleted) != 1 {
		t.Errorf("compensating delete was not attempted")
	}
}

func TestCreateStudentRejectsInvalidInput(t *testing.T) {
	profiles := &fakeProfileStore{}
	students := &fakeStudentStore{}
	svc := newStudentService(profiles, students)

	cases := []struct {
		name   string
		mutate func(*dto.CreateStudentRequest)
	}{
		{"unknown belt", func(r *dto.CreateStudentRequest) { r.BeltColor = "crimson" }},
		{"negative degree", func(r *dto.CreateStudentRequest) { r.BeltDegree = -1 }},
		{"short name", func(r *dto.CreateStudentRequest) { r.FullName = "A" }},
		{"bad email", func(r *dto.CreateStudentRequest) { r.Email = "not-an-email" }},
		{"bad join date", func(r *dto.CreateStudentRequest) { d := "14/06/2025"; r.JoinDate = &d }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(req)
			if _, err := svc.CreateStudent(context.Background(), req); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if len(profiles.created) != 0 {
		t.Errorf("no profile should be created for invalid input, got %d", len(profiles.created))
	}
}

func TestUpdateStudentUnknownIDWritesNothing(t *testing.T) {
	profiles := &fakeProfileStore{}
	students := &fakeStudentStore{byID: map[int64]*models.Student{}}
	svc := newStudentService(profiles, students)

	name := "Novo Nome"
	_, _, err := svc.UpdateStudent(context.Background(), 42, &dto.UpdateStudentRequest{FullName: &name})
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("err = %v, want ErrStudentNotFound", err)
	}
	if students.updates != 0 || len(profiles.updated) != 0 {
		t.Error("no writes should be issued for an unknown student")
	}
}

func TestUpdateStudentProfileFailureYieldsWarning(t *testing.T) {
	pid := "p-7"
	existing := &models.Student{ID: 7, ProfileID: &pid, Active: true}
	profiles := &fakeProfileStore{updateErr: errors.New("profile update failed")}
	students := &fakeStudentStore{byID: map[int64]*models.Student{7: existing}}
	svc := newStudentService(profiles, students)

	fee := 200.0
	name := "Novo Nome"
	updated, warning, err := svc.UpdateStudent(context.Background(), 7, &dto.UpdateStudentRequest{
		MonthlyFee: &fee,
		FullName:   &name,
	})
	if err != nil {
		t.Fatalf("UpdateStudent: %v", err)
	}
	if warning != WarnProfileUpdateFailed {
		t.Errorf("warning = %q, want %q", warning, WarnProfileUpdateFailed)
	}
	if updated == nil {
		t.Fatal("expected the student back despite the warning")
	}
	if students.updates != 1 {
		t.Errorf("student updates = %d, want 1", students.updates)
	}
}

func TestUpdateStudentOrphanProfileSubset(t *testing.T) {
	existing := &models.Student{ID: 9, Active: true} // no linked profile
	profiles := &fakeProfileStore{}
	students := &fakeStudentStore{byID: map[int64]*models.Student{9: existing}}
	svc := newStudentService(profiles, students)

	fee := 180.0
	name := "Novo Nome"
	_, warning, err := svc.UpdateStudent(context.Background(), 9, &dto.UpdateStudentRequest{
		MonthlyFee: &fee,
		FullName:   &name,
	})
	if err != nil {
		t.Fatalf("UpdateStudent: %v", err)
	}
	if warning != WarnProfileUpdateFailed {
		t.Errorf("warning = %q, want %q", warning, WarnProfileUpdateFailed)
	}
	if len(profiles.updated) != 0 {
		t.Error("no profile write should be attempted without a linked profile")
	}

	_, _, err = svc.UpdateStudent(context.Background(), 9, &dto.UpdateStudentRequest{FullName: &name})
	if !errors.Is(err, apperrors.ErrProfileNotFound) {
		t.Errorf("profile-only update on an orphan: err = %v, want ErrProfileNotFound", err)
	}
}

func TestUpdateStudentProfileOnlyFailureIsAnError(t *testing.T) {
	pid := "p-7"
	existing := &models.Student{ID: 7, ProfileID: &pid, Active: true}
	profiles := &fakeProfileStore{updateErr: errors.New("profile update failed")}
	students := &fakeStudentStore{byID: map[int64]*models.Student{7: existing}}
	svc := newStudentService(profiles, students)

	name := "Novo Nome"
	_, _, err := svc.UpdateStudent(context.Background(), 7, &dto.UpdateStudentRequest{FullName: &name})
	if err == nil {
		t.Fatal("a profile-only update that fails has no primary write to hide behind")
	}
}

func TestDeleteStudentIsSoft(t *testing.T) {
	pid := "p-3"
	existing := &models.Student{ID: 3, ProfileID: &pid, Active: true}
	students := &fakeStudentStore{byID: map[int64]*models.Student{3: existing}}
	svc := newStudentService(&fakeProfileStore{}, students)

	if err := svc.DeleteStudent(context.Background(), 3); err != nil {
		t.Fatalf("DeleteStudent: %v", err)
	}

	got, err := svc.GetStudent(context.Background(), 3)
	if err != nil {
		t.Fatalf("deactivated student should stay retrievable by id: %v", err)
	}
	if got.Active {
		t.Error("student should be inactive after delete")
	}

	active, err := svc.ListStudents(context.Background())
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	for _, s := range active {
		if s.ID == 3 {
			t.Error("deactivated student should not appear in the active listing")
		}
	}
}
