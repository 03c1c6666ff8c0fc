package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tatame/academy/internal/app/models"
)

type fakeStudentAggregates struct {
	total, active int
	fees          float64
	recent        []*models.Student
	countErr      error
	feesErr       error
}

func (f *fakeStudentAggregates) CountAll(ctx context.Context) (int, int, error) {
	return f.total, f.active, f.countErr
}

func (f *fakeStudentAggregates) SumActiveMonthlyFees(ctx context.Context) (float64, error) {
	return f.fees, f.feesErr
}

func (f *fakeStudentAggregates) ListCreatedSince(ctx context.Context, since time.Time) ([]*models.Student, error) {
	return f.recent, nil
}

type fakeGraduationAggregates struct {
	count  int
	recent []*models.Graduation
	err    error
}

func (f *fakeGraduationAggregates) CountInRange(ctx context.Context, start, end time.Time) (int, error) {
	return f.count, f.err
}

func (f *fakeGraduationAggregates) ListCreatedSince(ctx context.Context, since time.Time) ([]*models.Graduation, error) {
	return f.recent, nil
}

type fakeClassAggregates struct{ count int }

func (f *fakeClassAggregates) CountActive(ctx context.Context) (int, error) {
	return f.count, nil
}

type fakeMessageAggregates struct{ unread int }

func (f *fakeMessageAggregates) CountUnread(ctx context.Context, recipientID string) (int, error) {
	return f.unread, nil
}

type fakeAttendanceAggregates struct{ present, total int }

func (f *fakeAttendanceAggregates) CountSince(ctx context.Context, since time.Time) (int, int, error) {
	return f.present, f.total, nil
}

func TestAttendanceRate(t *testing.T) {
	cases := []struct {
		present, total, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{3, 4, 75},
		{1, 3, 33},
		{2, 3, 67},
		{10, 10, 100},
	}
	for _, tc := range cases {
		if got := AttendanceRate(tc.present, tc.total); got != tc.want {
			t.Errorf("AttendanceRate(%d, %d) = %d, want %d", tc.present, tc.total, got, tc.want)
		}
	}
}

func TestOverviewAggregatesAllFigures(t *testing.T) {
	svc := NewDashboardService(
		&fakeStudentAggregates{total: 40, active: 35, fees: 5250},
		&fakeGraduationAggregates{count: 3},
		&fakeClassAggregates{count: 6},
		&fakeMessageAggregates{unread: 2},
		&fakeAttendanceAggregates{present: 90, total: 120},
	)

	overview, err := svc.Overview(context.Background(), "profile-1")
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	if overview.TotalStudents != 40 || overview.ActiveStudents != 35 {
		t.Errorf("students = %d/%d, want 40/35", overview.TotalStudents, overview.ActiveStudents)
	}
	if overview.GraduationsThisMonth != 3 {
		t.Errorf("graduationsThisMonth = %d, want 3", overview.GraduationsThisMonth)
	}
	if overview.ActiveClasses != 6 {
		t.Errorf("activeClasses = %d, want 6", overview.ActiveClasses)
	}
	if overview.UnreadMessages != 2 {
		t.Errorf("unreadMessages = %d, want 2", overview.UnreadMessages)
	}
	if overview.EstimatedRevenue != 5250 {
		t.Errorf("estimatedRevenue = %v, want 5250", overview.EstimatedRevenue)
	}
	if overview.AttendanceRate != 75 {
		t.Errorf("attendanceRate = %d, want 75", overview.AttendanceRate)
	}
}

func TestOverviewSingleFailureAbortsAll(t *testing.T) {
	svc := NewDashboardService(
		&fakeStudentAggregates{total: 40, active: 35},
		&fakeGraduationAggregates{err: errors.New("query failed")},
		&fakeClassAggregates{count: 6},
		&fakeMessageAggregates{},
		&fakeAttendanceAggregates{},
	)

	overview, err := svc.Overview(context.Background(), "profile-1")
	if err == nil {
		t.Fatal("one failed read must abort the whole aggregate")
	}
	if overview != nil {
		t.Error("no partial figures may be returned")
	}
}

func TestBuildActivityFeedOrdersAndCaps(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	profile := func(name string) *models.Profile { return &models.Profile{FullName: name} }

	var graduations []*models.Graduation
	for i := 0; i < 3; i++ {
		graduations = append(graduations, &models.Graduation{
			ID:        int64(i + 1),
			BeltColor: models.BeltBlue,
			Student:   &models.Student{Profile: profile(fmt.Sprintf("Grad %d", i+1))},
			CreatedAt: base.Add(time.Duration(2*i) * time.Hour),
		})
	}
	var students []*models.Student
	for i := 0; i < 3; i++ {
		students = append(students, &models.Student{
			ID:        int64(i + 1),
			Profile:   profile(fmt.Sprintf("Student %d", i+1)),
			CreatedAt: base.Add(time.Duration(2*i+1) * time.Hour),
		})
	}

	feed := BuildActivityFeed(graduations, students)

	if len(feed) != 5 {
		t.Fatalf("feed length = %d, want 5", len(feed))
	}
	for i := 1; i < len(feed); i++ {
		if feed[i].Timestamp.After(feed[i-1].Timestamp) {
			t.Errorf("feed not sorted descending at index %d", i)
		}
	}
	// Six candidates, capped at five: the oldest (the first graduation)
	// must be the one dropped.
	for _, e := range feed {
		if e.ID == "graduation-1" {
			t.Error("oldest entry should have been trimmed from the feed")
		}
	}
}

func TestBuildActivityFeedMergesBothSources(t *testing.T) {
	now := time.Now()
	feed := BuildActivityFeed(
		[]*models.Graduation{{ID: 1, BeltColor: models.BeltGreen, CreatedAt: now}},
		[]*models.Student{{ID: 2, CreatedAt: now.Add(-time.Minute)}},
	)

	if len(feed) != 2 {
		t.Fatalf("feed length = %d, want 2", len(feed))
	}
	if feed[0].Type != "graduation" || feed[1].Type != "student" {
		t.Errorf("feed types = %s,%s, want graduation,student", feed[0].Type, feed[1].Type)
	}
}

func TestBuildActivityFeedPlaceholderForMissingProfile(t *testing.T) {
	feed := BuildActivityFeed(nil, []*models.Student{{ID: 1, CreatedAt: time.Now()}})
	if len(feed) != 1 {
		t.Fatalf("feed length = %d, want 1", len(feed))
	}
	want := fmt.Sprintf("%s joined the academy", models.PlaceholderName)
	if feed[0].Description != want {
		t.Errorf("description = %q, want %q", feed[0].Description, want)
	}
}
