package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tatame/academy/internal/app/models"
	"github.com/tatame/academy/internal/app/models/dto"
	"github.com/tatame/academy/internal/pkg/helpers"
)

// recentActivityWindow and recentActivityLimit bound the activity feed.
const (
	recentActivityWindow = 7 // days
	recentActivityLimit  = 5
	attendanceWindow     = 30 // days
)

// studentAggregates is the read-only slice of StudentRepository the
// dashboard needs.
type studentAggregates interface {
	CountAll(ctx context.Context) (total, active int, err error)
	SumActiveMonthlyFees(ctx context.Context) (float64, error)
	ListCreatedSince(ctx context.Context, since time.Time) ([]*models.Student, error)
}

// graduationAggregates is the read-only slice of GraduationRepository
// the dashboard needs.
type graduationAggregates interface {
	CountInRange(ctx context.Context, start, end time.Time) (int, error)
	ListCreatedSince(ctx context.Context, since time.Time) ([]*models.Graduation, error)
}

type classAggregates interface {
	CountActive(ctx context.Context) (int, error)
}

type messageAggregates interface {
	CountUnread(ctx context.Context, recipientID string) (int, error)
}

type attendanceAggregates interface {
	CountSince(ctx context.Context, since time.Time) (present, total int, err error)
}

// DashboardService derives the overview figures and the recent-activity
// feed. It only ever reads.
type DashboardService struct {
	students    studentAggregates
	graduations graduationAggregates
	classes     classAggregates
	messages    messageAggregates
	attendance  attendanceAggregates
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	students studentAggregates,
	graduations graduationAggregates,
	classes classAggregates,
	messages messageAggregates,
	attendance attendanceAggregates,
) *DashboardService {
	return &DashboardService{
		students:    students,
		graduations: graduations,
		classes:     classes,
		messages:    messages,
		attendance:  attendance,
		now:         time.Now,
	}
}

// AttendanceRate computes the integer attendance percentage. Zero total
// yields 0 rather than a division by zero.
func AttendanceRate(present, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}

// Overview runs the five independent reads in parallel and derives the
// dashboard figures. The reads are not coordinated transactionally, so
// each reflects a slightly different instant; any single failure aborts
// the whole aggregate and no partial figures are returned.
func (s *DashboardService) Overview(ctx context.Context, profileID string) (*dto.DashboardOverview, error) {
	now := s.now()
	monthStart, monthEnd := helpers.MonthBounds(now)
	attendanceSince := helpers.DaysAgo(now, attendanceWindow)

	var (
		total, active               int
		graduationsThisMonth        int
		activeClasses               int
		unreadMessages              int
		revenue                     float64
		presentCount, totalAttended int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		total, active, err = s.students.CountAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		graduationsThisMonth, err = s.graduations.CountInRange(gctx, monthStart, monthEnd)
		return err
	})
	g.Go(func() error {
		var err error
		activeClasses, err = s.classes.CountActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		unreadMessages, err = s.messages.CountUnread(gctx, profileID)
		return err
	})
	g.Go(func() error {
		var err error
		presentCount, totalAttended, err = s.attendance.CountSince(gctx, attendanceSince)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error loading dashboard: %w", err)
	}

	// Revenue depends on the same table as the counts; issued after the
	// group so a failed aggregate never yields partial figures either way.
	revenue, err := s.students.SumActiveMonthlyFees(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading dashboard: %w", err)
	}

	return &dto.DashboardOverview{
		TotalStudents:        total,
		ActiveStudents:       active,
		GraduationsThisMonth: graduationsThisMonth,
		ActiveClasses:        activeClasses,
		UnreadMessages:       unreadMessages,
		EstimatedRevenue:     revenue,
		AttendanceRate:       AttendanceRate(presentCount, totalAttended),
	}, nil
}

// RecentActivity merges graduations and student registrations from the
// last seven days into a uniform feed, newest first, capped at five
// entries.
func (s *DashboardService) RecentActivity(ctx context.Context) ([]dto.ActivityEntry, error) {
	since := helpers.DaysAgo(s.now(), recentActivityWindow)

	graduations, err := s.graduations.ListCreatedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("error loading recent graduations: %w", err)
	}

	students, err := s.students.ListCreatedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("error loading recent students: %w", err)
	}

	return BuildActivityFeed(graduations, students), nil
}

// BuildActivityFeed maps both sources into the uniform entry shape,
// sorts by timestamp descending and truncates to the five most recent.
func BuildActivityFeed(graduations []*models.Graduation, students []*models.Student) []dto.ActivityEntry {
	entries := make([]dto.ActivityEntry, 0, len(graduations)+len(students))

	for _, g := range graduations {
		name := models.PlaceholderName
		if g.Student != nil {
			name = g.Student.DisplayName()
		}
		entries = append(entries, dto.ActivityEntry{
			ID:          fmt.Sprintf("graduation-%d", g.ID),
			Type:        "graduation",
			Title:       "Belt promotion",
			Description: fmt.Sprintf("%s promoted to %s belt, degree %d", name, g.BeltColor, g.BeltDegree),
			Timestamp:   g.CreatedAt,
		})
	}

	for _, st := range students {
		entries = append(entries, dto.ActivityEntry{
			ID:          fmt.Sprintf("student-%d", st.ID),
			Type:        "student",
			Title:       "New student",
			Description: fmt.Sprintf("%s joined the academy", st.DisplayName()),
			Timestamp:   st.CreatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if len(entries) > recentActivityLimit {
		entries = entries[:recentActivityLimit]
	}

	return entries
}
