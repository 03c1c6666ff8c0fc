package helpers

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("90m", time.Hour); got != 90*time.Minute {
		t.Errorf("ParseDuration(90m) = %v, want 90m", got)
	}
	if got := ParseDuration("garbage", time.Hour); got != time.Hour {
		t.Errorf("ParseDuration(garbage) = %v, want the default", got)
	}
	if got := ParseDuration("", 30*time.Second); got != 30*time.Second {
		t.Errorf("ParseDuration(empty) = %v, want the default", got)
	}
}

func TestMonthBounds(t *testing.T) {
	in := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	start, end := MonthBounds(in)

	if want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	if want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("end = %v, want %v", end, want)
	}
}

func TestMonthBoundsYearRollover(t *testing.T) {
	in := time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC)
	_, end := MonthBounds(in)
	if want := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("end = %v, want %v", end, want)
	}
}

func TestDaysAgo(t *testing.T) {
	in := time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC)
	got := DaysAgo(in, 7)
	if want := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("DaysAgo = %v, want %v", got, want)
	}
}
