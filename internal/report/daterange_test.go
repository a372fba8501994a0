package report

import (
	"errors"
	"testing"
	"time"
)

func TestResolveDateRange(t *testing.T) {
	// A fixed afternoon so midnight truncation is visible.
	now := time.Date(2024, time.March, 15, 14, 30, 45, 0, time.UTC)
	midnight := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		filter    DateFilter
		wantStart *time.Time
		wantEnd   *time.Time
	}{
		{FilterToday, &midnight, timePtr(midnight.AddDate(0, 0, 1))},
		{FilterLast7Days, timePtr(midnight.AddDate(0, 0, -6)), nil},
		{FilterLast30Days, timePtr(midnight.AddDate(0, 0, -29)), nil},
		{FilterLast6Mo, timePtr(time.Date(2023, time.September, 15, 0, 0, 0, 0, time.UTC)), nil},
		{FilterLastYear, timePtr(time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)), nil},
		{FilterAllTime, nil, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			rng, err := ResolveDateRange(tt.filter, now)
			if err != nil {
				t.Fatalf("ResolveDateRange: %v", err)
			}
			checkBound(t, "start", rng.Start, tt.wantStart)
			checkBound(t, "end", rng.End, tt.wantEnd)
		})
	}
}

func TestResolveDateRangeErrors(t *testing.T) {
	now := time.Now()

	_, err := ResolveDateRange("", now)
	if !errors.Is(err, ErrMissingDateFilter) {
		t.Errorf("empty filter: expected ErrMissingDateFilter, got %v", err)
	}

	_, err = ResolveDateRange("Last fortnight", now)
	if err == nil {
		t.Error("unknown filter: expected error, got nil")
	}
}

func TestDateRangeBoundaries(t *testing.T) {
	now := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)
	rng, err := ResolveDateRange(FilterToday, now)
	if err != nil {
		t.Fatalf("ResolveDateRange: %v", err)
	}

	// Start inclusive, end exclusive.
	if !rng.Contains(*rng.Start) {
		t.Error("expected range to contain its start")
	}
	if rng.Contains(*rng.End) {
		t.Error("expected range to exclude its end")
	}
	if rng.Contains(rng.Start.Add(-time.Nanosecond)) {
		t.Error("expected range to exclude instant before start")
	}
	if !rng.Contains(rng.End.Add(-time.Nanosecond)) {
		t.Error("expected range to contain instant before end")
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func checkBound(t *testing.T, name string, got, want *time.Time) {
	t.Helper()
	switch {
	case want == nil && got != nil:
		t.Errorf("%s: expected nil, got %v", name, *got)
	case want != nil && got == nil:
		t.Errorf("%s: expected %v, got nil", name, *want)
	case want != nil && got != nil && !got.Equal(*want):
		t.Errorf("%s: expected %v, got %v", name, *want, *got)
	}
}
