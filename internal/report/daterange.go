package report

import (
	"fmt"
	"time"
)

// DateFilter is a named submission-time window.
type DateFilter string

const (
	FilterToday      DateFilter = "Today"
	FilterLast7Days  DateFilter = "Last 7 days"
	FilterLast30Days DateFilter = "Last 30 days"
	FilterLast6Mo    DateFilter = "Last 6 months"
	FilterLastYear   DateFilter = "Last year"
	FilterAllTime    DateFilter = "All Time"
)

// DateFilters lists the selectable filters in display order.
var DateFilters = []DateFilter{
	FilterToday, FilterLast7Days, FilterLast30Days,
	FilterLast6Mo, FilterLastYear, FilterAllTime,
}

// DateRange bounds submission times. Start is inclusive, End exclusive;
// a nil bound means unbounded on that side.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ResolveDateRange maps a filter to a concrete range relative to now.
// Only Today bounds the end; the "Last N days" filters count today as day
// one, so Last 7 days starts six midnights back. The month and year filters
// subtract on calendar fields, not fixed durations.
func ResolveDateRange(filter DateFilter, now time.Time) (DateRange, error) {
	if filter == "" {
		return DateRange{}, ErrMissingDateFilter
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch filter {
	case FilterToday:
		end := midnight.AddDate(0, 0, 1)
		return DateRange{Start: &midnight, End: &end}, nil
	case FilterLast7Days:
		start := midnight.AddDate(0, 0, -6)
		return DateRange{Start: &start}, nil
	case FilterLast30Days:
		start := midnight.AddDate(0, 0, -29)
		return DateRange{Start: &start}, nil
	case FilterLast6Mo:
		start := time.Date(now.Year(), now.Month()-6, now.Day(), 0, 0, 0, 0, now.Location())
		return DateRange{Start: &start}, nil
	case FilterLastYear:
		start := time.Date(now.Year()-1, now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return DateRange{Start: &start}, nil
	case FilterAllTime:
		return DateRange{}, nil
	}
	return DateRange{}, fmt.Errorf("unknown date filter %q", filter)
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && !t.Before(*r.End) {
		return false
	}
	return true
}
