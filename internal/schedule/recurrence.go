// Package schedule expands the recurring MilkRun services into dated flights.
package schedule

import "time"

// WeekdayDates returns every occurrence of day from the first one on or
// after start up to Dec 31 of start's year, one week apart. When start is
// already on day it is returned unchanged as the first element; a later
// first match lands at midnight in start's location.
func WeekdayDates(start time.Time, day time.Weekday) []time.Time {
	current := start
	if current.Weekday() != day {
		current = nextWeekday(current, day)
	}

	var dates []time.Time
	for current.Year() == start.Year() {
		dates = append(dates, current)
		// AddDate keeps the wall clock across DST transitions
		current = current.AddDate(0, 0, 7)
	}
	return dates
}

// nextWeekday returns midnight of the first day strictly after t that falls on day.
func nextWeekday(t time.Time, day time.Weekday) time.Time {
	offset := (int(day) - int(t.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return time.Date(t.Year(), t.Month(), t.Day()+offset, 0, 0, 0, 0, t.Location())
}
