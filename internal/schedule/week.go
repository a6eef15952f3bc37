// Package schedule partitions a couple's task ownerships across a
// Monday-first week grid. All functions are pure; callers load the ownership
// set and pick the reference date.
package schedule

import (
	"time"

	"github.com/duetapp/duet/internal/model"
)

// DateKeyFormat is the layout used for calendar date keys.
const DateKeyFormat = "2006-01-02"

// WeekStart normalizes any time to the Monday of its week at local midnight.
// Sunday is treated as day 7 of the previous week.
func WeekStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	day := int(d.Weekday())
	if day == 0 {
		day = 7
	}
	return d.AddDate(0, 0, -(day - 1))
}

// WeekDates returns the 7 consecutive dates Monday through Sunday starting at
// weekStart.
func WeekDates(weekStart time.Time) []time.Time {
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = weekStart.AddDate(0, 0, i)
	}
	return dates
}

// DayIndex maps a date to its Monday-first day-of-week index (0=Monday..6=Sunday).
func DayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DateKey formats a date as its YYYY-MM-DD key.
func DateKey(t time.Time) string {
	return t.Format(DateKeyFormat)
}

// TasksForDay returns the active ownerships due on the given Monday-first day
// index: daily tasks every day, weekly and biweekly tasks on their preferred
// day. Monthly and flexible tasks never appear in the daily grid.
//
// A biweekly task shows on its preferred day every week; the grid does not
// track which of the two weeks is the "on" week.
func TasksForDay(dayIndex int, ownerships []model.TaskOwnership) []model.TaskOwnership {
	var due []model.TaskOwnership
	for _, o := range ownerships {
		if !o.Active {
			continue
		}
		switch o.Frequency {
		case model.FrequencyDaily:
			due = append(due, o)
		case model.FrequencyWeekly, model.FrequencyBiweekly:
			if o.PreferredDay != nil && *o.PreferredDay == dayIndex {
				due = append(due, o)
			}
		}
	}
	return due
}

// FlexibleTasks returns the active ownerships shown outside the daily grid:
// those with a flexible or monthly frequency.
func FlexibleTasks(ownerships []model.TaskOwnership) []model.TaskOwnership {
	var flexible []model.TaskOwnership
	for _, o := range ownerships {
		if !o.Active {
			continue
		}
		if o.Frequency == model.FrequencyFlexible || o.Frequency == model.FrequencyMonthly {
			flexible = append(flexible, o)
		}
	}
	return flexible
}
