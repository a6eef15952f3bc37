package schedule

import (
	"testing"
	"time"

	"github.com/duetapp/duet/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", date(2025, time.March, 10), date(2025, time.March, 10)},
		{"midweek maps back to monday", date(2025, time.March, 13), date(2025, time.March, 10)},
		{"saturday maps back to monday", date(2025, time.March, 15), date(2025, time.March, 10)},
		{"sunday belongs to the previous week", date(2025, time.March, 16), date(2025, time.March, 10)},
		{"month boundary", date(2025, time.May, 1), date(2025, time.April, 28)},
		{"year boundary", date(2026, time.January, 3), date(2025, time.December, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWeekStartZeroesTime(t *testing.T) {
	in := time.Date(2025, time.March, 12, 17, 45, 30, 999, time.Local)
	got := WeekStart(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("WeekStart(%v) = %v, want midnight", in, got)
	}
}

func TestWeekDates(t *testing.T) {
	start := date(2025, time.March, 10)
	dates := WeekDates(start)

	if len(dates) != 7 {
		t.Fatalf("len(dates) = %d, want 7", len(dates))
	}
	if !dates[0].Equal(start) {
		t.Errorf("dates[0] = %v, want %v", dates[0], start)
	}
	for i := 1; i < len(dates); i++ {
		if want := dates[i-1].AddDate(0, 0, 1); !dates[i].Equal(want) {
			t.Errorf("dates[%d] = %v, want %v", i, dates[i], want)
		}
	}
}

func TestDayIndex(t *testing.T) {
	// 2025-03-10 is a Monday.
	for i := 0; i < 7; i++ {
		if got := DayIndex(date(2025, time.March, 10+i)); got != i {
			t.Errorf("DayIndex(+%d days) = %d, want %d", i, got, i)
		}
	}
}

func day(d int) *int { return &d }

func TestTasksForDay(t *testing.T) {
	ownerships := []model.TaskOwnership{
		{ID: 1, TaskID: 10, Frequency: model.FrequencyDaily, Active: true},
		{ID: 2, TaskID: 11, Frequency: model.FrequencyWeekly, PreferredDay: day(0), Active: true},
		{ID: 3, TaskID: 12, Frequency: model.FrequencyBiweekly, PreferredDay: day(3), Active: true},
		{ID: 4, TaskID: 13, Frequency: model.FrequencyWeekly, PreferredDay: day(0), Active: false},
		{ID: 5, TaskID: 14, Frequency: model.FrequencyMonthly, Active: true},
		{ID: 6, TaskID: 15, Frequency: model.FrequencyFlexible, Active: true},
		{ID: 7, TaskID: 16, Frequency: model.FrequencyWeekly, Active: true}, // no preferred day set
	}

	tests := []struct {
		dayIndex int
		wantIDs  []int64
	}{
		{0, []int64{1, 2}},
		{1, []int64{1}},
		{3, []int64{1, 3}},
		{6, []int64{1}},
	}

	for _, tt := range tests {
		got := TasksForDay(tt.dayIndex, ownerships)
		if len(got) != len(tt.wantIDs) {
			t.Errorf("day %d: got %d tasks, want %d", tt.dayIndex, len(got), len(tt.wantIDs))
			continue
		}
		for i, o := range got {
			if o.ID != tt.wantIDs[i] {
				t.Errorf("day %d: task[%d].ID = %d, want %d", tt.dayIndex, i, o.ID, tt.wantIDs[i])
			}
		}
	}
}

func TestTasksForDayNeverReturnsInactiveOrFlexible(t *testing.T) {
	ownerships := []model.TaskOwnership{
		{ID: 1, Frequency: model.FrequencyDaily, Active: false},
		{ID: 2, Frequency: model.FrequencyMonthly, Active: true},
		{ID: 3, Frequency: model.FrequencyFlexible, Active: true},
	}
	for i := 0; i < 7; i++ {
		if got := TasksForDay(i, ownerships); len(got) != 0 {
			t.Errorf("day %d: got %d tasks, want 0", i, len(got))
		}
	}
}

func TestFlexibleTasks(t *testing.T) {
	ownerships := []model.TaskOwnership{
		{ID: 1, Frequency: model.FrequencyDaily, Active: true},
		{ID: 2, Frequency: model.FrequencyMonthly, Active: true},
		{ID: 3, Frequency: model.FrequencyFlexible, Active: true},
		{ID: 4, Frequency: model.FrequencyFlexible, Active: false},
	}

	got := FlexibleTasks(ownerships)
	if len(got) != 2 {
		t.Fatalf("got %d flexible tasks, want 2", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("flexible IDs = %d,%d, want 2,3", got[0].ID, got[1].ID)
	}
}
