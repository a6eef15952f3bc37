package model

import "time"

// CalendarEntry records that a task was completed on a calendar date and how
// many points it earned. Presence of an entry for a (task, date) pair marks
// that cell completed in the week view.
type CalendarEntry struct {
	ID            int64      `json:"id"`
	CoupleID      int64      `json:"couple_id"`
	TaskID        int64      `json:"task_id"`
	UserID        int64      `json:"user_id"`
	Title         string     `json:"title"`
	ScheduledDate string     `json:"scheduled_date"` // YYYY-MM-DD
	Completed     bool       `json:"completed"`
	PointsEarned  int        `json:"points_earned"`
	CompletedAt   *time.Time `json:"completed_at"`
	CreatedAt     time.Time  `json:"created_at"`
}
