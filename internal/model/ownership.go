package model

import "time"

// Frequency is the declared recurrence cadence of a task ownership.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyFlexible Frequency = "flexible"
)

// Valid reports whether f is one of the five recognized frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyFlexible:
		return true
	}
	return false
}

// HasPreferredDay reports whether a preferred day of week is meaningful for f.
func (f Frequency) HasPreferredDay() bool {
	return f == FrequencyWeekly || f == FrequencyBiweekly
}

// TaskOwnership assigns a catalog task to exactly one member of a couple.
// At most one row exists per (couple, task) pair; reassignment upserts.
// PreferredDay is 0=Monday..6=Sunday and only set for weekly/biweekly tasks.
type TaskOwnership struct {
	ID           int64     `json:"id"`
	CoupleID     int64     `json:"couple_id"`
	TaskID       int64     `json:"task_id"`
	OwnerID      int64     `json:"owner_id"`
	Frequency    Frequency `json:"frequency"`
	PreferredDay *int      `json:"preferred_day"`
	Active       bool      `json:"active"`
	UpdatedAt    time.Time `json:"updated_at"`
	CreatedAt    time.Time `json:"created_at"`
}
