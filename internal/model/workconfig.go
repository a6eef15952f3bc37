package model

import "time"

// MaxWeeklyWorkHours caps self-reported work hours.
const MaxWeeklyWorkHours = 80

// MemberWorkConfig holds one member's self-reported income and work hours.
// One row per (couple, user). Absence means "unconfigured": fairness math
// falls back to defaults, but the API reports the distinction.
type MemberWorkConfig struct {
	ID              int64     `json:"id"`
	CoupleID        int64     `json:"couple_id"`
	UserID          int64     `json:"user_id"`
	MonthlyIncome   float64   `json:"monthly_income"`
	WeeklyWorkHours float64   `json:"weekly_work_hours"`
	UpdatedAt       time.Time `json:"updated_at"`
}
