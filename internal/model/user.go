package model

import "time"

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CoupleID  *int64    `json:"couple_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Couple is the shared account two members belong to. Points is the shared
// pool credited by completed tasks and debited by reward redemptions.
type Couple struct {
	ID              int64     `json:"id"`
	Points          int       `json:"points"`
	CalendarEnabled bool      `json:"calendar_enabled"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
