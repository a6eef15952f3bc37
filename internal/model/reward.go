package model

import "time"

// Reward is an item in a couple's reward catalog, redeemed against the
// shared points pool.
type Reward struct {
	ID          int64     `json:"id"`
	CoupleID    int64     `json:"couple_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PointsCost  int       `json:"points_cost"`
	CreatedAt   time.Time `json:"created_at"`
}
