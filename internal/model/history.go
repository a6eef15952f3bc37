package model

import "time"

const (
	HistoryGain  = "gain"
	HistorySpend = "spend"
)

// HistoryEntry is one line of the couple's points ledger.
type HistoryEntry struct {
	ID          int64     `json:"id"`
	CoupleID    int64     `json:"couple_id"`
	UserID      int64     `json:"user_id"`
	Points      int       `json:"points"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
