package store

import (
	"database/sql"
	"fmt"

	"github.com/duetapp/duet/internal/model"
)

type HistoryStore struct {
	db *sql.DB
}

func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

func scanHistory(scanner interface{ Scan(...any) error }) (*model.HistoryEntry, error) {
	var h model.HistoryEntry
	err := scanner.Scan(&h.ID, &h.CoupleID, &h.UserID, &h.Points, &h.Type, &h.Description, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

const historyCols = `id, couple_id, user_id, points, type, description, created_at`

func (s *HistoryStore) Add(coupleID, userID int64, points int, entryType, description string) (*model.HistoryEntry, error) {
	result, err := s.db.Exec(
		`INSERT INTO history (couple_id, user_id, points, type, description) VALUES (?, ?, ?, ?, ?)`,
		coupleID, userID, points, entryType, description,
	)
	if err != nil {
		return nil, fmt.Errorf("insert history: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+historyCols+` FROM history WHERE id = ?`, id)
	return scanHistory(row)
}

// ListByCouple returns the most recent ledger entries, newest first.
func (s *HistoryStore) ListByCouple(coupleID int64, limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT `+historyCols+` FROM history WHERE couple_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		coupleID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, *h)
	}
	return entries, rows.Err()
}
