package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/duetapp/duet/internal/model"
)

type EntryStore struct {
	db *sql.DB
}

func NewEntryStore(db *sql.DB) *EntryStore {
	return &EntryStore{db: db}
}

func scanEntry(scanner interface{ Scan(...any) error }) (*model.CalendarEntry, error) {
	var e model.CalendarEntry
	var completedAt sql.NullTime
	err := scanner.Scan(
		&e.ID, &e.CoupleID, &e.TaskID, &e.UserID, &e.Title,
		&e.ScheduledDate, &e.Completed, &e.PointsEarned, &completedAt, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		e.CompletedAt = &completedAt.Time
	}
	return &e, nil
}

const entryCols = `id, couple_id, task_id, user_id, title, scheduled_date, completed, points_earned, completed_at, created_at`

// ListByDateRange returns the couple's entries with scheduled dates in
// [start, end], both YYYY-MM-DD keys inclusive.
func (s *EntryStore) ListByDateRange(coupleID int64, start, end string) ([]model.CalendarEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+entryCols+` FROM calendar_entries
		 WHERE couple_id = ? AND scheduled_date >= ? AND scheduled_date <= ?
		 ORDER BY scheduled_date ASC`,
		coupleID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []model.CalendarEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *EntryStore) GetByID(id int64) (*model.CalendarEntry, error) {
	row := s.db.QueryRow(`SELECT `+entryCols+` FROM calendar_entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// Create records a completed task on the given date.
func (s *EntryStore) Create(coupleID, taskID, userID int64, title, scheduledDate string, points int) (*model.CalendarEntry, error) {
	result, err := s.db.Exec(
		`INSERT INTO calendar_entries (couple_id, task_id, user_id, title, scheduled_date, completed, points_earned, completed_at)
		 VALUES (?, ?, ?, ?, ?, 1, ?, ?)`,
		coupleID, taskID, userID, title, scheduledDate, points, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *EntryStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM calendar_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}
