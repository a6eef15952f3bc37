package store

import (
	"database/sql"
	"fmt"

	"github.com/duetapp/duet/internal/model"
)

type OwnershipStore struct {
	db *sql.DB
}

func NewOwnershipStore(db *sql.DB) *OwnershipStore {
	return &OwnershipStore{db: db}
}

func scanOwnership(scanner interface{ Scan(...any) error }) (*model.TaskOwnership, error) {
	var o model.TaskOwnership
	var preferredDay sql.NullInt64
	err := scanner.Scan(
		&o.ID, &o.CoupleID, &o.TaskID, &o.OwnerID, &o.Frequency,
		&preferredDay, &o.Active, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if preferredDay.Valid {
		d := int(preferredDay.Int64)
		o.PreferredDay = &d
	}
	return &o, nil
}

const ownershipCols = `id, couple_id, task_id, owner_id, frequency, preferred_day, active, created_at, updated_at`

// ListActive returns the couple's active ownerships.
func (s *OwnershipStore) ListActive(coupleID int64) ([]model.TaskOwnership, error) {
	rows, err := s.db.Query(
		`SELECT `+ownershipCols+` FROM task_ownership WHERE couple_id = ? AND active = 1 ORDER BY task_id ASC`,
		coupleID,
	)
	if err != nil {
		return nil, fmt.Errorf("list ownerships: %w", err)
	}
	defer rows.Close()

	var ownerships []model.TaskOwnership
	for rows.Next() {
		o, err := scanOwnership(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ownership: %w", err)
		}
		ownerships = append(ownerships, *o)
	}
	return ownerships, rows.Err()
}

func (s *OwnershipStore) GetByID(id int64) (*model.TaskOwnership, error) {
	row := s.db.QueryRow(`SELECT `+ownershipCols+` FROM task_ownership WHERE id = ?`, id)
	o, err := scanOwnership(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ownership: %w", err)
	}
	return o, nil
}

// GetByTask returns the ownership row for the (couple, task) pair, active or
// not, or nil if none exists.
func (s *OwnershipStore) GetByTask(coupleID, taskID int64) (*model.TaskOwnership, error) {
	row := s.db.QueryRow(
		`SELECT `+ownershipCols+` FROM task_ownership WHERE couple_id = ? AND task_id = ?`,
		coupleID, taskID,
	)
	o, err := scanOwnership(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ownership by task: %w", err)
	}
	return o, nil
}

// Assign upserts the single ownership row for (couple, task): reassigning a
// task to a new owner or cadence supersedes the prior record rather than
// duplicating it.
func (s *OwnershipStore) Assign(coupleID, taskID, ownerID int64, frequency model.Frequency, preferredDay *int) (*model.TaskOwnership, error) {
	var day sql.NullInt64
	if preferredDay != nil {
		day = sql.NullInt64{Int64: int64(*preferredDay), Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO task_ownership (couple_id, task_id, owner_id, frequency, preferred_day, active)
		 VALUES (?, ?, ?, ?, ?, 1)
		 ON CONFLICT (couple_id, task_id) DO UPDATE SET
		   owner_id = excluded.owner_id,
		   frequency = excluded.frequency,
		   preferred_day = excluded.preferred_day,
		   active = 1,
		   updated_at = CURRENT_TIMESTAMP`,
		coupleID, taskID, ownerID, frequency, day,
	)
	if err != nil {
		return nil, fmt.Errorf("assign task: %w", err)
	}
	return s.GetByTask(coupleID, taskID)
}

// Unassign removes the ownership row for (couple, task) entirely. The row is
// hard-deleted rather than deactivated; the active flag only ever goes false
// through direct data fixes, never through this path.
func (s *OwnershipStore) Unassign(coupleID, taskID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM task_ownership WHERE couple_id = ? AND task_id = ?`,
		coupleID, taskID,
	)
	if err != nil {
		return fmt.Errorf("unassign task: %w", err)
	}
	return nil
}

// UpdateFrequency changes the cadence of an existing ownership, keyed by the
// ownership's own id.
func (s *OwnershipStore) UpdateFrequency(id int64, frequency model.Frequency, preferredDay *int) (*model.TaskOwnership, error) {
	var day sql.NullInt64
	if preferredDay != nil {
		day = sql.NullInt64{Int64: int64(*preferredDay), Valid: true}
	}
	_, err := s.db.Exec(
		`UPDATE task_ownership SET frequency = ?, preferred_day = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		frequency, day, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update frequency: %w", err)
	}
	return s.GetByID(id)
}
