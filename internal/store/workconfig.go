package store

import (
	"database/sql"
	"fmt"

	"github.com/duetapp/duet/internal/model"
)

type WorkConfigStore struct {
	db *sql.DB
}

func NewWorkConfigStore(db *sql.DB) *WorkConfigStore {
	return &WorkConfigStore{db: db}
}

func scanWorkConfig(scanner interface{ Scan(...any) error }) (*model.MemberWorkConfig, error) {
	var c model.MemberWorkConfig
	err := scanner.Scan(&c.ID, &c.CoupleID, &c.UserID, &c.MonthlyIncome, &c.WeeklyWorkHours, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const workConfigCols = `id, couple_id, user_id, monthly_income, weekly_work_hours, updated_at`

// ListByCouple returns the configured members' rows; a member without a row
// is "unconfigured" and callers apply defaults.
func (s *WorkConfigStore) ListByCouple(coupleID int64) ([]model.MemberWorkConfig, error) {
	rows, err := s.db.Query(
		`SELECT `+workConfigCols+` FROM member_work_config WHERE couple_id = ?`,
		coupleID,
	)
	if err != nil {
		return nil, fmt.Errorf("list work configs: %w", err)
	}
	defer rows.Close()

	var configs []model.MemberWorkConfig
	for rows.Next() {
		c, err := scanWorkConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work config: %w", err)
		}
		configs = append(configs, *c)
	}
	return configs, rows.Err()
}

func (s *WorkConfigStore) Get(coupleID, userID int64) (*model.MemberWorkConfig, error) {
	row := s.db.QueryRow(
		`SELECT `+workConfigCols+` FROM member_work_config WHERE couple_id = ? AND user_id = ?`,
		coupleID, userID,
	)
	c, err := scanWorkConfig(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get work config: %w", err)
	}
	return c, nil
}

// Upsert writes the member's config, keyed on (couple, user). Hours are
// clamped to the 0–80 range before hitting the CHECK constraint.
func (s *WorkConfigStore) Upsert(coupleID, userID int64, monthlyIncome, weeklyWorkHours float64) (*model.MemberWorkConfig, error) {
	if weeklyWorkHours < 0 {
		weeklyWorkHours = 0
	}
	if weeklyWorkHours > model.MaxWeeklyWorkHours {
		weeklyWorkHours = model.MaxWeeklyWorkHours
	}

	_, err := s.db.Exec(
		`INSERT INTO member_work_config (couple_id, user_id, monthly_income, weekly_work_hours)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (couple_id, user_id) DO UPDATE SET
		   monthly_income = excluded.monthly_income,
		   weekly_work_hours = excluded.weekly_work_hours,
		   updated_at = CURRENT_TIMESTAMP`,
		coupleID, userID, monthlyIncome, weeklyWorkHours,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert work config: %w", err)
	}
	return s.Get(coupleID, userID)
}
