package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/duetapp/duet/internal/model"
)

// ErrInsufficientPoints is returned when a spend would take the couple's
// shared pool below zero.
var ErrInsufficientPoints = errors.New("insufficient points")

type CoupleStore struct {
	db *sql.DB
}

func NewCoupleStore(db *sql.DB) *CoupleStore {
	return &CoupleStore{db: db}
}

func scanCouple(scanner interface{ Scan(...any) error }) (*model.Couple, error) {
	var c model.Couple
	err := scanner.Scan(&c.ID, &c.Points, &c.CalendarEnabled, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const coupleCols = `id, points, calendar_enabled, created_at, updated_at`

func (s *CoupleStore) Create() (*model.Couple, error) {
	result, err := s.db.Exec(`INSERT INTO couples (points) VALUES (0)`)
	if err != nil {
		return nil, fmt.Errorf("insert couple: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *CoupleStore) GetByID(id int64) (*model.Couple, error) {
	row := s.db.QueryRow(`SELECT `+coupleCols+` FROM couples WHERE id = ?`, id)
	c, err := scanCouple(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get couple: %w", err)
	}
	return c, nil
}

// Members returns the users linked to the couple, oldest membership first.
func (s *CoupleStore) Members(coupleID int64) ([]model.User, error) {
	rows, err := s.db.Query(
		`SELECT `+userCols+` FROM users WHERE couple_id = ? ORDER BY id ASC`,
		coupleID,
	)
	if err != nil {
		return nil, fmt.Errorf("list couple members: %w", err)
	}
	defer rows.Close()

	var members []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *u)
	}
	return members, rows.Err()
}

// AddPoints credits (or, with a negative amount, debits) the shared pool.
func (s *CoupleStore) AddPoints(coupleID int64, amount int) error {
	_, err := s.db.Exec(
		`UPDATE couples SET points = points + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		amount, coupleID,
	)
	if err != nil {
		return fmt.Errorf("add points: %w", err)
	}
	return nil
}

// SpendPoints debits the pool only if the balance covers the cost.
func (s *CoupleStore) SpendPoints(coupleID int64, cost int) error {
	result, err := s.db.Exec(
		`UPDATE couples SET points = points - ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND points >= ?`,
		cost, coupleID, cost,
	)
	if err != nil {
		return fmt.Errorf("spend points: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrInsufficientPoints
	}
	return nil
}

func (s *CoupleStore) SetCalendarEnabled(coupleID int64, enabled bool) error {
	_, err := s.db.Exec(
		`UPDATE couples SET calendar_enabled = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		enabled, coupleID,
	)
	if err != nil {
		return fmt.Errorf("set calendar enabled: %w", err)
	}
	return nil
}
