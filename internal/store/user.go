package store

import (
	"database/sql"
	"fmt"

	"github.com/duetapp/duet/internal/model"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	var coupleID sql.NullInt64
	err := scanner.Scan(&u.ID, &u.Email, &u.Name, &coupleID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if coupleID.Valid {
		u.CoupleID = &coupleID.Int64
	}
	return &u, nil
}

const userCols = `id, email, name, couple_id, created_at, updated_at`

func (s *UserStore) Create(email, passwordHash, name string) (*model.User, error) {
	result, err := s.db.Exec(
		`INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)`,
		email, passwordHash, name,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// PasswordHash returns the stored bcrypt hash for the given email, or empty
// if the user does not exist.
func (s *UserStore) PasswordHash(email string) (string, error) {
	var hash string
	err := s.db.QueryRow(`SELECT password_hash FROM users WHERE email = ?`, email).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get password hash: %w", err)
	}
	return hash, nil
}

func (s *UserStore) SetCouple(userID int64, coupleID *int64) error {
	var cID sql.NullInt64
	if coupleID != nil {
		cID = sql.NullInt64{Int64: *coupleID, Valid: true}
	}
	_, err := s.db.Exec(
		`UPDATE users SET couple_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		cID, userID,
	)
	if err != nil {
		return fmt.Errorf("set couple: %w", err)
	}
	return nil
}
