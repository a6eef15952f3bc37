package store

import (
	"database/sql"
	"fmt"

	"github.com/duetapp/duet/internal/model"
)

type PushStore struct {
	db *sql.DB
}

func NewPushStore(db *sql.DB) *PushStore {
	return &PushStore{db: db}
}

func scanPushSubscription(scanner interface{ Scan(...any) error }) (*model.PushSubscription, error) {
	var p model.PushSubscription
	err := scanner.Scan(&p.ID, &p.UserID, &p.Endpoint, &p.P256dhKey, &p.AuthKey, &p.DeviceName, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const pushCols = `id, user_id, endpoint, p256dh_key, auth_key, device_name, created_at`

// Subscribe upserts a device subscription keyed on its endpoint.
func (s *PushStore) Subscribe(userID int64, endpoint, p256dh, auth, deviceName string) (*model.PushSubscription, error) {
	_, err := s.db.Exec(
		`INSERT INTO push_subscriptions (user_id, endpoint, p256dh_key, auth_key, device_name)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (endpoint) DO UPDATE SET
		   user_id = excluded.user_id,
		   p256dh_key = excluded.p256dh_key,
		   auth_key = excluded.auth_key,
		   device_name = excluded.device_name`,
		userID, endpoint, p256dh, auth, deviceName,
	)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+pushCols+` FROM push_subscriptions WHERE endpoint = ?`, endpoint)
	return scanPushSubscription(row)
}

func (s *PushStore) ListByUser(userID int64) ([]model.PushSubscription, error) {
	rows, err := s.db.Query(
		`SELECT `+pushCols+` FROM push_subscriptions WHERE user_id = ? ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []model.PushSubscription
	for rows.Next() {
		p, err := scanPushSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, *p)
	}
	return subs, rows.Err()
}

// ListByCouple returns all subscriptions for both members of a couple.
func (s *PushStore) ListByCouple(coupleID int64) ([]model.PushSubscription, error) {
	rows, err := s.db.Query(
		`SELECT p.id, p.user_id, p.endpoint, p.p256dh_key, p.auth_key, p.device_name, p.created_at
		 FROM push_subscriptions p
		 JOIN users u ON u.id = p.user_id
		 WHERE u.couple_id = ?
		 ORDER BY p.created_at ASC`,
		coupleID,
	)
	if err != nil {
		return nil, fmt.Errorf("list couple subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []model.PushSubscription
	for rows.Next() {
		p, err := scanPushSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, *p)
	}
	return subs, rows.Err()
}

// Delete removes a subscription owned by the given user.
func (s *PushStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM push_subscriptions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

// DeleteByEndpoint removes a subscription the push service reported expired.
func (s *PushStore) DeleteByEndpoint(endpoint string) error {
	_, err := s.db.Exec(`DELETE FROM push_subscriptions WHERE endpoint = ?`, endpoint)
	if err != nil {
		return fmt.Errorf("delete subscription by endpoint: %w", err)
	}
	return nil
}
