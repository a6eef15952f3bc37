package store

import "testing"

func TestSessionLifecycle(t *testing.T) {
	db, _, alex, _ := newTestDB(t)
	ss := NewSessionStore(db)

	sess, err := ss.Create(alex.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(sess.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(sess.Token))
	}

	got, err := ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if got == nil || got.UserID != alex.ID {
		t.Fatalf("got %+v, want session for user %d", got, alex.ID)
	}

	if err := ss.Delete(sess.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get deleted: %v", err)
	}
	if got != nil {
		t.Error("expected nil for deleted session")
	}
}

func TestSessionUnknownToken(t *testing.T) {
	db, _, _, _ := newTestDB(t)
	ss := NewSessionStore(db)

	got, err := ss.GetByToken("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("expected nil for unknown token")
	}
}

func TestDeleteExpired(t *testing.T) {
	db, _, alex, _ := newTestDB(t)
	ss := NewSessionStore(db)

	sess, err := ss.Create(alex.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.Exec(`UPDATE sessions SET expires_at = datetime('now', '-1 day') WHERE id = ?`, sess.ID); err != nil {
		t.Fatalf("expire session: %v", err)
	}

	count, err := ss.DeleteExpired()
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if count != 1 {
		t.Errorf("deleted %d sessions, want 1", count)
	}
}
