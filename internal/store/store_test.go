package store

import (
	"database/sql"
	"testing"

	"github.com/duetapp/duet/internal/database"
	"github.com/duetapp/duet/internal/model"
)

// newTestDB opens an in-memory database with migrations applied and seeds a
// linked couple with its two members.
func newTestDB(t *testing.T) (*sql.DB, model.Couple, model.User, model.User) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	couples := NewCoupleStore(db)
	users := NewUserStore(db)

	couple, err := couples.Create()
	if err != nil {
		t.Fatalf("create couple: %v", err)
	}

	alex, err := users.Create("alex@example.com", "hash1", "Alex")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	sam, err := users.Create("sam@example.com", "hash2", "Sam")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	for _, u := range []*model.User{alex, sam} {
		if err := users.SetCouple(u.ID, &couple.ID); err != nil {
			t.Fatalf("link user: %v", err)
		}
	}

	return db, *couple, *alex, *sam
}
