package store

import "testing"

func TestRewardCRUD(t *testing.T) {
	db, couple, _, _ := newTestDB(t)
	rs := NewRewardStore(db)

	reward, err := rs.Create(couple.ID, "Movie night", "You pick, I make popcorn", 50)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if reward.PointsCost != 50 {
		t.Errorf("cost = %d, want 50", reward.PointsCost)
	}

	updated, err := rs.Update(reward.ID, "Movie night", "Winner picks the film", 40)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PointsCost != 40 {
		t.Errorf("cost = %d, want 40", updated.PointsCost)
	}

	list, err := rs.ListByCouple(couple.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d rewards, want 1", len(list))
	}

	if err := rs.Delete(reward.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := rs.GetByID(reward.ID)
	if err != nil {
		t.Fatalf("get deleted: %v", err)
	}
	if got != nil {
		t.Error("expected nil for deleted reward")
	}
}

func TestRewardsScopedToCouple(t *testing.T) {
	db, couple, _, _ := newTestDB(t)
	rs := NewRewardStore(db)

	other, err := NewCoupleStore(db).Create()
	if err != nil {
		t.Fatalf("create other couple: %v", err)
	}
	if _, err := rs.Create(other.ID, "Breakfast in bed", "", 30); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := rs.ListByCouple(couple.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("got %d rewards for unrelated couple, want 0", len(list))
	}
}
