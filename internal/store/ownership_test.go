package store

import (
	"testing"

	"github.com/duetapp/duet/internal/model"
)

func day(d int) *int { return &d }

func TestAssignCreatesActiveOwnership(t *testing.T) {
	db, couple, alex, _ := newTestDB(t)
	os := NewOwnershipStore(db)
	tasks, _ := NewCatalogStore(db).List()

	o, err := os.Assign(couple.ID, tasks[0].ID, alex.ID, model.FrequencyWeekly, day(2))
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if !o.Active {
		t.Error("new ownership should be active")
	}
	if o.OwnerID != alex.ID {
		t.Errorf("owner = %d, want %d", o.OwnerID, alex.ID)
	}
	if o.Frequency != model.FrequencyWeekly {
		t.Errorf("frequency = %s, want weekly", o.Frequency)
	}
	if o.PreferredDay == nil || *o.PreferredDay != 2 {
		t.Errorf("preferred_day = %v, want 2", o.PreferredDay)
	}
}

func TestAssignUpsertsOnConflict(t *testing.T) {
	db, couple, alex, sam := newTestDB(t)
	os := NewOwnershipStore(db)
	tasks, _ := NewCatalogStore(db).List()
	taskID := tasks[0].ID

	first, err := os.Assign(couple.ID, taskID, alex.ID, model.FrequencyWeekly, day(0))
	if err != nil {
		t.Fatalf("first assign: %v", err)
	}

	// Reassigning the same task to the partner supersedes the row.
	second, err := os.Assign(couple.ID, taskID, sam.ID, model.FrequencyDaily, nil)
	if err != nil {
		t.Fatalf("second assign: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert created a new row: id %d != %d", second.ID, first.ID)
	}
	if second.OwnerID != sam.ID {
		t.Errorf("owner = %d, want %d", second.OwnerID, sam.ID)
	}
	if second.PreferredDay != nil {
		t.Errorf("preferred_day = %v, want nil", second.PreferredDay)
	}

	active, err := os.ListActive(couple.ID)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("got %d active ownerships, want 1", len(active))
	}
}

func TestUnassignHardDeletes(t *testing.T) {
	db, couple, alex, _ := newTestDB(t)
	os := NewOwnershipStore(db)
	tasks, _ := NewCatalogStore(db).List()
	taskID := tasks[0].ID

	if _, err := os.Assign(couple.ID, taskID, alex.ID, model.FrequencyFlexible, nil); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := os.Unassign(couple.ID, taskID); err != nil {
		t.Fatalf("unassign: %v", err)
	}

	got, err := os.GetByTask(couple.ID, taskID)
	if err != nil {
		t.Fatalf("get by task: %v", err)
	}
	if got != nil {
		t.Error("expected nil after unassign, row should be deleted not deactivated")
	}
}

func TestUpdateFrequencyKeyedByID(t *testing.T) {
	db, couple, alex, _ := newTestDB(t)
	os := NewOwnershipStore(db)
	tasks, _ := NewCatalogStore(db).List()

	o, err := os.Assign(couple.ID, tasks[0].ID, alex.ID, model.FrequencyWeekly, day(1))
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	updated, err := os.UpdateFrequency(o.ID, model.FrequencyBiweekly, day(5))
	if err != nil {
		t.Fatalf("update frequency: %v", err)
	}
	if updated.Frequency != model.FrequencyBiweekly {
		t.Errorf("frequency = %s, want biweekly", updated.Frequency)
	}
	if updated.PreferredDay == nil || *updated.PreferredDay != 5 {
		t.Errorf("preferred_day = %v, want 5", updated.PreferredDay)
	}
	if updated.OwnerID != alex.ID {
		t.Errorf("owner changed: %d, want %d", updated.OwnerID, alex.ID)
	}
}

func TestListActiveExcludesOtherCouples(t *testing.T) {
	db, couple, alex, _ := newTestDB(t)
	os := NewOwnershipStore(db)
	tasks, _ := NewCatalogStore(db).List()

	other, err := NewCoupleStore(db).Create()
	if err != nil {
		t.Fatalf("create other couple: %v", err)
	}
	if _, err := os.Assign(other.ID, tasks[0].ID, alex.ID, model.FrequencyDaily, nil); err != nil {
		t.Fatalf("assign other: %v", err)
	}
	if _, err := os.Assign(couple.ID, tasks[1].ID, alex.ID, model.FrequencyWeekly, day(0)); err != nil {
		t.Fatalf("assign: %v", err)
	}

	active, err := os.ListActive(couple.ID)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("got %d ownerships, want 1", len(active))
	}
	if active[0].TaskID != tasks[1].ID {
		t.Errorf("task = %d, want %d", active[0].TaskID, tasks[1].ID)
	}
}
