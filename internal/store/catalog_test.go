package store

import (
	"testing"

	"github.com/duetapp/duet/internal/model"
)

func TestCatalogSeedData(t *testing.T) {
	db, _, _, _ := newTestDB(t)
	cs := NewCatalogStore(db)

	tasks, err := cs.List()
	if err != nil {
		t.Fatalf("list catalog: %v", err)
	}
	if len(tasks) == 0 {
		t.Fatal("catalog should be seeded")
	}

	seen := make(map[model.Category]bool)
	for _, task := range tasks {
		if !task.Category.Valid() {
			t.Errorf("task %q has invalid category %q", task.Name, task.Category)
		}
		if task.BasePoints <= 0 {
			t.Errorf("task %q has non-positive base points %d", task.Name, task.BasePoints)
		}
		seen[task.Category] = true
	}
	for _, c := range []model.Category{
		model.CategoryHousehold, model.CategoryChildren, model.CategoryManagement,
		model.CategorySocial, model.CategoryWellbeing,
	} {
		if !seen[c] {
			t.Errorf("no seeded task in category %q", c)
		}
	}
}

func TestCatalogGetByID(t *testing.T) {
	db, _, _, _ := newTestDB(t)
	cs := NewCatalogStore(db)

	tasks, _ := cs.List()
	got, err := cs.GetByID(tasks[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Name != tasks[0].Name {
		t.Errorf("got %+v, want %q", got, tasks[0].Name)
	}

	missing, err := cs.GetByID(99999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for nonexistent task")
	}
}
