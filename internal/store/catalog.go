package store

import (
	"database/sql"
	"fmt"

	"github.com/duetapp/duet/internal/model"
)

type CatalogStore struct {
	db *sql.DB
}

func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func scanCatalogTask(scanner interface{ Scan(...any) error }) (*model.CatalogTask, error) {
	var t model.CatalogTask
	err := scanner.Scan(&t.ID, &t.Name, &t.Description, &t.Category, &t.EstimatedMinutes, &t.BasePoints, &t.Icon, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const catalogCols = `id, name, description, category, estimated_minutes, base_points, icon, created_at`

// List returns the full seeded catalog grouped by category, highest value
// first within each group.
func (s *CatalogStore) List() ([]model.CatalogTask, error) {
	rows, err := s.db.Query(`SELECT ` + catalogCols + ` FROM catalog_tasks ORDER BY category ASC, base_points DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list catalog tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.CatalogTask
	for rows.Next() {
		t, err := scanCatalogTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catalog task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *CatalogStore) GetByID(id int64) (*model.CatalogTask, error) {
	row := s.db.QueryRow(`SELECT `+catalogCols+` FROM catalog_tasks WHERE id = ?`, id)
	t, err := scanCatalogTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get catalog task: %w", err)
	}
	return t, nil
}
