package model

import "time"

// Category classifies catalog tasks.
type Category string

const (
	CategoryHousehold  Category = "household"
	CategoryChildren   Category = "children"
	CategoryManagement Category = "management"
	CategorySocial     Category = "social"
	CategoryWellbeing  Category = "wellbeing"
)

// Valid reports whether c is one of the recognized categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryHousehold, CategoryChildren, CategoryManagement, CategorySocial, CategoryWellbeing:
		return true
	}
	return false
}

// CatalogTask is seeded reference data and read-only thereafter.
type CatalogTask struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Category         Category  `json:"category"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	BasePoints       int       `json:"base_points"`
	Icon             string    `json:"icon"`
	CreatedAt        time.Time `json:"created_at"`
}
