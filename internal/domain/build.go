package domain

import "time"

// ComponentCategory is a PC builder slot.
type ComponentCategory struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Icon     string `json:"icon"`
	Required bool   `json:"required"`
	// Peripheral slots are matched on product subcategory instead of category.
	Peripheral bool `json:"peripheral"`
}

// BuildSnapshot is the persisted form of a PC builder selection.
type BuildSnapshot struct {
	Components map[string]Product `json:"components"`
	Total      int64              `json:"total"`
	SavedAt    time.Time          `json:"saved_at"`
}
