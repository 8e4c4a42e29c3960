package models

import "time"

// Nav is a single link entry, always attached to exactly one category.
type Nav struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"category_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	SortOrder   int       `json:"sort_order"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`

	// CategoryName is attached by handlers for list/detail responses and
	// never stored on the navs table itself.
	CategoryName string `json:"category_name,omitempty"`
}
