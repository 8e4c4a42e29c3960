// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import "time"

// MaxCategoryDepth is the deepest level a category may occupy. Level 1 is
// a root category; each child sits one level below its parent.
const MaxCategoryDepth = 5

// Category represents a node in the navigation hierarchy. Categories nest
// up to MaxCategoryDepth levels deep and hold zero or more navs.
type Category struct {
	ID          int64     `json:"id"`
	ParentID    *int64    `json:"parent_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SortOrder   int       `json:"sort_order"`
	Level       int       `json:"level"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`

	// Children is assembled in memory by the hierarchy package and never
	// persisted. It is always non-nil on assembled trees so every node
	// serializes with a children array, leaves included.
	Children []Category `json:"children"`
}

// IsRoot returns true if the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
