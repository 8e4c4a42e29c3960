// Package homeview assembles the nested landing-page payload: root
// categories, their direct subcategories, and each subcategory's page of
// navs, with visibility filtering for unauthenticated callers.
package homeview

import (
	"fmt"

	"navhub/internal/models"
	"navhub/internal/store"
)

const (
	// DefaultPageSize is used when the caller supplies no size.
	DefaultPageSize = 9

	// MaxPageSize caps the caller-supplied size.
	MaxPageSize = 50
)

// CategorySource is the slice of the category store the composer reads.
type CategorySource interface {
	Roots() ([]models.Category, error)
	ChildrenOf(parentID int64) ([]models.Category, error)
}

// NavSource is the slice of the nav store the composer reads.
type NavSource interface {
	Search(f store.NavFilters) ([]models.Nav, int, error)
}

// Subcategory is a second-level category carrying its page of navs instead
// of further children. The home view truncates the tree at this depth.
type Subcategory struct {
	ID          int64             `json:"id"`
	ParentID    *int64            `json:"parent_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	SortOrder   int               `json:"sort_order"`
	Level       int               `json:"level"`
	IsPublic    bool              `json:"is_public"`
	CreatedAt   string            `json:"created_at"`
	Navs        []models.Nav      `json:"navs"`
	Pagination  models.Pagination `json:"pagination"`
}

// Root is a top-level category with its subcategories.
type Root struct {
	ID          int64         `json:"id"`
	ParentID    *int64        `json:"parent_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	SortOrder   int           `json:"sort_order"`
	Level       int           `json:"level"`
	IsPublic    bool          `json:"is_public"`
	CreatedAt   string        `json:"created_at"`
	Children    []Subcategory `json:"children"`
}

// Clamp normalizes pagination parameters to their served range.
func Clamp(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// Composer builds the home view from the category and nav stores.
type Composer struct {
	categories CategorySource
	navs       NavSource
}

// New returns a Composer over the given sources.
func New(categories CategorySource, navs NavSource) *Composer {
	return &Composer{categories: categories, navs: navs}
}

// Compose assembles the home payload. Unauthenticated callers only see
// public subcategories' navs and only public navs within them; a private
// subcategory still appears but with an empty nav list and zero-total
// pagination. Any store failure aborts the whole composition — no partial
// payload is ever returned.
func (c *Composer) Compose(authenticated bool, page, size int) ([]Root, error) {
	page, size = Clamp(page, size)

	roots, err := c.categories.Roots()
	if err != nil {
		return nil, fmt.Errorf("home view roots: %w", err)
	}

	out := make([]Root, 0, len(roots))
	for _, root := range roots {
		children, err := c.categories.ChildrenOf(root.ID)
		if err != nil {
			return nil, fmt.Errorf("home view children of %d: %w", root.ID, err)
		}

		subs := make([]Subcategory, 0, len(children))
		for _, child := range children {
			sub, err := c.composeSubcategory(child, authenticated, page, size)
			if err != nil {
				return nil, err
			}
			subs = append(subs, sub)
		}

		out = append(out, Root{
			ID:          root.ID,
			ParentID:    root.ParentID,
			Name:        root.Name,
			Description: root.Description,
			SortOrder:   root.SortOrder,
			Level:       root.Level,
			IsPublic:    root.IsPublic,
			CreatedAt:   root.CreatedAt.Format("2006-01-02 15:04:05"),
			Children:    subs,
		})
	}
	return out, nil
}

func (c *Composer) composeSubcategory(child models.Category, authenticated bool, page, size int) (Subcategory, error) {
	sub := Subcategory{
		ID:          child.ID,
		ParentID:    child.ParentID,
		Name:        child.Name,
		Description: child.Description,
		SortOrder:   child.SortOrder,
		Level:       child.Level,
		IsPublic:    child.IsPublic,
		CreatedAt:   child.CreatedAt.Format("2006-01-02 15:04:05"),
		Navs:        []models.Nav{},
	}

	// Private subcategories are listed for anonymous callers but their
	// navs stay hidden.
	if !authenticated && !child.IsPublic {
		sub.Pagination = models.NewPagination(page, size, 0)
		return sub, nil
	}

	filters := store.NavFilters{
		CategoryID: &child.ID,
		Page:       page,
		Size:       size,
	}
	if !authenticated {
		public := true
		filters.IsPublic = &public
	}

	navs, total, err := c.navs.Search(filters)
	if err != nil {
		return Subcategory{}, fmt.Errorf("home view navs of %d: %w", child.ID, err)
	}
	if navs != nil {
		sub.Navs = navs
	}
	sub.Pagination = models.NewPagination(page, size, total)
	return sub, nil
}
