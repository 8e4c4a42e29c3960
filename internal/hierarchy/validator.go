package hierarchy

import (
	"errors"
	"fmt"

	"navhub/internal/models"
)

var (
	// ErrDepthExceeded is returned when a mutation would push a category
	// below the maximum depth.
	ErrDepthExceeded = errors.New("category depth limit exceeded")

	// ErrInvalidParent is returned when a category is set as its own parent.
	ErrInvalidParent = errors.New("category cannot be its own parent")

	// ErrCyclicHierarchy is returned when a category is moved into its own
	// descendant subtree.
	ErrCyclicHierarchy = errors.New("move would create a cycle")

	// ErrParentNotFound is returned when a proposed parent id does not
	// resolve to an existing category.
	ErrParentNotFound = errors.New("parent category not found")
)

// Store is the slice of the category store the validator needs. It is
// satisfied by *store.CategoryStore.
type Store interface {
	FindByID(id int64) (*models.Category, error)
	Children(parentID int64) ([]models.Category, error)
}

// Validator checks hierarchy invariants before category mutations are
// persisted. It holds no state beyond the backing store.
type Validator struct {
	store Store
}

// NewValidator returns a Validator over the given category store.
func NewValidator(s Store) *Validator {
	return &Validator{store: s}
}

// CreateLevel resolves the level a new category would occupy under the
// proposed parent. A nil parent means a root category at level 1.
func (v *Validator) CreateLevel(parentID *int64) (int, error) {
	if parentID == nil {
		return 1, nil
	}

	parent, err := v.store.FindByID(*parentID)
	if err != nil {
		return 0, fmt.Errorf("resolve parent: %w", err)
	}
	if parent == nil {
		return 0, ErrParentNotFound
	}

	level := parent.Level + 1
	if level > models.MaxCategoryDepth {
		return 0, ErrDepthExceeded
	}
	return level, nil
}

// MoveLevel validates reparenting an existing category and resolves its new
// level. Beyond the checks CreateLevel performs, it rejects self-parenting
// and moves into the category's own descendant subtree.
func (v *Validator) MoveLevel(id int64, newParentID *int64) (int, error) {
	if newParentID == nil {
		return 1, nil
	}
	if *newParentID == id {
		return 0, ErrInvalidParent
	}

	inSubtree, err := v.isDescendant(id, *newParentID)
	if err != nil {
		return 0, err
	}
	if inSubtree {
		return 0, ErrCyclicHierarchy
	}

	return v.CreateLevel(newParentID)
}

// isDescendant reports whether target appears anywhere in the descendant
// set of root. The walk re-fetches children per node, which stays cheap
// under the depth bound.
func (v *Validator) isDescendant(root, target int64) (bool, error) {
	children, err := v.store.Children(root)
	if err != nil {
		return false, fmt.Errorf("walk descendants: %w", err)
	}
	for _, child := range children {
		if child.ID == target {
			return true, nil
		}
		found, err := v.isDescendant(child.ID, target)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}
