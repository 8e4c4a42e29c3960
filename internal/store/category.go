// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strconv"

	"navhub/internal/models"
)

// CategoryStore manages navigation categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, parent_id, name, description, sort_order, level, is_public, created_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.ParentID, &c.Name, &c.Description,
		&c.SortOrder, &c.Level, &c.IsPublic, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CategoryFilters narrows and pages a category listing. Zero values mean
// "no filter". RootsOnly matches categories without a parent and takes
// precedence over ParentID. Page/Size of zero disables pagination; the
// reported total always counts the full filtered set.
type CategoryFilters struct {
	IsPublic  *bool
	Level     *int
	RootsOnly bool
	ParentID  *int64
	Sort      string
	Page      int
	Size      int
}

// where renders the filter conditions and their arguments.
func (f *CategoryFilters) where() (string, []any) {
	clause := ""
	var args []any
	add := func(cond string) {
		if clause == "" {
			clause = " WHERE " + cond
		} else {
			clause += " AND " + cond
		}
	}

	if f.IsPublic != nil {
		args = append(args, *f.IsPublic)
		add("is_public = $" + strconv.Itoa(len(args)))
	}
	if f.Level != nil {
		args = append(args, *f.Level)
		add("level = $" + strconv.Itoa(len(args)))
	}
	if f.RootsOnly {
		add("parent_id IS NULL")
	} else if f.ParentID != nil {
		args = append(args, *f.ParentID)
		add("parent_id = $" + strconv.Itoa(len(args)))
	}
	return clause, args
}

// FindByID retrieves a category by id. Returns nil if not found.
func (s *CategoryStore) FindByID(id int64) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM nav_categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// List returns categories matching the filters together with the total
// count of the filtered set before pagination.
func (s *CategoryStore) List(f CategoryFilters) ([]models.Category, int, error) {
	clause, args := f.where()

	var total int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM nav_categories`+clause, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	query := `SELECT ` + categoryColumns + ` FROM nav_categories` + clause + orderClause(f.Sort)
	if f.Page > 0 && f.Size > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Size, (f.Page-1)*f.Size)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, total, rows.Err()
}

// Children returns the direct children of a category in display order.
func (s *CategoryStore) Children(parentID int64) ([]models.Category, error) {
	items, _, err := s.List(CategoryFilters{ParentID: &parentID})
	return items, err
}

// Roots returns the root categories ordered by sort_order with id as the
// tie-break. This is the canonical ordering of the home view.
func (s *CategoryStore) Roots() ([]models.Category, error) {
	return s.displayList("parent_id IS NULL")
}

// ChildrenOf returns the direct children of a category with the same
// (sort_order, id) ordering the home view uses for roots.
func (s *CategoryStore) ChildrenOf(parentID int64) ([]models.Category, error) {
	return s.displayList("parent_id = $1", parentID)
}

func (s *CategoryStore) displayList(cond string, args ...any) ([]models.Category, error) {
	rows, err := s.db.Query(
		`SELECT `+categoryColumns+` FROM nav_categories WHERE `+cond+` ORDER BY sort_order ASC, id ASC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories for display: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Create inserts a new category and fills in the generated id and
// creation timestamp.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	err := s.db.QueryRow(`
		INSERT INTO nav_categories (parent_id, name, description, sort_order, level, is_public)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, c.ParentID, c.Name, c.Description, c.SortOrder, c.Level, c.IsPublic,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// Update overwrites an existing category row by id. The creation timestamp
// is immutable and left untouched.
func (s *CategoryStore) Update(c *models.Category) error {
	_, err := s.db.Exec(`
		UPDATE nav_categories SET
			parent_id = $1, name = $2, description = $3,
			sort_order = $4, level = $5, is_public = $6
		WHERE id = $7
	`, c.ParentID, c.Name, c.Description, c.SortOrder, c.Level, c.IsPublic, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category by id. When the category still has children the
// call fails with ErrHasChildren unless cascade is set, in which case the
// whole descendant subtree is removed in a single transaction.
func (s *CategoryStore) Delete(id int64, cascade bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete category begin: %w", err)
	}
	defer tx.Rollback()

	var children int
	err = tx.QueryRow(`SELECT COUNT(*) FROM nav_categories WHERE parent_id = $1`, id).Scan(&children)
	if err != nil {
		return fmt.Errorf("delete category count children: %w", err)
	}
	if children > 0 && !cascade {
		return ErrHasChildren
	}

	var query string
	if cascade {
		// Remove the whole subtree. The depth bound keeps the recursive
		// CTE trivially cheap.
		query = `
			WITH RECURSIVE subtree AS (
				SELECT id FROM nav_categories WHERE id = $1
				UNION ALL
				SELECT c.id FROM nav_categories c JOIN subtree s ON c.parent_id = s.id
			)
			DELETE FROM nav_categories WHERE id IN (SELECT id FROM subtree)
		`
	} else {
		query = `DELETE FROM nav_categories WHERE id = $1`
	}

	res, err := tx.Exec(query, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete category commit: %w", err)
	}
	return nil
}
