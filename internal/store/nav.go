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

// NavStore manages navigation links in the database.
type NavStore struct {
	db *sql.DB
}

// NewNavStore returns a new NavStore.
func NewNavStore(db *sql.DB) *NavStore {
	return &NavStore{db: db}
}

const navColumns = `id, category_id, title, url, description, icon, sort_order, is_public, created_at`

func scanNav(scanner interface{ Scan(...any) error }) (*models.Nav, error) {
	var n models.Nav
	err := scanner.Scan(
		&n.ID, &n.CategoryID, &n.Title, &n.URL, &n.Description,
		&n.Icon, &n.SortOrder, &n.IsPublic, &n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// NavFilters narrows and pages a nav search. Keyword matches title OR
// description as a substring. Page/Size are applied as-is; clamping is the
// caller's concern.
type NavFilters struct {
	IsPublic   *bool
	CategoryID *int64
	Keyword    string
	Sort       string
	Page       int
	Size       int
}

func (f *NavFilters) where() (string, []any) {
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
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		add("category_id = $" + strconv.Itoa(len(args)))
	}
	if f.Keyword != "" {
		args = append(args, "%"+f.Keyword+"%")
		n := strconv.Itoa(len(args))
		add("(title LIKE $" + n + " OR description LIKE $" + n + ")")
	}
	return clause, args
}

// FindByID retrieves a nav by id. Returns nil if not found.
func (s *NavStore) FindByID(id int64) (*models.Nav, error) {
	row := s.db.QueryRow(`SELECT `+navColumns+` FROM navs WHERE id = $1`, id)
	n, err := scanNav(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find nav by id: %w", err)
	}
	return n, nil
}

// Search returns navs matching the filters together with the total count of
// the filtered set before pagination.
func (s *NavStore) Search(f NavFilters) ([]models.Nav, int, error) {
	clause, args := f.where()

	var total int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM navs`+clause, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count navs: %w", err)
	}

	query := `SELECT ` + navColumns + ` FROM navs` + clause + orderClause(f.Sort)
	if f.Page > 0 && f.Size > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Size, (f.Page-1)*f.Size)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search navs: %w", err)
	}
	defer rows.Close()

	var items []models.Nav
	for rows.Next() {
		n, err := scanNav(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan nav: %w", err)
		}
		items = append(items, *n)
	}
	return items, total, rows.Err()
}

// Create inserts a new nav and fills in the generated id and creation
// timestamp.
func (s *NavStore) Create(n *models.Nav) (*models.Nav, error) {
	err := s.db.QueryRow(`
		INSERT INTO navs (category_id, title, url, description, icon, sort_order, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, n.CategoryID, n.Title, n.URL, n.Description, n.Icon, n.SortOrder, n.IsPublic,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create nav: %w", err)
	}
	return n, nil
}

// Update overwrites an existing nav row by id.
func (s *NavStore) Update(n *models.Nav) error {
	_, err := s.db.Exec(`
		UPDATE navs SET
			category_id = $1, title = $2, url = $3, description = $4,
			icon = $5, sort_order = $6, is_public = $7
		WHERE id = $8
	`, n.CategoryID, n.Title, n.URL, n.Description, n.Icon, n.SortOrder, n.IsPublic, n.ID)
	if err != nil {
		return fmt.Errorf("update nav: %w", err)
	}
	return nil
}

// Delete removes a nav by id. Navs have no children, so deletion is
// unconditional.
func (s *NavStore) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM navs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete nav: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete nav rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
