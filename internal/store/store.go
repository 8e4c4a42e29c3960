// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the persistence layer over PostgreSQL. Each
// entity gets its own store type constructed over a shared *sql.DB pool.
package store

import "errors"

var (
	// ErrNotFound is returned when a row id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrHasChildren blocks category deletion while children exist and
	// cascading deletion was not requested.
	ErrHasChildren = errors.New("category has children")
)

// Sort values accepted by the list/search operations.
const (
	// SortDefault orders by sort_order ascending with created_at as the
	// tie-break, the sibling display order.
	SortDefault = "sort_order"

	// SortCreated orders by created_at descending, newest first.
	SortCreated = "created_at"
)

// orderClause maps a caller-supplied sort name to a SQL ORDER BY suffix.
// Unknown values fall back to the default display order.
func orderClause(sort string) string {
	if sort == SortCreated {
		return " ORDER BY created_at DESC"
	}
	return " ORDER BY sort_order ASC, created_at ASC"
}
