// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"navhub/internal/hierarchy"
	"navhub/internal/homeview"
	"navhub/internal/models"
	"navhub/internal/store"
)

// Categories groups the category management handlers.
type Categories struct {
	store     *store.CategoryStore
	validator *hierarchy.Validator
	views     *homeview.Cache
}

// NewCategories creates a new Categories handler group.
func NewCategories(s *store.CategoryStore, v *hierarchy.Validator, views *homeview.Cache) *Categories {
	return &Categories{store: s, validator: v, views: views}
}

// listFilters builds store filters from the listing query parameters.
// parent_id accepts an id, or "null"/"" to match root categories only;
// anything else is rejected rather than silently widening the result set.
func listFilters(r *http.Request) (store.CategoryFilters, error) {
	f := store.CategoryFilters{
		IsPublic: queryBool(r, "is_public"),
		Sort:     r.URL.Query().Get("sort"),
	}
	if level := queryInt(r, "level", 0); level > 0 {
		f.Level = &level
	}
	if raw, ok := r.URL.Query()["parent_id"]; ok && len(raw) > 0 {
		if raw[0] == "" || strings.EqualFold(raw[0], "null") {
			f.RootsOnly = true
		} else {
			id, err := strconv.ParseInt(raw[0], 10, 64)
			if err != nil || id < 0 {
				return f, errors.New("parent_id must be a category id or null")
			}
			f.ParentID = &id
		}
	}
	return f, nil
}

// List returns the filtered category set assembled into a tree, plus a
// pagination block computed over the flat filtered total.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", 20)

	filters, err := listFilters(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The whole filtered set is fetched so the tree stays complete;
	// the pagination block describes the flat total.
	flat, total, err := h.store.List(filters)
	if err != nil {
		respondInternal(w, "list categories", err)
		return
	}

	respondOK(w, map[string]any{
		"list":       hierarchy.BuildTree(flat),
		"pagination": models.NewPagination(page, size, total),
	})
}

// Get returns a single category by id.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	c, err := h.store.FindByID(id)
	if err != nil {
		respondInternal(w, "get category", err)
		return
	}
	if c == nil {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}
	respondOK(w, c)
}

// Children returns the direct children of a category.
func (h *Categories) Children(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	parent, err := h.store.FindByID(id)
	if err != nil {
		respondInternal(w, "get parent category", err)
		return
	}
	if parent == nil {
		respondError(w, http.StatusNotFound, "parent category not found")
		return
	}

	children, err := h.store.Children(id)
	if err != nil {
		respondInternal(w, "list children", err)
		return
	}
	respondOK(w, children)
}

// Roots returns all root categories as a flat list.
func (h *Categories) Roots(w http.ResponseWriter, r *http.Request) {
	roots, _, err := h.store.List(store.CategoryFilters{RootsOnly: true})
	if err != nil {
		respondInternal(w, "list root categories", err)
		return
	}
	respondOK(w, roots)
}

// AllChildren returns every non-root category as a flat list, optionally
// filtered by is_public.
func (h *Categories) AllChildren(w http.ResponseWriter, r *http.Request) {
	flat, _, err := h.store.List(store.CategoryFilters{IsPublic: queryBool(r, "is_public")})
	if err != nil {
		respondInternal(w, "list child categories", err)
		return
	}

	children := []models.Category{}
	for _, c := range flat {
		if c.ParentID != nil {
			children = append(children, c)
		}
	}
	respondOK(w, children)
}

// Public returns the public categories without authentication, flat by
// default or assembled into a tree with ?tree=true.
func (h *Categories) Public(w http.ResponseWriter, r *http.Request) {
	public := true
	flat, _, err := h.store.List(store.CategoryFilters{IsPublic: &public})
	if err != nil {
		respondInternal(w, "list public categories", err)
		return
	}

	if strings.EqualFold(r.URL.Query().Get("tree"), "true") {
		respondOK(w, hierarchy.BuildTree(flat))
		return
	}
	respondOK(w, flat)
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
	IsPublic    *bool  `json:"is_public"`
	ParentID    *int64 `json:"parent_id"`
}

// Create validates and inserts a new category. The level is derived from
// the parent by the hierarchy validator.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if msg := validateCategory(req.Name, req.Description, req.SortOrder); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	level, err := h.validator.CreateLevel(req.ParentID)
	if err != nil {
		respondHierarchyError(w, "create category", err)
		return
	}

	c := &models.Category{
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		Level:       level,
		IsPublic:    true,
	}
	if req.IsPublic != nil {
		c.IsPublic = *req.IsPublic
	}

	if _, err := h.store.Create(c); err != nil {
		respondInternal(w, "create category", err)
		return
	}
	h.views.Invalidate()
	respondCreated(w, c)
}

type updateCategoryRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	SortOrder   *int       `json:"sort_order"`
	IsPublic    *bool      `json:"is_public"`
	ParentID    optionalID `json:"parent_id"`
}

// Update applies a partial update to a category. A parent change runs the
// full reparenting validation and recomputes the level.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	c, err := h.store.FindByID(id)
	if err != nil {
		respondInternal(w, "get category", err)
		return
	}
	if c == nil {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}

	var req updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		c.Description = strings.TrimSpace(*req.Description)
	}
	if req.SortOrder != nil {
		c.SortOrder = *req.SortOrder
	}
	if req.IsPublic != nil {
		c.IsPublic = *req.IsPublic
	}
	if msg := validateCategory(c.Name, c.Description, c.SortOrder); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if req.ParentID.Set && !sameParent(c.ParentID, req.ParentID.Value) {
		level, err := h.validator.MoveLevel(c.ID, req.ParentID.Value)
		if err != nil {
			respondHierarchyError(w, "move category", err)
			return
		}
		c.ParentID = req.ParentID.Value
		c.Level = level
	}

	if err := h.store.Update(c); err != nil {
		respondInternal(w, "update category", err)
		return
	}
	h.views.Invalidate()
	respondOK(w, c)
}

// Delete removes a category. With ?cascade=true the whole descendant
// subtree goes; otherwise a category with children is rejected.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	cascade := strings.EqualFold(r.URL.Query().Get("cascade"), "true")

	err = h.store.Delete(id, cascade)
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "category not found")
	case errors.Is(err, store.ErrHasChildren):
		respondError(w, http.StatusBadRequest, "category has children and cannot be deleted")
	case err != nil:
		respondInternal(w, "delete category", err)
	default:
		h.views.Invalidate()
		respondOK(w, nil)
	}
}

// sameParent compares two optional parent ids.
func sameParent(a, b *int64) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// respondHierarchyError maps validator errors to client-facing responses.
func respondHierarchyError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, hierarchy.ErrParentNotFound):
		respondError(w, http.StatusBadRequest, "parent category not found")
	case errors.Is(err, hierarchy.ErrDepthExceeded):
		respondError(w, http.StatusBadRequest, "category depth cannot exceed 5 levels")
	case errors.Is(err, hierarchy.ErrInvalidParent):
		respondError(w, http.StatusBadRequest, "a category cannot be its own parent")
	case errors.Is(err, hierarchy.ErrCyclicHierarchy):
		respondError(w, http.StatusBadRequest, "a category cannot be moved under its own descendant")
	default:
		respondInternal(w, op, err)
	}
}
