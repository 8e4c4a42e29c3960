// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"navhub/internal/homeview"
	"navhub/internal/models"
	"navhub/internal/store"
)

// Navs groups the navigation-link handlers.
type Navs struct {
	navs       *store.NavStore
	categories *store.CategoryStore
	views      *homeview.Cache
}

// NewNavs creates a new Navs handler group.
func NewNavs(navs *store.NavStore, categories *store.CategoryStore, views *homeview.Cache) *Navs {
	return &Navs{navs: navs, categories: categories, views: views}
}

// Search pagination bounds. The store layer passes size through untouched,
// so the cap lives here.
const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// Search returns a filtered, paginated nav listing. Each item carries the
// name of its category.
func (h *Navs) Search(w http.ResponseWriter, r *http.Request) {
	f := store.NavFilters{
		IsPublic: queryBool(r, "is_public"),
		Keyword:  r.URL.Query().Get("keyword"),
		Sort:     r.URL.Query().Get("sort"),
		Page:     queryInt(r, "page", 1),
		Size:     queryInt(r, "size", defaultSearchSize),
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Size < 1 {
		f.Size = defaultSearchSize
	}
	if f.Size > maxSearchSize {
		f.Size = maxSearchSize
	}
	if id := int64(queryInt(r, "category_id", -1)); id >= 0 {
		f.CategoryID = &id
	}

	items, total, err := h.navs.Search(f)
	if err != nil {
		respondInternal(w, "search navs", err)
		return
	}

	if err := h.attachCategoryNames(items); err != nil {
		respondInternal(w, "resolve category names", err)
		return
	}

	if items == nil {
		items = []models.Nav{}
	}
	respondOK(w, map[string]any{
		"list":       items,
		"pagination": models.NewPagination(f.Page, f.Size, total),
	})
}

// attachCategoryNames fills CategoryName on each nav, fetching every
// distinct category once.
func (h *Navs) attachCategoryNames(items []models.Nav) error {
	names := map[int64]string{}
	for i := range items {
		name, ok := names[items[i].CategoryID]
		if !ok {
			c, err := h.categories.FindByID(items[i].CategoryID)
			if err != nil {
				return err
			}
			if c != nil {
				name = c.Name
			}
			names[items[i].CategoryID] = name
		}
		items[i].CategoryName = name
	}
	return nil
}

// Get returns a single nav by id.
func (h *Navs) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid nav id")
		return
	}

	n, err := h.navs.FindByID(id)
	if err != nil {
		respondInternal(w, "get nav", err)
		return
	}
	if n == nil {
		respondError(w, http.StatusNotFound, "nav not found")
		return
	}

	c, err := h.categories.FindByID(n.CategoryID)
	if err != nil {
		respondInternal(w, "resolve nav category", err)
		return
	}
	if c != nil {
		n.CategoryName = c.Name
	}
	respondOK(w, n)
}

type createNavRequest struct {
	CategoryID  int64  `json:"category_id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sort_order"`
	IsPublic    *bool  `json:"is_public"`
}

// Create validates and inserts a new nav. The category must exist.
func (h *Navs) Create(w http.ResponseWriter, r *http.Request) {
	var req createNavRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	if msg := validateNav(req.Title, req.URL, req.SortOrder); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	c, err := h.categories.FindByID(req.CategoryID)
	if err != nil {
		respondInternal(w, "resolve nav category", err)
		return
	}
	if c == nil {
		respondError(w, http.StatusBadRequest, "category not found")
		return
	}

	n := &models.Nav{
		CategoryID:  req.CategoryID,
		Title:       strings.TrimSpace(req.Title),
		URL:         strings.TrimSpace(req.URL),
		Description: req.Description,
		Icon:        req.Icon,
		SortOrder:   req.SortOrder,
		IsPublic:    true,
	}
	if req.IsPublic != nil {
		n.IsPublic = *req.IsPublic
	}

	if _, err := h.navs.Create(n); err != nil {
		respondInternal(w, "create nav", err)
		return
	}
	h.views.Invalidate()
	n.CategoryName = c.Name
	respondCreated(w, n)
}

type updateNavRequest struct {
	CategoryID  *int64  `json:"category_id"`
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	SortOrder   *int    `json:"sort_order"`
	IsPublic    *bool   `json:"is_public"`
}

// Update applies a partial update to a nav.
func (h *Navs) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid nav id")
		return
	}

	n, err := h.navs.FindByID(id)
	if err != nil {
		respondInternal(w, "get nav", err)
		return
	}
	if n == nil {
		respondError(w, http.StatusNotFound, "nav not found")
		return
	}

	var req updateNavRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	if req.CategoryID != nil {
		c, err := h.categories.FindByID(*req.CategoryID)
		if err != nil {
			respondInternal(w, "resolve nav category", err)
			return
		}
		if c == nil {
			respondError(w, http.StatusBadRequest, "category not found")
			return
		}
		n.CategoryID = *req.CategoryID
	}
	if req.Title != nil {
		n.Title = strings.TrimSpace(*req.Title)
	}
	if req.URL != nil {
		n.URL = strings.TrimSpace(*req.URL)
	}
	if req.Description != nil {
		n.Description = *req.Description
	}
	if req.Icon != nil {
		n.Icon = *req.Icon
	}
	if req.SortOrder != nil {
		n.SortOrder = *req.SortOrder
	}
	if req.IsPublic != nil {
		n.IsPublic = *req.IsPublic
	}

	if msg := validateNav(n.Title, n.URL, n.SortOrder); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.navs.Update(n); err != nil {
		respondInternal(w, "update nav", err)
		return
	}
	h.views.Invalidate()
	respondOK(w, n)
}

// Delete removes a nav by id. Navs have nothing underneath them, so
// deletion is unconditional.
func (h *Navs) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid nav id")
		return
	}

	err = h.navs.Delete(id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "nav not found")
	case err != nil:
		respondInternal(w, "delete nav", err)
	default:
		h.views.Invalidate()
		respondOK(w, nil)
	}
}
