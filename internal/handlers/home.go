package handlers

import (
	"net/http"

	"navhub/internal/homeview"
	"navhub/internal/middleware"
)

// Home serves the composed landing-page payload.
type Home struct {
	composer *homeview.Composer
	cache    *homeview.Cache
}

// NewHome creates a new Home handler.
func NewHome(composer *homeview.Composer, cache *homeview.Cache) *Home {
	return &Home{composer: composer, cache: cache}
}

// View returns the nested home payload. Anonymous callers get the
// visibility-filtered variant, served through the view cache; authenticated
// callers always see a fresh, unfiltered composition. A store failure
// yields a failure envelope with no partial data.
func (h *Home) View(w http.ResponseWriter, r *http.Request) {
	authenticated := middleware.IdentityFromCtx(r.Context()) != nil
	page, size := homeview.Clamp(queryInt(r, "page", 1), queryInt(r, "size", homeview.DefaultPageSize))

	if !authenticated {
		if roots, ok := h.cache.Get(page, size); ok {
			respondOK(w, roots)
			return
		}
	}

	roots, err := h.composer.Compose(authenticated, page, size)
	if err != nil {
		respondInternal(w, "compose home view", err)
		return
	}
	if !authenticated {
		h.cache.Put(page, size, roots)
	}
	respondOK(w, roots)
}
