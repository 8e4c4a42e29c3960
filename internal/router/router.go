// Package router sets up all HTTP routes and middleware chains for the
// navhub API. Routes split into anonymous-friendly reads and
// token-protected management endpoints.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"navhub/internal/handlers"
	"navhub/internal/middleware"
)

// Deps bundles everything the router wires together.
type Deps struct {
	Auth       *handlers.Auth
	Categories *handlers.Categories
	Navs       *handlers.Navs
	Home       *handlers.Home

	TokenParser middleware.TokenParser
	Revocations middleware.Revocations
	Users       middleware.UserFinder
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request. Authenticate runs
	// before Logger so the request log carries the resolved caller.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Authenticate(d.TokenParser, d.Revocations, d.Users))
	r.Use(middleware.Logger)

	r.Route("/api", func(r chi.Router) {
		// Health check — no auth.
		r.Get("/health", healthHandler)

		// Landing page payload — works anonymously, richer when authenticated.
		r.Get("/home", d.Home.View)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", d.Auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/logout", d.Auth.Logout)
				r.Get("/profile", d.Auth.Profile)
				r.Get("/verify", d.Auth.Verify)
				r.Post("/register", d.Auth.Register)
				r.Post("/2fa/setup", d.Auth.TwoFASetup)
				r.Post("/2fa/enable", d.Auth.TwoFAEnable)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			// Public listing — no auth.
			r.Get("/public", d.Categories.Public)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/", d.Categories.List)
				r.Post("/", d.Categories.Create)
				r.Get("/roots", d.Categories.Roots)
				r.Get("/children", d.Categories.AllChildren)
				r.Get("/{id}", d.Categories.Get)
				r.Put("/{id}", d.Categories.Update)
				r.Delete("/{id}", d.Categories.Delete)
				r.Get("/{id}/children", d.Categories.Children)
			})
		})

		r.Route("/navs", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/search", d.Navs.Search)
			r.Post("/", d.Navs.Create)
			r.Get("/{id}", d.Navs.Get)
			r.Put("/{id}", d.Navs.Update)
			r.Delete("/{id}", d.Navs.Delete)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
