// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"navhub/internal/models"
	"navhub/internal/token"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// identityKey is the context key for the authenticated identity.
const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	User   *models.User
	Claims *token.Claims
}

// TokenParser validates a bearer token string.
type TokenParser interface {
	Parse(tokenStr string) (*token.Claims, error)
}

// Revocations answers whether a token id has been revoked.
type Revocations interface {
	Contains(ctx context.Context, jti string) (bool, error)
}

// UserFinder resolves a user id to an account.
type UserFinder interface {
	FindByID(id int64) (*models.User, error)
}

// Authenticate resolves the Authorization header into an Identity on the
// request context. It does NOT enforce authentication — requests without a
// usable token continue as anonymous, so read paths that allow anonymous
// access keep working even with a stale token attached.
func Authenticate(parser TokenParser, revoked Revocations, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := resolve(r, parser, revoked, users)
			if ident != nil {
				r = r.WithContext(context.WithValue(r.Context(), identityKey, ident))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolve(r *http.Request, parser TokenParser, revoked Revocations, users UserFinder) *Identity {
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return nil
	}

	claims, err := parser.Parse(strings.TrimPrefix(h, "Bearer "))
	if err != nil {
		return nil
	}

	if gone, err := revoked.Contains(r.Context(), claims.ID); err != nil || gone {
		return nil
	}

	id, err := claims.UserID()
	if err != nil {
		return nil
	}
	user, err := users.FindByID(id)
	if err != nil || user == nil {
		return nil
	}

	return &Identity{User: user, Claims: claims}
}

// RequireAuth rejects anonymous requests with a 401 envelope. Must be
// applied after Authenticate in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromCtx(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code":0,"msg":"authentication required","data":null}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// IdentityFromCtx extracts the authenticated identity from the request
// context. Returns nil for anonymous requests.
func IdentityFromCtx(ctx context.Context) *Identity {
	ident, _ := ctx.Value(identityKey).(*Identity)
	return ident
}

// WithIdentity returns a context carrying the given identity. Used by
// tests to simulate authenticated requests.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}
