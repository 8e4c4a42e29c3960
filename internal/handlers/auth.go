// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"navhub/internal/middleware"
	"navhub/internal/store"
	"navhub/internal/token"
)

// Auth groups the authentication handlers.
type Auth struct {
	users     *store.UserStore
	tokens    *token.Manager
	blacklist *token.Blacklist
}

// NewAuth creates a new Auth handler group.
func NewAuth(users *store.UserStore, tokens *token.Manager, blacklist *token.Blacklist) *Auth {
	return &Auth{users: users, tokens: tokens, blacklist: blacklist}
}

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
	TOTPCode   string `json:"totp_code"`
}

// Login exchanges credentials for a bearer token. Accounts with TOTP
// enabled must also supply a valid one-time code.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	if msg := validateUsername(req.Username); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := a.users.FindByUsername(req.Username)
	if err != nil {
		respondInternal(w, "login lookup", err)
		return
	}
	// Same message for unknown user and wrong password.
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if user.TOTPEnabled {
		if user.TOTPSecret == nil || !totp.Validate(req.TOTPCode, *user.TOTPSecret) {
			respondError(w, http.StatusUnauthorized, "a valid one-time code is required")
			return
		}
	}

	issued, err := a.tokens.Issue(user.ID, req.RememberMe)
	if err != nil {
		respondInternal(w, "issue token", err)
		return
	}

	respondOK(w, map[string]any{
		"user":  user,
		"token": issued,
	})
}

// Logout revokes the presented token for its remaining lifetime.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())
	if ident == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ttl := time.Until(ident.Claims.ExpiresAt.Time)
	if err := a.blacklist.Revoke(r.Context(), ident.Claims.ID, ttl); err != nil {
		respondInternal(w, "revoke token", err)
		return
	}
	respondOK(w, nil)
}

// Profile returns the authenticated user's account.
func (a *Auth) Profile(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())
	respondOK(w, map[string]any{"user": ident.User})
}

// Verify confirms the presented token is still valid.
func (a *Auth) Verify(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())
	respondOK(w, map[string]any{"user": ident.User})
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Register creates a new account. Only the admin account may do this.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())
	if !ident.User.IsAdmin() {
		respondError(w, http.StatusForbidden, "only the admin account can register users")
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if msg := validateUsername(req.Username); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validatePassword(req.Password); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	existing, err := a.users.FindByUsername(req.Username)
	if err != nil {
		respondInternal(w, "register lookup", err)
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "username already exists")
		return
	}

	user, err := a.users.Create(req.Username, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		respondInternal(w, "register user", err)
		return
	}
	respondCreated(w, map[string]any{"user": user})
}

// TwoFASetup generates a fresh TOTP secret for the authenticated user and
// returns it together with a QR code for authenticator apps. The secret
// stays inactive until TwoFAEnable confirms a code.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "navhub",
		AccountName: ident.User.Username,
	})
	if err != nil {
		respondInternal(w, "totp generate", err)
		return
	}

	if err := a.users.SetTOTPSecret(ident.User.ID, key.Secret()); err != nil {
		respondInternal(w, "save totp secret", err)
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		respondInternal(w, "qr code generation", err)
		return
	}

	respondOK(w, map[string]any{
		"secret":  key.Secret(),
		"qr_code": base64.StdEncoding.EncodeToString(qrPNG),
	})
}

type twoFAEnableRequest struct {
	Code string `json:"code"`
}

// TwoFAEnable activates TOTP after the user proves possession of the
// secret with one valid code.
func (a *Auth) TwoFAEnable(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())

	var req twoFAEnableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	if ident.User.TOTPSecret == nil {
		respondError(w, http.StatusBadRequest, "run 2fa setup first")
		return
	}
	if !totp.Validate(req.Code, *ident.User.TOTPSecret) {
		respondError(w, http.StatusBadRequest, "invalid one-time code")
		return
	}

	if err := a.users.EnableTOTP(ident.User.ID); err != nil {
		respondInternal(w, "enable totp", err)
		return
	}
	respondOK(w, nil)
}
