// Package token issues and validates the bearer tokens that authenticate
// API callers, and tracks revoked token ids in Valkey until they expire.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for tokens that fail signature, shape, or
// expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload. The user id travels in the registered Subject
// field; ID (jti) identifies the token for revocation.
type Claims struct {
	jwt.RegisteredClaims
}

// Issued describes a freshly signed token, shaped for the login response.
type Issued struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Manager signs and parses HS256 bearer tokens.
type Manager struct {
	secret      []byte
	ttl         time.Duration
	rememberTTL time.Duration
}

// NewManager returns a Manager with the given signing secret and lifetimes.
func NewManager(secret string, ttl, rememberTTL time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, rememberTTL: rememberTTL}
}

// Issue signs a token for the user. remember extends the lifetime for
// clients that asked to stay signed in.
func (m *Manager) Issue(userID int64, remember bool) (*Issued, error) {
	ttl := m.ttl
	if remember {
		ttl = m.rememberTTL
	}

	now := time.Now()
	exp := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Issued{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		ExpiresAt:   exp,
	}, nil
}

// Parse validates a signed token and returns its claims.
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// UserID decodes the subject claim back into a user id.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, c.Subject)
	}
	return id, nil
}
