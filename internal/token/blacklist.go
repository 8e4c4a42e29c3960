package token

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces revocation keys in Valkey.
const keyPrefix = "revoked:"

// Blacklist records revoked token ids (jti) in Valkey. Each entry carries
// the token's remaining lifetime as its TTL, so expired entries sweep
// themselves out.
type Blacklist struct {
	client *redis.Client
}

// NewBlacklist returns a Blacklist backed by the given Valkey client.
func NewBlacklist(client *redis.Client) *Blacklist {
	return &Blacklist{client: client}
}

// Revoke marks a token id as revoked for the given remaining lifetime.
// Tokens already past expiry need no entry.
func (b *Blacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, keyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// Contains reports whether a token id has been revoked.
func (b *Blacklist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}
