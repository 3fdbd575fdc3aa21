package user

import (
	"context"

	"github.com/go-redis/redis/v8"
)

const revokedKeyPrefix = "auth:revoked:"

// TokenRevoker invalidates issued tokens before their expiry (logout).
// Revocations only need to outlive the token, so entries carry the
// token-issue duration as TTL.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// RedisTokenRevoker implements TokenRevoker on the auth cache.
type RedisTokenRevoker struct {
	Client *redis.Client
}

func (r *RedisTokenRevoker) Revoke(ctx context.Context, token string) error {
	return r.Client.Set(ctx, revokedKeyPrefix+token, "1", tokenDuration).Err()
}

func (r *RedisTokenRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.Client.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
