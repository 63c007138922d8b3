package ports

import (
	"context"
	"time"
)

// Cache puerto de caché clave/valor con expiración. Get devuelve ok=false si la clave no existe o expiró.
// Los adaptadores (Redis, memoria) guardan bytes; la serialización es responsabilidad del caller.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// TokenRevoker lista de tokens revocados por jti hasta su expiración.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
