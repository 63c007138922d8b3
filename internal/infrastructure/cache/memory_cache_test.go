package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/ports"
	"github.com/jhoicas/Contable-api/internal/infrastructure/cache"
)

var (
	_ ports.Cache        = (*cache.MemoryStore)(nil)
	_ ports.TokenRevoker = (*cache.MemoryStore)(nil)
	_ ports.Cache        = (*cache.RedisCache)(nil)
	_ ports.TokenRevoker = (*cache.RedisRevoker)(nil)
)

func TestMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s := cache.NewMemoryStore()

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)
}

func TestMemoryStore_TTLCeroNoGuarda(t *testing.T) {
	ctx := context.Background()
	s := cache.NewMemoryStore()
	require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))
	_, ok, _ := s.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStore_Expira(t *testing.T) {
	ctx := context.Background()
	s := cache.NewMemoryStore()
	require.NoError(t, s.Set(ctx, "k", []byte("v"), 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)
	_, ok, _ := s.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStore_Revocacion(t *testing.T) {
	ctx := context.Background()
	s := cache.NewMemoryStore()

	revoked, err := s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err = s.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// token ya vencido: no hace falta guardarlo
	require.NoError(t, s.Revoke(ctx, "jti-2", time.Now().Add(-time.Minute)))
	revoked, _ = s.IsRevoked(ctx, "jti-2")
	assert.False(t, revoked)
}

func TestMemoryStore_CacheYRevocacionNoColisionan(t *testing.T) {
	ctx := context.Background()
	s := cache.NewMemoryStore()
	require.NoError(t, s.Set(ctx, "x", []byte("1"), time.Hour))
	revoked, _ := s.IsRevoked(ctx, "x")
	assert.False(t, revoked)
}
