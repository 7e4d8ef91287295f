package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pos-api/internal/domain/repository"
)

func setupRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(client), mr
}

// exerciseStore contrato común de ambas implementaciones.
func exerciseStore(t *testing.T, s repository.KVStore) {
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "no-existe")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "lang:u-1", "es", 0))
	v, ok, err := s.Get(ctx, "lang:u-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "es", v)

	require.NoError(t, s.Set(ctx, "lang:u-1", "en", 0))
	v, _, _ = s.Get(ctx, "lang:u-1")
	assert.Equal(t, "en", v)

	require.NoError(t, s.Delete(ctx, "lang:u-1"))
	_, ok, err = s.Get(ctx, "lang:u-1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.Delete(ctx, "lang:u-1"))
}

func TestRedisStore_Contrato(t *testing.T) {
	s, _ := setupRedis(t)
	exerciseStore(t, s)
}

func TestMemoryStore_Contrato(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestRedisStore_PrefijoYExpiracion(t *testing.T) {
	s, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "revoked:abc", "1", time.Minute))
	assert.True(t, mr.Exists("pos:revoked:abc"))

	mr.FastForward(2 * time.Minute)
	_, ok, err := s.Get(ctx, "revoked:abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Expiracion(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))
	_, ok, _ := s.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, _ = s.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisStore_Dial(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := Dial(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	exerciseStore(t, s)

	_, err = Dial(context.Background(), "::no-es-url")
	assert.Error(t, err)
}
