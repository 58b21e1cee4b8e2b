package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTokenStore()

	_, err := store.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Store(ctx, 1, "first", time.Minute))
	token, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "first", token)

	// 같은 사용자로 다시 저장하면 덮어쓴다
	require.NoError(t, store.Store(ctx, 1, "second", time.Minute))
	token, err = store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	require.NoError(t, store.Delete(ctx, 1))
	_, err = store.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryTokenStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTokenStore()

	require.NoError(t, store.Store(ctx, 1, "token", -time.Second))
	_, err := store.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDenylist(t *testing.T) {
	ctx := context.Background()
	denylist := NewMemoryDenylist()

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))
	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryDenylistMinimumTTL(t *testing.T) {
	ctx := context.Background()
	denylist := NewMemoryDenylist()

	// 이미 만료된 토큰이라도 최소 1초는 블랙리스트에 남는다
	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Now().Add(-time.Hour)))
	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}
