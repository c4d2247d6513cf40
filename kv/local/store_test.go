package local

import (
	"context"
	"testing"

	"github.com/kasuganosora/memorybox/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_GetSetDel(t *testing.T) {
	ctx := context.Background()
	s := NewStore(Config{})

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	require.NoError(t, s.Set(ctx, "k", "v2"))
	v, _ = s.Get(ctx, "k")
	assert.Equal(t, "v2", v)

	ok, err := s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Del(ctx, "k", "never-set"))
	ok, _ = s.Exists(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, int64(0), s.Used())
}

func TestLocalStore_Quota(t *testing.T) {
	ctx := context.Background()
	s := NewStore(Config{QuotaBytes: 10})

	require.NoError(t, s.Set(ctx, "a", "12345")) // 6 bytes
	err := s.Set(ctx, "b", "123456")             // would be 13
	assert.ErrorIs(t, err, kv.ErrQuotaExceeded)

	_, err = s.Get(ctx, "b")
	assert.ErrorIs(t, err, kv.ErrNotFound, "rejected write must not be stored")

	// overwriting the same key only counts the delta
	require.NoError(t, s.Set(ctx, "a", "123456789")) // 10 bytes
	assert.Equal(t, int64(10), s.Used())

	err = s.Set(ctx, "a", "1234567890")
	assert.ErrorIs(t, err, kv.ErrQuotaExceeded)
	v, _ := s.Get(ctx, "a")
	assert.Equal(t, "123456789", v, "previous value survives a rejected write")
}
