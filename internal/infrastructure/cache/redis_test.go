package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_BypassWhenUnavailable(t *testing.T) {
	ctx := context.Background()
	r := NewRedisWithClient(nil, 0, nil)
	assert.False(t, r.Available())
	assert.Equal(t, defaultTTL, r.ttl)

	var out map[string]int
	hit, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, r.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute))
	require.NoError(t, r.MSetJSON(ctx, map[string]any{"a": []float32{1}, "b": []float32{2}}, time.Minute))
	require.NoError(t, r.Delete(ctx, "k"))
	require.NoError(t, r.DeleteByPattern(ctx, "k:*"))

	ok, err := r.SetIfNotExists(ctx, "lock", "1", 0)
	require.NoError(t, err)
	assert.False(t, ok)

	hits, err := r.MGetJSON(ctx, []string{"a", "b"}, func(int, []byte) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false}, hits)

	assert.ErrorIs(t, r.Ping(ctx), ErrUnavailable)
	assert.NoError(t, r.Close())
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	hit, err := r.GetJSON(context.Background(), "k", &struct{}{})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, r.Available())
}
