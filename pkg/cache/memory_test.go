package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "thing:1", cachedThing{Name: "a", Items: []string{"x", "y"}}, time.Minute))

	var got cachedThing
	found, err := c.Get(ctx, "thing:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "a", got.Name)
	assert.Equal(t, []string{"x", "y"}, got.Items)

	found, err = c.Get(ctx, "thing:2", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", time.Second))
	now = now.Add(2 * time.Second)

	var v string
	found, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_DeletePattern(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	for _, k := range []string{"course:summary:1", "course:summary:2", "lesson:1"} {
		require.NoError(t, c.Set(ctx, k, 1, 0))
	}

	require.NoError(t, c.DeletePattern(ctx, "course:summary:*"))
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Delete(ctx, "lesson:1", "missing"))
	assert.Equal(t, 0, c.Len())
}
