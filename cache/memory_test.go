package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/installment-engine/cache"
)

func TestMemoryCache_GetSet(t *testing.T) {
	c := cache.NewMemoryCache()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	assert.NoError(t, c.Set("k", "v"))
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)

	assert.NoError(t, c.Set("k", "v2"))
	got, _ = c.Get("k")
	assert.Equal(t, "v2", got)
}
