package local

import (
	"context"
	"sync"
	"testing"
	"time"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/repository/cache"
	ca "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageCache_IncrBy(t *testing.T) {
	t.Parallel()
	c := NewUsageCache(ca.New(time.Minute, time.Minute))
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	buckets := cache.Buckets(1, domain.UsageSMS, now)

	res, err := c.IncrBy(ctx, buckets, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 2, 2}, res)

	res, err = c.IncrBy(ctx, buckets, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 5, 5}, res)

	val, err := c.Get(ctx, cache.MonthKey(1, domain.UsageSMS, now))
	require.NoError(t, err)
	assert.Equal(t, int64(5), val)

	val, err = c.Get(ctx, cache.MonthKey(2, domain.UsageSMS, now))
	require.NoError(t, err)
	assert.Zero(t, val)
}

func TestUsageCache_Concurrent(t *testing.T) {
	t.Parallel()
	c := NewUsageCache(ca.New(time.Minute, time.Minute))
	ctx := context.Background()
	buckets := []cache.Bucket{{Key: cache.TotalKey(1, domain.UsageKakao)}}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.IncrBy(ctx, buckets, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	val, err := c.Get(ctx, buckets[0].Key)
	require.NoError(t, err)
	assert.Equal(t, int64(50), val)
}

func TestUsageCache_DeleteByPrefix(t *testing.T) {
	t.Parallel()
	c := NewUsageCache(ca.New(time.Minute, time.Minute))
	ctx := context.Background()
	now := time.Now()
	_, err := c.IncrBy(ctx, cache.Buckets(1, domain.UsageSMS, now), 1)
	require.NoError(t, err)
	_, err = c.IncrBy(ctx, cache.Buckets(11, domain.UsageSMS, now), 1)
	require.NoError(t, err)

	cnt, err := c.DeleteByPrefix(ctx, cache.TenantPrefix(1))
	require.NoError(t, err)
	assert.Equal(t, int64(3), cnt)

	val, err := c.Get(ctx, cache.TotalKey(11, domain.UsageSMS))
	require.NoError(t, err)
	assert.Equal(t, int64(1), val)
}
