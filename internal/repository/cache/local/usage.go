package local

import (
	"context"
	"strings"
	"sync"

	"gitee.com/flycash/order-notifier/internal/repository/cache"
	ca "github.com/patrickmn/go-cache"
)

// UsageCache 单机部署时使用的计数器，同一个进程内是原子的
type UsageCache struct {
	mu sync.Mutex
	c  *ca.Cache
}

func NewUsageCache(c *ca.Cache) *UsageCache {
	return &UsageCache{c: c}
}

func (u *UsageCache) IncrBy(_ context.Context, buckets []cache.Bucket, amount int64) ([]int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	res := make([]int64, 0, len(buckets))
	for _, b := range buckets {
		val := u.get(b.Key) + amount
		ttl := b.TTL
		if ttl <= 0 {
			ttl = ca.NoExpiration
		}
		u.c.Set(b.Key, val, ttl)
		res = append(res, val)
	}
	return res, nil
}

func (u *UsageCache) Get(_ context.Context, key string) (int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.get(key), nil
}

func (u *UsageCache) Delete(_ context.Context, keys ...string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, key := range keys {
		u.c.Delete(key)
	}
	return nil
}

func (u *UsageCache) DeleteByPrefix(_ context.Context, prefix string) (int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	var cnt int64
	for key := range u.c.Items() {
		if strings.HasPrefix(key, prefix) {
			u.c.Delete(key)
			cnt++
		}
	}
	return cnt, nil
}

func (u *UsageCache) get(key string) int64 {
	v, ok := u.c.Get(key)
	if !ok {
		return 0
	}
	val, _ := v.(int64)
	return val
}
