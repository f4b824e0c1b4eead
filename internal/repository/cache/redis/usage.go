package redis

import (
	"context"

	"gitee.com/flycash/order-notifier/internal/repository/cache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const scanBatch = 200

type UsageCache struct {
	rdb redis.Cmdable
}

func NewUsageCache(rdb redis.Cmdable) *UsageCache {
	return &UsageCache{rdb: rdb}
}

// IncrBy 在一个事务里累加所有计数器并刷新过期时间
func (u *UsageCache) IncrBy(ctx context.Context, buckets []cache.Bucket, amount int64) ([]int64, error) {
	cmds := make([]*redis.IntCmd, 0, len(buckets))
	_, err := u.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, b := range buckets {
			cmds = append(cmds, pipe.IncrBy(ctx, b.Key, amount))
			if b.TTL > 0 {
				pipe.Expire(ctx, b.Key, b.TTL)
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "累加用量失败")
	}
	res := make([]int64, 0, len(cmds))
	for _, cmd := range cmds {
		res = append(res, cmd.Val())
	}
	return res, nil
}

func (u *UsageCache) Get(ctx context.Context, key string) (int64, error) {
	val, err := u.rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return val, err
}

func (u *UsageCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return u.rdb.Del(ctx, keys...).Err()
}

func (u *UsageCache) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	var (
		cursor uint64
		total  int64
	)
	for {
		keys, next, err := u.rdb.Scan(ctx, cursor, prefix+"*", scanBatch).Result()
		if err != nil {
			return total, errors.Wrapf(err, "扫描 %s 失败", prefix)
		}
		if len(keys) > 0 {
			n, err := u.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return total, err
			}
			total += n
		}
		if next == 0 {
			return total, nil
		}
		cursor = next
	}
}
