package ioc

import (
	"time"

	"gitee.com/flycash/order-notifier/internal/repository/cache"
	"gitee.com/flycash/order-notifier/internal/repository/cache/local"
	redisCache "gitee.com/flycash/order-notifier/internal/repository/cache/redis"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
	ca "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	usageBackendRedis = "redis"
	usageBackendLocal = "local"
)

// InitGoCache 模板缓存
func InitGoCache() *ca.Cache {
	return ca.New(time.Minute*5, time.Minute*10)
}

// InitUsageCache local 只适合单实例部署，多实例之间的计数不共享
func InitUsageCache(rdb redis.Cmdable) cache.UsageCache {
	type Config struct {
		Backend string `yaml:"backend"`
	}
	cfg := Config{Backend: usageBackendRedis}
	if err := econf.UnmarshalKey("usage", &cfg); err != nil {
		panic(err)
	}
	switch cfg.Backend {
	case usageBackendLocal:
		elog.DefaultLogger.Warn("计量使用本地缓存，重启之后计数会丢失")
		return local.NewUsageCache(ca.New(ca.NoExpiration, time.Hour))
	case usageBackendRedis:
		return redisCache.NewUsageCache(rdb)
	default:
		panic("未知的计量存储: " + cfg.Backend)
	}
}
