package ioc

import (
	"gitee.com/flycash/order-notifier/internal/pkg/redis/metrics"
	"github.com/gotomicro/ego/core/econf"
	"github.com/meoying/dlock-go"
	dlockRedis "github.com/meoying/dlock-go/redis"
	"github.com/redis/go-redis/v9"
)

func InitRedisClient() *redis.Client {
	type Config struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	}
	var cfg Config
	err := econf.UnmarshalKey("redis", &cfg)
	if err != nil {
		panic(err)
	}
	cmd := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return metrics.WithMetrics(cmd)
}

func InitDistributedLock(rdb redis.Cmdable) dlock.Client {
	return dlockRedis.NewClient(rdb)
}
