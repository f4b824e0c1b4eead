// Package retry 计算队列任务的重试间隔
package retry

import (
	"fmt"
	"time"

	"github.com/ecodeclub/ekit/retry"
)

const (
	DefaultBaseDelay = time.Minute
	DefaultMaxDelay  = time.Hour
)

type Config struct {
	// 第一次重试的间隔
	BaseDelay time.Duration `yaml:"baseDelay"`
	MaxDelay  time.Duration `yaml:"maxDelay"`
}

// Backoff 指数退避：min(base * 2^(attempt-1), max)
type Backoff struct {
	base time.Duration
	max  time.Duration
}

func NewBackoff(cfg Config) (*Backoff, error) {
	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.MaxDelay == 0 {
		cfg.MaxDelay = DefaultMaxDelay
	}
	if cfg.BaseDelay < 0 || cfg.MaxDelay < cfg.BaseDelay {
		return nil, fmt.Errorf("非法的重试间隔 base = %s, max = %s", cfg.BaseDelay, cfg.MaxDelay)
	}
	return &Backoff{base: cfg.BaseDelay, max: cfg.MaxDelay}, nil
}

// Delay 第 attempt 次重试前需要等待的时间，attempt 从 1 开始
func (b *Backoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	// ekit 的策略是有状态的，每次计算都新建一个
	s, err := retry.NewExponentialBackoffRetryStrategy(b.base, b.max, 0)
	if err != nil {
		return b.max
	}
	var d time.Duration
	for i := 0; i < attempt; i++ {
		d, _ = s.Next()
	}
	return d
}
