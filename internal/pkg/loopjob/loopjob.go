// Package loopjob 在没有分布式任务调度平台的情况下，用分布式锁保证只有一个实例在跑循环任务
package loopjob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/meoying/dlock-go"
)

const (
	defaultTimeout  = time.Second * 3
	defaultLease    = time.Minute
	defaultInterval = time.Second * 5
)

type Config struct {
	// 分布式锁的 key
	Key string `yaml:"key"`
	// 锁的过期时间，每轮业务结束后续约
	Lease time.Duration `yaml:"lease"`
	// 没有抢到锁或者出错之后等多久再试
	RetryInterval time.Duration `yaml:"retryInterval"`
}

type InfiniteLoop struct {
	dclient dlock.Client
	cfg     Config
	logger  *elog.Component
	// 执行一轮业务，ctx 被取消时整个循环退出
	biz func(ctx context.Context) error
}

func NewInfiniteLoop(dclient dlock.Client, biz func(ctx context.Context) error, cfg Config) *InfiniteLoop {
	if cfg.Lease <= 0 {
		cfg.Lease = defaultLease
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultInterval
	}
	return &InfiniteLoop{
		dclient: dclient,
		cfg:     cfg,
		logger:  elog.DefaultLogger.With(elog.String("component", "loopjob"), elog.String("key", cfg.Key)),
		biz:     biz,
	}
}

// Run 阻塞直到 ctx 被取消
func (l *InfiniteLoop) Run(ctx context.Context) {
	for {
		if err := l.runOnce(ctx); err != nil {
			l.logger.Warn("循环任务中断，稍后重试", elog.FieldErr(err))
		}
		if ctx.Err() != nil {
			l.logger.Info("任务被取消，退出任务循环")
			return
		}
		if !sleep(ctx, l.cfg.RetryInterval) {
			return
		}
	}
}

func (l *InfiniteLoop) runOnce(ctx context.Context) error {
	lock, err := l.dclient.NewLock(ctx, l.cfg.Key, l.cfg.Lease)
	if err != nil {
		return fmt.Errorf("初始化分布式锁失败 %w", err)
	}

	lockCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	err = lock.Lock(lockCtx)
	cancel()
	if err != nil {
		// 锁被其他实例持有也走这里
		return fmt.Errorf("没有抢到分布式锁 %w", err)
	}
	l.logger.Info("抢到分布式锁，开始执行")

	err = l.bizLoop(ctx, lock)

	// ctx 可能已经被取消，解锁不能再用它
	unCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultTimeout)
	defer cancel()
	if unErr := lock.Unlock(unCtx); unErr != nil {
		l.logger.Error("释放分布式锁失败", elog.FieldErr(unErr))
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (l *InfiniteLoop) bizLoop(ctx context.Context, lock dlock.Lock) error {
	for {
		if err := l.biz(ctx); err != nil {
			l.logger.Error("业务执行失败", elog.FieldErr(err))
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		refCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
		err := lock.Refresh(refCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("分布式锁续约失败 %w", err)
		}
	}
}

// sleep ctx 被取消时返回 false
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
