package queue

import (
	"context"
	"time"

	"gitee.com/flycash/order-notifier/internal/pkg/tenant"
	"gitee.com/flycash/order-notifier/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

const (
	DefaultRetention = time.Hour * 24 * 30
	cleanupBatchSize = 500
)

// Cleanup 删除已经结束并且超过保留期的任务，由 ecron 定时触发
type Cleanup struct {
	repo      repository.JobRepository
	retention time.Duration
	batchSize int
	now       func() time.Time
	logger    *elog.Component
}

func NewCleanup(repo repository.JobRepository, retention time.Duration) *Cleanup {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Cleanup{
		repo:      repo,
		retention: retention,
		batchSize: cleanupBatchSize,
		now:       time.Now,
		logger:    elog.DefaultLogger.With(elog.String("component", "queue-cleanup")),
	}
}

// Do 分批删除，直到没有可删的任务
func (c *Cleanup) Do(ctx context.Context) error {
	ctx = tenant.Detach(ctx)
	before := c.now().Add(-c.retention)
	var total int64
	for {
		n, err := c.repo.DeleteFinishedBefore(ctx, before, c.batchSize)
		if err != nil {
			c.logger.Error("清理任务失败", elog.Int64("deleted", total), elog.FieldErr(err))
			return err
		}
		total += n
		if n < int64(c.batchSize) || ctx.Err() != nil {
			break
		}
	}
	c.logger.Info("清理已结束的任务", elog.Int64("deleted", total))
	return nil
}
