// Package queue 持久化的通知任务队列
package queue

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/pkg/tenant"
	"gitee.com/flycash/order-notifier/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/sony/sonyflake"
)

//go:generate mockgen -source=./service.go -destination=./mocks/service.mock.go -package=queuemocks -typed Service
type Service interface {
	// Enqueue 补齐默认值之后持久化，任务属于当前租户
	Enqueue(ctx context.Context, job domain.Job) (domain.Job, error)
	Get(ctx context.Context, id uint64) (domain.Job, error)
	// Cancel 只能取消还没有结束的任务
	Cancel(ctx context.Context, id uint64) error
	Stats(ctx context.Context) (domain.JobStats, error)
}

type service struct {
	repo        repository.JobRepository
	idGenerator *sonyflake.Sonyflake
	now         func() time.Time
	logger      *elog.Component
}

func NewService(repo repository.JobRepository, idGenerator *sonyflake.Sonyflake) Service {
	return &service{
		repo:        repo,
		idGenerator: idGenerator,
		now:         time.Now,
		logger:      elog.DefaultLogger.With(elog.String("component", "queue")),
	}
}

func (s *service) Enqueue(ctx context.Context, job domain.Job) (domain.Job, error) {
	if _, ok := tenant.FromContext(ctx); !ok {
		return domain.Job{}, fmt.Errorf("%w: 创建任务", errs.ErrTenantContextRequired)
	}
	if job.Priority == "" {
		job.Priority = domain.PriorityNormal
	}
	if job.ScheduledAt.IsZero() {
		job.ScheduledAt = s.now()
	}
	if job.MaxRetries == 0 {
		job.MaxRetries = domain.DefaultMaxRetries(job.Channel)
	}
	if err := job.Validate(); err != nil {
		return domain.Job{}, err
	}
	id, err := s.idGenerator.NextID()
	if err != nil {
		return domain.Job{}, fmt.Errorf("生成任务 ID 失败: %w", err)
	}
	job.ID = id
	job.Status = domain.JobStatusPending
	job.CurrentRetries = 0
	job.LastError = ""

	created, err := s.repo.Create(ctx, job)
	if err != nil {
		return domain.Job{}, err
	}
	s.logger.Debug("任务入队",
		elog.Int64("tenantId", created.TenantID),
		elog.Any("jobId", created.ID),
		elog.String("channel", created.Channel.String()),
		elog.String("priority", string(created.Priority)))
	return created, nil
}

func (s *service) Get(ctx context.Context, id uint64) (domain.Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Cancel(ctx context.Context, id uint64) error {
	ok, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	// 区分任务不存在和任务已经结束
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if job.Status.IsTerminal() {
		return fmt.Errorf("%w: id = %d, status = %s", errs.ErrJobFinished, id, job.Status)
	}
	return fmt.Errorf("%w: id = %d", errs.ErrJobVersionMismatch, id)
}

func (s *service) Stats(ctx context.Context) (domain.JobStats, error) {
	return s.repo.Stats(ctx)
}
