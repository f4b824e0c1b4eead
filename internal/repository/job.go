package repository

import (
	"context"
	"encoding/json"
	"time"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

// JobRepository 异步任务。所有状态迁移都是 CAS，返回 false 表示任务已经被别人改过
type JobRepository interface {
	Create(ctx context.Context, job domain.Job) (domain.Job, error)
	GetByID(ctx context.Context, id uint64) (domain.Job, error)
	FindDue(ctx context.Context, now time.Time, limit int) ([]domain.Job, error)

	// Claim PENDING -> PROCESSING，成功后 job.Version 会加一
	Claim(ctx context.Context, job domain.Job) (domain.Job, bool, error)
	MarkSent(ctx context.Context, job domain.Job) (bool, error)
	// MarkRetry PROCESSING -> PENDING
	MarkRetry(ctx context.Context, job domain.Job, retries int, next time.Time, lastErr string) (bool, error)
	MarkFailed(ctx context.Context, job domain.Job, retries int, lastErr string) (bool, error)
	// Cancel 把未结束的任务改成 FAILED
	Cancel(ctx context.Context, id uint64) (bool, error)

	Stats(ctx context.Context) (domain.JobStats, error)
	DeleteFinishedBefore(ctx context.Context, before time.Time, limit int) (int64, error)
}

type jobRepository struct {
	dao dao.JobDAO
}

func NewJobRepository(d dao.JobDAO) JobRepository {
	return &jobRepository{dao: d}
}

func (r *jobRepository) Create(ctx context.Context, job domain.Job) (domain.Job, error) {
	created, err := r.dao.Create(ctx, r.toEntity(job))
	if err != nil {
		return domain.Job{}, err
	}
	return r.toDomain(created), nil
}

func (r *jobRepository) GetByID(ctx context.Context, id uint64) (domain.Job, error) {
	job, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Job{}, err
	}
	return r.toDomain(job), nil
}

func (r *jobRepository) FindDue(ctx context.Context, now time.Time, limit int) ([]domain.Job, error) {
	jobs, err := r.dao.FindDue(ctx, now.UnixMilli(), limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(jobs, func(_ int, src dao.NotificationJob) domain.Job {
		return r.toDomain(src)
	}), nil
}

func (r *jobRepository) Claim(ctx context.Context, job domain.Job) (domain.Job, bool, error) {
	ok, err := r.dao.CAS(ctx, dao.JobTransition{
		ID:          job.ID,
		FromStatus:  []string{domain.JobStatusPending.String()},
		FromVersion: job.Version,
		Values:      map[string]any{"status": domain.JobStatusProcessing.String()},
	})
	if err != nil || !ok {
		return job, false, err
	}
	job.Status = domain.JobStatusProcessing
	job.Version++
	return job, true, nil
}

func (r *jobRepository) MarkSent(ctx context.Context, job domain.Job) (bool, error) {
	return r.dao.CAS(ctx, dao.JobTransition{
		ID:          job.ID,
		FromStatus:  []string{domain.JobStatusProcessing.String()},
		FromVersion: job.Version,
		Values: map[string]any{
			"status":     domain.JobStatusSent.String(),
			"last_error": "",
		},
	})
}

func (r *jobRepository) MarkRetry(ctx context.Context, job domain.Job, retries int, next time.Time, lastErr string) (bool, error) {
	return r.dao.CAS(ctx, dao.JobTransition{
		ID:          job.ID,
		FromStatus:  []string{domain.JobStatusProcessing.String()},
		FromVersion: job.Version,
		Values: map[string]any{
			"status":          domain.JobStatusPending.String(),
			"current_retries": retries,
			"scheduled_at":    next.UnixMilli(),
			"last_error":      lastErr,
		},
	})
}

func (r *jobRepository) MarkFailed(ctx context.Context, job domain.Job, retries int, lastErr string) (bool, error) {
	return r.dao.CAS(ctx, dao.JobTransition{
		ID:          job.ID,
		FromStatus:  []string{domain.JobStatusProcessing.String()},
		FromVersion: job.Version,
		Values: map[string]any{
			"status":          domain.JobStatusFailed.String(),
			"current_retries": retries,
			"last_error":      lastErr,
		},
	})
}

func (r *jobRepository) Cancel(ctx context.Context, id uint64) (bool, error) {
	return r.dao.CAS(ctx, dao.JobTransition{
		ID: id,
		FromStatus: []string{
			domain.JobStatusPending.String(),
			domain.JobStatusProcessing.String(),
		},
		Values: map[string]any{
			"status":     domain.JobStatusFailed.String(),
			"last_error": domain.CancelledReason,
		},
	})
}

func (r *jobRepository) Stats(ctx context.Context) (domain.JobStats, error) {
	var stats domain.JobStats
	targets := []struct {
		status domain.JobStatus
		dst    *int64
	}{
		{domain.JobStatusPending, &stats.Pending},
		{domain.JobStatusProcessing, &stats.Processing},
		{domain.JobStatusSent, &stats.Sent},
		{domain.JobStatusFailed, &stats.Failed},
	}
	for _, t := range targets {
		cnt, err := r.dao.CountByStatus(ctx, t.status.String())
		if err != nil {
			return domain.JobStats{}, err
		}
		*t.dst = cnt
	}
	return stats, nil
}

func (r *jobRepository) DeleteFinishedBefore(ctx context.Context, before time.Time, limit int) (int64, error) {
	return r.dao.DeleteFinishedBefore(ctx, []string{
		domain.JobStatusSent.String(),
		domain.JobStatusFailed.String(),
	}, before.UnixMilli(), limit)
}

func (r *jobRepository) toEntity(job domain.Job) dao.NotificationJob {
	var scheduledAt int64
	if !job.ScheduledAt.IsZero() {
		scheduledAt = job.ScheduledAt.UnixMilli()
	}
	return dao.NotificationJob{
		ID:             job.ID,
		TenantOwned:    dao.TenantOwned{TenantID: job.TenantID},
		Channel:        job.Channel.String(),
		Recipient:      job.Recipient,
		Message:        job.Message,
		Subject:        job.Subject,
		TemplateName:   job.TemplateName,
		TemplateCode:   job.TemplateCode,
		Variables:      r.marshal(job.Variables),
		Priority:       job.Priority.Rank(),
		ScheduledAt:    scheduledAt,
		MaxRetries:     job.MaxRetries,
		CurrentRetries: job.CurrentRetries,
		CompanyID:      job.CompanyID,
		ContactID:      job.ContactID,
		EmailLogID:     job.EmailLogID,
		EnableFailover: job.EnableFailover,
		Metadata:       r.marshal(job.Metadata),
		Status:         job.Status.String(),
		LastError:      job.LastError,
		Version:        job.Version,
	}
}

func (r *jobRepository) toDomain(job dao.NotificationJob) domain.Job {
	var scheduledAt time.Time
	if job.ScheduledAt > 0 {
		scheduledAt = time.UnixMilli(job.ScheduledAt)
	}
	return domain.Job{
		ID:             job.ID,
		TenantID:       job.TenantID,
		Channel:        domain.Channel(job.Channel),
		Recipient:      job.Recipient,
		Message:        job.Message,
		Subject:        job.Subject,
		TemplateName:   job.TemplateName,
		TemplateCode:   job.TemplateCode,
		Variables:      r.unmarshal(job.Variables),
		Priority:       domain.PriorityFromRank(job.Priority),
		ScheduledAt:    scheduledAt,
		MaxRetries:     job.MaxRetries,
		CurrentRetries: job.CurrentRetries,
		CompanyID:      job.CompanyID,
		ContactID:      job.ContactID,
		EmailLogID:     job.EmailLogID,
		EnableFailover: job.EnableFailover,
		Metadata:       r.unmarshal(job.Metadata),
		Status:         domain.JobStatus(job.Status),
		LastError:      job.LastError,
		Version:        job.Version,
		Ctime:          time.UnixMilli(job.Ctime),
		Utime:          time.UnixMilli(job.Utime),
	}
}

func (r *jobRepository) marshal(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	data, _ := json.Marshal(m)
	return string(data)
}

func (r *jobRepository) unmarshal(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	var m map[string]string
	_ = json.Unmarshal([]byte(raw), &m)
	return m
}
