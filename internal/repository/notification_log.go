package repository

import (
	"context"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

type NotificationLogRepository interface {
	Create(ctx context.Context, log domain.NotificationLog) (domain.NotificationLog, error)
	// HasSent 当前租户下这个 emailLogID 是否已经成功发送过
	HasSent(ctx context.Context, emailLogID string) (bool, error)
	FindByEmailLogID(ctx context.Context, emailLogID string) ([]domain.NotificationLog, error)
	FindRecent(ctx context.Context, offset, limit int) ([]domain.NotificationLog, error)
}

type notificationLogRepository struct {
	dao dao.NotificationLogDAO
}

func NewNotificationLogRepository(d dao.NotificationLogDAO) NotificationLogRepository {
	return &notificationLogRepository{dao: d}
}

func (r *notificationLogRepository) Create(ctx context.Context, log domain.NotificationLog) (domain.NotificationLog, error) {
	created, err := r.dao.Create(ctx, dao.NotificationLog{
		ID:           log.ID,
		Channel:      log.Channel.String(),
		Recipient:    log.Recipient,
		Content:      log.Content,
		Status:       log.Status.String(),
		Error:        log.Error,
		Provider:     log.Provider,
		MessageID:    log.MessageID,
		FailoverUsed: log.FailoverUsed,
		EmailLogID:   log.EmailLogID,
		CompanyID:    log.CompanyID,
		ContactID:    log.ContactID,
		JobID:        log.JobID,
	})
	if err != nil {
		return domain.NotificationLog{}, err
	}
	return r.toDomain(created), nil
}

func (r *notificationLogRepository) HasSent(ctx context.Context, emailLogID string) (bool, error) {
	return r.dao.ExistsByEmailLogID(ctx, emailLogID, domain.LogStatusSent.String())
}

func (r *notificationLogRepository) FindByEmailLogID(ctx context.Context, emailLogID string) ([]domain.NotificationLog, error) {
	logs, err := r.dao.FindByEmailLogID(ctx, emailLogID)
	if err != nil {
		return nil, err
	}
	return slice.Map(logs, func(_ int, src dao.NotificationLog) domain.NotificationLog {
		return r.toDomain(src)
	}), nil
}

func (r *notificationLogRepository) FindRecent(ctx context.Context, offset, limit int) ([]domain.NotificationLog, error) {
	logs, err := r.dao.FindRecent(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(logs, func(_ int, src dao.NotificationLog) domain.NotificationLog {
		return r.toDomain(src)
	}), nil
}

func (r *notificationLogRepository) toDomain(log dao.NotificationLog) domain.NotificationLog {
	return domain.NotificationLog{
		ID:           log.ID,
		TenantID:     log.TenantID,
		Channel:      domain.Channel(log.Channel),
		Recipient:    log.Recipient,
		Content:      log.Content,
		Status:       domain.LogStatus(log.Status),
		Error:        log.Error,
		Provider:     log.Provider,
		MessageID:    log.MessageID,
		FailoverUsed: log.FailoverUsed,
		EmailLogID:   log.EmailLogID,
		CompanyID:    log.CompanyID,
		ContactID:    log.ContactID,
		JobID:        log.JobID,
		Ctime:        log.Ctime,
	}
}
