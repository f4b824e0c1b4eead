package dao

import (
	"context"
	"errors"
	"time"

	"gitee.com/flycash/order-notifier/internal/pkg/isolation"
	"gorm.io/gorm"
)

// NotificationLog 发送审计表，只插入不更新
type NotificationLog struct {
	ID uint64 `gorm:"primaryKey;autoIncrement:false"`
	TenantOwned
	Channel      string `gorm:"type:VARCHAR(32);NOT NULL"`
	Recipient    string `gorm:"type:VARCHAR(32);NOT NULL"`
	Content      string `gorm:"type:TEXT"`
	Status       string `gorm:"type:VARCHAR(16);NOT NULL;index:idx_email_log_status,priority:2"`
	Error        string `gorm:"type:TEXT"`
	Provider     string `gorm:"type:VARCHAR(64)"`
	MessageID    string `gorm:"type:VARCHAR(128)"`
	FailoverUsed bool
	EmailLogID   string `gorm:"type:VARCHAR(128);index:idx_email_log_status,priority:1"`
	CompanyID    int64  `gorm:"type:BIGINT;index"`
	ContactID    int64  `gorm:"type:BIGINT"`
	JobID        uint64 `gorm:"type:BIGINT"`
	Ctime        int64
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}

type NotificationLogDAO interface {
	Create(ctx context.Context, log NotificationLog) (NotificationLog, error)
	// ExistsByEmailLogID 当前租户是否已经有这个 emailLogID 的指定状态记录
	ExistsByEmailLogID(ctx context.Context, emailLogID, status string) (bool, error)
	FindByEmailLogID(ctx context.Context, emailLogID string) ([]NotificationLog, error)
	FindRecent(ctx context.Context, offset, limit int) ([]NotificationLog, error)
}

type notificationLogDAO struct {
	gw *isolation.Gateway
}

func NewNotificationLogDAO(gw *isolation.Gateway) NotificationLogDAO {
	return &notificationLogDAO{gw: gw}
}

func (d *notificationLogDAO) Create(ctx context.Context, log NotificationLog) (NotificationLog, error) {
	log.Ctime = time.Now().UnixMilli()
	err := d.gw.Create(ctx, &log)
	return log, err
}

func (d *notificationLogDAO) ExistsByEmailLogID(ctx context.Context, emailLogID, status string) (bool, error) {
	var log NotificationLog
	err := d.gw.First(ctx, &log, isolation.Where("email_log_id = ? AND status = ?", emailLogID, status))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (d *notificationLogDAO) FindByEmailLogID(ctx context.Context, emailLogID string) ([]NotificationLog, error) {
	var res []NotificationLog
	err := d.gw.Find(ctx, &res, isolation.Query{
		Where: "email_log_id = ?",
		Args:  []any{emailLogID},
		Order: "ctime ASC, id ASC",
	})
	return res, err
}

func (d *notificationLogDAO) FindRecent(ctx context.Context, offset, limit int) ([]NotificationLog, error) {
	var res []NotificationLog
	err := d.gw.Find(ctx, &res, isolation.Query{Order: "ctime DESC, id DESC", Offset: offset, Limit: limit})
	return res, err
}
