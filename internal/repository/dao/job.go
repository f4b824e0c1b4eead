package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/pkg/isolation"
	"github.com/ecodeclub/ekit/slice"
	"gorm.io/gorm"
)

// NotificationJob 异步通知任务表
type NotificationJob struct {
	ID uint64 `gorm:"primaryKey;autoIncrement:false"`
	TenantOwned
	Channel      string `gorm:"type:VARCHAR(32);NOT NULL"`
	Recipient    string `gorm:"type:VARCHAR(32);NOT NULL"`
	Message      string `gorm:"type:TEXT"`
	Subject      string `gorm:"type:VARCHAR(256)"`
	TemplateName string `gorm:"type:VARCHAR(128)"`
	TemplateCode string `gorm:"type:VARCHAR(128)"`
	// JSON 对象
	Variables string `gorm:"type:TEXT"`
	// 0 low 到 3 urgent，拉取时倒序
	Priority int `gorm:"NOT NULL;index:idx_status_priority,priority:2"`
	// 毫秒，0 表示立刻执行
	ScheduledAt    int64  `gorm:"NOT NULL;index:idx_status_priority,priority:3"`
	MaxRetries     int    `gorm:"NOT NULL"`
	CurrentRetries int    `gorm:"NOT NULL"`
	CompanyID      int64  `gorm:"type:BIGINT"`
	ContactID      int64  `gorm:"type:BIGINT"`
	EmailLogID     string `gorm:"type:VARCHAR(128);index"`
	EnableFailover bool
	Metadata       string `gorm:"type:TEXT"`
	Status         string `gorm:"type:VARCHAR(32);NOT NULL;index:idx_status_priority,priority:1"`
	LastError      string `gorm:"type:TEXT"`
	// 每次状态变更都加一，用于 CAS
	Version int `gorm:"NOT NULL"`
	Ctime   int64
	Utime   int64
}

func (NotificationJob) TableName() string {
	return "notification_jobs"
}

// JobTransition 一次 CAS 状态迁移，只有状态和版本都匹配时才会生效
type JobTransition struct {
	ID         uint64
	FromStatus []string
	// 小于等于 0 时不校验版本
	FromVersion int
	Values      map[string]any
}

type JobDAO interface {
	Create(ctx context.Context, job NotificationJob) (NotificationJob, error)
	GetByID(ctx context.Context, id uint64) (NotificationJob, error)
	// FindDue 找到已经到期的 PENDING 任务，按优先级倒序、创建时间正序
	FindDue(ctx context.Context, now int64, limit int) ([]NotificationJob, error)
	// CAS 返回是否迁移成功
	CAS(ctx context.Context, t JobTransition) (bool, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	// DeleteFinishedBefore 删除 utime 早于 before 的终态任务
	DeleteFinishedBefore(ctx context.Context, statuses []string, before int64, limit int) (int64, error)
}

type jobDAO struct {
	gw *isolation.Gateway
}

func NewJobDAO(gw *isolation.Gateway) JobDAO {
	return &jobDAO{gw: gw}
}

func (d *jobDAO) Create(ctx context.Context, job NotificationJob) (NotificationJob, error) {
	now := time.Now().UnixMilli()
	job.Ctime, job.Utime = now, now
	job.Version = 1
	err := d.gw.Create(ctx, &job)
	return job, err
}

func (d *jobDAO) GetByID(ctx context.Context, id uint64) (NotificationJob, error) {
	var job NotificationJob
	err := d.gw.First(ctx, &job, isolation.Where("id = ?", id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotificationJob{}, fmt.Errorf("%w: id = %d", errs.ErrJobNotFound, id)
	}
	return job, err
}

func (d *jobDAO) FindDue(ctx context.Context, now int64, limit int) ([]NotificationJob, error) {
	var res []NotificationJob
	err := d.gw.Find(ctx, &res, isolation.Query{
		Where: "status = ? AND scheduled_at <= ?",
		Args:  []any{"PENDING", now},
		Order: "priority DESC, ctime ASC, id ASC",
		Limit: limit,
	})
	return res, err
}

func (d *jobDAO) CAS(ctx context.Context, t JobTransition) (bool, error) {
	q := isolation.Where("id = ? AND status IN ?", t.ID, t.FromStatus)
	if t.FromVersion > 0 {
		q = isolation.Where("id = ? AND status IN ? AND version = ?", t.ID, t.FromStatus, t.FromVersion)
	}
	values := make(map[string]any, len(t.Values)+2)
	for k, v := range t.Values {
		values[k] = v
	}
	values["version"] = gorm.Expr("version + 1")
	values["utime"] = time.Now().UnixMilli()
	affected, err := d.gw.Update(ctx, &NotificationJob{}, q, values)
	return affected > 0, err
}

func (d *jobDAO) CountByStatus(ctx context.Context, status string) (int64, error) {
	return d.gw.Count(ctx, &NotificationJob{}, isolation.Where("status = ?", status))
}

func (d *jobDAO) DeleteFinishedBefore(ctx context.Context, statuses []string, before int64, limit int) (int64, error) {
	var jobs []NotificationJob
	err := d.gw.Find(ctx, &jobs, isolation.Query{
		Where: "status IN ? AND utime < ?",
		Args:  []any{statuses, before},
		Order: "utime ASC",
		Limit: limit,
	})
	if err != nil || len(jobs) == 0 {
		return 0, err
	}
	ids := slice.Map(jobs, func(_ int, src NotificationJob) uint64 {
		return src.ID
	})
	return d.gw.Delete(ctx, &NotificationJob{}, isolation.Where("id IN ?", ids))
}
