package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/pkg/isolation"
	"gorm.io/gorm"
)

// NotificationTemplate 租户自定义模板表
type NotificationTemplate struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	TenantID int64  `gorm:"column:tenant_id;type:BIGINT;NOT NULL;uniqueIndex:uk_tenant_name_type,priority:1"`
	Name     string `gorm:"type:VARCHAR(128);NOT NULL;uniqueIndex:uk_tenant_name_type,priority:2"`
	Type     string `gorm:"type:VARCHAR(32);NOT NULL;uniqueIndex:uk_tenant_name_type,priority:3"`
	Subject  string `gorm:"type:VARCHAR(256)"`
	Content  string `gorm:"type:TEXT;NOT NULL"`
	// JSON 数组
	Variables    string `gorm:"type:TEXT"`
	TemplateCode string `gorm:"type:VARCHAR(128)"`
	IsDefault    bool
	Ctime        int64
	Utime        int64
}

func (NotificationTemplate) TableName() string {
	return "notification_templates"
}

func (NotificationTemplate) TenantColumn() string {
	return "tenant_id"
}

func (t *NotificationTemplate) StampTenant(tenantID int64) {
	t.TenantID = tenantID
}

// DefaultTemplate 系统默认模板，所有租户共享，只能在没有租户上下文时读写
type DefaultTemplate struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"type:VARCHAR(128);NOT NULL;uniqueIndex:uk_name_type,priority:1"`
	Type         string `gorm:"type:VARCHAR(32);NOT NULL;uniqueIndex:uk_name_type,priority:2"`
	Subject      string `gorm:"type:VARCHAR(256)"`
	Content      string `gorm:"type:TEXT;NOT NULL"`
	Variables    string `gorm:"type:TEXT"`
	TemplateCode string `gorm:"type:VARCHAR(128)"`
	Ctime        int64
	Utime        int64
}

func (DefaultTemplate) TableName() string {
	return "default_templates"
}

type TemplateDAO interface {
	// Upsert 同名同类型的模板存在时更新内容
	Upsert(ctx context.Context, t NotificationTemplate) (NotificationTemplate, error)
	GetByNameType(ctx context.Context, name, typ string) (NotificationTemplate, error)
	List(ctx context.Context) ([]NotificationTemplate, error)
	Delete(ctx context.Context, name, typ string) (int64, error)

	GetDefault(ctx context.Context, name, typ string) (DefaultTemplate, error)
	CreateDefault(ctx context.Context, t DefaultTemplate) (DefaultTemplate, error)
}

type templateDAO struct {
	gw *isolation.Gateway
}

func NewTemplateDAO(gw *isolation.Gateway) TemplateDAO {
	return &templateDAO{gw: gw}
}

func (d *templateDAO) Upsert(ctx context.Context, t NotificationTemplate) (NotificationTemplate, error) {
	now := time.Now().UnixMilli()
	t.Utime = now
	affected, err := d.gw.Update(ctx, &NotificationTemplate{},
		isolation.Where("name = ? AND type = ?", t.Name, t.Type),
		map[string]any{
			"subject":       t.Subject,
			"content":       t.Content,
			"variables":     t.Variables,
			"template_code": t.TemplateCode,
			"is_default":    t.IsDefault,
			"utime":         now,
		})
	if err != nil {
		return NotificationTemplate{}, err
	}
	if affected > 0 {
		return d.GetByNameType(ctx, t.Name, t.Type)
	}
	t.Ctime = now
	err = d.gw.Create(ctx, &t)
	return t, err
}

func (d *templateDAO) GetByNameType(ctx context.Context, name, typ string) (NotificationTemplate, error) {
	var t NotificationTemplate
	err := d.gw.First(ctx, &t, isolation.Where("name = ? AND type = ?", name, typ))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotificationTemplate{}, fmt.Errorf("%w: name = %s, type = %s", errs.ErrTemplateNotFound, name, typ)
	}
	return t, err
}

func (d *templateDAO) List(ctx context.Context) ([]NotificationTemplate, error) {
	var res []NotificationTemplate
	err := d.gw.Find(ctx, &res, isolation.Query{Order: "name ASC, type ASC"})
	return res, err
}

func (d *templateDAO) Delete(ctx context.Context, name, typ string) (int64, error) {
	return d.gw.Delete(ctx, &NotificationTemplate{}, isolation.Where("name = ? AND type = ?", name, typ))
}

func (d *templateDAO) GetDefault(ctx context.Context, name, typ string) (DefaultTemplate, error) {
	var t DefaultTemplate
	err := d.gw.First(ctx, &t, isolation.Where("name = ? AND type = ?", name, typ))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultTemplate{}, fmt.Errorf("%w: default name = %s, type = %s", errs.ErrTemplateNotFound, name, typ)
	}
	return t, err
}

func (d *templateDAO) CreateDefault(ctx context.Context, t DefaultTemplate) (DefaultTemplate, error) {
	now := time.Now().UnixMilli()
	t.Ctime, t.Utime = now, now
	err := d.gw.Create(ctx, &t)
	if isUniqueConflict(err) {
		// 并发初始化时别人已经建好了
		return d.GetDefault(ctx, t.Name, t.Type)
	}
	return t, err
}
