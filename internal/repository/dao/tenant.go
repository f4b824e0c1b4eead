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

// TenantOwned 嵌入到所有租户数据里，由 isolation.Gateway 负责写入和过滤
type TenantOwned struct {
	TenantID int64 `gorm:"column:tenant_id;type:BIGINT;NOT NULL;index"`
}

func (TenantOwned) TenantColumn() string {
	return "tenant_id"
}

func (t *TenantOwned) StampTenant(tenantID int64) {
	t.TenantID = tenantID
}

// Tenant 租户表。租户访问自己的记录时按主键过滤，没有租户时可以访问全部
type Tenant struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	Name           string `gorm:"type:VARCHAR(128);NOT NULL"`
	Plan           string `gorm:"type:VARCHAR(32);NOT NULL;DEFAULT:'FREE'"`
	Status         string `gorm:"type:VARCHAR(32);NOT NULL;DEFAULT:'TRIAL'"`
	SenderPhone    string `gorm:"type:VARCHAR(32)"`
	SenderVerified bool
	Ctime          int64
	Utime          int64
}

func (Tenant) TableName() string {
	return "tenants"
}

func (Tenant) TenantColumn() string {
	return "id"
}

type TenantDAO interface {
	Create(ctx context.Context, t Tenant) (Tenant, error)
	GetByID(ctx context.Context, id int64) (Tenant, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	UpdateSender(ctx context.Context, id int64, phone string, verified bool) error
}

type tenantDAO struct {
	gw *isolation.Gateway
}

func NewTenantDAO(gw *isolation.Gateway) TenantDAO {
	return &tenantDAO{gw: gw}
}

func (d *tenantDAO) Create(ctx context.Context, t Tenant) (Tenant, error) {
	now := time.Now().UnixMilli()
	t.Ctime, t.Utime = now, now
	err := d.gw.Create(ctx, &t)
	return t, err
}

func (d *tenantDAO) GetByID(ctx context.Context, id int64) (Tenant, error) {
	var t Tenant
	err := d.gw.First(ctx, &t, isolation.Where("id = ?", id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Tenant{}, fmt.Errorf("%w: id = %d", errs.ErrTenantNotFound, id)
	}
	return t, err
}

func (d *tenantDAO) UpdateStatus(ctx context.Context, id int64, status string) error {
	return d.update(ctx, id, map[string]any{"status": status})
}

func (d *tenantDAO) UpdateSender(ctx context.Context, id int64, phone string, verified bool) error {
	return d.update(ctx, id, map[string]any{
		"sender_phone":    phone,
		"sender_verified": verified,
	})
}

func (d *tenantDAO) update(ctx context.Context, id int64, values map[string]any) error {
	values["utime"] = time.Now().UnixMilli()
	affected, err := d.gw.Update(ctx, &Tenant{}, isolation.Where("id = ?", id), values)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: id = %d", errs.ErrTenantNotFound, id)
	}
	return nil
}
