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

// Company 客户公司表
type Company struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`
	TenantOwned
	Name   string `gorm:"type:VARCHAR(128);NOT NULL"`
	Region string `gorm:"type:VARCHAR(64)"`
	// 发送订单邮件的邮箱，邮件接入方用它匹配公司
	Email  string `gorm:"type:VARCHAR(256);index"`
	Active bool   `gorm:"NOT NULL"`
	Ctime  int64
	Utime  int64
}

func (Company) TableName() string {
	return "companies"
}

// Contact 公司联系人表
type Contact struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`
	TenantOwned
	CompanyID    int64  `gorm:"type:BIGINT;NOT NULL;index"`
	Name         string `gorm:"type:VARCHAR(64)"`
	Phone        string `gorm:"type:VARCHAR(32);NOT NULL"`
	Email        string `gorm:"type:VARCHAR(256)"`
	SMSEnabled   bool   `gorm:"column:sms_enabled;NOT NULL"`
	KakaoEnabled bool   `gorm:"column:kakao_enabled;NOT NULL"`
	Active       bool   `gorm:"NOT NULL"`
	Ctime        int64
	Utime        int64
}

func (Contact) TableName() string {
	return "contacts"
}

type CompanyDAO interface {
	Create(ctx context.Context, c Company) (Company, error)
	GetByID(ctx context.Context, id int64) (Company, error)
	FindByEmail(ctx context.Context, email string) (Company, error)
	Update(ctx context.Context, c Company) error
	// Delete 同时删除公司下的联系人
	Delete(ctx context.Context, id int64) error

	CreateContact(ctx context.Context, c Contact) (Contact, error)
	GetContact(ctx context.Context, id int64) (Contact, error)
	FindActiveContacts(ctx context.Context, companyID int64) ([]Contact, error)
	UpdateContact(ctx context.Context, c Contact) error
	DeleteContact(ctx context.Context, id int64) error
}

type companyDAO struct {
	gw *isolation.Gateway
}

func NewCompanyDAO(gw *isolation.Gateway) CompanyDAO {
	return &companyDAO{gw: gw}
}

func (d *companyDAO) Create(ctx context.Context, c Company) (Company, error) {
	now := time.Now().UnixMilli()
	c.Ctime, c.Utime = now, now
	err := d.gw.Create(ctx, &c)
	return c, err
}

func (d *companyDAO) GetByID(ctx context.Context, id int64) (Company, error) {
	var c Company
	err := d.gw.First(ctx, &c, isolation.Where("id = ?", id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Company{}, fmt.Errorf("%w: id = %d", errs.ErrCompanyNotFound, id)
	}
	return c, err
}

func (d *companyDAO) FindByEmail(ctx context.Context, email string) (Company, error) {
	var c Company
	err := d.gw.First(ctx, &c, isolation.Where("email = ? AND active = ?", email, true))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Company{}, fmt.Errorf("%w: email = %s", errs.ErrCompanyNotFound, email)
	}
	return c, err
}

func (d *companyDAO) Update(ctx context.Context, c Company) error {
	affected, err := d.gw.Update(ctx, &Company{}, isolation.Where("id = ?", c.ID), map[string]any{
		"name":   c.Name,
		"region": c.Region,
		"email":  c.Email,
		"active": c.Active,
		"utime":  time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: id = %d", errs.ErrCompanyNotFound, c.ID)
	}
	return nil
}

func (d *companyDAO) Delete(ctx context.Context, id int64) error {
	affected, err := d.gw.Delete(ctx, &Company{}, isolation.Where("id = ?", id))
	if err != nil || affected == 0 {
		return err
	}
	_, err = d.gw.Delete(ctx, &Contact{}, isolation.Where("company_id = ?", id))
	return err
}

func (d *companyDAO) CreateContact(ctx context.Context, c Contact) (Contact, error) {
	// 联系人只能挂在本租户的公司下面
	if _, err := d.GetByID(ctx, c.CompanyID); err != nil {
		return Contact{}, err
	}
	now := time.Now().UnixMilli()
	c.Ctime, c.Utime = now, now
	err := d.gw.Create(ctx, &c)
	return c, err
}

func (d *companyDAO) GetContact(ctx context.Context, id int64) (Contact, error) {
	var c Contact
	err := d.gw.First(ctx, &c, isolation.Where("id = ?", id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Contact{}, fmt.Errorf("%w: id = %d", errs.ErrContactNotFound, id)
	}
	return c, err
}

func (d *companyDAO) FindActiveContacts(ctx context.Context, companyID int64) ([]Contact, error) {
	var res []Contact
	err := d.gw.Find(ctx, &res, isolation.Query{
		Where: "company_id = ? AND active = ?",
		Args:  []any{companyID, true},
		Order: "id ASC",
	})
	return res, err
}

func (d *companyDAO) UpdateContact(ctx context.Context, c Contact) error {
	affected, err := d.gw.Update(ctx, &Contact{}, isolation.Where("id = ?", c.ID), map[string]any{
		"name":          c.Name,
		"phone":         c.Phone,
		"email":         c.Email,
		"sms_enabled":   c.SMSEnabled,
		"kakao_enabled": c.KakaoEnabled,
		"active":        c.Active,
		"utime":         time.Now().UnixMilli(),
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: id = %d", errs.ErrContactNotFound, c.ID)
	}
	return nil
}

func (d *companyDAO) DeleteContact(ctx context.Context, id int64) error {
	_, err := d.gw.Delete(ctx, &Contact{}, isolation.Where("id = ?", id))
	return err
}
