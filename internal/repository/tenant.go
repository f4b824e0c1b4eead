package repository

import (
	"context"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/repository/dao"
)

type TenantRepository interface {
	Create(ctx context.Context, t domain.Tenant) (domain.Tenant, error)
	GetByID(ctx context.Context, id int64) (domain.Tenant, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TenantStatus) error
	UpdateSender(ctx context.Context, id int64, phone string, verified bool) error
}

type tenantRepository struct {
	dao dao.TenantDAO
}

func NewTenantRepository(d dao.TenantDAO) TenantRepository {
	return &tenantRepository{dao: d}
}

func (r *tenantRepository) Create(ctx context.Context, t domain.Tenant) (domain.Tenant, error) {
	created, err := r.dao.Create(ctx, dao.Tenant{
		Name:           t.Name,
		Plan:           string(t.Plan),
		Status:         string(t.Status),
		SenderPhone:    t.SenderPhone,
		SenderVerified: t.SenderVerified,
	})
	if err != nil {
		return domain.Tenant{}, err
	}
	return r.toDomain(created), nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id int64) (domain.Tenant, error) {
	t, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Tenant{}, err
	}
	return r.toDomain(t), nil
}

func (r *tenantRepository) UpdateStatus(ctx context.Context, id int64, status domain.TenantStatus) error {
	return r.dao.UpdateStatus(ctx, id, string(status))
}

func (r *tenantRepository) UpdateSender(ctx context.Context, id int64, phone string, verified bool) error {
	return r.dao.UpdateSender(ctx, id, phone, verified)
}

func (r *tenantRepository) toDomain(t dao.Tenant) domain.Tenant {
	return domain.Tenant{
		ID:             t.ID,
		Name:           t.Name,
		Plan:           domain.Plan(t.Plan),
		Status:         domain.TenantStatus(t.Status),
		SenderPhone:    t.SenderPhone,
		SenderVerified: t.SenderVerified,
		Ctime:          t.Ctime,
		Utime:          t.Utime,
	}
}
