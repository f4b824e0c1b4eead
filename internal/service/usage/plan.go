package usage

import (
	"context"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/repository"
)

// PlanLimits 各套餐每月的额度，-1 表示不限量，没有列出的类型额度为 0
var PlanLimits = map[domain.Plan]map[domain.UsageType]int64{
	domain.PlanFree: {
		domain.UsageEmail:   100,
		domain.UsageSMS:     50,
		domain.UsageKakao:   50,
		domain.UsageAPICall: 0,
		domain.UsageStorage: 100,
	},
	domain.PlanBasic: {
		domain.UsageEmail:   1000,
		domain.UsageSMS:     500,
		domain.UsageKakao:   500,
		domain.UsageAPICall: 0,
		domain.UsageStorage: 1024,
	},
	domain.PlanProfessional: {
		domain.UsageEmail:   10000,
		domain.UsageSMS:     5000,
		domain.UsageKakao:   5000,
		domain.UsageAPICall: 10000,
		domain.UsageStorage: 10240,
	},
	domain.PlanEnterprise: {
		domain.UsageEmail:   domain.UnlimitedQuota,
		domain.UsageSMS:     domain.UnlimitedQuota,
		domain.UsageKakao:   domain.UnlimitedQuota,
		domain.UsageAPICall: domain.UnlimitedQuota,
		domain.UsageStorage: domain.UnlimitedQuota,
	},
}

// PlanResolver 查询租户某个计量类型的月度额度。
// 租户不存在时返回 errs.ErrTenantNotFound
type PlanResolver interface {
	Limit(ctx context.Context, tenantID int64, typ domain.UsageType) (int64, error)
}

// LimitOf 套餐的额度，未知套餐按 FREE 处理
func LimitOf(plan domain.Plan, typ domain.UsageType) int64 {
	limits, ok := PlanLimits[plan]
	if !ok {
		limits = PlanLimits[domain.PlanFree]
	}
	return limits[typ]
}

type tenantPlanResolver struct {
	repo repository.TenantRepository
}

// NewTenantPlanResolver 从租户表读取套餐
func NewTenantPlanResolver(repo repository.TenantRepository) PlanResolver {
	return &tenantPlanResolver{repo: repo}
}

func (r *tenantPlanResolver) Limit(ctx context.Context, tenantID int64, typ domain.UsageType) (int64, error) {
	t, err := r.repo.GetByID(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	return LimitOf(t.Plan, typ), nil
}

// PlanResolverFunc 方便测试和静态配置
type PlanResolverFunc func(ctx context.Context, tenantID int64, typ domain.UsageType) (int64, error)

func (f PlanResolverFunc) Limit(ctx context.Context, tenantID int64, typ domain.UsageType) (int64, error) {
	return f(ctx, tenantID, typ)
}
