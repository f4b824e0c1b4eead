package usage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/repository/cache"
	"github.com/gotomicro/ego/core/elog"
)

//go:generate mockgen -source=./usage.go -destination=./mocks/usage.mock.go -package=usagemocks -typed Service
type Service interface {
	// Increment 同时累加日、月、总计三个计数器
	Increment(ctx context.Context, tenantID int64, typ domain.UsageType, amount int64, metadata map[string]string) error
	Current(ctx context.Context, tenantID int64, typ domain.UsageType, g domain.Granularity) (int64, error)
	// CheckLimit 用当月用量和套餐额度比较
	CheckLimit(ctx context.Context, tenantID int64, typ domain.UsageType) (domain.LimitStatus, error)
	// ResetMonthlyUsage 清空当月所有计量类型
	ResetMonthlyUsage(ctx context.Context, tenantID int64) error
	// DeleteAllUsage 删除租户的全部计数器，租户注销时使用
	DeleteAllUsage(ctx context.Context, tenantID int64) error
}

type Ledger struct {
	cache  cache.UsageCache
	plans  PlanResolver
	now    func() time.Time
	logger *elog.Component
}

func NewLedger(c cache.UsageCache, plans PlanResolver) *Ledger {
	return &Ledger{
		cache:  c,
		plans:  plans,
		now:    time.Now,
		logger: elog.DefaultLogger.With(elog.String("component", "usage")),
	}
}

func (l *Ledger) Increment(ctx context.Context, tenantID int64, typ domain.UsageType, amount int64, metadata map[string]string) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount = %d", errs.ErrInvalidParameter, amount)
	}
	vals, err := l.cache.IncrBy(ctx, cache.Buckets(tenantID, typ, l.now()), amount)
	if err != nil {
		return err
	}
	l.logger.Debug("记录用量",
		elog.Int64("tenantId", tenantID),
		elog.String("type", typ.String()),
		elog.Int64("amount", amount),
		elog.Any("counters", vals),
		elog.Any("metadata", metadata))
	return nil
}

func (l *Ledger) Current(ctx context.Context, tenantID int64, typ domain.UsageType, g domain.Granularity) (int64, error) {
	return l.cache.Get(ctx, cache.Key(tenantID, typ, g, l.now()))
}

func (l *Ledger) CheckLimit(ctx context.Context, tenantID int64, typ domain.UsageType) (domain.LimitStatus, error) {
	limit, err := l.plans.Limit(ctx, tenantID, typ)
	if errors.Is(err, errs.ErrTenantNotFound) {
		return domain.LimitStatus{
			Allowed:         false,
			UsagePercentage: 100,
			WarningLevel:    domain.WarningExceeded,
			Message:         "테넌트를 찾을 수 없습니다.",
		}, nil
	}
	if err != nil {
		return domain.LimitStatus{}, err
	}
	current, err := l.Current(ctx, tenantID, typ, domain.GranularityMonth)
	if err != nil {
		return domain.LimitStatus{}, err
	}
	return limitStatus(typ, current, limit), nil
}

func (l *Ledger) ResetMonthlyUsage(ctx context.Context, tenantID int64) error {
	now := l.now()
	keys := make([]string, 0, len(domain.UsageTypes))
	for _, typ := range domain.UsageTypes {
		keys = append(keys, cache.MonthKey(tenantID, typ, now))
	}
	return l.cache.Delete(ctx, keys...)
}

func (l *Ledger) DeleteAllUsage(ctx context.Context, tenantID int64) error {
	cnt, err := l.cache.DeleteByPrefix(ctx, cache.TenantPrefix(tenantID))
	if err != nil {
		return err
	}
	l.logger.Info("删除租户用量", elog.Int64("tenantId", tenantID), elog.Int64("keys", cnt))
	return nil
}

func limitStatus(typ domain.UsageType, current, limit int64) domain.LimitStatus {
	if limit == domain.UnlimitedQuota {
		return domain.LimitStatus{
			Allowed:      true,
			CurrentUsage: current,
			Limit:        limit,
			WarningLevel: domain.WarningNone,
		}
	}
	pct := float64(100)
	if limit > 0 {
		pct = math.Min(float64(current)*100/float64(limit), 100)
	}
	level := domain.WarningLevelOf(pct)
	return domain.LimitStatus{
		Allowed:         pct < 100,
		CurrentUsage:    current,
		Limit:           limit,
		UsagePercentage: pct,
		WarningLevel:    level,
		Message:         message(typ, level, pct),
	}
}

func message(typ domain.UsageType, level domain.WarningLevel, pct float64) string {
	switch level {
	case domain.WarningExceeded:
		return fmt.Sprintf("이번 달 %s 발송 한도를 모두 사용했습니다. 요금제를 업그레이드해 주세요.", typ)
	case domain.WarningCritical, domain.WarningWarning:
		return fmt.Sprintf("이번 달 %s 사용량이 한도의 %.0f%%에 도달했습니다.", typ, pct)
	default:
		return ""
	}
}
