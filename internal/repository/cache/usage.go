package cache

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/order-notifier/internal/domain"
)

const (
	UsagePrefix = "usage"

	DayTTL   = 48 * time.Hour
	MonthTTL = 35 * 24 * time.Hour
)

// Bucket 一个计数器，TTL 为 0 表示不过期
type Bucket struct {
	Key string
	TTL time.Duration
}

// UsageCache 用量计数器，IncrBy 必须是原子的
type UsageCache interface {
	// IncrBy 对所有 bucket 加上 amount，返回每个 bucket 加完之后的值
	IncrBy(ctx context.Context, buckets []Bucket, amount int64) ([]int64, error)
	// Get 不存在时返回 0
	Get(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, keys ...string) error
	// DeleteByPrefix 返回删除的数量
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)
}

// TenantPrefix 某个租户全部计数器的前缀
func TenantPrefix(tenantID int64) string {
	return fmt.Sprintf("%s:%d:", UsagePrefix, tenantID)
}

// DayKey 日期按 KST 切分，和服务器时区无关
func DayKey(tenantID int64, typ domain.UsageType, t time.Time) string {
	return fmt.Sprintf("%s%s:day:%s", TenantPrefix(tenantID), typ, t.In(domain.KST).Format(time.DateOnly))
}

func MonthKey(tenantID int64, typ domain.UsageType, t time.Time) string {
	return fmt.Sprintf("%s%s:month:%s", TenantPrefix(tenantID), typ, t.In(domain.KST).Format("2006-01"))
}

func TotalKey(tenantID int64, typ domain.UsageType) string {
	return fmt.Sprintf("%s%s:total", TenantPrefix(tenantID), typ)
}

// Key 指定周期的计数器
func Key(tenantID int64, typ domain.UsageType, g domain.Granularity, t time.Time) string {
	switch g {
	case domain.GranularityDay:
		return DayKey(tenantID, typ, t)
	case domain.GranularityTotal:
		return TotalKey(tenantID, typ)
	default:
		return MonthKey(tenantID, typ, t)
	}
}

// Buckets 一次用量需要同时累加的三个计数器
func Buckets(tenantID int64, typ domain.UsageType, t time.Time) []Bucket {
	return []Bucket{
		{Key: DayKey(tenantID, typ, t), TTL: DayTTL},
		{Key: MonthKey(tenantID, typ, t), TTL: MonthTTL},
		{Key: TotalKey(tenantID, typ)},
	}
}
