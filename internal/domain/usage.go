package domain

import "time"

// KST 计费周期和订单日期都按韩国时间，韩国没有夏令时
var KST = time.FixedZone("KST", 9*60*60)

// UsageType 计量类型
type UsageType string

const (
	UsageEmail   UsageType = "EMAIL"
	UsageSMS     UsageType = "SMS"
	UsageKakao   UsageType = "KAKAO"
	UsageAPICall UsageType = "API_CALL"
	UsageStorage UsageType = "STORAGE"
)

func (u UsageType) String() string {
	return string(u)
}

// UsageTypes 全部计量类型，重置月度额度时会用到
var UsageTypes = []UsageType{UsageEmail, UsageSMS, UsageKakao, UsageAPICall, UsageStorage}

// Granularity 计量周期
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityTotal Granularity = "total"
)

// UnlimitedQuota 不限量
const UnlimitedQuota int64 = -1

type WarningLevel string

const (
	WarningNone     WarningLevel = "none"
	WarningWarning  WarningLevel = "warning"
	WarningCritical WarningLevel = "critical"
	WarningExceeded WarningLevel = "exceeded"
)

// WarningLevelOf 根据使用百分比计算告警级别
func WarningLevelOf(percentage float64) WarningLevel {
	switch {
	case percentage >= 100:
		return WarningExceeded
	case percentage >= 95:
		return WarningCritical
	case percentage >= 80:
		return WarningWarning
	default:
		return WarningNone
	}
}

// LimitStatus 额度检查结果
type LimitStatus struct {
	Allowed         bool
	CurrentUsage    int64
	Limit           int64
	UsagePercentage float64
	WarningLevel    WarningLevel
	Message         string
}
