package domain

// Plan 订阅套餐，决定各计量类型的额度
type Plan string

const (
	PlanFree         Plan = "FREE"
	PlanBasic        Plan = "BASIC"
	PlanProfessional Plan = "PRO"
	PlanEnterprise   Plan = "ENTERPRISE"
)

type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "ACTIVE"
	TenantStatusTrial     TenantStatus = "TRIAL"
	TenantStatusPastDue   TenantStatus = "PAST_DUE"
	TenantStatusCancelled TenantStatus = "CANCELLED"
)

// Tenant 租户，不会被物理删除，只会变更状态
type Tenant struct {
	ID     int64
	Name   string
	Plan   Plan
	Status TenantStatus
	// 租户自己的发信号码，只有验证过才会使用
	SenderPhone    string
	SenderVerified bool
	Ctime          int64
	Utime          int64
}

// VerifiedSender 返回可用的发信号码，未验证时返回空串
func (t Tenant) VerifiedSender() string {
	if t.SenderVerified && t.SenderPhone != "" {
		return t.SenderPhone
	}
	return ""
}
