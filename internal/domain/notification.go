package domain

import (
	"fmt"

	"gitee.com/flycash/order-notifier/internal/errs"
)

// LogStatus 发送记录状态
type LogStatus string

const (
	LogStatusSent   LogStatus = "SENT"
	LogStatusFailed LogStatus = "FAILED"
)

func (s LogStatus) String() string {
	return string(s)
}

// NotificationLog 一次发送的审计记录，写入后不再修改
type NotificationLog struct {
	ID           uint64
	TenantID     int64
	Channel      Channel
	Recipient    string
	Content      string
	Status       LogStatus
	Error        string
	Provider     string
	MessageID    string
	FailoverUsed bool
	EmailLogID   string
	CompanyID    int64
	ContactID    int64
	JobID        uint64
	Ctime        int64
}

// DispatchRequest 一次逻辑通知
type DispatchRequest struct {
	Channel   Channel
	Recipient string
	// 为空时直接使用 Message
	TemplateName string
	TemplateCode string
	Variables    map[string]string
	Message      string
	Subject      string
	CompanyID    int64
	// 不为 0 时从联系人上读取 SMS 开关
	ContactID int64
	// 没有 ContactID 时由调用方声明联系人是否开启了 SMS
	SMSEnabled     bool
	EmailLogID     string
	JobID          uint64
	EnableFailover bool
}

func (r DispatchRequest) Validate() error {
	if err := r.Channel.Validate(); err != nil {
		return err
	}
	if r.Recipient == "" {
		return fmt.Errorf("%w: Recipient 不能为空", errs.ErrInvalidParameter)
	}
	if r.TemplateName == "" && r.Message == "" {
		return fmt.Errorf("%w: TemplateName 和 Message 不能同时为空", errs.ErrInvalidParameter)
	}
	return nil
}

// DispatchResult 分发结果，供应商错误只会体现在这里
type DispatchResult struct {
	Success           bool
	MessageID         string
	Provider          string
	FailoverUsed      bool
	FailoverAttempted bool
	QuotaExceeded     bool
	// 失败原因是供应商的临时故障，可以交给队列重试
	Retryable bool
	Error     string
	Content   string
	LogID     uint64
}

// Covered 这个联系人是否已经被这次尝试覆盖，覆盖之后不能再单独发 SMS
func (r DispatchResult) Covered() bool {
	return r.Success || r.FailoverAttempted
}

// ContactResult 订单通知中单个联系人的结果
type ContactResult struct {
	ContactID int64
	Kakao     *DispatchResult
	SMS       *DispatchResult
}

// OrderResult 订单通知结果
type OrderResult struct {
	// 同一个 emailLogID 已经发送过
	Skipped  bool
	Contacts []ContactResult
}
