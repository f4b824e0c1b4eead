package errs

import (
	"context"
	"errors"
)

// 定义统一的错误类型
var (
	ErrInvalidParameter       = errors.New("参数错误")
	ErrSendNotificationFailed = errors.New("发送通知失败")

	// 配置类错误，不重试
	ErrProviderNotConfigured = errors.New("供应商未配置")
	ErrNoAvailableProvider   = errors.New("无可用供应商")
	ErrTemplateNotFound      = errors.New("模板不存在")
	ErrInvalidTemplate       = errors.New("模板内容非法")
	ErrBalanceUnsupported    = errors.New("供应商不支持余额查询")

	// 额度错误，不重试
	ErrQuotaExceeded = errors.New("额度已经用完")

	// 租户隔离错误，说明上游代码有缺陷
	ErrTenantContextRequired = errors.New("缺少租户上下文")
	ErrGlobalEntity          = errors.New("全局实体不允许在租户上下文中访问")

	ErrTenantNotFound     = errors.New("租户不存在")
	ErrCompanyNotFound    = errors.New("公司不存在")
	ErrCompanyInactive    = errors.New("公司已停用")
	ErrContactNotFound    = errors.New("联系人不存在")
	ErrJobNotFound        = errors.New("任务不存在")
	ErrJobFinished        = errors.New("任务已经结束")
	ErrJobVersionMismatch = errors.New("任务版本不匹配")
)

// IsRetryable 判断错误能否交给队列重试。
// 只有供应商的临时故障和超时可以重试，其余都是配置、额度或者代码缺陷。
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrQuotaExceeded),
		errors.Is(err, ErrTenantContextRequired),
		errors.Is(err, ErrGlobalEntity),
		errors.Is(err, ErrTemplateNotFound),
		errors.Is(err, ErrInvalidTemplate),
		errors.Is(err, ErrInvalidParameter),
		errors.Is(err, ErrProviderNotConfigured),
		errors.Is(err, ErrCompanyNotFound),
		errors.Is(err, ErrCompanyInactive),
		errors.Is(err, ErrContactNotFound),
		errors.Is(err, ErrTenantNotFound):
		return false
	case errors.Is(err, ErrSendNotificationFailed),
		errors.Is(err, ErrNoAvailableProvider),
		errors.Is(err, context.DeadlineExceeded):
		return true
	default:
		return false
	}
}
