package domain

import (
	"fmt"

	"gitee.com/flycash/order-notifier/internal/errs"
)

// TemplateOrderReceived 订单接收通知使用的模板名
const TemplateOrderReceived = "ORDER_RECEIVED"

// Template 通知模板，TenantID 为 0 表示系统默认模板
type Template struct {
	ID       int64
	TenantID int64
	Name     string
	Type     Channel
	Subject  string
	// 包含 {{variable}} 占位符
	Content string
	// 声明需要的变量
	Variables []string
	IsDefault bool
	// Kakao AlimTalk 审核通过的模板编码
	TemplateCode string
	Ctime        int64
	Utime        int64
}

func (t Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: Name = %q", errs.ErrInvalidParameter, t.Name)
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if t.Content == "" {
		return fmt.Errorf("%w: Content 不能为空", errs.ErrInvalidParameter)
	}
	if t.Type == ChannelAlimTalk && t.TemplateCode == "" {
		return fmt.Errorf("%w: 알림톡模板必须有 TemplateCode", errs.ErrInvalidParameter)
	}
	return nil
}

// RenderedTemplate 渲染结果
type RenderedTemplate struct {
	Subject           string
	Content           string
	DeclaredVariables []string
	Kind              MessageKind
	TemplateCode      string
	// 没有被替换掉的占位符
	Unresolved []string
}
