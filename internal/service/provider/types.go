package provider

import (
	"context"

	"gitee.com/flycash/order-notifier/internal/domain"
)

// Provider 供应商接口
//
//go:generate mockgen -source=./types.go -destination=./mocks/provider.mock.go -package=providermocks -typed Provider
type Provider interface {
	// Send 发送消息，失败时返回的错误包装了 errs.ErrSendNotificationFailed
	Send(ctx context.Context, msg domain.Message) (domain.SendResponse, error)
	// ValidateConfig 配置是否完整，不完整的供应商不会被注册
	ValidateConfig() bool
}

// BalanceQuerier 可以查询账户余额的供应商
//
//go:generate mockgen -source=./types.go -destination=./mocks/balance.mock.go -package=providermocks -typed BalanceQuerier
type BalanceQuerier interface {
	Balance(ctx context.Context) (domain.Balance, error)
}

// Selector 供应商选择器接口
type Selector interface {
	// Next 获取下一个供应商，无可用供应商时返回错误
	Next(ctx context.Context, msg domain.Message) (Provider, error)
}

// SelectorBuilder 供应商选择器的构造器
type SelectorBuilder interface {
	// Build 每次发送都构造一个新的选择器
	Build() (Selector, error)
}
