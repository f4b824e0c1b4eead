package provider

import (
	"context"
	"fmt"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"github.com/gotomicro/ego/core/elog"
)

// Registry 启动时确定每个渠道使用的供应商，之后只读
type Registry struct {
	providers     map[domain.Channel]Provider
	balance       BalanceQuerier
	defaultSender string
	logger        *elog.Component
}

// NewRegistry 配置不完整或者为 nil 的供应商会被忽略，对应渠道视为未配置。
// balance 可以为 nil
func NewRegistry(defaultSender string, providers map[domain.Channel]Provider, balance BalanceQuerier) *Registry {
	r := &Registry{
		providers:     make(map[domain.Channel]Provider, len(providers)),
		balance:       balance,
		defaultSender: defaultSender,
		logger:        elog.DefaultLogger.With(elog.String("component", "provider.registry")),
	}
	for ch, p := range providers {
		if p == nil {
			continue
		}
		if !p.ValidateConfig() {
			r.logger.Warn("供应商配置不完整，跳过", elog.String("channel", ch.String()))
			continue
		}
		r.providers[ch] = p
	}
	return r
}

// Get 渠道没有可用供应商时返回 errs.ErrProviderNotConfigured
func (r *Registry) Get(ch domain.Channel) (Provider, error) {
	p, ok := r.providers[ch]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrProviderNotConfigured, ch)
	}
	return p, nil
}

// Configured 渠道是否有可用供应商
func (r *Registry) Configured(ch domain.Channel) bool {
	_, ok := r.providers[ch]
	return ok
}

// SenderNumber 租户验证过的号码优先，否则使用系统默认号码
func (r *Registry) SenderNumber(t domain.Tenant) string {
	if sender := t.VerifiedSender(); sender != "" {
		return sender
	}
	return r.defaultSender
}

// SMSBalance 查询短信账户余额
func (r *Registry) SMSBalance(ctx context.Context) (domain.Balance, error) {
	if r.balance == nil {
		return domain.Balance{}, fmt.Errorf("%w: %s", errs.ErrBalanceUnsupported, domain.ChannelSMS)
	}
	return r.balance.Balance(ctx)
}
