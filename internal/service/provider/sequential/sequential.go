package sequential

import (
	"context"
	"errors"
	"fmt"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/service/provider"
	"github.com/hashicorp/go-multierror"
)

var (
	_ provider.Selector        = (*selector)(nil)
	_ provider.SelectorBuilder = (*SelectorBuilder)(nil)
	_ provider.Provider        = (*Provider)(nil)
)

// selector 供应商顺序选择器
type selector struct {
	idx       int
	providers []provider.Provider
}

func (r *selector) Next(_ context.Context, _ domain.Message) (provider.Provider, error) {
	if len(r.providers) == r.idx {
		return nil, fmt.Errorf("%w", errs.ErrNoAvailableProvider)
	}

	p := r.providers[r.idx]
	r.idx++
	return p, nil
}

type SelectorBuilder struct {
	providers []provider.Provider
}

// NewSelectorBuilder 配置不完整的供应商不参与选择
func NewSelectorBuilder(providers []provider.Provider) *SelectorBuilder {
	valid := make([]provider.Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil && p.ValidateConfig() {
			valid = append(valid, p)
		}
	}
	return &SelectorBuilder{providers: valid}
}

func (s *SelectorBuilder) Build() (provider.Selector, error) {
	return &selector{
		providers: s.providers,
	}, nil
}

// Provider 按顺序尝试多个供应商，第一个成功的结果为准
type Provider struct {
	builder *SelectorBuilder
}

func NewProvider(builder *SelectorBuilder) *Provider {
	return &Provider{builder: builder}
}

func (p *Provider) Send(ctx context.Context, msg domain.Message) (domain.SendResponse, error) {
	sel, err := p.builder.Build()
	if err != nil {
		return domain.SendResponse{}, err
	}
	var sendErr error
	for {
		next, err := sel.Next(ctx, msg)
		if errors.Is(err, errs.ErrNoAvailableProvider) {
			if sendErr == nil {
				return domain.SendResponse{}, err
			}
			return domain.SendResponse{}, fmt.Errorf("%w: %w", errs.ErrSendNotificationFailed, sendErr)
		}
		if err != nil {
			return domain.SendResponse{}, err
		}
		resp, err := next.Send(ctx, msg)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return domain.SendResponse{}, multierror.Append(sendErr, err)
		}
		sendErr = multierror.Append(sendErr, err)
	}
}

func (p *Provider) ValidateConfig() bool {
	return len(p.builder.providers) > 0
}
