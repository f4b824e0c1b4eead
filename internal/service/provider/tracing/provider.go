package tracing

import (
	"context"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/pkg/tenant"
	"gitee.com/flycash/order-notifier/internal/service/provider"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ provider.Provider = (*Provider)(nil)

// Provider 为供应商实现添加链路追踪的装饰器
type Provider struct {
	provider provider.Provider
	name     string
	tracer   trace.Tracer
}

func NewProvider(name string, p provider.Provider) *Provider {
	return &Provider{
		provider: p,
		name:     name,
		tracer:   otel.Tracer("order-notifier/provider"),
	}
}

func (p *Provider) Send(ctx context.Context, msg domain.Message) (domain.SendResponse, error) {
	ctx, span := p.tracer.Start(ctx, "Provider.Send",
		trace.WithAttributes(
			attribute.String("provider.name", p.name),
			attribute.String("message.channel", msg.Channel.String()),
			attribute.String("message.kind", string(msg.Kind)),
			attribute.Int64("tenant.id", tenant.ID(ctx)),
		))
	defer span.End()

	resp, err := p.provider.Send(ctx, msg)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.String("message.id", resp.MessageID))
	}

	return resp, err
}

func (p *Provider) ValidateConfig() bool {
	return p.provider.ValidateConfig()
}
