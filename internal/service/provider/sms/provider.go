package sms

import (
	"context"
	"fmt"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/service/provider"
	"gitee.com/flycash/order-notifier/internal/service/provider/sms/client"
)

var (
	_ provider.Provider       = (*Provider)(nil)
	_ provider.BalanceQuerier = (*Provider)(nil)
)

// Config 模板类平台需要一个只有 content 参数的透传模板
type Config struct {
	SignName   string `yaml:"signName"`
	TemplateID string `yaml:"templateId"`
	// 直接下发文本的平台不需要模板
	Direct bool `yaml:"direct"`
}

// Provider SMS供应商
type Provider struct {
	name   string
	cfg    Config
	client client.Client
}

func NewProvider(name string, cfg Config, c client.Client) *Provider {
	return &Provider{
		name:   name,
		cfg:    cfg,
		client: c,
	}
}

func (p *Provider) Name() string {
	return p.name
}

// Send 发送短信
func (p *Provider) Send(ctx context.Context, msg domain.Message) (domain.SendResponse, error) {
	kind := msg.Kind
	if kind == "" {
		kind = domain.KindSMS
	}
	resp, err := p.client.Send(ctx, client.SendReq{
		PhoneNumbers:  []string{msg.Recipient},
		Sender:        msg.Sender,
		Subject:       msg.Subject,
		Content:       msg.Content,
		Kind:          string(kind),
		SignName:      p.cfg.SignName,
		TemplateID:    p.cfg.TemplateID,
		TemplateParam: map[string]string{"content": msg.Content},
	})
	if err != nil {
		return domain.SendResponse{}, fmt.Errorf("%w: %s: %w", errs.ErrSendNotificationFailed, p.name, err)
	}

	if len(resp.PhoneNumbers) == 0 {
		return domain.SendResponse{}, fmt.Errorf("%w: %s: 没有发送结果", errs.ErrSendNotificationFailed, p.name)
	}
	messageID := resp.RequestID
	for _, status := range resp.PhoneNumbers {
		if status.Code != client.OK {
			return domain.SendResponse{}, fmt.Errorf("%w: %s: Code = %s, Message = %s",
				errs.ErrSendNotificationFailed, p.name, status.Code, status.Message)
		}
		if status.SerialNo != "" {
			messageID = status.SerialNo
		}
	}

	return domain.SendResponse{
		MessageID: messageID,
		Provider:  p.name,
	}, nil
}

func (p *Provider) ValidateConfig() bool {
	if p.client == nil {
		return false
	}
	return p.cfg.Direct || (p.cfg.SignName != "" && p.cfg.TemplateID != "")
}

func (p *Provider) Balance(ctx context.Context) (domain.Balance, error) {
	resp, err := p.client.Balance(ctx)
	if err != nil {
		return domain.Balance{}, err
	}
	return domain.Balance{
		Provider: p.name,
		Amount:   resp.Amount,
		Unit:     resp.Unit,
	}, nil
}
