package kakao

import (
	"context"
	"fmt"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/service/provider"
)

const (
	alimTalkPath   = "/v2/alimtalk/send"
	friendTalkPath = "/v2/friendtalk/send"
)

var (
	_ provider.Provider = (*AlimTalkProvider)(nil)
	_ provider.Provider = (*FriendTalkProvider)(nil)
)

// AlimTalkProvider AlimTalk，只能发送审核通过的模板
type AlimTalkProvider struct {
	name   string
	client *Client
}

func NewAlimTalkProvider(name string, c *Client) *AlimTalkProvider {
	return &AlimTalkProvider{name: name, client: c}
}

func (p *AlimTalkProvider) Send(ctx context.Context, msg domain.Message) (domain.SendResponse, error) {
	if msg.TemplateCode == "" {
		return domain.SendResponse{}, fmt.Errorf("%w: 알림톡 缺少 TemplateCode", errs.ErrInvalidParameter)
	}
	id, err := p.client.send(ctx, alimTalkPath, sendRequest{
		TemplateCode: msg.TemplateCode,
		RecipientNo:  msg.Recipient,
		Content:      msg.Content,
	})
	if err != nil {
		return domain.SendResponse{}, fmt.Errorf("%w: %s: %w", errs.ErrSendNotificationFailed, p.name, err)
	}
	return domain.SendResponse{MessageID: id, Provider: p.name}, nil
}

func (p *AlimTalkProvider) ValidateConfig() bool {
	return p.client.configured()
}

// FriendTalkProvider FriendTalk，自由文本，只能发给加了好友的用户
type FriendTalkProvider struct {
	name   string
	client *Client
}

func NewFriendTalkProvider(name string, c *Client) *FriendTalkProvider {
	return &FriendTalkProvider{name: name, client: c}
}

func (p *FriendTalkProvider) Send(ctx context.Context, msg domain.Message) (domain.SendResponse, error) {
	id, err := p.client.send(ctx, friendTalkPath, sendRequest{
		RecipientNo: msg.Recipient,
		Content:     msg.Content,
	})
	if err != nil {
		return domain.SendResponse{}, fmt.Errorf("%w: %s: %w", errs.ErrSendNotificationFailed, p.name, err)
	}
	return domain.SendResponse{MessageID: id, Provider: p.name}, nil
}

func (p *FriendTalkProvider) ValidateConfig() bool {
	return p.client.configured()
}
