// Package memory 非生产环境使用的供应商，消息只保存在内存里
package memory

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/service/provider"
	"github.com/gotomicro/ego/core/elog"
)

var _ provider.Provider = (*Provider)(nil)

type Provider struct {
	name string

	mu          sync.Mutex
	failureRate float64
	seq         int64
	sent        []domain.Message

	logger *elog.Component
}

// NewProvider failureRate 取值 [0, 1]，按这个概率模拟发送失败
func NewProvider(name string, failureRate float64) *Provider {
	return &Provider{
		name:        name,
		failureRate: failureRate,
		logger:      elog.DefaultLogger.With(elog.String("component", "provider.memory"), elog.String("provider", name)),
	}
}

func (p *Provider) Send(_ context.Context, msg domain.Message) (domain.SendResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failureRate > 0 && rand.Float64() < p.failureRate {
		return domain.SendResponse{}, fmt.Errorf("%w: %s 模拟失败", errs.ErrSendNotificationFailed, p.name)
	}
	p.seq++
	p.sent = append(p.sent, msg)
	p.logger.Info("模拟发送",
		elog.String("channel", msg.Channel.String()),
		elog.String("kind", string(msg.Kind)),
		elog.String("recipient", msg.Recipient))
	return domain.SendResponse{
		MessageID: fmt.Sprintf("%s-%d", p.name, p.seq),
		Provider:  p.name,
	}, nil
}

func (p *Provider) ValidateConfig() bool {
	return true
}

// SetFailureRate 运行时调整失败概率
func (p *Provider) SetFailureRate(rate float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failureRate = rate
}

// Sent 已经发送的消息副本
func (p *Provider) Sent() []domain.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	res := make([]domain.Message, len(p.sent))
	copy(res, p.sent)
	return res
}

func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = nil
}
