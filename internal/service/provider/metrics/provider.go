// Package metrics 为供应商实现添加指标收集的装饰器
package metrics

import (
	"context"
	"time"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/service/provider"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

var (
	sendDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "provider_send_duration_seconds",
			Help:       "供应商发送耗时统计（秒）",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.005, 0.99: 0.001},
			MaxAge:     time.Minute * 5,
		},
		[]string{"provider", "channel", "status"},
	)

	sendCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_send_total",
			Help: "供应商发送次数",
		},
		[]string{"provider", "channel", "kind", "status"},
	)
)

func init() {
	prometheus.MustRegister(sendDuration, sendCounter)
}

var _ provider.Provider = (*Provider)(nil)

// Provider 为供应商实现添加指标收集的装饰器
type Provider struct {
	provider provider.Provider
	name     string
}

func NewProvider(name string, p provider.Provider) *Provider {
	return &Provider{
		provider: p,
		name:     name,
	}
}

func (p *Provider) Send(ctx context.Context, msg domain.Message) (domain.SendResponse, error) {
	start := time.Now()
	resp, err := p.provider.Send(ctx, msg)
	status := statusSuccess
	if err != nil {
		status = statusFailure
	}
	sendDuration.WithLabelValues(p.name, msg.Channel.String(), status).Observe(time.Since(start).Seconds())
	sendCounter.WithLabelValues(p.name, msg.Channel.String(), string(msg.Kind), status).Inc()
	return resp, err
}

func (p *Provider) ValidateConfig() bool {
	return p.provider.ValidateConfig()
}
