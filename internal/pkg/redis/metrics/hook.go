// Package metrics 为 Redis 客户端添加指标收集的 Hook
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	// 管道里面的命令用这个作为命令名
	pipelineCommand = "pipeline"
)

var (
	commandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_command_duration_seconds",
			Help:    "Redis 命令执行耗时（秒）",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"command", "keyspace", "status"},
	)

	pipelineSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "redis_pipeline_commands",
			Help:    "每个 Redis 管道包含的命令数",
			Buckets: prometheus.LinearBuckets(1, 2, 8),
		},
	)

	dialCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_dial_total",
			Help: "Redis 建立连接次数",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(commandDuration, pipelineSize, dialCounter)
}

var _ redis.Hook = (*Hook)(nil)

// Hook keyspace 取 key 的第一段，例如 usage:1:SMS:day:2024-05-20 记为 usage
type Hook struct{}

func NewHook() *Hook {
	return &Hook{}
}

func (h *Hook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		commandDuration.WithLabelValues(cmd.Name(), keyspace(cmd), status(err)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

func (h *Hook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		if len(cmds) == 0 {
			return err
		}
		st := status(err)
		for _, cmd := range cmds {
			if status(cmd.Err()) == statusError {
				st = statusError
				break
			}
		}
		// MULTI/EXEC 包裹时第二个命令才是业务命令
		ks := keyspace(cmds[0])
		if len(cmds) > 1 {
			ks = keyspace(cmds[1])
		}
		commandDuration.WithLabelValues(pipelineCommand, ks, st).Observe(time.Since(start).Seconds())
		pipelineSize.Observe(float64(len(cmds)))
		return err
	}
}

func (h *Hook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		dialCounter.WithLabelValues(status(err)).Inc()
		return conn, err
	}
}

// WithMetrics 给客户端挂上指标 Hook
func WithMetrics(client *redis.Client) *redis.Client {
	client.AddHook(NewHook())
	return client
}

func status(err error) string {
	if err != nil && !errors.Is(err, redis.Nil) {
		return statusError
	}
	return statusSuccess
}

func keyspace(cmd redis.Cmder) string {
	args := cmd.Args()
	if len(args) < 2 {
		return ""
	}
	key := fmt.Sprint(args[1])
	if idx := strings.IndexByte(key, ':'); idx > 0 {
		return key[:idx]
	}
	return key
}
