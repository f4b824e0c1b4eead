package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestKeyspace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	testCases := []struct {
		name string
		cmd  redis.Cmder
		want string
	}{
		{name: "用量计数", cmd: redis.NewIntCmd(ctx, "incrby", "usage:1:SMS:day:2024-05-20", 1), want: "usage"},
		{name: "没有分隔符", cmd: redis.NewStringCmd(ctx, "get", "plain"), want: "plain"},
		{name: "没有 key", cmd: redis.NewStatusCmd(ctx, "ping"), want: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, keyspace(tc.cmd))
		})
	}
}

func TestHook_ProcessHook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := NewHook()

	process := h.ProcessHook(func(context.Context, redis.Cmder) error { return redis.Nil })
	cmd := redis.NewStringCmd(ctx, "get", "hooktest:missing")
	assert.ErrorIs(t, process(ctx, cmd), redis.Nil)

	process = h.ProcessHook(func(context.Context, redis.Cmder) error { return errors.New("conn reset") })
	assert.Error(t, process(ctx, redis.NewStringCmd(ctx, "get", "hooktest:broken")))

	// redis.Nil 不算失败，两次调用各记一条
	assert.Equal(t, 2, testutil.CollectAndCount(commandDuration))
}

func TestStatus(t *testing.T) {
	t.Parallel()
	assert.Equal(t, statusSuccess, status(nil))
	assert.Equal(t, statusSuccess, status(redis.Nil))
	assert.Equal(t, statusError, status(errors.New("boom")))
}
