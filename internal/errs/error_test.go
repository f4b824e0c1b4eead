package errs

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "供应商临时故障", err: fmt.Errorf("%w: 502", ErrSendNotificationFailed), want: true},
		{name: "所有供应商都失败", err: ErrNoAvailableProvider, want: true},
		{name: "超时", err: fmt.Errorf("kakao: %w", context.DeadlineExceeded), want: true},
		{name: "额度", err: fmt.Errorf("%w: SMS", ErrQuotaExceeded), want: false},
		{name: "租户上下文", err: ErrTenantContextRequired, want: false},
		{name: "模板", err: fmt.Errorf("%w: ORDER_RECEIVED", ErrTemplateNotFound), want: false},
		{name: "供应商未配置", err: ErrProviderNotConfigured, want: false},
		{name: "未知错误", err: errors.New("boom"), want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, IsRetryable(tc.err))
		})
	}
}
