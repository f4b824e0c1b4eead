package sequential

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/service/provider"
	providermocks "gitee.com/flycash/order-notifier/internal/service/provider/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestProvider_Send(t *testing.T) {
	t.Parallel()

	msg := domain.Message{Channel: domain.ChannelSMS, Recipient: "01012345678", Content: "hi"}
	testCases := []struct {
		name      string
		providers func(ctrl *gomock.Controller) []provider.Provider
		wantResp  domain.SendResponse
		assertErr assert.ErrorAssertionFunc
	}{
		{
			name: "第一个成功",
			providers: func(ctrl *gomock.Controller) []provider.Provider {
				p1 := providermocks.NewMockProvider(ctrl)
				p1.EXPECT().ValidateConfig().Return(true)
				p1.EXPECT().Send(gomock.Any(), msg).Return(domain.SendResponse{MessageID: "m1", Provider: "p1"}, nil)
				p2 := providermocks.NewMockProvider(ctrl)
				p2.EXPECT().ValidateConfig().Return(true)
				return []provider.Provider{p1, p2}
			},
			wantResp:  domain.SendResponse{MessageID: "m1", Provider: "p1"},
			assertErr: assert.NoError,
		},
		{
			name: "第一个失败第二个成功",
			providers: func(ctrl *gomock.Controller) []provider.Provider {
				p1 := providermocks.NewMockProvider(ctrl)
				p1.EXPECT().ValidateConfig().Return(true)
				p1.EXPECT().Send(gomock.Any(), msg).Return(domain.SendResponse{}, errs.ErrSendNotificationFailed)
				p2 := providermocks.NewMockProvider(ctrl)
				p2.EXPECT().ValidateConfig().Return(true)
				p2.EXPECT().Send(gomock.Any(), msg).Return(domain.SendResponse{MessageID: "m2", Provider: "p2"}, nil)
				return []provider.Provider{p1, p2}
			},
			wantResp:  domain.SendResponse{MessageID: "m2", Provider: "p2"},
			assertErr: assert.NoError,
		},
		{
			name: "全部失败",
			providers: func(ctrl *gomock.Controller) []provider.Provider {
				p1 := providermocks.NewMockProvider(ctrl)
				p1.EXPECT().ValidateConfig().Return(true)
				p1.EXPECT().Send(gomock.Any(), msg).Return(domain.SendResponse{}, errors.New("502"))
				p2 := providermocks.NewMockProvider(ctrl)
				p2.EXPECT().ValidateConfig().Return(true)
				p2.EXPECT().Send(gomock.Any(), msg).Return(domain.SendResponse{}, errors.New("503"))
				return []provider.Provider{p1, p2}
			},
			assertErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errs.ErrSendNotificationFailed) &&
					assert.ErrorContains(t, err, "502") &&
					assert.ErrorContains(t, err, "503")
			},
		},
		{
			name: "配置不完整的被跳过",
			providers: func(ctrl *gomock.Controller) []provider.Provider {
				p1 := providermocks.NewMockProvider(ctrl)
				p1.EXPECT().ValidateConfig().Return(false)
				return []provider.Provider{p1, nil}
			},
			assertErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errs.ErrNoAvailableProvider)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			p := NewProvider(NewSelectorBuilder(tc.providers(ctrl)))
			resp, err := p.Send(context.Background(), msg)
			tc.assertErr(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantResp, resp)
		})
	}
}

func TestProvider_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	ctx, cancel := context.WithCancel(context.Background())

	p1 := providermocks.NewMockProvider(ctrl)
	p1.EXPECT().ValidateConfig().Return(true)
	p1.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, domain.Message) (domain.SendResponse, error) {
		cancel()
		return domain.SendResponse{}, fmt.Errorf("p1: %w", context.Canceled)
	})
	// 上下文取消后不再尝试后面的供应商
	p2 := providermocks.NewMockProvider(ctrl)
	p2.EXPECT().ValidateConfig().Return(true)

	_, err := NewProvider(NewSelectorBuilder([]provider.Provider{p1, p2})).Send(ctx, domain.Message{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProvider_ValidateConfig(t *testing.T) {
	t.Parallel()
	assert.False(t, NewProvider(NewSelectorBuilder(nil)).ValidateConfig())
}
