package provider_test

import (
	"context"
	"testing"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/service/provider"
	providermocks "gitee.com/flycash/order-notifier/internal/service/provider/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRegistry(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	sms := providermocks.NewMockProvider(ctrl)
	sms.EXPECT().ValidateConfig().Return(true)
	alimTalk := providermocks.NewMockProvider(ctrl)
	alimTalk.EXPECT().ValidateConfig().Return(false)

	r := provider.NewRegistry("0215880000", map[domain.Channel]provider.Provider{
		domain.ChannelSMS:        sms,
		domain.ChannelAlimTalk:   alimTalk,
		domain.ChannelFriendTalk: nil,
	}, nil)

	got, err := r.Get(domain.ChannelSMS)
	require.NoError(t, err)
	assert.Equal(t, sms, got)
	assert.True(t, r.Configured(domain.ChannelSMS))

	for _, ch := range []domain.Channel{domain.ChannelAlimTalk, domain.ChannelFriendTalk} {
		_, err = r.Get(ch)
		assert.ErrorIs(t, err, errs.ErrProviderNotConfigured)
		assert.False(t, r.Configured(ch))
	}

	_, err = r.SMSBalance(context.Background())
	assert.ErrorIs(t, err, errs.ErrBalanceUnsupported)
}

func TestRegistry_SenderNumber(t *testing.T) {
	t.Parallel()
	r := provider.NewRegistry("0215880000", nil, nil)

	testCases := []struct {
		name   string
		tenant domain.Tenant
		want   string
	}{
		{name: "已验证", tenant: domain.Tenant{SenderPhone: "01012345678", SenderVerified: true}, want: "01012345678"},
		{name: "未验证", tenant: domain.Tenant{SenderPhone: "01012345678"}, want: "0215880000"},
		{name: "没有号码", tenant: domain.Tenant{SenderVerified: true}, want: "0215880000"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, r.SenderNumber(tc.tenant))
		})
	}
}

func TestRegistry_SMSBalance(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	balance := providermocks.NewMockBalanceQuerier(ctrl)
	balance.EXPECT().Balance(gomock.Any()).Return(domain.Balance{Provider: "gateway", Amount: 1200, Unit: "KRW"}, nil)

	r := provider.NewRegistry("", nil, balance)
	got, err := r.SMSBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(1200), got.Amount)
}
