package domain

import (
	"testing"

	"gitee.com/flycash/order-notifier/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		phone   string
		want    string
		wantErr error
	}{
		{name: "带横线", phone: "010-1234-5678", want: "01012345678"},
		{name: "带空格", phone: " 010 1234 5678 ", want: "01012345678"},
		{name: "国际区号", phone: "+82 10-1234-5678", want: "01012345678"},
		{name: "旧号段", phone: "011-123-4567", want: "0111234567"},
		{name: "座机", phone: "02-123-4567", wantErr: errs.ErrInvalidParameter},
		{name: "空", phone: "", wantErr: errs.ErrInvalidParameter},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizePhone(tc.phone)
			assert.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWarningLevelOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		percentage float64
		want       WarningLevel
	}{
		{percentage: 0, want: WarningNone},
		{percentage: 79.9, want: WarningNone},
		{percentage: 80, want: WarningWarning},
		{percentage: 94.9, want: WarningWarning},
		{percentage: 95, want: WarningCritical},
		{percentage: 99.9, want: WarningCritical},
		{percentage: 100, want: WarningExceeded},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, WarningLevelOf(tc.percentage), "percentage=%v", tc.percentage)
	}
}

func TestDefaultMaxRetries(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3, DefaultMaxRetries(ChannelSMS))
	assert.Equal(t, 2, DefaultMaxRetries(ChannelAlimTalk))
	assert.Equal(t, 2, DefaultMaxRetries(ChannelFriendTalk))
	assert.Equal(t, 1, DefaultMaxRetries(Channel("EMAIL")))
}

func TestPriorityRank(t *testing.T) {
	t.Parallel()
	assert.Greater(t, PriorityUrgent.Rank(), PriorityHigh.Rank())
	assert.Greater(t, PriorityHigh.Rank(), PriorityNormal.Rank())
	assert.Greater(t, PriorityNormal.Rank(), PriorityLow.Rank())
	assert.Equal(t, PriorityNormal.Rank(), Priority("unknown").Rank())
	for _, p := range []Priority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent} {
		assert.Equal(t, p, PriorityFromRank(p.Rank()))
	}
}

func TestJob_Validate(t *testing.T) {
	t.Parallel()

	job := Job{Channel: ChannelSMS, Recipient: "01012345678", Message: "hi"}
	require.NoError(t, job.Validate())

	job.Channel = "EMAIL"
	assert.ErrorIs(t, job.Validate(), errs.ErrInvalidParameter)

	job = Job{Channel: ChannelAlimTalk, Recipient: "01012345678"}
	assert.ErrorIs(t, job.Validate(), errs.ErrInvalidParameter)
}

func TestDispatchResult_Covered(t *testing.T) {
	t.Parallel()
	assert.True(t, DispatchResult{Success: true}.Covered())
	assert.True(t, DispatchResult{FailoverAttempted: true}.Covered())
	assert.False(t, DispatchResult{}.Covered())
}
