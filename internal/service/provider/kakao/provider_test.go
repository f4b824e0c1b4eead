package kakao

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, APIKey: "key", SenderKey: "sender-key", Timeout: time.Second})
}

func reply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestAlimTalkProvider_Send(t *testing.T) {
	t.Parallel()

	var got sendRequest
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, alimTalkPath, r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		reply(w, http.StatusOK, `{"code":"0000","message":"success","messageId":"k-1"}`)
	})
	p := NewAlimTalkProvider("kakao-alimtalk", c)
	require.True(t, p.ValidateConfig())

	resp, err := p.Send(context.Background(), domain.Message{
		Channel:      domain.ChannelAlimTalk,
		Recipient:    "01012345678",
		Content:      "주문이 접수되었습니다",
		TemplateCode: "ORDER_RECEIVED",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SendResponse{MessageID: "k-1", Provider: "kakao-alimtalk"}, resp)
	assert.Equal(t, sendRequest{
		SenderKey:    "sender-key",
		TemplateCode: "ORDER_RECEIVED",
		RecipientNo:  "01012345678",
		Content:      "주문이 접수되었습니다",
	}, got)
}

func TestAlimTalkProvider_RequiresTemplateCode(t *testing.T) {
	t.Parallel()
	c := newClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("不应该发出请求")
	})
	_, err := NewAlimTalkProvider("kakao-alimtalk", c).Send(context.Background(), domain.Message{Recipient: "01012345678"})
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)
}

func TestFriendTalkProvider_Send(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		status    int
		body      string
		wantID    string
		assertErr assert.ErrorAssertionFunc
	}{
		{
			name:      "成功",
			status:    http.StatusOK,
			body:      `{"code":"0000","messageId":"f-1"}`,
			wantID:    "f-1",
			assertErr: assert.NoError,
		},
		{
			name:   "不是好友",
			status: http.StatusOK,
			body:   `{"code":"3016","message":"친구가 아닌 사용자"}`,
			assertErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errs.ErrSendNotificationFailed) &&
					assert.ErrorIs(t, err, ErrRequestFailed)
			},
		},
		{
			name:   "服务端错误",
			status: http.StatusServiceUnavailable,
			body:   `{}`,
			assertErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errs.ErrSendNotificationFailed)
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, friendTalkPath, r.URL.Path)
				reply(w, tc.status, tc.body)
			})
			resp, err := NewFriendTalkProvider("kakao-friendtalk", c).Send(context.Background(),
				domain.Message{Channel: domain.ChannelFriendTalk, Recipient: "01012345678", Content: "hi"})
			tc.assertErr(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantID, resp.MessageID)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()
	assert.False(t, NewFriendTalkProvider("f", NewClient(Config{BaseURL: "http://localhost"})).ValidateConfig())
	assert.False(t, NewAlimTalkProvider("a", NewClient(Config{SenderKey: "k"})).ValidateConfig())
	assert.False(t, NewAlimTalkProvider("a", nil).ValidateConfig())
	assert.True(t, NewAlimTalkProvider("a", NewClient(Config{BaseURL: "http://localhost", SenderKey: "k"})).ValidateConfig())
}
