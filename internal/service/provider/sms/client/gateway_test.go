package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(t *testing.T, h http.HandlerFunc) *HTTPGateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPGateway(GatewayConfig{BaseURL: srv.URL, APIKey: "secret", Timeout: time.Second})
}

func TestHTTPGateway_Send(t *testing.T) {
	t.Parallel()

	var got gatewayMessage
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Request-Id", "req-9")
		_, _ = w.Write([]byte(`{"code":"OK","message":"accepted","messageId":"m-1"}`))
	})

	resp, err := g.Send(context.Background(), SendReq{
		PhoneNumbers: []string{"01012345678"},
		Sender:       "0215880000",
		Kind:         "LMS",
		Subject:      "주문",
		Content:      "본문",
	})
	require.NoError(t, err)
	assert.Equal(t, "req-9", resp.RequestID)
	assert.Equal(t, SendRespStatus{Code: OK, Message: "accepted", SerialNo: "m-1"}, resp.PhoneNumbers["01012345678"])
	assert.Equal(t, gatewayMessage{From: "0215880000", To: "01012345678", Type: "LMS", Subject: "주문", Text: "본문"}, got)
}

func TestHTTPGateway_SendError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		req     SendReq
		handler http.HandlerFunc
		wantErr error
		want    string
	}{
		{
			name:    "缺少发信号码",
			req:     SendReq{PhoneNumbers: []string{"01012345678"}},
			wantErr: ErrInvalidParameter,
		},
		{
			name:    "缺少手机号",
			req:     SendReq{Sender: "0215880000"},
			wantErr: ErrInvalidParameter,
		},
		{
			name: "服务端错误",
			req:  SendReq{PhoneNumbers: []string{"01012345678"}, Sender: "0215880000"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErr: ErrSendFailed,
		},
		{
			name: "业务错误码",
			req:  SendReq{PhoneNumbers: []string{"01012345678"}, Sender: "0215880000"},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"code":"UNREGISTERED_SENDER","message":"발신번호 미등록"}`))
			},
			want: "UNREGISTERED_SENDER",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := tc.handler
			if h == nil {
				h = func(http.ResponseWriter, *http.Request) { t.Error("不应该发出请求") }
			}
			resp, err := newGateway(t, h).Send(context.Background(), tc.req)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.PhoneNumbers["01012345678"].Code)
		})
	}
}

func TestHTTPGateway_Balance(t *testing.T) {
	t.Parallel()
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/balance", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"OK","balance":15300.5,"unit":"KRW"}`))
	})
	b, err := g.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, BalanceResp{Amount: 15300.5, Unit: "KRW"}, b)

	g = newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"UNAUTHORIZED"}`))
	})
	_, err = g.Balance(context.Background())
	assert.ErrorIs(t, err, ErrQueryBalance)
}
