package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var _ Client = (*HTTPGateway)(nil)

type GatewayConfig struct {
	BaseURL   string        `yaml:"baseUrl"`
	APIKey    string        `yaml:"apiKey"`
	Timeout   time.Duration `yaml:"timeout"`
	RetryWait time.Duration `yaml:"retryWait"`
	Retries   int           `yaml:"retries"`
}

// HTTPGateway 直接下发文本的国内短信网关，支持 SMS 和 LMS
type HTTPGateway struct {
	http *resty.Client
}

func NewHTTPGateway(cfg GatewayConfig) *HTTPGateway {
	cli := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(cfg.RetryWait).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &HTTPGateway{http: cli}
}

type gatewayMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Type    string `json:"type"`
	Subject string `json:"subject,omitempty"`
	Text    string `json:"text"`
}

type gatewayResult struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}

type gatewayBalance struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Balance float64 `json:"balance"`
	Unit    string  `json:"unit"`
}

func (g *HTTPGateway) Send(ctx context.Context, req SendReq) (SendResp, error) {
	if len(req.PhoneNumbers) == 0 {
		return SendResp{}, fmt.Errorf("%w: %v", ErrInvalidParameter, "手机号码不能为空")
	}
	if req.Sender == "" {
		return SendResp{}, fmt.Errorf("%w: %v", ErrInvalidParameter, "发信号码不能为空")
	}
	res := SendResp{PhoneNumbers: make(map[string]SendRespStatus, len(req.PhoneNumbers))}
	for _, phone := range req.PhoneNumbers {
		var result gatewayResult
		resp, err := g.http.R().
			SetContext(ctx).
			SetBody(gatewayMessage{
				From:    req.Sender,
				To:      phone,
				Type:    req.Kind,
				Subject: req.Subject,
				Text:    req.Content,
			}).
			SetResult(&result).
			SetError(&result).
			Post("/v1/messages")
		if err != nil {
			return SendResp{}, fmt.Errorf("%w: %w", ErrSendFailed, err)
		}
		if resp.IsError() && result.Code == "" {
			return SendResp{}, fmt.Errorf("%w: HTTP %d", ErrSendFailed, resp.StatusCode())
		}
		res.RequestID = resp.Header().Get("X-Request-Id")
		res.PhoneNumbers[phone] = SendRespStatus{
			Code:     result.Code,
			Message:  result.Message,
			SerialNo: result.MessageID,
		}
	}
	return res, nil
}

func (g *HTTPGateway) Balance(ctx context.Context) (BalanceResp, error) {
	var result gatewayBalance
	resp, err := g.http.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&result).
		Get("/v1/balance")
	if err != nil {
		return BalanceResp{}, fmt.Errorf("%w: %w", ErrQueryBalance, err)
	}
	if resp.IsError() || result.Code != OK {
		return BalanceResp{}, fmt.Errorf("%w: HTTP %d, Code = %s, Message = %s",
			ErrQueryBalance, resp.StatusCode(), result.Code, result.Message)
	}
	return BalanceResp{Amount: result.Balance, Unit: result.Unit}, nil
}
