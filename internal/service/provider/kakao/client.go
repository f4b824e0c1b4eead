// Package kakao Kakao 商务消息（AlimTalk 和 FriendTalk）供应商
package kakao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const codeSuccess = "0000"

var ErrRequestFailed = errors.New("Kakao 请求失败")

type Config struct {
	BaseURL string `yaml:"baseUrl"`
	APIKey  string `yaml:"apiKey"`
	// 发信档案的 key
	SenderKey string        `yaml:"senderKey"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Client Kakao 商务消息的 HTTP 客户端，两种消息共用
type Client struct {
	http      *resty.Client
	senderKey string
}

func NewClient(cfg Config) *Client {
	cli := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: cli, senderKey: cfg.SenderKey}
}

type sendRequest struct {
	SenderKey    string `json:"senderKey"`
	TemplateCode string `json:"templateCode,omitempty"`
	RecipientNo  string `json:"recipientNo"`
	Content      string `json:"content"`
}

type sendResult struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	MessageID string `json:"messageId"`
}

func (c *Client) configured() bool {
	return c != nil && c.senderKey != "" && c.http.BaseURL != ""
}

func (c *Client) send(ctx context.Context, path string, req sendRequest) (string, error) {
	req.SenderKey = c.senderKey
	var result sendResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&result).
		Post(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	if resp.IsError() || result.Code != codeSuccess {
		return "", fmt.Errorf("%w: HTTP %d, Code = %s, Message = %s",
			ErrRequestFailed, resp.StatusCode(), result.Code, result.Message)
	}
	return result.MessageID, nil
}
