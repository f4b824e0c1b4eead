package client

import (
	"context"
	"errors"
)

const OK = "OK"

var (
	ErrInvalidParameter = errors.New("参数错误")
	ErrSendFailed       = errors.New("发送短信失败")
	ErrQueryBalance     = errors.New("查询余额失败")
)

// Client 短信平台客户端
type Client interface {
	Send(ctx context.Context, req SendReq) (SendResp, error)
	// Balance 不支持查询余额的平台返回 errs.ErrBalanceUnsupported
	Balance(ctx context.Context) (BalanceResp, error)
}

type SendReq struct {
	PhoneNumbers []string
	// 发信号码，只有直接下发文本的平台使用
	Sender  string
	Subject string
	Content string
	// SMS 或者 LMS
	Kind string
	// 模板类平台使用
	SignName      string
	TemplateID    string
	TemplateParam map[string]string
}

type SendResp struct {
	RequestID    string
	PhoneNumbers map[string]SendRespStatus
}

type SendRespStatus struct {
	Code    string
	Message string
	// 平台返回的单条消息编号
	SerialNo string
}

type BalanceResp struct {
	Amount float64
	Unit   string
}
