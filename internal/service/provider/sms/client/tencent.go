package client

import (
	"context"
	"fmt"

	"gitee.com/flycash/order-notifier/internal/errs"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	sms "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/sms/v20210111"
)

const tencentOK = "Ok"

var _ Client = (*TencentCloudSMS)(nil)

// TencentCloudSMS 腾讯云短信实现
type TencentCloudSMS struct {
	client *sms.Client
	appID  string
}

func NewTencentCloudSMS(regionID, secretID, secretKey, appID string) (*TencentCloudSMS, error) {
	client, err := sms.NewClient(common.NewCredential(secretID, secretKey), regionID, profile.NewClientProfile())
	if err != nil {
		return nil, err
	}
	return &TencentCloudSMS{client: client, appID: appID}, nil
}

func (t *TencentCloudSMS) Send(ctx context.Context, req SendReq) (SendResp, error) {
	if len(req.PhoneNumbers) == 0 {
		return SendResp{}, fmt.Errorf("%w: %v", ErrInvalidParameter, "手机号码不能为空")
	}

	request := sms.NewSendSmsRequest()
	request.SmsSdkAppId = common.StringPtr(t.appID)
	request.SignName = common.StringPtr(req.SignName)
	request.TemplateId = common.StringPtr(req.TemplateID)
	request.PhoneNumberSet = common.StringPtrs(req.PhoneNumbers)
	// 腾讯云的模板参数是有序数组，统一使用 content 一个参数
	if content, ok := req.TemplateParam["content"]; ok {
		request.TemplateParamSet = common.StringPtrs([]string{content})
	}

	response, err := t.client.SendSmsWithContext(ctx, request)
	if err != nil {
		return SendResp{}, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	if response.Response == nil {
		return SendResp{}, fmt.Errorf("%w: %v", ErrSendFailed, "响应异常")
	}

	result := SendResp{
		PhoneNumbers: make(map[string]SendRespStatus, len(response.Response.SendStatusSet)),
	}
	if response.Response.RequestId != nil {
		result.RequestID = *response.Response.RequestId
	}
	for _, status := range response.Response.SendStatusSet {
		if status == nil || status.PhoneNumber == nil {
			continue
		}
		code := stringValue(status.Code)
		if code == tencentOK {
			code = OK
		}
		result.PhoneNumbers[*status.PhoneNumber] = SendRespStatus{
			Code:     code,
			Message:  stringValue(status.Message),
			SerialNo: stringValue(status.SerialNo),
		}
	}
	return result, nil
}

func (t *TencentCloudSMS) Balance(_ context.Context) (BalanceResp, error) {
	return BalanceResp{}, fmt.Errorf("%w: tencentcloud", errs.ErrBalanceUnsupported)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
