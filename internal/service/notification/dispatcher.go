package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/pkg/tenant"
	"gitee.com/flycash/order-notifier/internal/repository"
	"gitee.com/flycash/order-notifier/internal/service/provider"
	"gitee.com/flycash/order-notifier/internal/service/template"
	"gitee.com/flycash/order-notifier/internal/service/usage"
	"github.com/gotomicro/ego/core/elog"
	"github.com/sony/sonyflake"
)

const failoverSuffix = "(failover)"

// Dispatcher 单条通知的发送管道：额度 -> 渲染 -> 主渠道 -> 备用渠道 -> 计量 -> 审计
//
//go:generate mockgen -source=./dispatcher.go -destination=./mocks/dispatcher.mock.go -package=notificationmocks -typed Dispatcher
type Dispatcher interface {
	// Send 供应商的失败只体现在 DispatchResult 里面。
	// 返回 error 说明管道被中止：额度不足、模板错误、参数错误或者缺少租户上下文
	Send(ctx context.Context, req domain.DispatchRequest) (domain.DispatchResult, error)
}

type dispatcher struct {
	registry    *provider.Registry
	templates   template.Service
	usage       usage.Service
	tenants     repository.TenantRepository
	companies   repository.CompanyRepository
	logs        repository.NotificationLogRepository
	idGenerator *sonyflake.Sonyflake
	logger      *elog.Component
}

func NewDispatcher(
	registry *provider.Registry,
	templates template.Service,
	usageSvc usage.Service,
	tenants repository.TenantRepository,
	companies repository.CompanyRepository,
	logs repository.NotificationLogRepository,
	idGenerator *sonyflake.Sonyflake,
) Dispatcher {
	return &dispatcher{
		registry:    registry,
		templates:   templates,
		usage:       usageSvc,
		tenants:     tenants,
		companies:   companies,
		logs:        logs,
		idGenerator: idGenerator,
		logger:      elog.DefaultLogger.With(elog.String("component", "dispatcher")),
	}
}

// content 渲染之后准备下发的内容
type content struct {
	subject      string
	body         string
	kind         domain.MessageKind
	templateCode string
}

func (d *dispatcher) Send(ctx context.Context, req domain.DispatchRequest) (res domain.DispatchResult, err error) {
	id, ok := tenant.FromContext(ctx)
	if !ok {
		d.logger.Error("发送通知缺少租户上下文", elog.String("channel", req.Channel.String()))
		return res, fmt.Errorf("%w: 发送通知", errs.ErrTenantContextRequired)
	}
	if err = req.Validate(); err != nil {
		return res, err
	}
	logID, err := d.idGenerator.NextID()
	if err != nil {
		return res, fmt.Errorf("%w 生成 ID 失败，原因: %w", errs.ErrSendNotificationFailed, err)
	}
	res.LogID = logID

	// 不管管道在哪一步结束都要留下审计记录
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("发送通知 panic: %v", r)
			res.Success = false
			res.Retryable = false
			res.Error = err.Error()
			d.logger.Error("发送通知 panic", elog.Int64("tenantId", id.TenantID), elog.Any("panic", r))
		}
		if err != nil && res.Error == "" {
			res.Error = err.Error()
		}
		d.audit(context.WithoutCancel(ctx), req, res)
	}()

	// 额度检查
	status, err := d.usage.CheckLimit(ctx, id.TenantID, req.Channel.UsageType())
	if err != nil {
		return res, err
	}
	if !status.Allowed {
		res.QuotaExceeded = true
		res.Error = status.Message
		return res, fmt.Errorf("%w: %s", errs.ErrQuotaExceeded, status.Message)
	}

	// 渲染
	c, err := d.render(ctx, req)
	if err != nil {
		return res, err
	}
	res.Content = c.body
	smsEnabled, err := d.smsEnabled(ctx, req)
	if err != nil {
		return res, err
	}

	// 主渠道
	resp, primaryErr := d.sendVia(ctx, req.Channel, req, c)
	if primaryErr == nil {
		res.Success = true
		res.MessageID = resp.MessageID
		res.Provider = resp.Provider
	}

	// 备用渠道，只有 Kakao 失败之后才会走 SMS
	// 走过备用渠道时按备用渠道的错误判断能否重试
	lastErr, retryErr := primaryErr, primaryErr
	if primaryErr != nil && req.Channel.IsKakao() && req.EnableFailover && smsEnabled {
		res.FailoverAttempted = true
		d.logger.Warn("Kakao 发送失败，切换到 SMS",
			elog.Int64("tenantId", id.TenantID),
			elog.String("channel", req.Channel.String()),
			elog.FieldErr(primaryErr))
		var failoverErr error
		resp, failoverErr = d.failover(ctx, id.TenantID, req, c, &res)
		if failoverErr == nil {
			res.Success = true
			res.FailoverUsed = true
			res.MessageID = resp.MessageID
			res.Provider = resp.Provider + failoverSuffix
		} else {
			retryErr = failoverErr
			lastErr = fmt.Errorf("%w; 备用渠道: %w", primaryErr, failoverErr)
		}
	}

	if !res.Success {
		res.Retryable = errs.IsRetryable(retryErr)
		res.Error = lastErr.Error()
		return res, nil
	}

	// 计量只在成功之后进行，计量失败不影响发送结果
	d.record(ctx, id.TenantID, req, res)
	return res, nil
}

func (d *dispatcher) render(ctx context.Context, req domain.DispatchRequest) (content, error) {
	if req.TemplateName == "" {
		return content{
			subject:      req.Subject,
			body:         req.Message,
			kind:         kindOf(req.Channel, req.Message),
			templateCode: req.TemplateCode,
		}, nil
	}
	rendered, err := d.templates.Render(ctx, req.TemplateName, req.Variables, req.Channel)
	if err != nil {
		return content{}, err
	}
	c := content{
		subject:      rendered.Subject,
		body:         rendered.Content,
		kind:         rendered.Kind,
		templateCode: rendered.TemplateCode,
	}
	if req.TemplateCode != "" {
		c.templateCode = req.TemplateCode
	}
	if c.subject == "" {
		c.subject = req.Subject
	}
	return c, nil
}

// smsEnabled 有联系人时以联系人上的开关为准
func (d *dispatcher) smsEnabled(ctx context.Context, req domain.DispatchRequest) (bool, error) {
	if req.ContactID == 0 {
		return req.SMSEnabled, nil
	}
	contact, err := d.companies.GetContact(ctx, req.ContactID)
	if err != nil {
		return false, err
	}
	return contact.SMSEnabled, nil
}

func (d *dispatcher) sendVia(ctx context.Context, ch domain.Channel, req domain.DispatchRequest, c content) (domain.SendResponse, error) {
	p, err := d.registry.Get(ch)
	if err != nil {
		return domain.SendResponse{}, err
	}
	msg := domain.Message{
		Channel:      ch,
		Kind:         c.kind,
		Recipient:    req.Recipient,
		Subject:      c.subject,
		Content:      c.body,
		TemplateCode: c.templateCode,
		Variables:    req.Variables,
	}
	if ch == domain.ChannelSMS {
		msg.Sender = d.senderNumber(ctx)
	}
	return p.Send(ctx, msg)
}

func (d *dispatcher) failover(ctx context.Context, tenantID int64, req domain.DispatchRequest,
	c content, res *domain.DispatchResult,
) (domain.SendResponse, error) {
	status, err := d.usage.CheckLimit(ctx, tenantID, domain.UsageSMS)
	if err != nil {
		return domain.SendResponse{}, err
	}
	if !status.Allowed {
		res.QuotaExceeded = true
		return domain.SendResponse{}, fmt.Errorf("%w: %s", errs.ErrQuotaExceeded, status.Message)
	}
	c.kind = kindOf(domain.ChannelSMS, c.body)
	c.templateCode = ""
	return d.sendVia(ctx, domain.ChannelSMS, req, c)
}

func (d *dispatcher) senderNumber(ctx context.Context) string {
	t, err := d.tenants.GetByID(ctx, tenant.ID(ctx))
	if err != nil && !errors.Is(err, errs.ErrTenantNotFound) {
		d.logger.Warn("查询租户发信号码失败，使用默认号码", elog.FieldErr(err))
	}
	return d.registry.SenderNumber(t)
}

func (d *dispatcher) record(ctx context.Context, tenantID int64, req domain.DispatchRequest, res domain.DispatchResult) {
	types := []domain.UsageType{req.Channel.UsageType()}
	if res.FailoverUsed {
		types = append(types, domain.UsageSMS)
	}
	meta := map[string]string{
		"channel":  req.Channel.String(),
		"provider": res.Provider,
		"failover": strconv.FormatBool(res.FailoverUsed),
	}
	for _, typ := range types {
		if err := d.usage.Increment(ctx, tenantID, typ, 1, meta); err != nil {
			d.logger.Error("记录用量失败",
				elog.Int64("tenantId", tenantID),
				elog.String("type", typ.String()),
				elog.FieldErr(err))
		}
	}
}

func (d *dispatcher) audit(ctx context.Context, req domain.DispatchRequest, res domain.DispatchResult) {
	status := domain.LogStatusFailed
	if res.Success {
		status = domain.LogStatusSent
	}
	_, err := d.logs.Create(ctx, domain.NotificationLog{
		ID:           res.LogID,
		Channel:      req.Channel,
		Recipient:    req.Recipient,
		Content:      res.Content,
		Status:       status,
		Error:        res.Error,
		Provider:     res.Provider,
		MessageID:    res.MessageID,
		FailoverUsed: res.FailoverUsed,
		EmailLogID:   req.EmailLogID,
		CompanyID:    req.CompanyID,
		ContactID:    req.ContactID,
		JobID:        req.JobID,
	})
	if err != nil {
		d.logger.Error("写入发送记录失败",
			elog.Int64("tenantId", tenant.ID(ctx)),
			elog.String("emailLogId", req.EmailLogID),
			elog.FieldErr(err))
	}
}

// kindOf 没有经过模板渲染的内容也要按字节数区分 SMS 和 LMS
func kindOf(ch domain.Channel, body string) domain.MessageKind {
	if ch == domain.ChannelSMS && template.EUCKRLen(body) > template.SMSByteLimit {
		return domain.KindLMS
	}
	return ch.DefaultKind()
}
