package notification

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/pkg/tenant"
	"gitee.com/flycash/order-notifier/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
)

// TimeSlotUndecided 配送时间段未确定
const TimeSlotUndecided = "미정"

var kst = domain.KST

var weekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// DeliveryCalculator 根据地区和下单时间计算配送日期
type DeliveryCalculator interface {
	Calculate(ctx context.Context, region string, orderTime time.Time, tenantID int64) (domain.DeliveryInfo, error)
}

// DeliveryCalculatorFunc 让普通函数实现 DeliveryCalculator
type DeliveryCalculatorFunc func(ctx context.Context, region string, orderTime time.Time, tenantID int64) (domain.DeliveryInfo, error)

func (f DeliveryCalculatorFunc) Calculate(ctx context.Context, region string, orderTime time.Time, tenantID int64) (domain.DeliveryInfo, error) {
	return f(ctx, region, orderTime, tenantID)
}

// OrderNotifier 订单邮件到达之后通知公司的所有联系人
//
//go:generate mockgen -source=./order.go -destination=./mocks/order.mock.go -package=notificationmocks -typed OrderNotifier
type OrderNotifier interface {
	// TriggerOrderNotification 同一个 emailLogID 已经成功发送过时直接跳过
	TriggerOrderNotification(ctx context.Context, companyID int64, orderTime time.Time, emailLogID string) (domain.OrderResult, error)
}

type orderNotifier struct {
	dispatcher Dispatcher
	companies  repository.CompanyRepository
	logs       repository.NotificationLogRepository
	delivery   DeliveryCalculator
	logger     *elog.Component
}

func NewOrderNotifier(
	dispatcher Dispatcher,
	companies repository.CompanyRepository,
	logs repository.NotificationLogRepository,
	delivery DeliveryCalculator,
) OrderNotifier {
	return &orderNotifier{
		dispatcher: dispatcher,
		companies:  companies,
		logs:       logs,
		delivery:   delivery,
		logger:     elog.DefaultLogger.With(elog.String("component", "order-notifier")),
	}
}

func (o *orderNotifier) TriggerOrderNotification(ctx context.Context, companyID int64, orderTime time.Time, emailLogID string) (domain.OrderResult, error) {
	var res domain.OrderResult
	if emailLogID != "" {
		sent, err := o.logs.HasSent(ctx, emailLogID)
		if err != nil {
			return res, err
		}
		if sent {
			o.logger.Info("订单通知已经发送过，跳过",
				elog.Int64("tenantId", tenant.ID(ctx)),
				elog.String("emailLogId", emailLogID))
			res.Skipped = true
			return res, nil
		}
	}

	company, err := o.companies.GetByID(ctx, companyID)
	if err != nil {
		return res, err
	}
	if !company.Active {
		return res, fmt.Errorf("%w: companyId = %d", errs.ErrCompanyInactive, companyID)
	}
	contacts, err := o.companies.FindActiveContacts(ctx, companyID)
	if err != nil {
		return res, err
	}
	info, err := o.delivery.Calculate(ctx, company.Region, orderTime, tenant.ID(ctx))
	if err != nil {
		return res, fmt.Errorf("计算配送日期失败: %w", err)
	}
	vars := OrderVariables(company.Name, orderTime, info)

	var errList error
	for _, contact := range contacts {
		cr, err := o.notifyContact(ctx, company, contact, vars, emailLogID)
		res.Contacts = append(res.Contacts, cr)
		if err != nil {
			errList = multierror.Append(errList, fmt.Errorf("contactId = %d: %w", contact.ID, err))
		}
	}
	return res, errList
}

// notifyContact Kakao 和 SMS 必须串行，Kakao 覆盖了联系人之后不再单独发 SMS
func (o *orderNotifier) notifyContact(ctx context.Context, company domain.Company, contact domain.Contact,
	vars map[string]string, emailLogID string,
) (domain.ContactResult, error) {
	cr := domain.ContactResult{ContactID: contact.ID}
	base := domain.DispatchRequest{
		Recipient:    contact.Phone,
		TemplateName: domain.TemplateOrderReceived,
		Variables:    vars,
		CompanyID:    company.ID,
		ContactID:    contact.ID,
		EmailLogID:   emailLogID,
	}

	var errList error
	if contact.KakaoEnabled {
		req := base
		req.Channel = domain.ChannelAlimTalk
		req.EnableFailover = contact.SMSEnabled
		res, err := o.dispatcher.Send(ctx, req)
		cr.Kakao = &res
		if err != nil {
			errList = multierror.Append(errList, err)
		}
	}
	if contact.SMSEnabled && (cr.Kakao == nil || !cr.Kakao.Covered()) {
		req := base
		req.Channel = domain.ChannelSMS
		res, err := o.dispatcher.Send(ctx, req)
		cr.SMS = &res
		if err != nil {
			errList = multierror.Append(errList, err)
		}
	}
	return cr, errList
}

// OrderVariables 订单接收模板的变量，日期按韩国时间格式化
func OrderVariables(companyName string, orderTime time.Time, info domain.DeliveryInfo) map[string]string {
	slot := info.DeliveryTimeSlot
	if slot == TimeSlotUndecided {
		slot = ""
	}
	ot := orderTime.In(kst)
	dd := info.DeliveryDate.In(kst)
	return map[string]string{
		"companyName":  companyName,
		"orderDate":    ot.Format("2006-01-02 15:04"),
		"deliveryDate": fmt.Sprintf("%d년 %d월 %d일 (%s)", dd.Year(), dd.Month(), dd.Day(), weekdays[dd.Weekday()]),
		"shortDate":    fmt.Sprintf("%d/%d", dd.Month(), dd.Day()),
		"deliveryTime": slot,
	}
}
