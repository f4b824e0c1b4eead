package web

import (
	"time"

	"gitee.com/flycash/order-notifier/internal/domain"
)

type SendReq struct {
	Channel        string            `json:"channel"`
	Recipient      string            `json:"recipient"`
	TemplateName   string            `json:"templateName"`
	TemplateCode   string            `json:"templateCode"`
	Variables      map[string]string `json:"variables"`
	Message        string            `json:"message"`
	Subject        string            `json:"subject"`
	CompanyID      int64             `json:"companyId"`
	ContactID      int64             `json:"contactId"`
	SMSEnabled     bool              `json:"smsEnabled"`
	EmailLogID     string            `json:"emailLogId"`
	EnableFailover bool              `json:"enableFailover"`
}

func (r SendReq) toDomain() domain.DispatchRequest {
	return domain.DispatchRequest{
		Channel:        domain.Channel(r.Channel),
		Recipient:      r.Recipient,
		TemplateName:   r.TemplateName,
		TemplateCode:   r.TemplateCode,
		Variables:      r.Variables,
		Message:        r.Message,
		Subject:        r.Subject,
		CompanyID:      r.CompanyID,
		ContactID:      r.ContactID,
		SMSEnabled:     r.SMSEnabled,
		EmailLogID:     r.EmailLogID,
		EnableFailover: r.EnableFailover,
	}
}

type DispatchResult struct {
	Success           bool   `json:"success"`
	MessageID         string `json:"messageId,omitempty"`
	Provider          string `json:"provider,omitempty"`
	FailoverUsed      bool   `json:"failoverUsed"`
	FailoverAttempted bool   `json:"failoverAttempted"`
	QuotaExceeded     bool   `json:"quotaExceeded"`
	Retryable         bool   `json:"retryable"`
	Error             string `json:"error,omitempty"`
	LogID             uint64 `json:"logId,omitempty"`
}

func newDispatchResult(res domain.DispatchResult) DispatchResult {
	return DispatchResult{
		Success:           res.Success,
		MessageID:         res.MessageID,
		Provider:          res.Provider,
		FailoverUsed:      res.FailoverUsed,
		FailoverAttempted: res.FailoverAttempted,
		QuotaExceeded:     res.QuotaExceeded,
		Retryable:         res.Retryable,
		Error:             res.Error,
		LogID:             res.LogID,
	}
}

type EnqueueReq struct {
	SendReq
	Priority string `json:"priority"`
	// 毫秒时间戳，0 表示立即执行
	ScheduledAt int64             `json:"scheduledAt"`
	MaxRetries  int               `json:"maxRetries"`
	Metadata    map[string]string `json:"metadata"`
}

func (r EnqueueReq) toDomain() domain.Job {
	job := domain.Job{
		Channel:        domain.Channel(r.Channel),
		Recipient:      r.Recipient,
		Message:        r.Message,
		Subject:        r.Subject,
		TemplateName:   r.TemplateName,
		TemplateCode:   r.TemplateCode,
		Variables:      r.Variables,
		Priority:       domain.Priority(r.Priority),
		MaxRetries:     r.MaxRetries,
		CompanyID:      r.CompanyID,
		ContactID:      r.ContactID,
		EmailLogID:     r.EmailLogID,
		EnableFailover: r.EnableFailover,
		Metadata:       r.Metadata,
	}
	if r.ScheduledAt > 0 {
		job.ScheduledAt = time.UnixMilli(r.ScheduledAt)
	}
	return job
}

type Job struct {
	ID             uint64 `json:"id"`
	Channel        string `json:"channel"`
	Recipient      string `json:"recipient"`
	TemplateName   string `json:"templateName,omitempty"`
	Priority       string `json:"priority"`
	Status         string `json:"status"`
	ScheduledAt    int64  `json:"scheduledAt"`
	MaxRetries     int    `json:"maxRetries"`
	CurrentRetries int    `json:"currentRetries"`
	LastError      string `json:"lastError,omitempty"`
	Ctime          int64  `json:"ctime"`
	Utime          int64  `json:"utime"`
}

func newJob(job domain.Job) Job {
	return Job{
		ID:             job.ID,
		Channel:        job.Channel.String(),
		Recipient:      job.Recipient,
		TemplateName:   job.TemplateName,
		Priority:       string(job.Priority),
		Status:         job.Status.String(),
		ScheduledAt:    job.ScheduledAt.UnixMilli(),
		MaxRetries:     job.MaxRetries,
		CurrentRetries: job.CurrentRetries,
		LastError:      job.LastError,
		Ctime:          job.Ctime.UnixMilli(),
		Utime:          job.Utime.UnixMilli(),
	}
}

type JobStats struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Sent       int64 `json:"sent"`
	Failed     int64 `json:"failed"`
	Total      int64 `json:"total"`
}

type OrderNotifyReq struct {
	CompanyID int64 `json:"companyId"`
	// RFC3339
	OrderTime  time.Time `json:"orderTime"`
	EmailLogID string    `json:"emailLogId"`
}

type ContactResult struct {
	ContactID int64           `json:"contactId"`
	Kakao     *DispatchResult `json:"kakao,omitempty"`
	SMS       *DispatchResult `json:"sms,omitempty"`
}

type OrderResult struct {
	Skipped  bool            `json:"skipped"`
	Contacts []ContactResult `json:"contacts"`
}

func newOrderResult(res domain.OrderResult) OrderResult {
	out := OrderResult{Skipped: res.Skipped, Contacts: make([]ContactResult, 0, len(res.Contacts))}
	for _, c := range res.Contacts {
		cr := ContactResult{ContactID: c.ContactID}
		if c.Kakao != nil {
			r := newDispatchResult(*c.Kakao)
			cr.Kakao = &r
		}
		if c.SMS != nil {
			r := newDispatchResult(*c.SMS)
			cr.SMS = &r
		}
		out.Contacts = append(out.Contacts, cr)
	}
	return out
}

type LimitStatus struct {
	Type            string  `json:"type"`
	Allowed         bool    `json:"allowed"`
	CurrentUsage    int64   `json:"currentUsage"`
	Limit           int64   `json:"limit"`
	UsagePercentage float64 `json:"usagePercentage"`
	WarningLevel    string  `json:"warningLevel"`
	Message         string  `json:"message,omitempty"`
}

type Balance struct {
	Provider string  `json:"provider"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
}
