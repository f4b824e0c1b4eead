package domain

import (
	"fmt"
	"time"

	"gitee.com/flycash/order-notifier/internal/errs"
)

// JobStatus 异步任务状态
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusSent       JobStatus = "SENT"
	JobStatusFailed     JobStatus = "FAILED"
)

func (s JobStatus) String() string {
	return string(s)
}

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusSent || s == JobStatusFailed
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var priorityRanks = map[Priority]int{
	PriorityLow:    0,
	PriorityNormal: 1,
	PriorityHigh:   2,
	PriorityUrgent: 3,
}

// Rank 存储用的数值，越大越先被拉取
func (p Priority) Rank() int {
	if r, ok := priorityRanks[p]; ok {
		return r
	}
	return priorityRanks[PriorityNormal]
}

func PriorityFromRank(rank int) Priority {
	for p, r := range priorityRanks {
		if r == rank {
			return p
		}
	}
	return PriorityNormal
}

// DefaultMaxRetries 不同渠道的默认最大尝试次数
func DefaultMaxRetries(ch Channel) int {
	switch {
	case ch == ChannelSMS:
		return 3
	case ch.IsKakao():
		return 2
	default:
		return 1
	}
}

// CancelledReason 任务被取消时写入 LastError 的内容
const CancelledReason = "cancelled"

// Job 异步通知任务
type Job struct {
	ID       uint64
	TenantID int64
	Channel  Channel
	// 手机号
	Recipient string
	// 已经渲染好的内容，TemplateName 不为空时忽略
	Message        string
	Subject        string
	TemplateName   string
	TemplateCode   string
	Variables      map[string]string
	Priority       Priority
	ScheduledAt    time.Time
	MaxRetries     int
	CurrentRetries int
	CompanyID      int64
	ContactID      int64
	EmailLogID     string
	EnableFailover bool
	Metadata       map[string]string
	Status         JobStatus
	LastError      string
	Version        int
	Ctime          time.Time
	Utime          time.Time
}

func (j *Job) Validate() error {
	if err := j.Channel.Validate(); err != nil {
		return err
	}
	if j.Recipient == "" {
		return fmt.Errorf("%w: Recipient 不能为空", errs.ErrInvalidParameter)
	}
	if j.TemplateName == "" && j.Message == "" {
		return fmt.Errorf("%w: TemplateName 和 Message 不能同时为空", errs.ErrInvalidParameter)
	}
	if j.MaxRetries < 0 {
		return fmt.Errorf("%w: MaxRetries = %d", errs.ErrInvalidParameter, j.MaxRetries)
	}
	return nil
}

// DispatchRequest 转换成分发请求
func (j *Job) DispatchRequest() DispatchRequest {
	return DispatchRequest{
		Channel:        j.Channel,
		Recipient:      j.Recipient,
		TemplateName:   j.TemplateName,
		TemplateCode:   j.TemplateCode,
		Variables:      j.Variables,
		Message:        j.Message,
		Subject:        j.Subject,
		CompanyID:      j.CompanyID,
		ContactID:      j.ContactID,
		EmailLogID:     j.EmailLogID,
		JobID:          j.ID,
		EnableFailover: j.EnableFailover,
	}
}

// JobStats 各状态的任务数
type JobStats struct {
	Pending    int64
	Processing int64
	Sent       int64
	Failed     int64
}

func (s JobStats) Total() int64 {
	return s.Pending + s.Processing + s.Sent + s.Failed
}
