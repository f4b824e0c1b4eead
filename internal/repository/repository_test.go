package repository

import (
	"context"
	"testing"
	"time"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/pkg/isolation"
	"gitee.com/flycash/order-notifier/internal/pkg/tenant"
	"gitee.com/flycash/order-notifier/internal/repository/dao"
	testioc "gitee.com/flycash/order-notifier/internal/test/ioc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestRepositorySuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RepositoryTestSuite))
}

type RepositoryTestSuite struct {
	suite.Suite
	tenants   TenantRepository
	companies CompanyRepository
	templates TemplateRepository
	jobs      JobRepository
	logs      NotificationLogRepository
}

func (s *RepositoryTestSuite) SetupTest() {
	db := testioc.InitDB()
	require.NoError(s.T(), dao.InitTables(db))
	gw := isolation.NewGateway(db, dao.GlobalEntities()...)
	s.tenants = NewTenantRepository(dao.NewTenantDAO(gw))
	s.companies = NewCompanyRepository(dao.NewCompanyDAO(gw))
	s.templates = NewTemplateRepository(dao.NewTemplateDAO(gw))
	s.jobs = NewJobRepository(dao.NewJobDAO(gw))
	s.logs = NewNotificationLogRepository(dao.NewNotificationLogDAO(gw))
}

func (s *RepositoryTestSuite) ctxOf(tid int64) context.Context {
	return tenant.WithTenant(context.Background(), tid)
}

func (s *RepositoryTestSuite) TestTenant() {
	t := s.T()
	admin := context.Background()
	created, err := s.tenants.Create(admin, domain.Tenant{Name: "acme", Plan: domain.PlanProfessional, Status: domain.TenantStatusActive})
	require.NoError(t, err)

	// 租户只能看到自己
	got, err := s.tenants.GetByID(s.ctxOf(created.ID), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanProfessional, got.Plan)

	_, err = s.tenants.GetByID(s.ctxOf(created.ID+1), created.ID)
	assert.ErrorIs(t, err, errs.ErrTenantNotFound)

	require.NoError(t, s.tenants.UpdateSender(admin, created.ID, "01012345678", true))
	got, err = s.tenants.GetByID(admin, created.ID)
	require.NoError(t, err)
	assert.True(t, got.SenderVerified)
	assert.Equal(t, "01012345678", got.SenderPhone)
}

func (s *RepositoryTestSuite) TestCompanyIsolation() {
	t := s.T()
	ctx1, ctx2 := s.ctxOf(1), s.ctxOf(2)

	c, err := s.companies.Create(ctx1, domain.Company{Name: "A", Email: "a@x.com", Active: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.TenantID)

	_, err = s.companies.CreateContact(ctx1, domain.Contact{CompanyID: c.ID, Phone: "01011112222", Active: true, SMSEnabled: true})
	require.NoError(t, err)
	_, err = s.companies.CreateContact(ctx1, domain.Contact{CompanyID: c.ID, Phone: "01033334444", Active: false})
	require.NoError(t, err)

	// 其他租户不能往这个公司挂联系人
	_, err = s.companies.CreateContact(ctx2, domain.Contact{CompanyID: c.ID, Phone: "01055556666", Active: true})
	assert.ErrorIs(t, err, errs.ErrCompanyNotFound)

	contacts, err := s.companies.FindActiveContacts(ctx1, c.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.True(t, contacts[0].SMSEnabled)

	contacts, err = s.companies.FindActiveContacts(ctx2, c.ID)
	require.NoError(t, err)
	assert.Empty(t, contacts)

	_, err = s.companies.FindByEmail(ctx2, "a@x.com")
	assert.ErrorIs(t, err, errs.ErrCompanyNotFound)

	_, err = s.companies.GetByID(context.Background(), c.ID)
	assert.ErrorIs(t, err, errs.ErrTenantContextRequired)
}

func (s *RepositoryTestSuite) TestTemplate() {
	t := s.T()
	ctx := s.ctxOf(1)

	_, err := s.templates.CreateDefaultTemplate(ctx, domain.Template{
		Name:    domain.TemplateOrderReceived,
		Type:    domain.ChannelSMS,
		Content: "default {{companyName}}",
	})
	require.NoError(t, err)

	saved, err := s.templates.Save(ctx, domain.Template{
		Name:      "welcome",
		Type:      domain.ChannelSMS,
		Content:   "Hello {{name}}",
		Variables: []string{"name"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.TenantID)

	// 同名同类型覆盖
	_, err = s.templates.Save(ctx, domain.Template{Name: "welcome", Type: domain.ChannelSMS, Content: "Hi {{name}}"})
	require.NoError(t, err)
	got, err := s.templates.GetTenantTemplate(ctx, "welcome", domain.ChannelSMS)
	require.NoError(t, err)
	assert.Equal(t, "Hi {{name}}", got.Content)

	_, err = s.templates.GetTenantTemplate(s.ctxOf(2), "welcome", domain.ChannelSMS)
	assert.ErrorIs(t, err, errs.ErrTemplateNotFound)

	def, err := s.templates.GetDefaultTemplate(s.ctxOf(2), domain.TemplateOrderReceived, domain.ChannelSMS)
	require.NoError(t, err)
	assert.True(t, def.IsDefault)

	ok, err := s.templates.Delete(s.ctxOf(2), "welcome", domain.ChannelSMS)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = s.templates.Delete(ctx, "welcome", domain.ChannelSMS)
	require.NoError(t, err)
	assert.True(t, ok)
}

func (s *RepositoryTestSuite) TestJobLifecycle() {
	t := s.T()
	ctx := s.ctxOf(1)
	now := time.Now()

	job, err := s.jobs.Create(ctx, domain.Job{
		ID:          100,
		Channel:     domain.ChannelSMS,
		Recipient:   "01012345678",
		Message:     "hi",
		Variables:   map[string]string{"name": "kim"},
		Priority:    domain.PriorityHigh,
		ScheduledAt: now.Add(-time.Second),
		MaxRetries:  3,
		Status:      domain.JobStatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, job.Version)
	assert.Equal(t, int64(1), job.TenantID)

	// 调度器没有租户上下文
	admin := context.Background()
	due, err := s.jobs.FindDue(admin, now, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, domain.PriorityHigh, due[0].Priority)
	assert.Equal(t, "kim", due[0].Variables["name"])

	claimed, ok, err := s.jobs.Claim(admin, due[0])
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, claimed.Version)

	// 旧版本再次抢占失败
	_, ok, err = s.jobs.Claim(admin, due[0])
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.jobs.MarkRetry(admin, claimed, 1, now.Add(time.Minute), "boom")
	require.NoError(t, err)
	require.True(t, ok)

	got, err := s.jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, got.Status)
	assert.Equal(t, 1, got.CurrentRetries)
	assert.Equal(t, "boom", got.LastError)

	// 还没到重试时间
	due, err = s.jobs.FindDue(admin, now, 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	claimed, ok, err = s.jobs.Claim(admin, got)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.jobs.MarkSent(admin, claimed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.jobs.Cancel(ctx, job.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	stats, err := s.jobs.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStats{Sent: 1}, stats)

	stats, err = s.jobs.Stats(s.ctxOf(2))
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total())
}

func (s *RepositoryTestSuite) TestJobPriorityAndCleanup() {
	t := s.T()
	ctx := s.ctxOf(1)
	admin := context.Background()
	now := time.Now()
	for i, p := range []domain.Priority{domain.PriorityLow, domain.PriorityUrgent, domain.PriorityNormal} {
		_, err := s.jobs.Create(ctx, domain.Job{
			ID:          uint64(i + 1),
			Channel:     domain.ChannelSMS,
			Recipient:   "01012345678",
			Message:     "hi",
			Priority:    p,
			ScheduledAt: now.Add(-time.Second),
			Status:      domain.JobStatusPending,
		})
		require.NoError(t, err)
	}
	due, err := s.jobs.FindDue(admin, now, 10)
	require.NoError(t, err)
	require.Len(t, due, 3)
	assert.Equal(t, []domain.Priority{domain.PriorityUrgent, domain.PriorityNormal, domain.PriorityLow},
		[]domain.Priority{due[0].Priority, due[1].Priority, due[2].Priority})

	ok, err := s.jobs.Cancel(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)

	cancelled, err := s.jobs.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, cancelled.Status)
	assert.Equal(t, domain.CancelledReason, cancelled.LastError)

	deleted, err := s.jobs.DeleteFinishedBefore(admin, now.Add(time.Hour), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = s.jobs.GetByID(ctx, 1)
	assert.ErrorIs(t, err, errs.ErrJobNotFound)
}

func (s *RepositoryTestSuite) TestNotificationLog() {
	t := s.T()
	ctx := s.ctxOf(1)

	_, err := s.logs.Create(ctx, domain.NotificationLog{
		ID: 1, Channel: domain.ChannelAlimTalk, Recipient: "01012345678",
		Status: domain.LogStatusFailed, EmailLogID: "mail-1",
	})
	require.NoError(t, err)

	sent, err := s.logs.HasSent(ctx, "mail-1")
	require.NoError(t, err)
	assert.False(t, sent)

	_, err = s.logs.Create(ctx, domain.NotificationLog{
		ID: 2, Channel: domain.ChannelSMS, Recipient: "01012345678",
		Status: domain.LogStatusSent, EmailLogID: "mail-1", FailoverUsed: true,
	})
	require.NoError(t, err)

	sent, err = s.logs.HasSent(ctx, "mail-1")
	require.NoError(t, err)
	assert.True(t, sent)

	// 其他租户的相同 emailLogID 不受影响
	sent, err = s.logs.HasSent(s.ctxOf(2), "mail-1")
	require.NoError(t, err)
	assert.False(t, sent)

	logs, err := s.logs.FindByEmailLogID(ctx, "mail-1")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.True(t, logs[1].FailoverUsed)
}
