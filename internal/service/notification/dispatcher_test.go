package notification

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/pkg/isolation"
	"gitee.com/flycash/order-notifier/internal/pkg/tenant"
	"gitee.com/flycash/order-notifier/internal/repository"
	"gitee.com/flycash/order-notifier/internal/repository/cache/local"
	"gitee.com/flycash/order-notifier/internal/repository/dao"
	"gitee.com/flycash/order-notifier/internal/service/provider"
	"gitee.com/flycash/order-notifier/internal/service/provider/memory"
	providermocks "gitee.com/flycash/order-notifier/internal/service/provider/mocks"
	"gitee.com/flycash/order-notifier/internal/service/template"
	templatemocks "gitee.com/flycash/order-notifier/internal/service/template/mocks"
	"gitee.com/flycash/order-notifier/internal/service/usage"
	testioc "gitee.com/flycash/order-notifier/internal/test/ioc"
	ca "github.com/patrickmn/go-cache"
	"github.com/sony/sonyflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const defaultSender = "0215880000"

func TestDispatcherSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(DispatcherTestSuite))
}

// pipeline 测试用的完整发送管道，数据库和缓存都在内存里
type pipeline struct {
	tenants   repository.TenantRepository
	companies repository.CompanyRepository
	logs      repository.NotificationLogRepository
	templates template.Service
	ledger    *usage.Ledger
	limits    map[domain.UsageType]int64
	sms       *memory.Provider
	kakao     *memory.Provider
	idGen     *sonyflake.Sonyflake
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()
	db := testioc.InitDB()
	require.NoError(t, dao.InitTables(db))
	gw := isolation.NewGateway(db, dao.GlobalEntities()...)

	p := &pipeline{
		tenants:   repository.NewTenantRepository(dao.NewTenantDAO(gw)),
		companies: repository.NewCompanyRepository(dao.NewCompanyDAO(gw)),
		logs:      repository.NewNotificationLogRepository(dao.NewNotificationLogDAO(gw)),
		limits:    map[domain.UsageType]int64{domain.UsageSMS: 100, domain.UsageKakao: 100},
		sms:       memory.NewProvider("sms", 0),
		kakao:     memory.NewProvider("kakao", 0),
		idGen: sonyflake.NewSonyflake(sonyflake.Settings{
			StartTime: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			MachineID: func() (uint16, error) {
				return 1, nil
			},
		}),
	}
	p.templates = template.NewService(repository.NewTemplateRepository(dao.NewTemplateDAO(gw)), ca.New(time.Minute, time.Minute))
	p.ledger = usage.NewLedger(local.NewUsageCache(ca.New(time.Hour, time.Hour)),
		usage.PlanResolverFunc(func(_ context.Context, _ int64, typ domain.UsageType) (int64, error) {
			return p.limits[typ], nil
		}))

	admin := context.Background()
	_, err := p.tenants.Create(admin, domain.Tenant{Name: "acme", Plan: domain.PlanBasic, Status: domain.TenantStatusActive})
	require.NoError(t, err)
	require.NoError(t, p.templates.SeedDefaults(admin))
	return p
}

func (p *pipeline) registry(providers map[domain.Channel]provider.Provider) *provider.Registry {
	if providers == nil {
		providers = map[domain.Channel]provider.Provider{
			domain.ChannelSMS:        p.sms,
			domain.ChannelAlimTalk:   p.kakao,
			domain.ChannelFriendTalk: p.kakao,
		}
	}
	return provider.NewRegistry(defaultSender, providers, nil)
}

func (p *pipeline) dispatcher(registry *provider.Registry) Dispatcher {
	if registry == nil {
		registry = p.registry(nil)
	}
	return NewDispatcher(registry, p.templates, p.ledger, p.tenants, p.companies, p.logs, p.idGen)
}

func (p *pipeline) monthly(t *testing.T, typ domain.UsageType) int64 {
	t.Helper()
	n, err := p.ledger.Current(context.Background(), 1, typ, domain.GranularityMonth)
	require.NoError(t, err)
	return n
}

type DispatcherTestSuite struct {
	suite.Suite
	p   *pipeline
	ctx context.Context
}

func (s *DispatcherTestSuite) SetupTest() {
	s.p = newPipeline(s.T())
	s.ctx = tenant.WithTenant(context.Background(), 1)
}

func (s *DispatcherTestSuite) orderRequest(ch domain.Channel) domain.DispatchRequest {
	return domain.DispatchRequest{
		Channel:      ch,
		Recipient:    "01012345678",
		TemplateName: domain.TemplateOrderReceived,
		Variables: map[string]string{
			"companyName":  "acme",
			"orderDate":    "2024-05-20 10:00",
			"deliveryDate": "2024년 5월 21일 (화)",
			"shortDate":    "5/21",
			"deliveryTime": "",
		},
		EmailLogID: "mail-1",
	}
}

func (s *DispatcherTestSuite) TestSendSMS() {
	t := s.T()
	res, err := s.p.dispatcher(nil).Send(s.ctx, s.orderRequest(domain.ChannelSMS))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "sms", res.Provider)
	assert.Equal(t, "[acme] 주문접수 완료. 배송예정 5/21 ", res.Content)

	sent := s.p.sms.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, defaultSender, sent[0].Sender)
	assert.Equal(t, domain.KindSMS, sent[0].Kind)
	assert.Equal(t, int64(1), s.p.monthly(t, domain.UsageSMS))

	logs, err := s.p.logs.FindByEmailLogID(s.ctx, "mail-1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.LogStatusSent, logs[0].Status)
	assert.Equal(t, res.LogID, logs[0].ID)
	assert.Equal(t, res.MessageID, logs[0].MessageID)
}

func (s *DispatcherTestSuite) TestVerifiedSender() {
	t := s.T()
	require.NoError(t, s.p.tenants.UpdateSender(context.Background(), 1, "01099998888", true))

	_, err := s.p.dispatcher(nil).Send(s.ctx, s.orderRequest(domain.ChannelSMS))
	require.NoError(t, err)
	require.Len(t, s.p.sms.Sent(), 1)
	assert.Equal(t, "01099998888", s.p.sms.Sent()[0].Sender)
}

func (s *DispatcherTestSuite) TestRawMessageSwitchesToLMS() {
	t := s.T()
	res, err := s.p.dispatcher(nil).Send(s.ctx, domain.DispatchRequest{
		Channel:   domain.ChannelSMS,
		Recipient: "01012345678",
		Message:   strings.Repeat("가", 46),
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, domain.KindLMS, s.p.sms.Sent()[0].Kind)
}

func (s *DispatcherTestSuite) TestQuotaExceeded() {
	t := s.T()
	s.p.limits[domain.UsageSMS] = 0

	res, err := s.p.dispatcher(nil).Send(s.ctx, s.orderRequest(domain.ChannelSMS))
	assert.ErrorIs(t, err, errs.ErrQuotaExceeded)
	assert.True(t, res.QuotaExceeded)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "요금제를 업그레이드")
	assert.Empty(t, s.p.sms.Sent())
	assert.Equal(t, int64(0), s.p.monthly(t, domain.UsageSMS))

	// 中止的发送也有审计记录
	logs, err := s.p.logs.FindByEmailLogID(s.ctx, "mail-1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.LogStatusFailed, logs[0].Status)
}

func (s *DispatcherTestSuite) TestKakaoSuccessNeverSendsSMS() {
	t := s.T()
	req := s.orderRequest(domain.ChannelAlimTalk)
	req.EnableFailover = true
	req.SMSEnabled = true

	res, err := s.p.dispatcher(nil).Send(s.ctx, req)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.False(t, res.FailoverAttempted)
	require.Len(t, s.p.kakao.Sent(), 1)
	assert.Equal(t, domain.TemplateOrderReceived, s.p.kakao.Sent()[0].TemplateCode)
	assert.Equal(t, domain.KindAlimTalk, s.p.kakao.Sent()[0].Kind)
	assert.Empty(t, s.p.sms.Sent())
	assert.Equal(t, int64(1), s.p.monthly(t, domain.UsageKakao))
	assert.Equal(t, int64(0), s.p.monthly(t, domain.UsageSMS))
}

func (s *DispatcherTestSuite) TestFailover() {
	testCases := []struct {
		name           string
		enableFailover bool
		smsEnabled     bool
		smsLimit       int64
		wantSuccess    bool
		wantAttempted  bool
		wantSMS        int
		wantRetryable  bool
	}{
		{name: "切换到 SMS", enableFailover: true, smsEnabled: true, smsLimit: 100, wantSuccess: true, wantAttempted: true, wantSMS: 1},
		{name: "没有要求切换", enableFailover: false, smsEnabled: true, smsLimit: 100, wantRetryable: true},
		{name: "联系人关闭了 SMS", enableFailover: true, smsEnabled: false, smsLimit: 100, wantRetryable: true},
		{name: "SMS 额度不足", enableFailover: true, smsEnabled: true, smsLimit: 0, wantAttempted: true},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			t := s.T()
			p := newPipeline(t)
			p.limits[domain.UsageSMS] = tc.smsLimit
			p.kakao.SetFailureRate(1)
			req := s.orderRequest(domain.ChannelAlimTalk)
			req.EnableFailover = tc.enableFailover
			req.SMSEnabled = tc.smsEnabled

			res, err := p.dispatcher(nil).Send(s.ctx, req)
			require.NoError(t, err)
			assert.Equal(t, tc.wantSuccess, res.Success)
			assert.Equal(t, tc.wantAttempted, res.FailoverAttempted)
			assert.Equal(t, tc.wantSuccess, res.FailoverUsed)
			assert.Equal(t, tc.wantRetryable, res.Retryable)
			assert.Len(t, p.sms.Sent(), tc.wantSMS)
			// Kakao 不会被重复尝试
			assert.Empty(t, p.kakao.Sent())

			if tc.wantSuccess {
				assert.Equal(t, "sms(failover)", res.Provider)
				assert.Equal(t, int64(1), p.monthly(t, domain.UsageKakao))
				assert.Equal(t, int64(1), p.monthly(t, domain.UsageSMS))
			} else {
				assert.NotEmpty(t, res.Error)
				assert.Equal(t, int64(0), p.monthly(t, domain.UsageKakao))
			}
		})
	}
}

func (s *DispatcherTestSuite) TestKakaoNotConfigured() {
	t := s.T()
	registry := s.p.registry(map[domain.Channel]provider.Provider{domain.ChannelSMS: s.p.sms})
	req := s.orderRequest(domain.ChannelFriendTalk)

	res, err := s.p.dispatcher(registry).Send(s.ctx, req)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.False(t, res.Retryable)
	assert.Contains(t, res.Error, errs.ErrProviderNotConfigured.Error())

	req.EnableFailover = true
	req.SMSEnabled = true
	res, err = s.p.dispatcher(registry).Send(s.ctx, req)
	require.NoError(t, err)
	assert.True(t, res.FailoverUsed)
	assert.Len(t, s.p.sms.Sent(), 1)

	// Kakao 未配置时，SMS 的临时故障仍然可以重试
	s.p.sms.SetFailureRate(1)
	res, err = s.p.dispatcher(registry).Send(s.ctx, req)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.True(t, res.FailoverAttempted)
	assert.True(t, res.Retryable)
	assert.Contains(t, res.Error, errs.ErrProviderNotConfigured.Error())
	assert.Contains(t, res.Error, "sms")
}

func (s *DispatcherTestSuite) TestContactTogglesFailover() {
	t := s.T()
	company, err := s.p.companies.Create(s.ctx, domain.Company{Name: "acme", Active: true})
	require.NoError(t, err)
	contact, err := s.p.companies.CreateContact(s.ctx, domain.Contact{
		CompanyID: company.ID, Phone: "01012345678", Active: true, KakaoEnabled: true, SMSEnabled: false,
	})
	require.NoError(t, err)
	s.p.kakao.SetFailureRate(1)

	req := s.orderRequest(domain.ChannelAlimTalk)
	req.ContactID = contact.ID
	req.EnableFailover = true
	// 联系人上的开关优先
	req.SMSEnabled = true

	res, err := s.p.dispatcher(nil).Send(s.ctx, req)
	require.NoError(t, err)
	assert.False(t, res.FailoverAttempted)
	assert.Empty(t, s.p.sms.Sent())

	req.ContactID = 9999
	_, err = s.p.dispatcher(nil).Send(s.ctx, req)
	assert.ErrorIs(t, err, errs.ErrContactNotFound)
}

func (s *DispatcherTestSuite) TestAborts() {
	testCases := []struct {
		name    string
		ctx     context.Context
		req     domain.DispatchRequest
		wantErr error
		wantLog bool
	}{
		{
			name:    "缺少租户上下文",
			ctx:     context.Background(),
			req:     s.orderRequest(domain.ChannelSMS),
			wantErr: errs.ErrTenantContextRequired,
		},
		{
			name:    "参数错误",
			ctx:     s.ctx,
			req:     domain.DispatchRequest{Channel: domain.ChannelSMS, EmailLogID: "mail-1"},
			wantErr: errs.ErrInvalidParameter,
		},
		{
			name: "模板不存在",
			ctx:  s.ctx,
			req: domain.DispatchRequest{
				Channel: domain.ChannelSMS, Recipient: "01012345678", TemplateName: "MISSING", EmailLogID: "mail-1",
			},
			wantErr: errs.ErrTemplateNotFound,
			wantLog: true,
		},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			t := s.T()
			p := newPipeline(t)
			res, err := p.dispatcher(nil).Send(tc.ctx, tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.False(t, res.Success)
			assert.False(t, errs.IsRetryable(err))
			assert.Empty(t, p.sms.Sent())

			logs, err := p.logs.FindByEmailLogID(s.ctx, "mail-1")
			require.NoError(t, err)
			if tc.wantLog {
				require.Len(t, logs, 1)
				assert.Equal(t, domain.LogStatusFailed, logs[0].Status)
				return
			}
			assert.Empty(t, logs)
		})
	}
}

func (s *DispatcherTestSuite) TestPanicIsAudited() {
	t := s.T()
	ctrl := gomock.NewController(t)
	broken := providermocks.NewMockProvider(ctrl)
	broken.EXPECT().ValidateConfig().Return(true)
	broken.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, domain.Message) (domain.SendResponse, error) {
		panic("nil map")
	})
	registry := s.p.registry(map[domain.Channel]provider.Provider{domain.ChannelSMS: broken})

	res, err := s.p.dispatcher(registry).Send(s.ctx, s.orderRequest(domain.ChannelSMS))
	require.Error(t, err)
	assert.False(t, errs.IsRetryable(err))
	assert.Contains(t, res.Error, "panic")

	logs, err := s.p.logs.FindByEmailLogID(s.ctx, "mail-1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.LogStatusFailed, logs[0].Status)
}

func (s *DispatcherTestSuite) TestRenderFailureIsAudited() {
	t := s.T()
	ctrl := gomock.NewController(t)
	templates := templatemocks.NewMockService(ctrl)
	templates.EXPECT().Render(gomock.Any(), domain.TemplateOrderReceived, gomock.Any(), domain.ChannelAlimTalk).
		Return(domain.RenderedTemplate{}, fmt.Errorf("%w: 内容过长", errs.ErrInvalidTemplate))

	d := NewDispatcher(s.p.registry(nil), templates, s.p.ledger, s.p.tenants, s.p.companies, s.p.logs, s.p.idGen)
	res, err := d.Send(s.ctx, s.orderRequest(domain.ChannelAlimTalk))
	assert.ErrorIs(t, err, errs.ErrInvalidTemplate)
	assert.False(t, res.Success)
	assert.Empty(t, s.p.kakao.Sent())
	assert.Equal(t, int64(0), s.p.monthly(t, domain.UsageKakao))

	logs, err := s.p.logs.FindByEmailLogID(s.ctx, "mail-1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.LogStatusFailed, logs[0].Status)
	assert.Contains(t, logs[0].Error, "内容过长")
}
