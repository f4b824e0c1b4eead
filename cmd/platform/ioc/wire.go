//go:build wireinject

package ioc

import (
	"gitee.com/flycash/order-notifier/internal/ioc"
	"gitee.com/flycash/order-notifier/internal/repository"
	"gitee.com/flycash/order-notifier/internal/repository/dao"
	"gitee.com/flycash/order-notifier/internal/service/notification"
	"gitee.com/flycash/order-notifier/internal/service/queue"
	"gitee.com/flycash/order-notifier/internal/service/usage"
	"gitee.com/flycash/order-notifier/internal/web"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

var (
	BaseSet = wire.NewSet(
		ioc.InitDB,
		ioc.InitGateway,
		ioc.InitRedisClient,
		wire.Bind(new(redis.Cmdable), new(*redis.Client)),
		ioc.InitDistributedLock,
		ioc.InitIDGenerator,
		ioc.InitGoCache,
		ioc.InitUsageCache,
		ioc.InitZipkinTracer,
	)
	repositorySet = wire.NewSet(
		repository.NewTenantRepository,
		dao.NewTenantDAO,
		repository.NewCompanyRepository,
		dao.NewCompanyDAO,
		repository.NewTemplateRepository,
		dao.NewTemplateDAO,
		repository.NewNotificationLogRepository,
		dao.NewNotificationLogDAO,
		repository.NewJobRepository,
		dao.NewJobDAO,
	)
	usageSvcSet = wire.NewSet(
		usage.NewLedger,
		wire.Bind(new(usage.Service), new(*usage.Ledger)),
		ioc.InitPlanResolver,
	)
	providerSet = wire.NewSet(
		ioc.InitSMSProviders,
		ioc.InitKakaoClient,
		ioc.InitProviderRegistry,
	)
	notificationSvcSet = wire.NewSet(
		ioc.InitTemplateService,
		notification.NewDispatcher,
		notification.NewOrderNotifier,
		ioc.InitDeliveryCalculator,
	)
	queueSvcSet = wire.NewSet(
		queue.NewService,
		ioc.InitQueueProcessor,
		ioc.InitQueueCleanup,
	)
)

func InitApp() *ioc.App {
	wire.Build(
		// 基础设施
		BaseSet,
		repositorySet,

		// 计量、供应商、通知和队列
		usageSvcSet,
		providerSet,
		notificationSvcSet,
		queueSvcSet,

		// HTTP 服务和后台任务
		web.NewHandler,
		ioc.InitWebServer,
		ioc.InitGovernor,
		ioc.Crons,
		ioc.InitTasks,
		wire.Struct(new(ioc.App), "*"),
	)
	return new(ioc.App)
}
