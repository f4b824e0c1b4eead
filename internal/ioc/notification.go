package ioc

import (
	"context"
	"time"

	"gitee.com/flycash/order-notifier/internal/repository"
	"gitee.com/flycash/order-notifier/internal/service/notification"
	"gitee.com/flycash/order-notifier/internal/service/template"
	"gitee.com/flycash/order-notifier/internal/service/usage"
	"github.com/gotomicro/ego/core/econf"
	ca "github.com/patrickmn/go-cache"
)

// InitDeliveryCalculator 没有接入配送日历，按工作日推算
func InitDeliveryCalculator() notification.DeliveryCalculator {
	type Config struct {
		CutoffHour int `yaml:"cutoffHour"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("delivery", &cfg); err != nil {
		panic(err)
	}
	return notification.NextBusinessDay{Cutoff: cfg.CutoffHour}
}

// InitTemplateService 启动时补齐系统默认模板
func InitTemplateService(repo repository.TemplateRepository, c *ca.Cache) template.Service {
	svc := template.NewService(repo, c)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if err := svc.SeedDefaults(ctx); err != nil {
		panic(err)
	}
	return svc
}

func InitPlanResolver(repo repository.TenantRepository) usage.PlanResolver {
	return usage.NewTenantPlanResolver(repo)
}
