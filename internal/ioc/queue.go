package ioc

import (
	"time"

	"gitee.com/flycash/order-notifier/internal/repository"
	"gitee.com/flycash/order-notifier/internal/service/notification"
	"gitee.com/flycash/order-notifier/internal/service/queue"
	"github.com/gotomicro/ego/core/econf"
	"github.com/meoying/dlock-go"
)

func InitQueueProcessor(repo repository.JobRepository, dispatcher notification.Dispatcher, dclient dlock.Client) *queue.Processor {
	var cfg queue.Config
	if err := econf.UnmarshalKey("queue.processor", &cfg); err != nil {
		panic(err)
	}
	p, err := queue.NewProcessor(repo, dispatcher, dclient, cfg)
	if err != nil {
		panic(err)
	}
	return p
}

func InitQueueCleanup(repo repository.JobRepository) *queue.Cleanup {
	type Config struct {
		Retention time.Duration `yaml:"retention"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("queue.cleanup", &cfg); err != nil {
		panic(err)
	}
	return queue.NewCleanup(repo, cfg.Retention)
}
