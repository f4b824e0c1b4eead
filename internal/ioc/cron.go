package ioc

import (
	"gitee.com/flycash/order-notifier/internal/service/queue"
	"github.com/gotomicro/ego/task/ecron"
)

func Crons(cleanup *queue.Cleanup) []ecron.Ecron {
	c1 := ecron.Load("cron.queueCleanup").Build(ecron.WithJob(cleanup.Do))
	return []ecron.Ecron{c1}
}
