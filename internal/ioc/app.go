package ioc

import (
	"context"

	"gitee.com/flycash/order-notifier/internal/service/queue"
	"github.com/gotomicro/ego/server/egin"
	"github.com/gotomicro/ego/server/egovernor"
	"github.com/gotomicro/ego/task/ecron"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Task 跟随进程运行的后台任务
type Task interface {
	Start(ctx context.Context)
	// Stop 等待正在执行的工作结束
	Stop()
}

type App struct {
	Web      *egin.Component
	Governor *egovernor.Component
	Crons    []ecron.Ecron
	Tasks    []Task
	// 没有配置 zipkin 时为 nil
	Tracer *sdktrace.TracerProvider
}

func InitTasks(processor *queue.Processor) []Task {
	return []Task{processor}
}
