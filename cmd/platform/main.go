package main

import (
	"context"
	"time"

	"gitee.com/flycash/order-notifier/cmd/platform/ioc"
	"github.com/gotomicro/ego"
	"github.com/gotomicro/ego/core/elog"
)

func main() {
	// ego.New 会加载配置，依赖必须在它之后初始化
	egoApp := ego.New()
	app := ioc.InitApp()

	ctx, cancel := context.WithCancel(context.Background())
	for _, t := range app.Tasks {
		t.Start(ctx)
	}

	err := egoApp.Serve(app.Web, app.Governor).Cron(app.Crons...).Run()
	cancel()
	for _, t := range app.Tasks {
		t.Stop()
	}
	if app.Tracer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second*5)
		if sErr := app.Tracer.Shutdown(shutdownCtx); sErr != nil {
			elog.Error("关闭链路上报失败", elog.FieldErr(sErr))
		}
		shutdownCancel()
	}
	if err != nil {
		elog.Panic("startup", elog.FieldErr(err))
	}
}
