package ioc

import (
	"gitee.com/flycash/order-notifier/internal/web"
	"github.com/gotomicro/ego/server/egin"
	"github.com/gotomicro/ego/server/egovernor"
)

func InitWebServer(handler *web.Handler) *egin.Component {
	server := egin.Load("server.http").Build()
	handler.PublicRoutes(server.Engine)
	return server
}

func InitGovernor() *egovernor.Component {
	return egovernor.Load("server.governor").Build()
}
