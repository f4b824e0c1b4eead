package ioc

import (
	"gitee.com/flycash/order-notifier/internal/pkg/isolation"
	"gitee.com/flycash/order-notifier/internal/repository/dao"
	"github.com/ego-component/egorm"
)

func InitDB() *egorm.Component {
	db := egorm.Load("mysql").Build()
	if err := dao.InitTables(db); err != nil {
		panic(err)
	}
	return db
}

// InitGateway 所有 DAO 共用同一个租户隔离网关
func InitGateway(db *egorm.Component) *isolation.Gateway {
	return isolation.NewGateway(db, dao.GlobalEntities()...)
}
