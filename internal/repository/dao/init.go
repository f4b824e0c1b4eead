package dao

import (
	"github.com/ego-component/egorm"
)

// InitTables 建表
func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(
		&Tenant{},
		&Company{},
		&Contact{},
		&NotificationTemplate{},
		&DefaultTemplate{},
		&NotificationJob{},
		&NotificationLog{},
	)
}

// GlobalEntities 没有租户上下文时允许访问的实体：
// 租户表本身、给队列调度用的任务表、系统默认模板
func GlobalEntities() []any {
	return []any{Tenant{}, NotificationJob{}, DefaultTemplate{}}
}
