package ioc

import (
	"fmt"

	"github.com/ego-component/egorm"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 每次调用都返回一个全新的内存数据库，测试之间互不影响。
// 只有一个连接，所以 :memory: 数据库在整个测试里是同一个。
func InitDB() *egorm.Component {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Errorf("数据库连接失败: %w", err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}
