package ioc

import (
	"time"

	"github.com/gotomicro/ego/core/econf"
	"github.com/sony/sonyflake"
)

func InitIDGenerator() *sonyflake.Sonyflake {
	type Config struct {
		MachineID uint16 `yaml:"machineId"`
		StartTime string `yaml:"startTime"`
	}
	cfg := Config{StartTime: "2024-01-01"}
	if err := econf.UnmarshalKey("idgen", &cfg); err != nil {
		panic(err)
	}
	start, err := time.Parse(time.DateOnly, cfg.StartTime)
	if err != nil {
		panic(err)
	}
	settings := sonyflake.Settings{StartTime: start}
	// 没有配置时使用私有 IP 的低 16 位
	if cfg.MachineID > 0 {
		settings.MachineID = func() (uint16, error) {
			return cfg.MachineID, nil
		}
	}
	sf := sonyflake.NewSonyflake(settings)
	if sf == nil {
		panic("初始化 ID 生成器失败")
	}
	return sf
}
