package notification

import (
	"context"
	"time"

	"gitee.com/flycash/order-notifier/internal/domain"
)

// NextBusinessDay 没有接入配送日历时使用：下一个工作日送达，时间段未定。
// cutoff 之后的订单再顺延一天
type NextBusinessDay struct {
	Cutoff int
}

func (n NextBusinessDay) Calculate(_ context.Context, _ string, orderTime time.Time, _ int64) (domain.DeliveryInfo, error) {
	t := orderTime.In(kst)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, kst).AddDate(0, 0, 1)
	if n.Cutoff > 0 && t.Hour() >= n.Cutoff {
		day = day.AddDate(0, 0, 1)
	}
	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, 1)
	}
	return domain.DeliveryInfo{DeliveryDate: day, DeliveryTimeSlot: TimeSlotUndecided}, nil
}
