package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gitee.com/flycash/order-notifier/internal/errs"
)

// 韩国手机号：010/011/016/017/018/019 开头，后面 7 到 8 位
var mobilePattern = regexp.MustCompile(`^01[016789][0-9]{7,8}$`)

type Company struct {
	ID       int64
	TenantID int64
	Name     string
	Region   string
	Email    string
	Active   bool
	Ctime    int64
	Utime    int64
}

type Contact struct {
	ID           int64
	TenantID     int64
	CompanyID    int64
	Name         string
	Phone        string
	Email        string
	SMSEnabled   bool
	KakaoEnabled bool
	Active       bool
	Ctime        int64
	Utime        int64
}

func (c *Contact) Validate() error {
	if c.CompanyID <= 0 {
		return fmt.Errorf("%w: CompanyID = %d", errs.ErrInvalidParameter, c.CompanyID)
	}
	phone, err := NormalizePhone(c.Phone)
	if err != nil {
		return err
	}
	c.Phone = phone
	return nil
}

// NormalizePhone 去掉分隔符并校验号码格式
func NormalizePhone(phone string) (string, error) {
	normalized := strings.NewReplacer("-", "", " ", "", ".", "").Replace(strings.TrimSpace(phone))
	normalized = strings.TrimPrefix(normalized, "+82")
	if normalized != "" && normalized[0] != '0' {
		normalized = "0" + normalized
	}
	if !mobilePattern.MatchString(normalized) {
		return "", fmt.Errorf("%w: Phone = %q", errs.ErrInvalidParameter, phone)
	}
	return normalized, nil
}

// DeliveryInfo 配送日期计算结果，由外部协作方提供
type DeliveryInfo struct {
	DeliveryDate time.Time
	// 配送时间段，未确定时为 "미정"
	DeliveryTimeSlot string
}
