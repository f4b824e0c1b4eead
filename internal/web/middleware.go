package web

import (
	"fmt"
	"strconv"

	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/pkg/tenant"
	"github.com/gin-gonic/gin"
)

const (
	HeaderTenantID = "X-Tenant-ID"
	HeaderUserID   = "X-User-ID"
)

// TenantIdentity 把请求头里的租户身份放进 request context。
// 没有 X-Tenant-ID 时按超级管理员处理，租户数据的接口会因为缺少租户而失败
func TenantIdentity() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tenantID, err := headerID(ctx, HeaderTenantID)
		if err != nil {
			fail(ctx, err, nil)
			ctx.Abort()
			return
		}
		userID, err := headerID(ctx, HeaderUserID)
		if err != nil {
			fail(ctx, err, nil)
			ctx.Abort()
			return
		}
		if tenantID > 0 {
			c := tenant.WithIdentity(ctx.Request.Context(), tenant.Identity{TenantID: tenantID, UserID: userID})
			ctx.Request = ctx.Request.WithContext(c)
		}
		ctx.Next()
	}
}

func headerID(ctx *gin.Context, key string) (int64, error) {
	raw := ctx.GetHeader(key)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %s = %q", errs.ErrInvalidParameter, key, raw)
	}
	return id, nil
}
