// Package tenant 在 context 里面传递当前租户身份。
// 身份只跟随一次请求或者一个任务，不存在进程级的全局状态。
package tenant

import "context"

type ctxKey struct{}

// Identity 当前操作的租户和用户，TenantID <= 0 表示没有租户（超级管理员）
type Identity struct {
	TenantID int64
	UserID   int64
}

func (i Identity) Active() bool {
	return i.TenantID > 0
}

// WithIdentity 设置当前租户和用户
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// WithTenant 只设置租户
func WithTenant(ctx context.Context, tenantID int64) context.Context {
	return WithIdentity(ctx, Identity{TenantID: tenantID})
}

// FromContext 返回当前身份，没有激活的租户时 ok 为 false
func FromContext(ctx context.Context) (Identity, bool) {
	id, _ := ctx.Value(ctxKey{}).(Identity)
	return id, id.Active()
}

// ID 返回当前租户ID，没有时返回 0
func ID(ctx context.Context) int64 {
	id, _ := FromContext(ctx)
	return id.TenantID
}

// Detach 清除租户身份，派生出来的 ctx 以超级管理员身份访问全局数据
func Detach(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, Identity{})
}
