// Package isolation 所有实体读写的唯一入口。
// 每个操作都会按 context 里的租户过滤或者打上租户标记，没有租户时直接失败。
package isolation

import (
	"context"
	"fmt"
	"reflect"

	"gitee.com/flycash/order-notifier/internal/errs"
	"gitee.com/flycash/order-notifier/internal/pkg/tenant"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/elog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Owned 属于某个租户的实体，返回存放租户ID的列名
type Owned interface {
	TenantColumn() string
}

// Stamped 创建时可以被写入租户ID的实体
type Stamped interface {
	StampTenant(tenantID int64)
}

// Query 调用方自己的查询条件，租户条件会和它用 AND 组合
type Query struct {
	Where  string
	Args   []any
	Order  string
	Limit  int
	Offset int
}

// Where 构造只有条件的 Query
func Where(cond string, args ...any) Query {
	return Query{Where: cond, Args: args}
}

// Gateway 租户隔离的数据访问层
type Gateway struct {
	db *egorm.Component
	// 没有租户时可以访问的实体
	global map[reflect.Type]struct{}
	logger *elog.Component
}

// NewGateway globals 是没有租户上下文（超级管理员）时也允许访问的实体，
// 传入实体的零值即可，例如 dao.Tenant{}
func NewGateway(db *egorm.Component, globals ...any) *Gateway {
	g := &Gateway{
		db:     db,
		global: make(map[reflect.Type]struct{}, len(globals)),
		logger: elog.DefaultLogger.With(elog.String("component", "isolation")),
	}
	for _, e := range globals {
		g.global[entityType(e)] = struct{}{}
	}
	return g
}

// DB 原始连接，只给建表之类不涉及租户数据的操作使用
func (g *Gateway) DB() *egorm.Component {
	return g.db
}

// Create 租户字段会被无条件覆盖成当前租户
func (g *Gateway) Create(ctx context.Context, entity any) error {
	typ := entityType(entity)
	id, active := tenant.FromContext(ctx)
	if !active {
		if !g.isGlobal(typ) {
			return g.violation(ctx, typ, "create", errs.ErrTenantContextRequired)
		}
		return g.db.WithContext(ctx).Create(entity).Error
	}
	if _, owned := ownership(typ); !owned {
		return g.violation(ctx, typ, "create", errs.ErrGlobalEntity)
	}
	stamped, ok := entity.(Stamped)
	if !ok {
		return g.violation(ctx, typ, "create", errs.ErrGlobalEntity)
	}
	stamped.StampTenant(id.TenantID)
	return g.db.WithContext(ctx).Create(entity).Error
}

// First 没有数据时返回 gorm.ErrRecordNotFound
func (g *Gateway) First(ctx context.Context, dest any, q Query) error {
	db, err := g.scope(ctx, dest, "first")
	if err != nil {
		return err
	}
	return apply(db, q).First(dest).Error
}

func (g *Gateway) Find(ctx context.Context, dest any, q Query) error {
	db, err := g.scope(ctx, dest, "find")
	if err != nil {
		return err
	}
	return apply(db, q).Find(dest).Error
}

func (g *Gateway) Count(ctx context.Context, model any, q Query) (int64, error) {
	db, err := g.scope(ctx, model, "count")
	if err != nil {
		return 0, err
	}
	var cnt int64
	err = apply(db.Model(model), q).Count(&cnt).Error
	return cnt, err
}

// Update 租户字段会从 values 中移除，其他租户的数据影响行数为 0，不返回错误
func (g *Gateway) Update(ctx context.Context, model any, q Query, values map[string]any) (int64, error) {
	db, err := g.scope(ctx, model, "update")
	if err != nil {
		return 0, err
	}
	if col, owned := ownership(entityType(model)); owned {
		delete(values, col)
	}
	if len(values) == 0 {
		return 0, nil
	}
	res := apply(db.Model(model), q).Updates(values)
	return res.RowsAffected, res.Error
}

// Delete 其他租户的数据影响行数为 0，不返回错误
func (g *Gateway) Delete(ctx context.Context, model any, q Query) (int64, error) {
	db, err := g.scope(ctx, model, "delete")
	if err != nil {
		return 0, err
	}
	res := apply(db, q).Delete(model)
	return res.RowsAffected, res.Error
}

// scope 返回已经带上租户条件的 DB
func (g *Gateway) scope(ctx context.Context, model any, op string) (*gorm.DB, error) {
	typ := entityType(model)
	id, active := tenant.FromContext(ctx)
	db := g.db.WithContext(ctx)
	if !active {
		if !g.isGlobal(typ) {
			return nil, g.violation(ctx, typ, op, errs.ErrTenantContextRequired)
		}
		return db, nil
	}
	col, owned := ownership(typ)
	if !owned {
		return nil, g.violation(ctx, typ, op, errs.ErrGlobalEntity)
	}
	return db.Where(clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: col},
		Value:  id.TenantID,
	}), nil
}

func (g *Gateway) isGlobal(typ reflect.Type) bool {
	_, ok := g.global[typ]
	return ok
}

// violation 隔离错误都是代码缺陷，按 Error 级别记录
func (g *Gateway) violation(ctx context.Context, typ reflect.Type, op string, err error) error {
	g.logger.Error("租户隔离校验失败",
		elog.String("entity", typ.Name()),
		elog.String("op", op),
		elog.Int64("tenantId", tenant.ID(ctx)),
		elog.FieldErr(err))
	return fmt.Errorf("%w: %s %s", err, op, typ.Name())
}

func apply(db *gorm.DB, q Query) *gorm.DB {
	if q.Where != "" {
		// 调用方的条件整体加括号，gorm 只识别带空格的 OR/AND，换行连接的 OR 会绕过租户条件
		db = db.Where("("+q.Where+")", q.Args...)
	}
	if q.Order != "" {
		db = db.Order(q.Order)
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}
	return db
}

// entityType 支持 T、*T、*[]T、*[]*T
func entityType(v any) reflect.Type {
	typ := reflect.TypeOf(v)
	for typ.Kind() == reflect.Ptr || typ.Kind() == reflect.Slice {
		typ = typ.Elem()
	}
	return typ
}

func ownership(typ reflect.Type) (string, bool) {
	owned, ok := reflect.New(typ).Elem().Interface().(Owned)
	if !ok {
		return "", false
	}
	return owned.TenantColumn(), true
}
