package repository

import (
	"context"
	"encoding/json"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/pkg/tenant"
	"gitee.com/flycash/order-notifier/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

type TemplateRepository interface {
	Save(ctx context.Context, t domain.Template) (domain.Template, error)
	// GetTenantTemplate 当前租户的模板
	GetTenantTemplate(ctx context.Context, name string, typ domain.Channel) (domain.Template, error)
	// GetDefaultTemplate 系统默认模板，不受当前租户影响
	GetDefaultTemplate(ctx context.Context, name string, typ domain.Channel) (domain.Template, error)
	CreateDefaultTemplate(ctx context.Context, t domain.Template) (domain.Template, error)
	List(ctx context.Context) ([]domain.Template, error)
	Delete(ctx context.Context, name string, typ domain.Channel) (bool, error)
}

type templateRepository struct {
	dao dao.TemplateDAO
}

func NewTemplateRepository(d dao.TemplateDAO) TemplateRepository {
	return &templateRepository{dao: d}
}

func (r *templateRepository) Save(ctx context.Context, t domain.Template) (domain.Template, error) {
	saved, err := r.dao.Upsert(ctx, dao.NotificationTemplate{
		Name:         t.Name,
		Type:         t.Type.String(),
		Subject:      t.Subject,
		Content:      t.Content,
		Variables:    r.marshalVariables(t.Variables),
		TemplateCode: t.TemplateCode,
		IsDefault:    t.IsDefault,
	})
	if err != nil {
		return domain.Template{}, err
	}
	return r.toDomain(saved), nil
}

func (r *templateRepository) GetTenantTemplate(ctx context.Context, name string, typ domain.Channel) (domain.Template, error) {
	t, err := r.dao.GetByNameType(ctx, name, typ.String())
	if err != nil {
		return domain.Template{}, err
	}
	return r.toDomain(t), nil
}

func (r *templateRepository) GetDefaultTemplate(ctx context.Context, name string, typ domain.Channel) (domain.Template, error) {
	t, err := r.dao.GetDefault(tenant.Detach(ctx), name, typ.String())
	if err != nil {
		return domain.Template{}, err
	}
	return r.defaultToDomain(t), nil
}

func (r *templateRepository) CreateDefaultTemplate(ctx context.Context, t domain.Template) (domain.Template, error) {
	created, err := r.dao.CreateDefault(tenant.Detach(ctx), dao.DefaultTemplate{
		Name:         t.Name,
		Type:         t.Type.String(),
		Subject:      t.Subject,
		Content:      t.Content,
		Variables:    r.marshalVariables(t.Variables),
		TemplateCode: t.TemplateCode,
	})
	if err != nil {
		return domain.Template{}, err
	}
	return r.defaultToDomain(created), nil
}

func (r *templateRepository) List(ctx context.Context) ([]domain.Template, error) {
	list, err := r.dao.List(ctx)
	if err != nil {
		return nil, err
	}
	return slice.Map(list, func(_ int, src dao.NotificationTemplate) domain.Template {
		return r.toDomain(src)
	}), nil
}

func (r *templateRepository) Delete(ctx context.Context, name string, typ domain.Channel) (bool, error) {
	affected, err := r.dao.Delete(ctx, name, typ.String())
	return affected > 0, err
}

func (r *templateRepository) toDomain(t dao.NotificationTemplate) domain.Template {
	return domain.Template{
		ID:           t.ID,
		TenantID:     t.TenantID,
		Name:         t.Name,
		Type:         domain.Channel(t.Type),
		Subject:      t.Subject,
		Content:      t.Content,
		Variables:    r.unmarshalVariables(t.Variables),
		IsDefault:    t.IsDefault,
		TemplateCode: t.TemplateCode,
		Ctime:        t.Ctime,
		Utime:        t.Utime,
	}
}

func (r *templateRepository) defaultToDomain(t dao.DefaultTemplate) domain.Template {
	return domain.Template{
		ID:           t.ID,
		Name:         t.Name,
		Type:         domain.Channel(t.Type),
		Subject:      t.Subject,
		Content:      t.Content,
		Variables:    r.unmarshalVariables(t.Variables),
		IsDefault:    true,
		TemplateCode: t.TemplateCode,
		Ctime:        t.Ctime,
		Utime:        t.Utime,
	}
}

func (r *templateRepository) marshalVariables(vars []string) string {
	if len(vars) == 0 {
		return ""
	}
	data, _ := json.Marshal(vars)
	return string(data)
}

func (r *templateRepository) unmarshalVariables(raw string) []string {
	if raw == "" {
		return nil
	}
	var vars []string
	_ = json.Unmarshal([]byte(raw), &vars)
	return vars
}
