package repository

import (
	"context"

	"gitee.com/flycash/order-notifier/internal/domain"
	"gitee.com/flycash/order-notifier/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

// CompanyRepository 公司和联系人
type CompanyRepository interface {
	Create(ctx context.Context, c domain.Company) (domain.Company, error)
	GetByID(ctx context.Context, id int64) (domain.Company, error)
	FindByEmail(ctx context.Context, email string) (domain.Company, error)
	Update(ctx context.Context, c domain.Company) error
	Delete(ctx context.Context, id int64) error

	CreateContact(ctx context.Context, c domain.Contact) (domain.Contact, error)
	GetContact(ctx context.Context, id int64) (domain.Contact, error)
	FindActiveContacts(ctx context.Context, companyID int64) ([]domain.Contact, error)
	UpdateContact(ctx context.Context, c domain.Contact) error
	DeleteContact(ctx context.Context, id int64) error
}

type companyRepository struct {
	dao dao.CompanyDAO
}

func NewCompanyRepository(d dao.CompanyDAO) CompanyRepository {
	return &companyRepository{dao: d}
}

func (r *companyRepository) Create(ctx context.Context, c domain.Company) (domain.Company, error) {
	created, err := r.dao.Create(ctx, r.toEntity(c))
	if err != nil {
		return domain.Company{}, err
	}
	return r.toDomain(created), nil
}

func (r *companyRepository) GetByID(ctx context.Context, id int64) (domain.Company, error) {
	c, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Company{}, err
	}
	return r.toDomain(c), nil
}

func (r *companyRepository) FindByEmail(ctx context.Context, email string) (domain.Company, error) {
	c, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Company{}, err
	}
	return r.toDomain(c), nil
}

func (r *companyRepository) Update(ctx context.Context, c domain.Company) error {
	return r.dao.Update(ctx, r.toEntity(c))
}

func (r *companyRepository) Delete(ctx context.Context, id int64) error {
	return r.dao.Delete(ctx, id)
}

func (r *companyRepository) CreateContact(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	created, err := r.dao.CreateContact(ctx, r.toContactEntity(c))
	if err != nil {
		return domain.Contact{}, err
	}
	return r.toContactDomain(created), nil
}

func (r *companyRepository) GetContact(ctx context.Context, id int64) (domain.Contact, error) {
	c, err := r.dao.GetContact(ctx, id)
	if err != nil {
		return domain.Contact{}, err
	}
	return r.toContactDomain(c), nil
}

func (r *companyRepository) FindActiveContacts(ctx context.Context, companyID int64) ([]domain.Contact, error) {
	contacts, err := r.dao.FindActiveContacts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return slice.Map(contacts, func(_ int, src dao.Contact) domain.Contact {
		return r.toContactDomain(src)
	}), nil
}

func (r *companyRepository) UpdateContact(ctx context.Context, c domain.Contact) error {
	return r.dao.UpdateContact(ctx, r.toContactEntity(c))
}

func (r *companyRepository) DeleteContact(ctx context.Context, id int64) error {
	return r.dao.DeleteContact(ctx, id)
}

func (r *companyRepository) toEntity(c domain.Company) dao.Company {
	return dao.Company{
		ID:          c.ID,
		TenantOwned: dao.TenantOwned{TenantID: c.TenantID},
		Name:        c.Name,
		Region:      c.Region,
		Email:       c.Email,
		Active:      c.Active,
	}
}

func (r *companyRepository) toDomain(c dao.Company) domain.Company {
	return domain.Company{
		ID:       c.ID,
		TenantID: c.TenantID,
		Name:     c.Name,
		Region:   c.Region,
		Email:    c.Email,
		Active:   c.Active,
		Ctime:    c.Ctime,
		Utime:    c.Utime,
	}
}

func (r *companyRepository) toContactEntity(c domain.Contact) dao.Contact {
	return dao.Contact{
		ID:           c.ID,
		TenantOwned:  dao.TenantOwned{TenantID: c.TenantID},
		CompanyID:    c.CompanyID,
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		SMSEnabled:   c.SMSEnabled,
		KakaoEnabled: c.KakaoEnabled,
		Active:       c.Active,
	}
}

func (r *companyRepository) toContactDomain(c dao.Contact) domain.Contact {
	return domain.Contact{
		ID:           c.ID,
		TenantID:     c.TenantID,
		CompanyID:    c.CompanyID,
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		SMSEnabled:   c.SMSEnabled,
		KakaoEnabled: c.KakaoEnabled,
		Active:       c.Active,
		Ctime:        c.Ctime,
		Utime:        c.Utime,
	}
}
