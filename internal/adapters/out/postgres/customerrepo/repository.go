// Package customerrepo persists customer accounts with GORM.
package customerrepo

import (
	"context"
	"errors"
	"time"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerDTO is the customers row.
type CustomerDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Email        string `gorm:"uniqueIndex"`
	Phone        string
	PasswordHash string
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:           c.ID().Bytes(),
		Name:         c.Name(),
		Email:        c.Email().String(),
		Phone:        c.Phone(),
		PasswordHash: c.PasswordHash(),
		CreatedAt:    c.CreatedAt().UTC(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	return customer.RestoreCustomer(id, dto.Name, email, dto.Phone, dto.PasswordHash, dto.CreatedAt.UTC())
}

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgerr.Insert("add customer", r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id.String(), "id = ?", id.Bytes())
}

func (r *GormCustomerRepository) GetByEmail(ctx context.Context, email kernel.Email) (*customer.Customer, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, email.String(), "email = ?", email.String())
}

func (r *GormCustomerRepository) first(ctx context.Context, key, query string, args ...any) (*customer.Customer, error) {
	var dto CustomerDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", key)
		}
		return nil, errs.AsPersistence("get customer", err)
	}
	return toDomain(dto)
}
