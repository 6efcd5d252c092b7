// Package thirdpartyrepo persists logistics company accounts with GORM.
package thirdpartyrepo

import (
	"context"
	"errors"
	"time"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/thirdparty"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ThirdPartyDTO is the third_parties row.
type ThirdPartyDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string
	Address       string
	ContactPerson string
	ContactEmail  string `gorm:"uniqueIndex"`
	ContactPhone  string
	PasswordHash  string
	Pricing       string
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
}

func (ThirdPartyDTO) TableName() string {
	return "third_parties"
}

func fromDomain(tp *thirdparty.ThirdParty) ThirdPartyDTO {
	return ThirdPartyDTO{
		ID:            tp.ID().Bytes(),
		Name:          tp.Name(),
		Address:       tp.Address(),
		ContactPerson: tp.ContactPerson(),
		ContactEmail:  tp.ContactEmail().String(),
		ContactPhone:  tp.ContactPhone(),
		PasswordHash:  tp.PasswordHash(),
		Pricing:       tp.Pricing().String(),
		CreatedAt:     tp.CreatedAt().UTC(),
	}
}

func toDomain(dto ThirdPartyDTO) (*thirdparty.ThirdParty, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	email, err := kernel.NewEmail(dto.ContactEmail)
	if err != nil {
		return nil, err
	}
	pricing, err := thirdparty.ParsePricing(dto.Pricing)
	if err != nil {
		return nil, err
	}

	return thirdparty.RestoreThirdParty(id, thirdparty.Profile{
		Name:          dto.Name,
		Address:       dto.Address,
		ContactPerson: dto.ContactPerson,
		ContactEmail:  email,
		ContactPhone:  dto.ContactPhone,
		Pricing:       pricing,
	}, dto.PasswordHash, dto.CreatedAt.UTC())
}

// GormThirdPartyRepository implements ports.ThirdPartyRepository using GORM.
type GormThirdPartyRepository struct {
	db *gorm.DB
}

func NewGormThirdPartyRepository(db *gorm.DB) *GormThirdPartyRepository {
	return &GormThirdPartyRepository{db: db}
}

func (r *GormThirdPartyRepository) Add(ctx context.Context, aggregate *thirdparty.ThirdParty) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgerr.Insert("add logistics company", r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormThirdPartyRepository) Get(ctx context.Context, id kernel.UUID) (*thirdparty.ThirdParty, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id.String(), "id = ?", id.Bytes())
}

func (r *GormThirdPartyRepository) GetByEmail(ctx context.Context, email kernel.Email) (*thirdparty.ThirdParty, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, email.String(), "contact_email = ?", email.String())
}

func (r *GormThirdPartyRepository) first(ctx context.Context, key, query string, args ...any) (*thirdparty.ThirdParty, error) {
	var dto ThirdPartyDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("logistics company", key)
		}
		return nil, errs.AsPersistence("get logistics company", err)
	}
	return toDomain(dto)
}
