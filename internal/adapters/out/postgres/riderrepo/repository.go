package riderrepo

import (
	"context"
	"errors"
	"fmt"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRiderRepository implements ports.RiderRepository using GORM.
type GormRiderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRiderRepository(db *gorm.DB, tracker aggregateTracker) *GormRiderRepository {
	return &GormRiderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new rider. A taken e-mail is reported as ConflictError(DuplicateAccount).
func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Insert("add rider", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "rider", id.String(), "id = ?", id.Bytes())
}

func (r *GormRiderRepository) GetByEmail(ctx context.Context, email kernel.Email) (*rider.Rider, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "rider", email.String(), "email = ?", email.String())
}

func (r *GormRiderRepository) first(ctx context.Context, name, key string, query string, args ...any) (*rider.Rider, error) {
	var dto RiderDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(name, key)
		}
		return nil, errs.AsPersistence("get rider", err)
	}
	return toDomain(dto)
}

// UpdateIfStatus writes availability and the current order in one UPDATE guarded by
// the expected status.
func (r *GormRiderRepository) UpdateIfStatus(ctx context.Context, aggregate *rider.Rider, expected rider.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	var currentOrderID any
	if dto.CurrentOrderID != nil {
		currentOrderID = *dto.CurrentOrderID
	}

	result := r.db.WithContext(ctx).Model(&RiderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Updates(map[string]any{
			"status":           dto.Status,
			"current_order_id": currentOrderID,
			"current_location": dto.CurrentLocation,
			"is_active":        dto.IsActive,
			"updated_at":       dto.UpdatedAt,
		})
	if result.Error != nil {
		return errs.AsPersistence("update rider", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&RiderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return errs.AsPersistence("update rider", err)
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("rider", aggregate.ID().String())
		}
		return errs.NewConflictError(errs.ReasonStaleState,
			fmt.Sprintf("rider %s is no longer %s", aggregate.ID(), expected))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// FindBusy locks the Busy rows it returns. Rows already locked by another transaction
// are skipped, so two reconciliation runs never work on the same rider.
func (r *GormRiderRepository) FindBusy(ctx context.Context) ([]*rider.Rider, error) {
	var dtos []RiderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ?", rider.Busy.String()).
		Order("updated_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.AsPersistence("find busy riders", err)
	}

	riders := make([]*rider.Rider, 0, len(dtos))
	for _, dto := range dtos {
		rd, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		riders = append(riders, rd)
	}
	return riders, nil
}
