package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects the aggregates written in a unit of work so their
// events reach the outbox on commit.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

type noTracking struct{}

func (noTracking) TrackAggregate(kernel.UUID, any) {}

// NewGormOrderRepository creates a repository bound to db, which is usually a transaction.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// NewGormOrderReader creates a repository for the read side, outside any unit of work.
func NewGormOrderReader(db *gorm.DB) *GormOrderRepository {
	return NewGormOrderRepository(db, noTracking{})
}

// Add inserts a new order.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.AsPersistence("add order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateIfStatus writes the mutable columns in one UPDATE guarded by the expected status.
// Zero affected rows means the order is gone or someone else moved it first.
func (r *GormOrderRepository) UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	var riderID any
	if dto.RiderID != nil {
		riderID = *dto.RiderID
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Updates(map[string]any{
			"rider_id":   riderID,
			"status":     dto.Status,
			"updated_at": dto.UpdatedAt,
		})
	if result.Error != nil {
		return errs.AsPersistence("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return errs.AsPersistence("update order", err)
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewConflictError(errs.ReasonStaleState,
			fmt.Sprintf("order %s is no longer %s", aggregate.ID(), expected))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.AsPersistence("get order", err)
	}

	return toDomain(dto)
}

// Find lists the matching orders, oldest first.
func (r *GormOrderRepository) Find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := applyFilter(r.db.WithContext(ctx), filter).Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, errs.AsPersistence("find orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) Count(ctx context.Context, filter ports.OrderFilter) (int64, error) {
	var count int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&OrderDTO{}), filter).Count(&count).Error; err != nil {
		return 0, errs.AsPersistence("count orders", err)
	}
	return count, nil
}

func applyFilter(db *gorm.DB, filter ports.OrderFilter) *gorm.DB {
	if filter.CustomerID != nil {
		db = db.Where("customer_id = ?", filter.CustomerID.Bytes())
	}
	if filter.RiderID != nil {
		db = db.Where("rider_id = ?", filter.RiderID.Bytes())
	}
	if filter.LogisticsCompanyID != nil {
		db = db.Where("logistics_company_id = ?", filter.LogisticsCompanyID.Bytes())
	}
	if filter.Status != nil {
		db = db.Where("status = ?", filter.Status.String())
	}
	return db
}
