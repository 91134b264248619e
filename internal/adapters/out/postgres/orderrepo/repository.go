package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository. db may be a
// transaction handle.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save inserts an order without identifier, assigning a fresh one, and
// overwrites an order that already has one, replacing its item rows.
func (r *GormOrderRepository) Save(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if aggregate.ID().IsZero() {
		return r.insert(ctx, aggregate)
	}
	return r.overwrite(ctx, aggregate)
}

func (r *GormOrderRepository) insert(ctx context.Context, aggregate *order.Order) error {
	id := kernel.NewUUID()
	dto := fromDomain(aggregate, id)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return aggregate.AssignID(id)
}

func (r *GormOrderRepository) overwrite(ctx context.Context, aggregate *order.Order) error {
	dto := fromDomain(aggregate, aggregate.ID())
	db := r.db.WithContext(ctx)

	if err := db.Omit(clause.Associations).Save(&dto).Error; err != nil {
		return err
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&OrderItemDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Items) == 0 {
		return nil
	}
	return db.Create(&dto.Items).Error
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withItems(ctx).First(&dto, "id = ?", id.Raw()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return restore(dto)
}

// GetPage retrieves orders by creation time, oldest first.
func (r *GormOrderRepository) GetPage(ctx context.Context, offset, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.withItems(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := restore(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Count returns the number of stored orders.
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CountByStatus groups stored orders by status.
func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("status, count(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[order.Status]int64, len(rows))
	for _, row := range rows {
		status, err := order.ParseStatus(row.Status)
		if err != nil {
			return nil, err
		}
		counts[status] = row.Total
	}
	return counts, nil
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// restore rebuilds the aggregate from stored rows. Rows that break domain
// rules are reported as a storage fault, not as a client validation error.
func restore(dto OrderDTO) (*order.Order, error) {
	o, err := toDomain(dto)
	if err != nil {
		return nil, fmt.Errorf("stored order %s is inconsistent: %v", dto.ID, err) //nolint:errorlint // hide domain sentinels
	}
	return o, nil
}
