package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"picking/internal/core/domain/model/order"
	"picking/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pq error code for unique constraint violations.
const uniqueViolationCode = "23505"

// ErrOrderAlreadyExists is returned by Add when an order with the same id is
// already stored. Concurrent importers may race past the Exists check; the
// primary key constraint is the authority.
var ErrOrderAlreadyExists = errors.New("picking order already exists")

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with all its items to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return fmt.Errorf("order %d: %w", aggregate.ID(), ErrOrderAlreadyExists)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the mutable state of an existing order: the status column and
// the pick state of every item. Reference data never changes after Add, so
// item rows are only touched in their picked columns.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Update("status", dto.Status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	for _, itemDTO := range dto.Items {
		// a map is required here: a struct update would skip nil picked fields
		err := r.db.WithContext(ctx).Model(&ItemDTO{}).
			Where("id = ?", itemDTO.ID).
			Updates(map[string]any{
				"picked_quantity": itemDTO.PickedQuantity,
				"picked_at":       itemDTO.PickedAt,
			}).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its items in file order.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order by ID, taking a row-level write lock on the
// order. Concurrent updates for the same order serialize on this lock while
// other orders proceed independently.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(ctx, id, true)
}

func (r *GormOrderRepository) get(ctx context.Context, id int64, forUpdate bool) (*order.Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("%d is not greater than 0", id))
	}

	tx := r.db.WithContext(ctx)
	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: OrderDTO{}.TableName()}})
	}

	var dto OrderDTO
	err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}).First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Exists reports whether an order with the given id is already stored.
func (r *GormOrderRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
