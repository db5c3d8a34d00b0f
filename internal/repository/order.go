package repository

import (
	"context"
	"time"

	"costume-storefront/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *model.Order, items []*model.OrderItem) error
	ListNewestFirst(ctx context.Context) ([]*model.Order, error)
	ItemsForOrders(ctx context.Context, orderIDs []string) ([]*model.OrderItem, error)
	MarkCompletedBySession(ctx context.Context, sessionID string) (*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

// CreateWithItems stores the order and its items atomically.
func (r *orderRepoImpl) CreateWithItems(ctx context.Context, order *model.Order, items []*model.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *orderRepoImpl) ListNewestFirst(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&orders).
		Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) ItemsForOrders(ctx context.Context, orderIDs []string) ([]*model.OrderItem, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	var items []*model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Find(&items).
		Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

// MarkCompletedBySession flips a pending order to completed and returns it.
// Unknown sessions and already-settled orders report gorm.ErrRecordNotFound.
func (r *orderRepoImpl) MarkCompletedBySession(ctx context.Context, sessionID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Order{}).
			Where("session_id = ?", sessionID).
			Where("status = ?", model.OrderStatusPending).
			Updates(map[string]interface{}{
				"status":     model.OrderStatusCompleted,
				"updated_at": time.Now(),
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("session_id = ?", sessionID).First(&order).Error
	})

	if err != nil {
		return nil, err
	}

	return &order, nil
}
