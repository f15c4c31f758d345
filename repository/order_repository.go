package repository

import (
	"context"

	"github.com/yeremiapane/restaurant-booking/models"
)

type OrderFilter struct {
	UserID   *uint
	Statuses []models.OrderStatus
}

// CreateOrder inserts the order and its items.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	return translate(s.conn(ctx).Omit("User").Create(order).Error)
}

func (s *Store) FindOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.conn(ctx).
		Preload("User").
		Preload("Items", func(db *gormDB) *gormDB { return db.Order("id ASC") }).
		Preload("Items.Dish").
		First(&order, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *Store) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	q := s.conn(ctx).
		Preload("User").
		Preload("Items", func(db *gormDB) *gormDB { return db.Order("id ASC") }).
		Preload("Items.Dish")
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

// UpdateOrderStatus is the only writer of orders.status. It changes the row
// only while it still holds from, and reports whether it did.
func (s *Store) UpdateOrderStatus(ctx context.Context, id uint, from, to models.OrderStatus) (bool, error) {
	res := s.conn(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}
