package repository

import (
	"context"

	"github.com/yeremiapane/restaurant-booking/models"
	"gorm.io/gorm/clause"
)

type DishFilter struct {
	CategoryID *uint
	Available  *bool
}

func (s *Store) ListDishes(ctx context.Context, f DishFilter) ([]models.Dish, error) {
	q := s.conn(ctx).Preload("Category")
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Available != nil {
		q = q.Where("available = ?", *f.Available)
	}

	var dishes []models.Dish
	if err := q.Order("name ASC").Order("id ASC").Find(&dishes).Error; err != nil {
		return nil, translate(err)
	}
	return dishes, nil
}

func (s *Store) FindDish(ctx context.Context, id uint) (*models.Dish, error) {
	var dish models.Dish
	if err := s.conn(ctx).Preload("Category").First(&dish, id).Error; err != nil {
		return nil, translate(err)
	}
	return &dish, nil
}

// FindDishesByIDs returns the dishes that exist among ids, keyed by id.
func (s *Store) FindDishesByIDs(ctx context.Context, ids []uint) (map[uint]models.Dish, error) {
	var dishes []models.Dish
	if len(ids) > 0 {
		if err := s.conn(ctx).Where("id IN ?", ids).Find(&dishes).Error; err != nil {
			return nil, translate(err)
		}
	}

	out := make(map[uint]models.Dish, len(dishes))
	for _, d := range dishes {
		out[d.ID] = d
	}
	return out, nil
}

func (s *Store) CreateDish(ctx context.Context, dish *models.Dish) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(dish).Error)
}

func (s *Store) SaveDish(ctx context.Context, dish *models.Dish) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(dish).Error)
}

func (s *Store) DeleteDish(ctx context.Context, id uint) error {
	return deleted(s.conn(ctx).Delete(&models.Dish{}, id))
}

func (s *Store) CountOrderItemsForDish(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := s.conn(ctx).Model(&models.OrderItem{}).Where("dish_id = ?", id).Count(&count).Error
	return count, translate(err)
}
