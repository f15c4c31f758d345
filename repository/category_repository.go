package repository

import (
	"context"

	"github.com/yeremiapane/restaurant-booking/models"
	"gorm.io/gorm/clause"
)

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.conn(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, translate(err)
	}

	var counts []struct {
		CategoryID uint
		Count      int64
	}
	err := s.conn(ctx).Model(&models.Dish{}).
		Select("category_id, COUNT(*) AS count").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&counts).Error
	if err != nil {
		return nil, translate(err)
	}

	byID := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byID[c.CategoryID] = c.Count
	}
	for i := range categories {
		categories[i].DishCount = byID[categories[i].ID]
	}
	return categories, nil
}

func (s *Store) FindCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.conn(ctx).First(&category, id).Error; err != nil {
		return nil, translate(err)
	}
	count, err := s.CountDishesInCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.DishCount = count
	return &category, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	return translate(s.conn(ctx).Create(category).Error)
}

func (s *Store) SaveCategory(ctx context.Context, category *models.Category) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(category).Error)
}

func (s *Store) DeleteCategory(ctx context.Context, id uint) error {
	return deleted(s.conn(ctx).Delete(&models.Category{}, id))
}

func (s *Store) CountDishesInCategory(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Dish{}).Where("category_id = ?", id).Count(&count).Error
	return count, translate(err)
}
