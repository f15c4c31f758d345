package repository

import (
	"context"

	"github.com/yeremiapane/restaurant-booking/models"
)

type TableFilter struct {
	Available *bool
}

func (s *Store) ListTables(ctx context.Context, f TableFilter) ([]models.Table, error) {
	q := s.conn(ctx)
	if f.Available != nil {
		q = q.Where("available = ?", *f.Available)
	}

	var tables []models.Table
	if err := q.Order("name ASC").Order("id ASC").Find(&tables).Error; err != nil {
		return nil, translate(err)
	}
	return tables, nil
}

func (s *Store) FindTable(ctx context.Context, id uint) (*models.Table, error) {
	var table models.Table
	if err := s.conn(ctx).First(&table, id).Error; err != nil {
		return nil, translate(err)
	}
	return &table, nil
}

func (s *Store) CreateTable(ctx context.Context, table *models.Table) error {
	return translate(s.conn(ctx).Create(table).Error)
}

func (s *Store) SaveTable(ctx context.Context, table *models.Table) error {
	return translate(s.conn(ctx).Save(table).Error)
}

func (s *Store) SetTableAvailability(ctx context.Context, id uint, available bool) error {
	res := s.conn(ctx).Model(&models.Table{}).Where("id = ?", id).Update("available", available)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTable(ctx context.Context, id uint) error {
	return deleted(s.conn(ctx).Delete(&models.Table{}, id))
}
