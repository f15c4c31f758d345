package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-booking/models"
)

// DateRange bounds created_at; nil ends are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r DateRange) apply(q *gormDB) *gormDB {
	if r.From != nil {
		q = q.Where("created_at >= ?", r.From.UTC())
	}
	if r.To != nil {
		q = q.Where("created_at <= ?", r.To.UTC())
	}
	return q
}

func (s *Store) count(ctx context.Context, model interface{}, scope func(*gormDB) *gormDB) (int64, error) {
	var n int64
	q := s.conn(ctx).Model(model)
	if scope != nil {
		q = scope(q)
	}
	err := q.Count(&n).Error
	return n, translate(err)
}

func (s *Store) CountDishes(ctx context.Context) (int64, error) {
	return s.count(ctx, &models.Dish{}, nil)
}

func (s *Store) CountTables(ctx context.Context, onlyAvailable bool) (int64, error) {
	return s.count(ctx, &models.Table{}, func(q *gormDB) *gormDB {
		if onlyAvailable {
			return q.Where("available = ?", true)
		}
		return q
	})
}

func (s *Store) CountOrders(ctx context.Context, r DateRange) (int64, error) {
	return s.count(ctx, &models.Order{}, r.apply)
}

func (s *Store) CountReservations(ctx context.Context, r DateRange) (int64, error) {
	return s.count(ctx, &models.Reservation{}, r.apply)
}

func (s *Store) CountOrdersSince(ctx context.Context, since time.Time) (int64, error) {
	return s.count(ctx, &models.Order{}, func(q *gormDB) *gormDB {
		return q.Where("created_at >= ?", since.UTC())
	})
}

// DeliveredRevenue sums the stored totals of delivered orders.
func (s *Store) DeliveredRevenue(ctx context.Context, r DateRange) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	q := r.apply(s.conn(ctx).Model(&models.Order{})).
		Select("COALESCE(SUM(total), 0)").
		Where("status = ?", models.OrderLivree)
	if err := q.Row().Scan(&revenue); err != nil {
		return decimal.Zero, translate(err)
	}
	return revenue, nil
}

type statusCount struct {
	Status string
	Count  int64
}

func (s *Store) groupByStatus(ctx context.Context, model interface{}, r DateRange) (map[string]int64, error) {
	var rows []statusCount
	err := r.apply(s.conn(ctx).Model(model)).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (s *Store) OrdersByStatus(ctx context.Context, r DateRange) (map[string]int64, error) {
	return s.groupByStatus(ctx, &models.Order{}, r)
}

func (s *Store) ReservationsByStatus(ctx context.Context, r DateRange) (map[string]int64, error) {
	return s.groupByStatus(ctx, &models.Reservation{}, r)
}
