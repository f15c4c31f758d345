package repository

import (
	"context"

	"github.com/yeremiapane/restaurant-booking/models"
)

type ReservationFilter struct {
	UserID *uint
	Status *models.ReservationStatus
	Type   *models.ReservationType
	Day    *models.Day
}

func (s *Store) CreateReservation(ctx context.Context, r *models.Reservation) error {
	return translate(s.conn(ctx).Omit("Table", "User").Create(r).Error)
}

func (s *Store) FindReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.conn(ctx).Preload("Table").Preload("User").First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *Store) ListReservations(ctx context.Context, f ReservationFilter) ([]models.Reservation, error) {
	q := s.conn(ctx).Preload("Table").Preload("User")
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Day != nil {
		q = q.Where("day = ?", f.Day.String())
	}

	var out []models.Reservation
	if err := q.Order("date DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// ActiveReservationsOn returns the table reservations holding a table on day.
func (s *Store) ActiveReservationsOn(ctx context.Context, day models.Day) ([]models.Reservation, error) {
	var out []models.Reservation
	err := s.conn(ctx).
		Where("day = ? AND table_id IS NOT NULL AND status IN ?", day.String(), models.ActiveReservationStatuses).
		Order("date ASC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// HasActiveReservation reports whether another active reservation holds the table on day.
func (s *Store) HasActiveReservation(ctx context.Context, tableID uint, day models.Day, excludeID uint) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Reservation{}).
		Where("table_id = ? AND day = ? AND status IN ? AND id <> ?", tableID, day.String(), models.ActiveReservationStatuses, excludeID).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (s *Store) ActiveReservationsForTable(ctx context.Context, tableID uint) ([]models.Reservation, error) {
	var out []models.Reservation
	err := s.conn(ctx).
		Where("table_id = ? AND status IN ?", tableID, models.ActiveReservationStatuses).
		Order("date ASC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (s *Store) CountActiveReservationsForTable(ctx context.Context, tableID uint) (int64, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Reservation{}).
		Where("table_id = ? AND status IN ?", tableID, models.ActiveReservationStatuses).
		Count(&count).Error
	return count, translate(err)
}

// UpdateReservationStatus is the only writer of reservations.status. slot is
// written alongside so the unique index tracks which reservations hold a table.
func (s *Store) UpdateReservationStatus(ctx context.Context, id uint, from, to models.ReservationStatus, slot *string) (bool, error) {
	res := s.conn(ctx).Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "active_slot": slot})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) DeleteReservation(ctx context.Context, id uint) error {
	return deleted(s.conn(ctx).Delete(&models.Reservation{}, id))
}
