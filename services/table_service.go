package services

import (
	"context"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/repository"
	"github.com/yeremiapane/restaurant-booking/utils"
)

type TableService struct {
	store *repository.Store
	now   func() time.Time
}

func NewTableService(store *repository.Store) *TableService {
	return &TableService{store: store, now: time.Now}
}

func (s *TableService) SetClock(now func() time.Time) {
	s.now = now
}

type TableInput struct {
	Name      string `json:"name"`
	Seats     int    `json:"seats"`
	Available *bool  `json:"available"`
}

type TableDetail struct {
	models.Table
	Reservations []models.Reservation `json:"reservations"`
}

// Availability projects every table (optionally only administratively
// available ones) for rawDate, today when empty.
func (s *TableService) Availability(ctx context.Context, rawDate string, available *bool) ([]TableAvailability, error) {
	day := models.DayOf(s.now())
	if rawDate != "" {
		d, err := models.ParseDay(rawDate)
		if err != nil {
			return nil, newError(KindValidation, "%s", err.Error()).with("field", "date")
		}
		day = d
	}

	tables, err := s.store.ListTables(ctx, repository.TableFilter{Available: available})
	if err != nil {
		return nil, err
	}
	reservations, err := s.store.ActiveReservationsOn(ctx, day)
	if err != nil {
		return nil, err
	}
	return ProjectAvailability(tables, reservations, day), nil
}

func (s *TableService) Get(ctx context.Context, id uint) (*TableDetail, error) {
	table, err := s.store.FindTable(ctx, id)
	if err != nil {
		return nil, storeError(err, "table")
	}
	reservations, err := s.store.ActiveReservationsForTable(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TableDetail{Table: *table, Reservations: reservations}, nil
}

func validateTable(in TableInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return newError(KindValidation, "table name is required").with("field", "name")
	}
	if in.Seats < models.MinTableSeats || in.Seats > models.MaxTableSeats {
		return newError(KindValidation, "seats must be between %d and %d", models.MinTableSeats, models.MaxTableSeats).with("field", "seats")
	}
	return nil
}

func (s *TableService) Create(ctx context.Context, in TableInput) (*models.Table, error) {
	if err := validateTable(in); err != nil {
		return nil, err
	}
	table := &models.Table{
		Name:      strings.TrimSpace(in.Name),
		Seats:     in.Seats,
		Available: true,
	}
	if in.Available != nil {
		table.Available = *in.Available
	}
	if err := s.store.CreateTable(ctx, table); err != nil {
		return nil, storeError(err, "table")
	}
	utils.InfoLogger.Printf("New table created: %s (seats=%d)", table.Name, table.Seats)
	return table, nil
}

func (s *TableService) Update(ctx context.Context, id uint, in TableInput) (*models.Table, error) {
	if err := validateTable(in); err != nil {
		return nil, err
	}
	table, err := s.store.FindTable(ctx, id)
	if err != nil {
		return nil, storeError(err, "table")
	}
	table.Name = strings.TrimSpace(in.Name)
	table.Seats = in.Seats
	if in.Available != nil {
		table.Available = *in.Available
	}
	if err := s.store.SaveTable(ctx, table); err != nil {
		return nil, storeError(err, "table")
	}
	return table, nil
}

// SetAvailability flips the administrative switch only.
func (s *TableService) SetAvailability(ctx context.Context, id uint, available bool) (*models.Table, error) {
	if err := s.store.SetTableAvailability(ctx, id, available); err != nil {
		return nil, storeError(err, "table")
	}
	table, err := s.store.FindTable(ctx, id)
	if err != nil {
		return nil, storeError(err, "table")
	}
	return table, nil
}

func (s *TableService) Delete(ctx context.Context, id uint) error {
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.FindTable(ctx, id); err != nil {
			return storeError(err, "table")
		}
		active, err := tx.CountActiveReservationsForTable(ctx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return newError(KindConflict, "table has %d active reservation(s)", active).with("activeReservations", active)
		}
		return storeError(tx.DeleteTable(ctx, id), "table")
	})
}
